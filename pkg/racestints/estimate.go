package racestints

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RaceEstimate describes a race run in one go without refueling.
type RaceEstimate struct {
	TotalLaps int
	TotalFuel float64
	TotalTime time.Duration
}

// Estimate computes laps, fuel and time for a single continuous run.
// The resulting time covers the race duration and exceeds it by at most one lap.
func Estimate(raceDur, avgLap time.Duration, fuelPerLap float64) (*RaceEstimate, error) {
	if raceDur <= 0 || avgLap <= 0 || !positiveFinite(fuelPerLap) {
		return nil, fmt.Errorf("%w: race duration, lap time and fuel per lap must be positive",
			ErrInvalidValue)
	}
	laps := lapsToCover(raceDur, avgLap)
	for laps > 1 && time.Duration(laps)*avgLap > raceDur+avgLap {
		laps--
	}
	return &RaceEstimate{
		TotalLaps: laps,
		TotalFuel: decimal.NewFromFloat(fuelPerLap).
			Mul(decimal.NewFromInt(int64(laps))).
			InexactFloat64(),
		TotalTime: time.Duration(laps) * avgLap,
	}, nil
}
