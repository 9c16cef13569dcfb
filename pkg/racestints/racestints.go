package racestints

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
)

var (
	ErrInvalidValue  = errors.New("invalid value")
	ErrConfiguration = errors.New("invalid configuration")
)

type (
	CalcStints interface {
		Calc() (*Plan, error)
	}
	// RaceParams holds the values a strategy is computed from.
	RaceParams struct {
		RaceDur    time.Duration // duration of the race
		AvgLap     time.Duration // average lap time
		TankVolume float64       // max fuel the car can hold
		FuelPerLap float64       // fuel consumption per lap
	}
	Stint struct {
		No             int           // 1-based stint number
		Laps           int           // laps completed in this stint
		LapStart       int           // first lap of the stint
		LapEnd         int           // last lap of the stint (LapStart-1 if no laps)
		StintTime      time.Duration // Laps * AvgLap
		CumulativeTime time.Duration // race time at the end of this stint
		FuelLoaded     float64       // allocation after clamping and carry-over
		FuelUsed       float64       // Laps * FuelPerLap
		Synthesized    bool          // added to cover the remaining race distance
	}
	Plan struct {
		Stints []Stint
	}
)

func (p RaceParams) Validate() error {
	switch {
	case p.RaceDur < time.Second:
		return fmt.Errorf("%w: race duration must be at least 1s, got %s", ErrInvalidValue, p.RaceDur)
	case p.AvgLap <= 0:
		return fmt.Errorf("%w: lap time must be positive, got %s", ErrInvalidValue, p.AvgLap)
	case !positiveFinite(p.FuelPerLap):
		return fmt.Errorf("%w: fuel per lap must be positive, got %.2f",
			ErrInvalidValue, p.FuelPerLap)
	case !positiveFinite(p.TankVolume):
		return fmt.Errorf("%w: tank volume must be positive, got %.2f", ErrInvalidValue, p.TankVolume)
	}
	return nil
}

// false for NaN and infinite values as well
func positiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

// TotalLaps returns the laps needed to cover the race duration
func (p RaceParams) TotalLaps() int {
	return lapsToCover(p.RaceDur, p.AvgLap)
}

// lapsToCover is ceil(raceDur/avgLap) on integer durations
func lapsToCover(raceDur, avgLap time.Duration) int {
	return int((raceDur + avgLap - 1) / avgLap)
}

func (p *Plan) TotalLaps() int {
	return lo.SumBy(p.Stints, func(s Stint) int { return s.Laps })
}

func (p *Plan) TotalFuel() float64 {
	return lo.SumBy(p.Stints, func(s Stint) float64 { return s.FuelUsed })
}

func (p *Plan) TotalTime() time.Duration {
	if len(p.Stints) == 0 {
		return 0
	}
	return p.Stints[len(p.Stints)-1].CumulativeTime
}

func (p *Plan) Output() string {
	return strings.Join(lo.Map(p.Stints, func(s Stint, _ int) string {
		return s.Output()
	}), "\n")
}

func (s Stint) Output() string {
	return fmt.Sprintf("#%d %d-%d (%d): %s [%s] fuel %.2f/%.2f",
		s.No, s.LapStart, s.LapEnd, s.Laps, s.StintTime, s.CumulativeTime,
		s.FuelUsed, s.FuelLoaded)
}
