package racestints

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type (
	FuelCalcParams struct {
		TotalLaps  int           // laps to complete
		AvgLap     time.Duration // average lap time
		FuelPerLap float64       // fuel consumption per lap
		TankVolume float64       // max fuel the car can hold
	}
	Option func(*fuelStintCalc)
)

type (
	fuelStintCalc struct {
		param       *FuelCalcParams
		allocations []float64
		recalc      bool
	}
)

// NewFuelStintCalc creates a calculator which splits the race into stints.
// Without allocations every stint starts with a full tank.
func NewFuelStintCalc(param *FuelCalcParams, opts ...Option) CalcStints {
	ret := &fuelStintCalc{param: param}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// WithAllocations switches to recalculation mode: allocations are clamped to the
// tank volume and unused fuel is carried over to the next allocation.
// The slice is copied, the caller keeps ownership.
func WithAllocations(fuel []float64) Option {
	return func(c *fuelStintCalc) {
		c.allocations = append([]float64(nil), fuel...)
		c.recalc = true
	}
}

// PlanFromAllocations recalculates the stints from user edited allocations.
//
//nolint:whitespace // readability
func PlanFromAllocations(
	totalLaps int,
	avgLap time.Duration,
	allocations []float64,
	fuelPerLap, tankVolume float64,
) (*Plan, error) {
	return NewFuelStintCalc(&FuelCalcParams{
		TotalLaps:  totalLaps,
		AvgLap:     avgLap,
		FuelPerLap: fuelPerLap,
		TankVolume: tankVolume,
	}, WithAllocations(allocations)).Calc()
}

// PlanInitial plans the race with a full tank for every stint.
func PlanInitial(totalLaps int, avgLap time.Duration, fuelPerLap, tankVolume float64) (*Plan, error) {
	return NewFuelStintCalc(&FuelCalcParams{
		TotalLaps:  totalLaps,
		AvgLap:     avgLap,
		FuelPerLap: fuelPerLap,
		TankVolume: tankVolume,
	}).Calc()
}

// InitialAllocations returns one full tank per stint needed for totalLaps.
func InitialAllocations(totalLaps int, fuelPerLap, tankVolume float64) ([]float64, error) {
	p := &FuelCalcParams{TotalLaps: totalLaps, FuelPerLap: fuelPerLap, TankVolume: tankVolume}
	if err := p.validateFuel(); err != nil {
		return nil, err
	}
	lapsPerTank, err := p.lapsPerTank()
	if err != nil {
		return nil, err
	}
	return lo.Times((totalLaps+lapsPerTank-1)/lapsPerTank, func(int) float64 {
		return tankVolume
	}), nil
}

func (p *FuelCalcParams) validate() error {
	if p.AvgLap <= 0 {
		return fmt.Errorf("%w: lap time must be positive, got %s", ErrInvalidValue, p.AvgLap)
	}
	return p.validateFuel()
}

func (p *FuelCalcParams) validateFuel() error {
	switch {
	case p.TotalLaps < 0:
		return fmt.Errorf("%w: total laps must not be negative, got %d", ErrInvalidValue, p.TotalLaps)
	case !positiveFinite(p.FuelPerLap):
		return fmt.Errorf("%w: fuel per lap must be positive, got %.2f",
			ErrInvalidValue, p.FuelPerLap)
	case !positiveFinite(p.TankVolume):
		return fmt.Errorf("%w: tank volume must be positive, got %.2f", ErrInvalidValue, p.TankVolume)
	}
	return nil
}

// a full tank has to last at least one lap, otherwise no stint makes progress
func (p *FuelCalcParams) lapsPerTank() (int, error) {
	laps := lapsFor(decimal.NewFromFloat(p.TankVolume), decimal.NewFromFloat(p.FuelPerLap))
	if laps < 1 {
		return 0, fmt.Errorf("%w: fuel per lap (%.2f) exceeds tank volume (%.2f)",
			ErrConfiguration, p.FuelPerLap, p.TankVolume)
	}
	return laps, nil
}

func lapsFor(fuel, perLap decimal.Decimal) int {
	return int(fuel.Div(perLap).Floor().IntPart())
}

//nolint:funlen // readability
func (c *fuelStintCalc) Calc() (*Plan, error) {
	if err := c.param.validate(); err != nil {
		return nil, err
	}
	if _, err := c.param.lapsPerTank(); err != nil {
		return nil, err
	}
	fuel := c.allocations
	if !c.recalc {
		var err error
		if fuel, err = InitialAllocations(
			c.param.TotalLaps, c.param.FuelPerLap, c.param.TankVolume); err != nil {
			return nil, err
		}
	}
	for i, f := range fuel {
		if math.IsNaN(f) || f < 0 {
			return nil, fmt.Errorf(
				"%w: fuel for stint %d must be a non-negative number, got %.2f",
				ErrInvalidValue, i+1, f)
		}
	}

	tank := decimal.NewFromFloat(c.param.TankVolume)
	perLap := decimal.NewFromFloat(c.param.FuelPerLap)
	// +Inf is clamped here, decimal cannot represent it
	loaded := lo.Map(fuel, func(f float64, _ int) decimal.Decimal {
		return decimal.NewFromFloat(min(f, c.param.TankVolume))
	})

	plan := &Plan{Stints: make([]Stint, 0, len(loaded))}
	remain := c.param.TotalLaps
	curLap := 1
	curDur := time.Duration(0)

	// returns the fuel actually used
	addStint := func(load decimal.Decimal, synthesized bool) decimal.Decimal {
		laps := min(lapsFor(load, perLap), remain)
		used := perLap.Mul(decimal.NewFromInt(int64(laps)))
		stintTime := time.Duration(laps) * c.param.AvgLap
		curDur += stintTime
		remain -= laps
		plan.Stints = append(plan.Stints, Stint{
			No:             len(plan.Stints) + 1,
			Laps:           laps,
			LapStart:       curLap,
			LapEnd:         curLap + laps - 1,
			StintTime:      stintTime,
			CumulativeTime: curDur,
			FuelLoaded:     load.InexactFloat64(),
			FuelUsed:       used.InexactFloat64(),
			Synthesized:    synthesized,
		})
		curLap += laps
		return used
	}

	for i := 0; i < len(loaded) && remain > 0; i++ {
		if c.recalc {
			loaded[i] = decimal.Min(loaded[i], tank)
		}
		used := addStint(loaded[i], false)
		if !c.recalc {
			continue
		}
		leftover := loaded[i].Sub(used)
		if leftover.IsPositive() && i+1 < len(loaded) {
			loaded[i+1] = decimal.Min(loaded[i+1].Add(leftover), tank)
		}
	}

	// more stints needed to reach the end of the race
	for remain > 0 {
		addStint(tank, true)
	}
	return plan, nil
}
