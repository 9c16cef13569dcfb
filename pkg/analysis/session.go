package analysis

import (
	"fmt"
	"math"

	"github.com/mpapenbr/iracelog-fuelplan/log"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/racestints"
)

// Session holds the race parameters and the current fuel allocations of one
// strategy analysis. Each edit replaces the allocations and the plan as a whole.
type Session struct {
	params      racestints.RaceParams
	allocations []float64
	plan        *racestints.Plan
	log         *log.Logger
}

type SessionOption func(*Session)

func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

func NewSession(params racestints.RaceParams, opts ...SessionOption) (*Session, error) {
	ret := &Session{params: params, log: log.Default().Named("analysis")}
	for _, opt := range opts {
		opt(ret)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	alloc, err := racestints.InitialAllocations(
		params.TotalLaps(), params.FuelPerLap, params.TankVolume)
	if err != nil {
		return nil, err
	}
	plan, err := racestints.PlanInitial(
		params.TotalLaps(), params.AvgLap, params.FuelPerLap, params.TankVolume)
	if err != nil {
		return nil, err
	}
	ret.allocations = alloc
	ret.plan = plan
	ret.log.Debug("session created",
		log.Int("totalLaps", params.TotalLaps()),
		log.Int("stints", len(plan.Stints)))
	return ret, nil
}

func (s *Session) Params() racestints.RaceParams {
	return s.params
}

func (s *Session) Plan() *racestints.Plan {
	return s.plan
}

// Allocations returns a copy of the current allocations
func (s *Session) Allocations() []float64 {
	return append([]float64(nil), s.allocations...)
}

// Modify sets the fuel for the stint at idx (0-based) and replans the race.
// Editing a stint beyond the allocation list (one that was added to cover the
// race distance) extends the list with full tanks up to idx.
// On error the session keeps its previous state.
func (s *Session) Modify(idx int, fuel float64) (*racestints.Plan, error) {
	if idx < 0 || idx >= len(s.plan.Stints) {
		return nil, fmt.Errorf("%w: stint %d does not exist", racestints.ErrInvalidValue, idx+1)
	}
	if math.IsNaN(fuel) || fuel < 0 {
		return nil, fmt.Errorf("%w: fuel must be a non-negative number, got %.2f",
			racestints.ErrInvalidValue, fuel)
	}
	next := make([]float64, max(len(s.allocations), idx+1))
	copy(next, s.allocations)
	for i := len(s.allocations); i < len(next); i++ {
		next[i] = s.params.TankVolume
	}
	next[idx] = fuel
	s.log.Debug("modify stint",
		log.Int("stint", idx+1),
		log.Float64("fuel", fuel),
		log.Float64s("allocations", next))
	return s.replan(next)
}

// Recalculate replans with the unchanged allocations
func (s *Session) Recalculate() (*racestints.Plan, error) {
	return s.replan(s.Allocations())
}

func (s *Session) replan(alloc []float64) (*racestints.Plan, error) {
	plan, err := racestints.PlanFromAllocations(
		s.params.TotalLaps(),
		s.params.AvgLap,
		alloc,
		s.params.FuelPerLap,
		s.params.TankVolume)
	if err != nil {
		s.log.Warn("replan failed", log.ErrorField(err))
		return nil, err
	}
	s.allocations = alloc
	s.plan = plan
	return plan, nil
}
