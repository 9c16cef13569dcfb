//nolint:whitespace,lll,funlen // readability
package racestints

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// converts sec to time.Duration
func toDur(secs int) time.Duration { return time.Duration(secs) * time.Second }

func stintLaps(p *Plan) []int {
	ret := make([]int, len(p.Stints))
	for i, s := range p.Stints {
		ret[i] = s.Laps
	}
	return ret
}

func TestPlanFromAllocations(t *testing.T) {
	tests := []struct {
		name        string
		totalLaps   int
		avgLap      time.Duration
		allocations []float64
		fuelPerLap  float64
		tankVolume  float64
		want        []Stint
	}{
		{
			name: "leftover is carried to next stint", totalLaps: 10, avgLap: toDur(60),
			allocations: []float64{5, 0}, fuelPerLap: 2, tankVolume: 10,
			want: []Stint{
				{No: 1, Laps: 2, LapStart: 1, LapEnd: 2, StintTime: toDur(120), CumulativeTime: toDur(120), FuelLoaded: 5, FuelUsed: 4},
				{No: 2, Laps: 0, LapStart: 3, LapEnd: 2, StintTime: 0, CumulativeTime: toDur(120), FuelLoaded: 1, FuelUsed: 0},
				{No: 3, Laps: 5, LapStart: 3, LapEnd: 7, StintTime: toDur(300), CumulativeTime: toDur(420), FuelLoaded: 10, FuelUsed: 10, Synthesized: true},
				{No: 4, Laps: 3, LapStart: 8, LapEnd: 10, StintTime: toDur(180), CumulativeTime: toDur(600), FuelLoaded: 10, FuelUsed: 6, Synthesized: true},
			},
		},
		{
			name: "synthesize full tank stints", totalLaps: 10, avgLap: toDur(90),
			allocations: []float64{}, fuelPerLap: 1, tankVolume: 4,
			want: []Stint{
				{No: 1, Laps: 4, LapStart: 1, LapEnd: 4, StintTime: toDur(360), CumulativeTime: toDur(360), FuelLoaded: 4, FuelUsed: 4, Synthesized: true},
				{No: 2, Laps: 4, LapStart: 5, LapEnd: 8, StintTime: toDur(360), CumulativeTime: toDur(720), FuelLoaded: 4, FuelUsed: 4, Synthesized: true},
				{No: 3, Laps: 2, LapStart: 9, LapEnd: 10, StintTime: toDur(180), CumulativeTime: toDur(900), FuelLoaded: 4, FuelUsed: 2, Synthesized: true},
			},
		},
		{
			name: "allocation above tank volume is clamped", totalLaps: 50, avgLap: toDur(60),
			allocations: []float64{150, 10}, fuelPerLap: 3, tankVolume: 100,
			want: []Stint{
				{No: 1, Laps: 33, LapStart: 1, LapEnd: 33, StintTime: toDur(1980), CumulativeTime: toDur(1980), FuelLoaded: 100, FuelUsed: 99},
				{No: 2, Laps: 3, LapStart: 34, LapEnd: 36, StintTime: toDur(180), CumulativeTime: toDur(2160), FuelLoaded: 11, FuelUsed: 9},
				{No: 3, Laps: 14, LapStart: 37, LapEnd: 50, StintTime: toDur(840), CumulativeTime: toDur(3000), FuelLoaded: 100, FuelUsed: 42, Synthesized: true},
			},
		},
		{
			name: "carry over does not exceed tank volume", totalLaps: 66, avgLap: toDur(60),
			allocations: []float64{100, 100}, fuelPerLap: 3, tankVolume: 100,
			want: []Stint{
				{No: 1, Laps: 33, LapStart: 1, LapEnd: 33, StintTime: toDur(1980), CumulativeTime: toDur(1980), FuelLoaded: 100, FuelUsed: 99},
				{No: 2, Laps: 33, LapStart: 34, LapEnd: 66, StintTime: toDur(1980), CumulativeTime: toDur(3960), FuelLoaded: 100, FuelUsed: 99},
			},
		},
		{
			name: "infinite allocation plans as full tank", totalLaps: 40, avgLap: toDur(90),
			allocations: []float64{math.Inf(1)}, fuelPerLap: 3, tankVolume: 100,
			want: []Stint{
				{No: 1, Laps: 33, LapStart: 1, LapEnd: 33, StintTime: toDur(2970), CumulativeTime: toDur(2970), FuelLoaded: 100, FuelUsed: 99},
				{No: 2, Laps: 7, LapStart: 34, LapEnd: 40, StintTime: toDur(630), CumulativeTime: toDur(3600), FuelLoaded: 100, FuelUsed: 21, Synthesized: true},
			},
		},
		{
			name: "unused allocations are ignored", totalLaps: 5, avgLap: toDur(60),
			allocations: []float64{100, 100, 100}, fuelPerLap: 1, tankVolume: 100,
			want: []Stint{
				{No: 1, Laps: 5, LapStart: 1, LapEnd: 5, StintTime: toDur(300), CumulativeTime: toDur(300), FuelLoaded: 100, FuelUsed: 5},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanFromAllocations(tt.totalLaps, tt.avgLap, tt.allocations, tt.fuelPerLap, tt.tankVolume)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got.Stints); diff != "" {
				t.Errorf("PlanFromAllocations() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.totalLaps, got.TotalLaps())
		})
	}
}

func TestPlanFromAllocations_doesNotModifyAllocations(t *testing.T) {
	alloc := []float64{5, 0, 3}
	first, err := PlanFromAllocations(10, toDur(60), alloc, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0, 3}, alloc)

	second, err := PlanFromAllocations(10, toDur(60), alloc, 2, 10)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated PlanFromAllocations() differs (-first +second):\n%s", diff)
	}
}

func TestPlanInitial(t *testing.T) {
	got, err := PlanInitial(40, toDur(90), 3.0, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{33, 7}, stintLaps(got))
	assert.Equal(t, 99.0, got.Stints[0].FuelUsed)
	assert.Equal(t, 21.0, got.Stints[1].FuelUsed)
	assert.Equal(t, 120.0, got.TotalFuel())
	assert.Equal(t, toDur(3600), got.TotalTime())
	for _, s := range got.Stints {
		assert.False(t, s.Synthesized)
		assert.Equal(t, 100.0, s.FuelLoaded)
	}
}

func TestPlanInitial_decimalFuel(t *testing.T) {
	// 0.3/0.1 in float64 arithmetic floors to 2
	got, err := PlanInitial(10, toDur(60), 0.1, 0.3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 3, 1}, stintLaps(got))
	assert.Equal(t, 0.3, got.Stints[0].FuelUsed)
	assert.Equal(t, 0.1, got.Stints[3].FuelUsed)
}

func TestPlanInitial_noLaps(t *testing.T) {
	got, err := PlanInitial(0, toDur(60), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, got.Stints)
	assert.Equal(t, time.Duration(0), got.TotalTime())
}

func TestPlan_errors(t *testing.T) {
	tests := []struct {
		name    string
		calc    func() (*Plan, error)
		wantErr error
	}{
		{
			"fuel per lap exceeds tank (initial)",
			func() (*Plan, error) { return PlanInitial(10, toDur(60), 5, 3) },
			ErrConfiguration,
		},
		{
			"fuel per lap exceeds tank (recalc)",
			func() (*Plan, error) { return PlanFromAllocations(10, toDur(60), []float64{3, 3}, 5, 3) },
			ErrConfiguration,
		},
		{
			"negative allocation",
			func() (*Plan, error) { return PlanFromAllocations(10, toDur(60), []float64{10, -1}, 1, 10) },
			ErrInvalidValue,
		},
		{
			"NaN allocation",
			func() (*Plan, error) { return PlanFromAllocations(10, toDur(60), []float64{math.NaN()}, 1, 10) },
			ErrInvalidValue,
		},
		{
			"negative infinite allocation",
			func() (*Plan, error) { return PlanFromAllocations(10, toDur(60), []float64{math.Inf(-1)}, 1, 10) },
			ErrInvalidValue,
		},
		{
			"NaN fuel per lap",
			func() (*Plan, error) { return PlanInitial(10, toDur(60), math.NaN(), 10) },
			ErrInvalidValue,
		},
		{
			"infinite tank volume",
			func() (*Plan, error) { return PlanFromAllocations(10, toDur(60), nil, 1, math.Inf(1)) },
			ErrInvalidValue,
		},
		{
			"infinite fuel per lap",
			func() (*Plan, error) { return PlanInitial(10, toDur(60), math.Inf(1), 10) },
			ErrInvalidValue,
		},
		{
			"zero lap time",
			func() (*Plan, error) { return PlanInitial(10, 0, 1, 10) },
			ErrInvalidValue,
		},
		{
			"zero fuel per lap",
			func() (*Plan, error) { return PlanInitial(10, toDur(60), 0, 10) },
			ErrInvalidValue,
		},
		{
			"zero tank volume",
			func() (*Plan, error) { return PlanFromAllocations(10, toDur(60), nil, 1, 0) },
			ErrInvalidValue,
		},
		{
			"negative laps",
			func() (*Plan, error) { return PlanInitial(-1, toDur(60), 1, 10) },
			ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.calc()
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.wantErr), "got error %v, want %v", err, tt.wantErr)
		})
	}
}

func TestPlan_invariants(t *testing.T) {
	allocSets := [][]float64{
		nil,
		{10},
		{0, 0, 0},
		{7.5, 120, 3.3, 50},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}
	for _, totalLaps := range []int{1, 7, 40, 133} {
		for _, perLap := range []float64{0.7, 2.5, 3.1} {
			for _, tank := range []float64{3.1, 45, 100} {
				for ai, alloc := range allocSets {
					name := fmt.Sprintf("laps=%d perLap=%.1f tank=%.1f alloc=%d",
						totalLaps, perLap, tank, ai)
					t.Run(name, func(t *testing.T) {
						got, err := PlanFromAllocations(totalLaps, toDur(95), alloc, perLap, tank)
						require.NoError(t, err)
						assert.Equal(t, totalLaps, got.TotalLaps())
						prev := time.Duration(0)
						for i, s := range got.Stints {
							assert.Equal(t, i+1, s.No)
							assert.GreaterOrEqual(t, s.CumulativeTime, prev)
							assert.LessOrEqual(t, s.FuelUsed, tank)
							assert.LessOrEqual(t, s.FuelLoaded, tank)
							assert.Equal(t, time.Duration(s.Laps)*toDur(95), s.StintTime)
							prev = s.CumulativeTime
						}
						assert.Equal(t, time.Duration(totalLaps)*toDur(95), got.TotalTime())
					})
				}
			}
		}
	}
}

func TestInitialAllocations(t *testing.T) {
	got, err := InitialAllocations(40, 3, 100)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100}, got)

	got, err = InitialAllocations(66, 3, 100)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100}, got)

	_, err = InitialAllocations(10, 5, 3)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = InitialAllocations(10, math.NaN(), 3)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestStint_Output(t *testing.T) {
	s := Stint{No: 2, Laps: 3, LapStart: 4, LapEnd: 6, StintTime: toDur(270), CumulativeTime: toDur(540), FuelLoaded: 10, FuelUsed: 9}
	assert.Equal(t, "#2 4-6 (3): 4m30s [9m0s] fuel 9.00/10.00", s.Output())
}
