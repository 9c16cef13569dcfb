package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/mpapenbr/iracelog-fuelplan/pkg/racestints"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/timecodec"
)

type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

type (
	EstimateView struct {
		TotalLaps    int     `json:"totalLaps" yaml:"totalLaps"`
		TotalFuel    float64 `json:"totalFuel" yaml:"totalFuel"`
		TotalTime    string  `json:"totalTime" yaml:"totalTime"`
		TotalSeconds int64   `json:"totalSeconds" yaml:"totalSeconds"`
	}
	StintView struct {
		No                int     `json:"no" yaml:"no"`
		Laps              int     `json:"laps" yaml:"laps"`
		LapStart          int     `json:"lapStart" yaml:"lapStart"`
		LapEnd            int     `json:"lapEnd" yaml:"lapEnd"`
		StintTime         string  `json:"stintTime" yaml:"stintTime"`
		StintSeconds      int64   `json:"stintSeconds" yaml:"stintSeconds"`
		CumulativeTime    string  `json:"cumulativeTime" yaml:"cumulativeTime"`
		CumulativeSeconds int64   `json:"cumulativeSeconds" yaml:"cumulativeSeconds"`
		FuelLoaded        float64 `json:"fuelLoaded" yaml:"fuelLoaded"`
		FuelUsed          float64 `json:"fuelUsed" yaml:"fuelUsed"`
		Synthesized       bool    `json:"synthesized" yaml:"synthesized"`
	}
	PlanView struct {
		TankVolume float64     `json:"tankVolume" yaml:"tankVolume"`
		FuelPerLap float64     `json:"fuelPerLap" yaml:"fuelPerLap"`
		TotalLaps  int         `json:"totalLaps" yaml:"totalLaps"`
		TotalFuel  float64     `json:"totalFuel" yaml:"totalFuel"`
		Stints     []StintView `json:"stints" yaml:"stints"`
	}
)

func NewEstimateView(e *racestints.RaceEstimate) EstimateView {
	return EstimateView{
		TotalLaps:    e.TotalLaps,
		TotalFuel:    e.TotalFuel,
		TotalTime:    timecodec.FormatMinSec(e.TotalTime),
		TotalSeconds: int64(e.TotalTime.Seconds()),
	}
}

func NewPlanView(p *racestints.Plan, params racestints.RaceParams) PlanView {
	return PlanView{
		TankVolume: params.TankVolume,
		FuelPerLap: params.FuelPerLap,
		TotalLaps:  p.TotalLaps(),
		TotalFuel:  p.TotalFuel(),
		Stints: lo.Map(p.Stints, func(s racestints.Stint, _ int) StintView {
			return StintView{
				No:                s.No,
				Laps:              s.Laps,
				LapStart:          s.LapStart,
				LapEnd:            s.LapEnd,
				StintTime:         timecodec.FormatMinSec(s.StintTime),
				StintSeconds:      int64(s.StintTime.Seconds()),
				CumulativeTime:    timecodec.FormatHourMin(s.CumulativeTime),
				CumulativeSeconds: int64(s.CumulativeTime.Seconds()),
				FuelLoaded:        s.FuelLoaded,
				FuelUsed:          s.FuelUsed,
				Synthesized:       s.Synthesized,
			}
		}),
	}
}

// Estimate writes the single run summary
func Estimate(w io.Writer, e *racestints.RaceEstimate, format Format) error {
	v := NewEstimateView(e)
	switch format {
	case FormatYAML:
		return writeYAML(w, v)
	case FormatJSON:
		return writeJSON(w, v)
	default:
		_, err := fmt.Fprintf(w, "Total Laps: %d\nFuel Needed: %.2f liters\nTotal Time: %s\n",
			v.TotalLaps, v.TotalFuel, v.TotalTime)
		return err
	}
}

// Plan writes the stint plan
func Plan(w io.Writer, p *racestints.Plan, params racestints.RaceParams, format Format) error {
	v := NewPlanView(p, params)
	switch format {
	case FormatYAML:
		return writeYAML(w, v)
	case FormatJSON:
		return writeJSON(w, v)
	default:
		return writePlanTable(w, v)
	}
}

func writePlanTable(w io.Writer, v PlanView) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Capacity: %.2f liters   Consumption: %.2f liters", v.TankVolume, v.FuelPerLap)
	t.AppendHeader(table.Row{"Stint", "Laps", "Lap range", "Time", "Race time", "Fuel loaded", "Fuel used"})
	for _, s := range v.Stints {
		name := fmt.Sprintf("%d", s.No)
		if s.Synthesized {
			name += "*"
		}
		lapRange := "-"
		if s.Laps > 0 {
			lapRange = fmt.Sprintf("%d-%d", s.LapStart, s.LapEnd)
		}
		t.AppendRow(table.Row{
			name,
			s.Laps,
			lapRange,
			s.StintTime,
			s.CumulativeTime,
			fmt.Sprintf("%.2f", s.FuelLoaded),
			fmt.Sprintf("%.2f", s.FuelUsed),
		})
	}
	t.AppendFooter(table.Row{"", v.TotalLaps, "", "", "", "", fmt.Sprintf("%.2f", v.TotalFuel)})
	t.Render()
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
