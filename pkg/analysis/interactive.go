package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/mpapenbr/iracelog-fuelplan/log"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/racestints"
)

var ErrAborted = errors.New("aborted by user")

type (
	// Prompter abstracts the terminal prompts so the loop can be tested
	// without a terminal.
	Prompter interface {
		Select(ctx context.Context, message string, options []string) (int, error)
		InputFuel(ctx context.Context, message string, current float64) (float64, error)
	}
	PlanRenderer func(w io.Writer, plan *racestints.Plan, params racestints.RaceParams) error

	Runner struct {
		session  *Session
		prompter Prompter
		render   PlanRenderer
		out      io.Writer
		log      *log.Logger
	}
)

const (
	optionRecalculate = "Recalculate"
	optionQuit        = "Quit"
)

func NewRunner(session *Session, prompter Prompter, render PlanRenderer, out io.Writer) *Runner {
	return &Runner{
		session:  session,
		prompter: prompter,
		render:   render,
		out:      out,
		log:      log.Default().Named("analysis.runner"),
	}
}

// Run shows the current plan and lets the user modify stints until quit is chosen.
//
//nolint:cyclop // readability
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		plan := r.session.Plan()
		if err := r.render(r.out, plan, r.session.Params()); err != nil {
			return err
		}
		options := lo.Map(plan.Stints, func(s racestints.Stint, _ int) string {
			return fmt.Sprintf("Modify Stint %d", s.No)
		})
		options = append(options, optionRecalculate, optionQuit)

		sel, err := r.prompter.Select(ctx, "Choose an action", options)
		if err != nil {
			return err
		}
		switch {
		case sel < 0 || sel >= len(options):
			return fmt.Errorf("invalid selection %d", sel)
		case options[sel] == optionQuit:
			return nil
		case options[sel] == optionRecalculate:
			if _, err := r.session.Recalculate(); err != nil {
				return err
			}
		default:
			r.modify(ctx, sel)
		}
	}
}

func (r *Runner) modify(ctx context.Context, idx int) {
	current := r.session.Params().TankVolume
	if alloc := r.session.Allocations(); idx < len(alloc) {
		current = alloc[idx]
	}
	fuel, err := r.prompter.InputFuel(ctx,
		fmt.Sprintf("Fuel for Stint %d (current %.2f liters)", idx+1, current), current)
	if err != nil {
		r.log.Debug("input cancelled", log.ErrorField(err))
		return
	}
	if _, err := r.session.Modify(idx, fuel); err != nil {
		fmt.Fprintf(r.out, "Input Error: %v\n", err)
	}
}
