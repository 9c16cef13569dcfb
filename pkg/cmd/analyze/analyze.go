package analyze

import (
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/iracelog-fuelplan/pkg/analysis"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/cmd/util"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/config"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/racestints"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/render"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "interactive stint analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyze(cmd)
		},
	}
	cmd.Flags().Float64Var(&config.TankVolume, "tank", 0, "fuel capacity of the car (liters)")
	return cmd
}

func analyze(cmd *cobra.Command) error {
	logger, err := util.SetupLogger()
	if err != nil {
		return err
	}
	params, err := util.RaceParams(true)
	if err != nil {
		return err
	}
	session, err := analysis.NewSession(params, analysis.WithLogger(logger.Named("analysis")))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := analysis.NewRunner(session, analysis.NewSurveyPrompter(),
		func(w io.Writer, plan *racestints.Plan, params racestints.RaceParams) error {
			return render.Plan(w, plan, params, render.FormatTable)
		},
		cmd.OutOrStdout())
	if err := runner.Run(ctx); err != nil && !errors.Is(err, analysis.ErrAborted) {
		return err
	}
	return nil
}
