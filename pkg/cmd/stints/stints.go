package stints

import (
	"github.com/spf13/cobra"

	"github.com/mpapenbr/iracelog-fuelplan/log"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/analysis"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/cmd/util"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/config"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/render"
)

func NewStintsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stints",
		Short: "split the race into stints",
		Long: `Split the race into stints starting with a full tank each.
Use --fuel stint=liters to change the fuel of a stint. Overrides are applied in
the given order, each one recalculates the following stints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return planStints(cmd)
		},
	}
	cmd.Flags().Float64Var(&config.TankVolume, "tank", 0, "fuel capacity of the car (liters)")
	cmd.Flags().StringArrayVar(&config.FuelOverrides, "fuel", []string{},
		"fuel for a stint (stint=liters), may be repeated")
	return cmd
}

func planStints(cmd *cobra.Command) error {
	logger, err := util.SetupLogger()
	if err != nil {
		return err
	}
	logger = logger.Named("stints")
	format, err := render.ParseFormat(config.Output)
	if err != nil {
		return err
	}
	params, err := util.RaceParams(true)
	if err != nil {
		return err
	}
	overrides, err := util.ParseFuelOverrides(config.FuelOverrides)
	if err != nil {
		return err
	}
	session, err := analysis.NewSession(params, analysis.WithLogger(logger))
	if err != nil {
		return err
	}
	for _, o := range overrides {
		if _, err := session.Modify(o.Idx, o.Fuel); err != nil {
			return err
		}
	}
	logger.Debug("plan computed",
		log.Float64s("allocations", session.Allocations()),
		log.Int("stints", len(session.Plan().Stints)))
	return render.Plan(cmd.OutOrStdout(), session.Plan(), params, format)
}
