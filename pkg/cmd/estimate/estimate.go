package estimate

import (
	"github.com/spf13/cobra"

	"github.com/mpapenbr/iracelog-fuelplan/log"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/cmd/util"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/config"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/racestints"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/render"
)

func NewEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "total laps, fuel and time for the race without stints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return estimate(cmd)
		},
	}
	return cmd
}

func estimate(cmd *cobra.Command) error {
	logger, err := util.SetupLogger()
	if err != nil {
		return err
	}
	logger = logger.Named("estimate")
	format, err := render.ParseFormat(config.Output)
	if err != nil {
		return err
	}
	params, err := util.RaceParams(false)
	if err != nil {
		return err
	}
	res, err := racestints.Estimate(params.RaceDur, params.AvgLap, params.FuelPerLap)
	if err != nil {
		return err
	}
	logger.Debug("estimate",
		log.Duration("raceDur", params.RaceDur),
		log.Duration("avgLap", params.AvgLap),
		log.Int("laps", res.TotalLaps))
	return render.Estimate(cmd.OutOrStdout(), res, format)
}
