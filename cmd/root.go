/*
	Copyright 2023 Markus Papenbrock
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	analyzeCmd "github.com/mpapenbr/iracelog-fuelplan/pkg/cmd/analyze"
	estimateCmd "github.com/mpapenbr/iracelog-fuelplan/pkg/cmd/estimate"
	stintsCmd "github.com/mpapenbr/iracelog-fuelplan/pkg/cmd/stints"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/config"
	"github.com/mpapenbr/iracelog-fuelplan/version"
)

const envPrefix = "FP"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "fuelplan",
	Short:        "Fuel and stint planner for endurance races",
	Long:         ``,
	Version:      version.FullVersion,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.fuelplan.yml)")

	rootCmd.PersistentFlags().StringVar(&config.RaceDuration, "race-duration",
		"",
		"race duration (HH:MM)")
	rootCmd.PersistentFlags().StringVar(&config.LapTime, "lap-time",
		"",
		"average lap time (MM:SS)")
	rootCmd.PersistentFlags().Float64Var(&config.FuelPerLap, "fuel-per-lap",
		0,
		"fuel consumption per lap (liters)")
	rootCmd.PersistentFlags().StringVarP(&config.Output, "output", "o",
		"table",
		"output format (table, yaml, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"warn",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilter,
		"log-filter",
		"",
		"zapfilter rules for log output (e.g. '*:* -debug:analysis*')")

	// add commands here
	rootCmd.AddCommand(estimateCmd.NewEstimateCmd())
	rootCmd.AddCommand(stintsCmd.NewStintsCmd())
	rootCmd.AddCommand(analyzeCmd.NewAnalyzeCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".fuelplan" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fuelplan")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --race-duration to FP_RACE_DURATION
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
