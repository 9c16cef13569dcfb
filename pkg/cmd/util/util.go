package util

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mpapenbr/iracelog-fuelplan/log"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/config"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/racestints"
	"github.com/mpapenbr/iracelog-fuelplan/pkg/timecodec"
)

type FuelOverride struct {
	Idx  int // 0-based stint index
	Fuel float64
}

func ParseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger creates the logger from config values and makes it the default logger
func SetupLogger() (*log.Logger, error) {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			ParseLogLevel(config.LogLevel, log.WarnLevel),
			log.WithCaller(true))
	default:
		logger = log.DevLogger(
			os.Stderr,
			ParseLogLevel(config.LogLevel, log.WarnLevel),
			log.WithCaller(true))
	}
	logger, err := logger.WithFilter(config.LogFilter)
	if err != nil {
		return nil, fmt.Errorf("invalid log filter %q: %w", config.LogFilter, err)
	}
	log.ResetDefault(logger)
	return logger, nil
}

// RaceParams builds the race parameters from config values.
// The tank volume is only checked when withTank is set.
func RaceParams(withTank bool) (racestints.RaceParams, error) {
	var ret racestints.RaceParams
	var err error
	if ret.RaceDur, err = timecodec.ParseRaceDuration(config.RaceDuration); err != nil {
		return ret, err
	}
	if ret.AvgLap, err = timecodec.ParseLapTime(config.LapTime); err != nil {
		return ret, err
	}
	ret.FuelPerLap = config.FuelPerLap
	ret.TankVolume = config.TankVolume
	if !withTank {
		// the estimate does not depend on the tank
		ret.TankVolume = max(ret.TankVolume, ret.FuelPerLap)
	}
	if err = ret.Validate(); err != nil {
		return ret, err
	}
	return ret, nil
}

// ParseFuelOverrides parses values like "2=45.5" (stint number is 1-based)
func ParseFuelOverrides(args []string) ([]FuelOverride, error) {
	ret := make([]FuelOverride, 0, len(args))
	for _, arg := range args {
		stint, fuel, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: fuel override %q, use stint=fuel",
				racestints.ErrInvalidValue, arg)
		}
		no, err := strconv.Atoi(strings.TrimSpace(stint))
		if err != nil || no < 1 {
			return nil, fmt.Errorf("%w: stint number in %q", racestints.ErrInvalidValue, arg)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(fuel), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: fuel value in %q", racestints.ErrInvalidValue, arg)
		}
		ret = append(ret, FuelOverride{Idx: no - 1, Fuel: f})
	}
	return ret, nil
}
