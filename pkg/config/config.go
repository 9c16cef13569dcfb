package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	RaceDuration  string   // race duration (HH:MM)
	LapTime       string   // average lap time (MM:SS)
	TankVolume    float64  // fuel capacity of the car
	FuelPerLap    float64  // fuel consumption per lap
	FuelOverrides []string // per stint fuel overrides (stint=fuel)
	Output        string   // output format (table, yaml, json)
	LogLevel      string   // sets the log level (zap log level values)
	LogFormat     string   // text vs json
	LogFilter     string   // zapfilter rules applied to log output
)
