// Package config wires viper and the environment onto the engine's
// configuration surface.
package config

import (
	"fmt"
	"strings"

	"benchtune/pkg/bench"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("benchtune")
	}

	viper.SetEnvPrefix("BENCHTUNE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Defaults mirror bench.DefaultParameters so flags, env and file all
	// override the same baseline.
	viper.SetDefault("seconds", 5.0)
	viper.SetDefault("samples", 300)
	viper.SetDefault("evals", 1)
	viper.SetDefault("gctrial", true)
	viper.SetDefault("gcsample", false)
	viper.SetDefault("tolerance", 0.05)
	viper.SetDefault("verbose", false)
	viper.SetDefault("metrics_port", 0) // disabled unless set
	viper.SetDefault("params_cache", ".benchtune/params.json")

	// If a config file is found, read it in; a missing file is not an error.
	_ = viper.ReadInConfig()
}

// Params builds Parameters from the resolved viper state. Invalid values
// surface the engine's own configuration error.
func Params() (bench.Parameters, error) {
	return bench.NewParameters(
		bench.WithSeconds(viper.GetFloat64("seconds")),
		bench.WithSamples(viper.GetInt("samples")),
		bench.WithEvals(viper.GetInt("evals")),
		bench.WithGCTrial(viper.GetBool("gctrial")),
		bench.WithGCSample(viper.GetBool("gcsample")),
		bench.WithParamTolerance(viper.GetFloat64("tolerance")),
	)
}

// Definition is one suite entry from the config file:
//
//	benchmarks:
//	  - name: startup
//	    command: ["./myprog", "--version"]
type Definition struct {
	Name    string   `mapstructure:"name"`
	Command []string `mapstructure:"command"`
}

// Suite reads the benchmark definitions from the config file.
func Suite() ([]Definition, error) {
	var defs []Definition
	if err := viper.UnmarshalKey("benchmarks", &defs); err != nil {
		return nil, fmt.Errorf("failed to parse benchmarks config: %w", err)
	}
	for _, d := range defs {
		if d.Name == "" || len(d.Command) == 0 {
			return nil, fmt.Errorf("benchmark definition needs both name and command, got name=%q", d.Name)
		}
	}
	return defs, nil
}
