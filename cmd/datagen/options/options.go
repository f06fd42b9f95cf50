package options

import (
	"cityflow/datagen/config"

	"github.com/spf13/cobra"
)

// Env holds the values of the flags shared by every subcommand.
var Env = struct {
	ConfigFile string
	OutputDir  string
	Seed       int64
	Days       int
}{}

// SetFlags registers the shared flags as persistent flags of c.
func SetFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.StringVarP(&Env.ConfigFile, "config", "c", "", `Set the path to a TOML configuration file.
Environment variables override the file, flags override both.`)
	f.StringVar(&Env.OutputDir, "output-dir", config.DefaultOutputDir, "Directory the dataset files are written to.")
	f.Int64Var(&Env.Seed, "seed", 0, "Random seed, 0 seeds from the clock.")
	f.IntVar(&Env.Days, "days", config.DefaultDays, "Length of the generated time window in days.")
}

// LoadConfig reads the configuration and applies the flags the user set
// explicitly on cmd.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(Env.ConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = Env.OutputDir
	}
	if flags.Changed("seed") {
		cfg.Seed = Env.Seed
	}
	if flags.Changed("days") {
		cfg.Days = Env.Days
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
