package cli

import (
	"github.com/grovetools/sweep/config"
	"github.com/grovetools/sweep/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewStandardCommand creates a new command with standard sweep flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging (equivalent to --log-level info)")
	cmd.PersistentFlags().StringP("log-level", "l", "", "Log level: debug, info, warn, error (default warn)")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to sweep.yml config file")

	return cmd
}

// LoadConfig resolves the configuration for a command: the --config flag if
// set, otherwise the first sweep.yml found, otherwise empty defaults.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.LoadDefault()
}

// GetLogger creates a logger based on command flags and configuration.
// Flags take precedence over the config file.
func GetLogger(cmd *cobra.Command, cfg *config.Config) *logrus.Entry {
	var logCfg logging.Config
	if cfg != nil {
		// A dedicated logging section overrides the top-level log_level.
		logCfg.Level = cfg.LogLevel
		_ = cfg.UnmarshalExtension("logging", &logCfg)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		logCfg.Level = level
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logCfg.Level = "info"
	}

	return logging.NewLogger("sweep", logCfg)
}
