package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/viewkit/internal/config"
	"github.com/bnema/viewkit/internal/logger"
)

var (
	configPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "viewkit",
		Short: "viewkit - native views with a testable lifecycle",
		Long: `viewkit opens a native view, routes window system events to an
application handler and records what it receives.

Views run on X11 or on a simulated backend that behaves the same for
everything observable, which makes recorded traces replayable anywhere.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

// Execute runs the root command
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $HOME/.config/viewkit/viewkit.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, fatal")
}

// loadConfig reads the configuration and applies the log level. The flag
// wins over the config file, which wins over LOG_LEVEL.
func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		config.SetConfigPath(configPath)
	}
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := config.Get().Logging.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if level != "" && !logger.SetLevel(level) {
		return fmt.Errorf("invalid log level %q", level)
	}
	return nil
}
