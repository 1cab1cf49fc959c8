package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/bnema/viewkit/internal/config"
	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/view"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage viewkit configuration",
	Long:  `Manage viewkit configuration including the view, backend and timers.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

		fmt.Fprintf(w, "Config file:\t%s\n", config.GetConfigPath())

		fmt.Fprintln(w, "\n[view]")
		fmt.Fprintf(w, "  Title:\t%s\n", cfg.View.Title)
		fmt.Fprintf(w, "  Size:\t%dx%d\n", cfg.View.Width, cfg.View.Height)
		fmt.Fprintf(w, "  Min Size:\t%dx%d\n", cfg.View.MinWidth, cfg.View.MinHeight)
		fmt.Fprintf(w, "  Max Size:\t%dx%d\n", cfg.View.MaxWidth, cfg.View.MaxHeight)
		a := cfg.View.Aspect
		fmt.Fprintf(w, "  Aspect:\t%d:%d - %d:%d\n", a.MinX, a.MinY, a.MaxX, a.MaxY)
		fmt.Fprintf(w, "  Resizable:\t%v\n", cfg.View.Resizable)
		fmt.Fprintf(w, "  Ignore Key Repeat:\t%v\n", cfg.View.IgnoreKeyRepeat)
		fmt.Fprintf(w, "  Cursor:\t%s\n", cfg.View.Cursor)
		fmt.Fprintf(w, "  Double Buffer:\t%v\n", cfg.View.DoubleBuffer)

		fmt.Fprintln(w, "\n[backend]")
		fmt.Fprintf(w, "  Name:\t%s\n", cfg.Backend.Name)
		display := cfg.Backend.Display
		if display == "" {
			display = "$DISPLAY"
		}
		fmt.Fprintf(w, "  Display:\t%s\n", display)
		fmt.Fprintf(w, "  Drawing:\t%s\n", cfg.Backend.Drawing)

		fmt.Fprintln(w, "\n[loop]")
		fmt.Fprintf(w, "  Update Timeout:\t%g seconds\n", cfg.Loop.UpdateTimeout)
		for _, t := range cfg.Loop.Timers {
			fmt.Fprintf(w, "  Timer %d:\tevery %g seconds\n", t.ID, t.Period)
		}

		fmt.Fprintln(w, "\n[trace]")
		fmt.Fprintf(w, "  Path:\t%s\n", cfg.Trace.Path)

		fmt.Fprintln(w, "\n[logging]")
		fmt.Fprintf(w, "  Log Level:\t%s\n", cfg.Logging.LogLevel)

		return w.Flush()
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save current configuration to file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration saved to: %s", config.GetConfigPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long: `Write a configuration file. On a terminal a short form asks for the
window title, size and backend; otherwise the defaults are written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			logger.Infof("Configuration file already exists at: %s", configPath)

			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		useDefaults, _ := cmd.Flags().GetBool("defaults")
		if !useDefaults && isTerminal(os.Stdin) {
			if err := runConfigForm(); err != nil {
				return err
			}
		}

		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		logger.Info("You can now:")
		logger.Info("  - Edit the configuration file directly")
		logger.Info("  - Use 'viewkit config show' to view current settings")
		logger.Info("  - Use 'viewkit run' to open the view")
		return nil
	},
}

// runConfigForm asks for the common settings and applies them
func runConfigForm() error {
	cfg := config.Get()
	viewCfg := cfg.View
	backendCfg := cfg.Backend

	width := strconv.Itoa(viewCfg.Width)
	height := strconv.Itoa(viewCfg.Height)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Window title").
				Value(&viewCfg.Title),
			huh.NewInput().
				Title("Width").
				Validate(validateSize).
				Value(&width),
			huh.NewInput().
				Title("Height").
				Validate(validateSize).
				Value(&height),
			huh.NewConfirm().
				Title("Resizable").
				Value(&viewCfg.Resizable),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Backend").
				Description("x11 opens a real window, sim runs without a display").
				Options(huh.NewOptions(config.BackendX11, config.BackendSim)...).
				Value(&backendCfg.Name),
			huh.NewSelect[string]().
				Title("Drawing").
				Options(huh.NewOptions(config.DrawingImage, config.DrawingStub)...).
				Value(&backendCfg.Drawing),
			huh.NewSelect[string]().
				Title("Cursor").
				Options(huh.NewOptions(cursorNames()...)...).
				Value(&viewCfg.Cursor),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("configuration cancelled: %w", err)
	}

	viewCfg.Width, _ = strconv.Atoi(width)
	viewCfg.Height, _ = strconv.Atoi(height)

	if err := config.UpdateView(viewCfg); err != nil {
		return err
	}
	return config.UpdateBackend(backendCfg)
}

func validateSize(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number of pixels")
	}
	return nil
}

func cursorNames() []string {
	names := make([]string, 0, 8)
	for c := view.CursorArrow; ; c++ {
		name := c.String()
		if _, ok := view.ParseCursor(name); !ok {
			break
		}
		names = append(names, name)
	}
	return names
}

var configTimerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Manage the timers started with the view",
}

var configTimerAddCmd = &cobra.Command{
	Use:   "add <id> <period>",
	Short: "Add or replace a timer, period in seconds",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timer id %q", args[0])
		}
		period, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid period %q", args[1])
		}

		if err := config.AddTimer(config.TimerConfig{ID: id, Period: period}); err != nil {
			return err
		}
		logger.Infof("Added timer %d every %g seconds", id, period)
		return nil
	},
}

var configTimerRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a timer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timer id %q", args[0])
		}
		if err := config.RemoveTimer(id); err != nil {
			return err
		}
		logger.Infof("Removed timer %d", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configTimerCmd)

	configTimerCmd.AddCommand(configTimerAddCmd)
	configTimerCmd.AddCommand(configTimerRemoveCmd)

	configInitCmd.Flags().Bool("force", false, "Force overwrite existing configuration")
	configInitCmd.Flags().Bool("defaults", false, "Write defaults without asking")
}
