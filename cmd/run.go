package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/viewkit/internal/config"
	"github.com/bnema/viewkit/internal/demo"
	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/internal/trace"
	"github.com/bnema/viewkit/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a view and run the demo application until it closes",
	Long: `Open a view on the configured backend and pump its events until the
window is closed, Escape or q is pressed, or the process is interrupted.

With --record every event the application receives is written to a trace
file that 'viewkit replay' can feed back through the simulated backend.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("backend", "", "Backend to use: x11 or sim (default from config)")
	runCmd.Flags().Float64("timeout", 0, "Seconds each update may block, negative blocks until an event (default from config)")
	runCmd.Flags().String("record", "", "Record received events to this trace file")
}

// effectiveConfig applies the flags shared by the view commands on top of
// the loaded configuration
func effectiveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := *config.Get()

	if cmd.Flags().Lookup("backend") != nil {
		if name, _ := cmd.Flags().GetString("backend"); name != "" {
			cfg.Backend.Name = name
		}
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		cfg.Loop.UpdateTimeout, _ = cmd.Flags().GetFloat64("timeout")
	}
	if f := cmd.Flags().Lookup("record"); f != nil && f.Changed {
		cfg.Trace.Path, _ = cmd.Flags().GetString("record")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	var opts []demo.Option
	var recorder *trace.Writer
	if cfg.Trace.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Trace.Path), 0755); err != nil {
			return fmt.Errorf("failed to create trace directory: %w", err)
		}
		f, err := os.Create(cfg.Trace.Path)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer f.Close()
		recorder = trace.NewWriter(f)
		opts = append(opts, demo.WithRecorder(recorder))
	}

	v, err := openView(cfg, opts...)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := showView(v, cfg); err != nil {
		return err
	}
	logger.Infof("View %q running on %s, press Escape or q in the window to close", cfg.View.Title, v.Backend())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := demo.Run(ctx, v, runOptions(cfg))
	if errors.Is(runErr, context.Canceled) {
		logger.Info("Interrupted")
		runErr = nil
	}

	if recorder != nil {
		if err := recorder.Flush(); err != nil {
			logger.Errorf("Failed to flush trace: %v", err)
		} else {
			logger.Infof("Recorded %d events to %s", recorder.Count(), cfg.Trace.Path)
		}
		if err := v.App().RecordErr(); err != nil {
			logger.Warnf("Recording stopped early: %v", err)
		}
	}

	printStats(cmd.OutOrStdout(), v.App().Stats())
	return runErr
}

// printStats writes a summary of what the app saw
func printStats(out io.Writer, stats demo.Stats) {
	kinds := make([]string, 0, len(stats.Events))
	total := 0
	for kind, n := range stats.Events {
		kinds = append(kinds, kind)
		total += n
	}
	sort.Strings(kinds)

	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("%d events", total)))
	for _, kind := range kinds {
		fmt.Fprintln(out, "  "+ui.FormatCount(fmt.Sprintf("%-15s", kind), stats.Events[kind]))
	}
	fmt.Fprintln(out, "  "+ui.FormatCount(fmt.Sprintf("%-15s", "exposes"), stats.Exposes))
	fmt.Fprintln(out, "  "+ui.FormatCount(fmt.Sprintf("%-15s", "resizes"), stats.Resizes))

	ids := make([]uintptr, 0, len(stats.Ticks))
	for id := range stats.Ticks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintln(out, "  "+ui.FormatCount(fmt.Sprintf("%-15s", fmt.Sprintf("timer %d", id)), stats.Ticks[id]))
	}

	fmt.Fprintln(out, ui.FormatResult(stats.Closed, fmt.Sprintf("final size %.0fx%.0f", stats.Size.W, stats.Size.H), closedMessage(stats.Closed)))
}

func closedMessage(closed bool) string {
	if closed {
		return "closed"
	}
	return "still open"
}
