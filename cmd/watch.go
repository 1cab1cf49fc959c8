package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bnema/viewkit/internal/config"
	"github.com/bnema/viewkit/internal/demo"
	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the demo view and monitor its activity in the terminal",
	Long: `Open a view like 'viewkit run' and show everything it handles in a live
terminal monitor. When standard output is not a terminal, activity is
printed one line per event instead.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("backend", "", "Backend to use: x11 or sim (default from config)")
	watchCmd.Flags().Float64("timeout", 0, "Seconds each update may block (default from config)")
	watchCmd.Flags().Bool("plain", false, "Print plain lines even on a terminal")
	watchCmd.Flags().String("log-file", "", "Write logs here while the monitor is shown")
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	plain, _ := cmd.Flags().GetBool("plain")
	if plain || !isTerminal(out) {
		return watchPlain(ctx, cfg, out)
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	return watchTUI(ctx, cfg, logFile)
}

// watchPlain runs the view in the foreground and prints each activity
func watchPlain(ctx context.Context, cfg config.Config, out io.Writer) error {
	v, err := openView(cfg, demo.WithObserver(func(a demo.Activity) {
		fmt.Fprintln(out, ui.PlainActivityLine(a))
	}))
	if err != nil {
		return err
	}
	defer v.Close()

	if err := showView(v, cfg); err != nil {
		return err
	}
	if err := demo.Run(ctx, v, runOptions(cfg)); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printStats(out, v.App().Stats())
	return nil
}

// watchTUI runs the view on its own goroutine and the monitor on this one.
// Everything touching the view stays on the loop goroutine.
func watchTUI(ctx context.Context, cfg config.Config, logFile string) error {
	logOut := io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger.SetOutput(logOut)
	defer logger.SetOutput(os.Stderr)

	runner := ui.NewProgramRunner(ui.DefaultProgramConfig())
	model := ui.NewWatchModel(cfg.View.Title)

	loopCtx, cancelLoop := context.WithCancel(ctx)
	defer cancelLoop()
	model.OnQuit = cancelLoop

	loopDone := make(chan error, 1)
	go func() {
		err := watchLoop(loopCtx, cfg, runner)
		runner.Send(ui.LoopDoneMsg{Err: err})
		loopDone <- err
	}()

	uiErr := runner.Run(ctx, model)
	cancelLoop()
	loopErr := <-loopDone

	return errors.Join(uiErr, loopErr)
}

// watchLoop opens the view and forwards its activity to the monitor
func watchLoop(ctx context.Context, cfg config.Config, runner *ui.ProgramRunner) error {
	var app *demo.App
	v, err := openView(cfg, demo.WithObserver(func(a demo.Activity) {
		runner.Send(ui.ActivityMsg{Activity: a})
		if app != nil {
			runner.Send(ui.StatsMsg{Stats: app.Stats()})
		}
	}))
	if err != nil {
		return err
	}
	defer v.Close()
	app = v.App()

	if err := showView(v, cfg); err != nil {
		return err
	}
	runner.Send(ui.VisibleMsg(v.Handle().IsVisible()))

	err = demo.Run(ctx, v, runOptions(cfg))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
