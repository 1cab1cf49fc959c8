package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/viewkit/internal/config"
	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native"
	"github.com/bnema/viewkit/view"
)

// ApplyView configures h from cfg. It must run before the view is shown;
// every rejected setting is reported in the returned error.
func ApplyView(h view.Handle, cfg config.ViewConfig) error {
	var errs []error
	check := func(what string, st view.Status) {
		if err := st.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
	}

	check("default size", h.SetDefaultSize(cfg.Width, cfg.Height))
	if cfg.MinWidth > 0 || cfg.MinHeight > 0 {
		check("min size", h.SetMinSize(cfg.MinWidth, cfg.MinHeight))
	}
	if cfg.MaxWidth > 0 || cfg.MaxHeight > 0 {
		check("max size", h.SetMaxSize(cfg.MaxWidth, cfg.MaxHeight))
	}
	if a := cfg.Aspect; a != (config.AspectConfig{}) {
		check("aspect ratio", h.SetAspectRatio(a.MinX, a.MinY, a.MaxX, a.MaxY))
	}
	if cfg.Resizable {
		check("resizable", h.MakeResizable())
	}

	repeats := view.HintFalse
	if cfg.IgnoreKeyRepeat {
		repeats = view.HintTrue
	}
	check("ignore key repeat", h.SetIgnoreKeyRepeats(repeats))
	check("double buffer", h.SetDoubleBuffer(cfg.DoubleBuffer))
	check("title", h.SetWindowTitle(cfg.Title))

	if cfg.Cursor != "" {
		if c, ok := view.ParseCursor(cfg.Cursor); ok {
			check("cursor", h.SetCursor(c))
		} else {
			errs = append(errs, fmt.Errorf("cursor: unknown cursor %q", cfg.Cursor))
		}
	}

	return errors.Join(errs...)
}

// DrawingBackend maps a configured drawing backend name
func DrawingBackend(name string) (native.DrawingBackend, error) {
	switch name {
	case config.DrawingImage, "":
		return native.ImageBackend, nil
	case config.DrawingStub:
		return native.StubBackend, nil
	default:
		return 0, fmt.Errorf("unknown drawing backend %q", name)
	}
}

// StartTimers starts every configured timer on h
func StartTimers(h view.Handle, timers []config.TimerConfig) error {
	for _, t := range timers {
		if err := h.StartTimer(uintptr(t.ID), t.Period).Err(); err != nil {
			return fmt.Errorf("failed to start timer %d: %w", t.ID, err)
		}
		logger.Debug("Timer started", "id", t.ID, "period", t.Period)
	}
	return nil
}

// RunOptions control Run
type RunOptions struct {
	// Timeout is passed to every Update, in seconds
	Timeout float64
	// StopWhenIdle ends the loop the first time Update processes nothing
	StopWhenIdle bool
}

// maxWait bounds a single Update while a cancellable context is watched
const maxWait = 0.25

// Run updates v until the app closes, ctx is done or, with StopWhenIdle,
// nothing is left to process
func Run(ctx context.Context, v *view.View[*App], opts RunOptions) error {
	timeout := opts.Timeout
	if ctx.Done() != nil && (timeout < 0 || timeout > maxWait) {
		timeout = maxWait
	}

	for {
		if v.App().Closed() {
			logger.Debug("App closed, leaving update loop")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		processed, err := v.Update(timeout)
		if err != nil {
			return err
		}
		if !processed && opts.StopWhenIdle {
			return nil
		}
	}
}
