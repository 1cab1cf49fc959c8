package cmd

import (
	"fmt"

	"github.com/bnema/viewkit/internal/config"
	"github.com/bnema/viewkit/internal/demo"
	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native/x11"
	"github.com/bnema/viewkit/view"
)

// newBackend returns the view backend named in cfg
func newBackend(cfg config.BackendConfig) (view.Backend, error) {
	switch cfg.Name {
	case config.BackendX11, "":
		return view.Native(x11.New(cfg.Display)), nil
	case config.BackendSim:
		return view.NewSimBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Name)
	}
}

// openView creates the demo app on the configured backend and applies the
// view section of cfg. The view is not shown yet.
func openView(cfg config.Config, opts ...demo.Option) (*view.View[*demo.App], error) {
	drawing, err := demo.DrawingBackend(cfg.Backend.Drawing)
	if err != nil {
		return nil, err
	}
	backend, err := newBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	v, err := view.New(backend, view.Options{Drawing: drawing}, demo.Constructor(opts...))
	if err != nil {
		return nil, err
	}
	if err := demo.ApplyView(v.Handle(), cfg.View); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to configure view: %w", err)
	}
	return v, nil
}

// showView shows the view and starts the configured timers
func showView(v *view.View[*demo.App], cfg config.Config) error {
	h := v.Handle()
	if err := h.ShowWindow().Err(); err != nil {
		return fmt.Errorf("failed to show view: %w", err)
	}
	// The simulated window system never configures on its own
	if sim, ok := h.(*view.SimHandle); ok {
		sim.ForceResize(sim.Frame().Size)
	}
	if err := demo.StartTimers(h, cfg.Loop.Timers); err != nil {
		return err
	}
	logger.Debug("View shown", "backend", v.Backend(), "window", v.NativeWindow())
	return nil
}

// runOptions derives the update loop settings from cfg. The simulated
// backend has no event source, so its loop ends once the queue is empty.
func runOptions(cfg config.Config) demo.RunOptions {
	return demo.RunOptions{
		Timeout:      cfg.Loop.UpdateTimeout,
		StopWhenIdle: cfg.Backend.Name == config.BackendSim,
	}
}
