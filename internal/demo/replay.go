package demo

import (
	"context"
	"fmt"

	"github.com/bnema/viewkit/internal/config"
	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native"
	"github.com/bnema/viewkit/view"
)

// Replay feeds recorded events through a simulated view configured from cfg
// and returns what the app saw
func Replay(ctx context.Context, events []view.Event, cfg config.ViewConfig, opts ...Option) (Stats, error) {
	backend := view.NewSimBackend()
	v, err := view.New(backend, view.Options{Drawing: native.StubBackend}, Constructor(opts...))
	if err != nil {
		return Stats{}, err
	}
	defer v.Close()

	sim := v.Handle().(*view.SimHandle)
	if err := ApplyView(sim, cfg); err != nil {
		return Stats{}, fmt.Errorf("failed to configure view: %w", err)
	}
	if err := sim.ShowWindow().Err(); err != nil {
		return Stats{}, fmt.Errorf("failed to show view: %w", err)
	}
	sim.ForceResize(sim.Frame().Size)

	for _, ev := range events {
		sim.Queue(ev)
	}
	logger.Debug("Replaying trace", "events", len(events))

	if err := Run(ctx, v, RunOptions{StopWhenIdle: true}); err != nil {
		return v.App().Stats(), err
	}
	if n := sim.Pending(); n > 0 {
		logger.Infof("App closed with %d events left in the trace", n)
	}
	return v.App().Stats(), nil
}
