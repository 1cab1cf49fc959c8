package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/viewkit/internal/logger"
)

// ProgramConfig holds configuration for running a UI program
type ProgramConfig struct {
	// ShutdownGrace bounds the model's OnShutdown
	ShutdownGrace time.Duration
	AltScreen     bool
	LogFile       string

	// Input and Output override the terminal
	Input  io.Reader
	Output io.Writer
}

// DefaultProgramConfig returns default configuration
func DefaultProgramConfig() ProgramConfig {
	return ProgramConfig{
		ShutdownGrace: 5 * time.Second,
		AltScreen:     true,
	}
}

// UIModel is a tea.Model run by a ProgramRunner
type UIModel interface {
	tea.Model
	// SetSession hands the model the session it may close
	SetSession(s *Session)
	// OnShutdown is called after the program has exited
	OnShutdown() error
}

// ProgramRunner manages the lifecycle of a Bubble Tea program with proper shutdown
type ProgramRunner struct {
	config  ProgramConfig
	session *Session
	program *tea.Program
	ready   chan struct{} // Closed once program is set
	done    chan struct{} // Closed when the program has exited
}

// NewProgramRunner creates a new program runner
func NewProgramRunner(config ProgramConfig) *ProgramRunner {
	return &ProgramRunner{
		config: config,
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run starts the UI program with the given model and blocks until it exits
// or ctx is cancelled
func (r *ProgramRunner) Run(ctx context.Context, model UIModel) error {
	defer close(r.done)

	r.session = NewSession(ctx)
	defer r.session.cancel()
	model.SetSession(r.session)

	opts := []tea.ProgramOption{tea.WithContext(r.session.Context())}
	if r.config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if r.config.Input != nil {
		opts = append(opts, tea.WithInput(r.config.Input))
	}

	switch {
	case r.config.Output != nil:
		opts = append(opts, tea.WithOutput(r.config.Output))
	case r.config.LogFile != "":
		f, err := os.OpenFile(r.config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		opts = append(opts, tea.WithOutput(f))
	}

	r.program = tea.NewProgram(model, opts...)
	close(r.ready)

	_, runErr := r.program.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && (ctx.Err() != nil || r.session.Closing()) {
		// Closing the session kills the program
		runErr = nil
	}

	r.shutdown(model)
	return runErr
}

// shutdown runs the model's OnShutdown within the grace period
func (r *ProgramRunner) shutdown(model UIModel) {
	done := make(chan error, 1)
	go func() {
		done <- model.OnShutdown()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Model shutdown error", "error", err)
		}
	case <-time.After(r.config.ShutdownGrace):
		logger.Warn("Model shutdown timed out", "grace", r.config.ShutdownGrace)
	}
}

// Send sends a message to the running program. It blocks until the program
// has been created and drops the message once it has exited.
func (r *ProgramRunner) Send(msg tea.Msg) {
	select {
	case <-r.ready:
	case <-r.done:
		return
	}
	r.program.Send(msg)
}

// Quit asks the program to exit
func (r *ProgramRunner) Quit() {
	select {
	case <-r.ready:
		r.program.Quit()
	case <-r.done:
	}
}

// Done returns a channel that's closed when the program exits
func (r *ProgramRunner) Done() <-chan struct{} {
	return r.done
}

// WaitReady blocks until the program is created or timeout expires
func (r *ProgramRunner) WaitReady(timeout time.Duration) bool {
	select {
	case <-r.ready:
		return true
	case <-time.After(timeout):
		return false
	}
}
