package ui

import (
	"context"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// Session is the lifetime of one monitor program. Closing it cancels its
// context, which stops the program and anything started from Context.
type Session struct {
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
	closing atomic.Bool
}

// NewSession derives a session from parent
func NewSession(parent context.Context) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the session closes or parent is done
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close marks the session closing and cancels it. Only the first call
// returns tea.Quit.
func (s *Session) Close() tea.Cmd {
	var cmd tea.Cmd
	s.once.Do(func() {
		s.closing.Store(true)
		s.cancel()
		cmd = tea.Quit
	})
	return cmd
}

// Closing reports whether Close was called
func (s *Session) Closing() bool {
	return s.closing.Load()
}
