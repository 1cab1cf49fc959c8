package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewSession(ctx)
}

func TestSessionClose(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.Closing())
	assert.NoError(t, s.Context().Err())

	cmd := s.Close()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, s.Closing())
	assert.ErrorIs(t, s.Context().Err(), context.Canceled)

	assert.Nil(t, s.Close(), "only the first close quits")
}

func TestSessionFollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := NewSession(parent)

	cancel()
	<-s.Context().Done()
	assert.False(t, s.Closing(), "a cancelled parent is not a close")
}
