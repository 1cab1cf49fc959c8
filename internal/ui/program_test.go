package ui

import (
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProgramConfig() ProgramConfig {
	cfg := DefaultProgramConfig()
	cfg.AltScreen = false
	cfg.Input = strings.NewReader("")
	cfg.Output = io.Discard
	return cfg
}

func runProgram(t *testing.T, ctx context.Context, r *ProgramRunner, m UIModel) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx, m) }()
	require.True(t, r.WaitReady(2*time.Second), "program never started")
	return errCh
}

func waitErr(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("program did not exit")
		return nil
	}
}

func TestProgramRunnerQuitKey(t *testing.T) {
	var stopped atomic.Bool
	m := NewWatchModel("viewkit")
	m.OnQuit = func() { stopped.Store(true) }

	r := NewProgramRunner(testProgramConfig())
	errCh := runProgram(t, context.Background(), r, m)

	r.Send(ActivityMsg{Activity: activity("key-press", "'a'")})
	r.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NoError(t, waitErr(t, errCh))
	assert.True(t, stopped.Load())
	<-r.Done()

	// Sending after exit does not block
	r.Send(ActivityMsg{})
	r.Quit()
}

func TestProgramRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewProgramRunner(testProgramConfig())
	errCh := runProgram(t, ctx, r, NewWatchModel("viewkit"))

	cancel()
	assert.NoError(t, waitErr(t, errCh))
}

func TestProgramRunnerLogFileError(t *testing.T) {
	cfg := testProgramConfig()
	cfg.Output = nil
	cfg.LogFile = t.TempDir() + "/missing/ui.log"

	err := NewProgramRunner(cfg).Run(context.Background(), NewWatchModel("viewkit"))
	assert.ErrorContains(t, err, "failed to open log file")
}
