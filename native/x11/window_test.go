package x11

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/viewkit/native"
)

func newTestWindow() (*world, *window) {
	w := &world{
		views:       make(map[xproto.Window]*window),
		refreshRate: 60,
	}
	return w, newWindow(w)
}

func TestRealizeChecks(t *testing.T) {
	_, v := newTestWindow()

	assert.Equal(t, native.StatusBadConfiguration, v.Realize(), "no default size")

	require.Equal(t, native.StatusSuccess, v.SetDefaultSize(32, 0))
	assert.Equal(t, native.StatusBadConfiguration, v.canRealize())

	require.Equal(t, native.StatusSuccess, v.SetDefaultSize(32, 16))
	assert.Equal(t, native.StatusSuccess, v.canRealize())

	v.Free()
	assert.Equal(t, native.StatusFailure, v.Realize(), "freed")
}

// A window is only visible to the world once adopted, so a Realize that
// fails part way leaves it ready for another attempt
func TestAdopt(t *testing.T) {
	w, v := newTestWindow()
	require.Equal(t, native.StatusSuccess, v.SetDefaultSize(32, 16))

	assert.Equal(t, native.StatusSuccess, v.canRealize())
	assert.Empty(t, w.views)
	assert.Zero(t, v.NativeWindow())
	assert.Equal(t, native.StatusFailure, v.Show(), "not realized")

	v.adopt(0x400001, nil)

	assert.Same(t, v, w.views[0x400001])
	assert.Equal(t, native.NativeWindow(0x400001), v.NativeWindow())
	assert.Equal(t, native.Rect{Width: 32, Height: 16}, v.Frame())
	assert.Equal(t, int32(60), v.GetHint(native.HintRefreshRate))
	assert.Nil(t, v.Context(), "stub drawing has no surface")

	assert.Equal(t, native.StatusFailure, v.canRealize())
	assert.Equal(t, native.StatusFailure, v.Realize(), "already realized")
}

func TestSetDefaultSizeLimits(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          native.Status
	}{
		{"largest", maxWindowSize, maxWindowSize, native.StatusSuccess},
		{"too wide", maxWindowSize + 1, 1, native.StatusBadParameter},
		{"too tall", 1, maxWindowSize + 1, native.StatusBadParameter},
		{"huge", 1 << 32, 1 << 32, native.StatusBadParameter},
		{"negative", -1, 5, native.StatusBadParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, v := newTestWindow()
			assert.Equal(t, tt.want, v.SetDefaultSize(tt.width, tt.height))
			if tt.want != native.StatusSuccess {
				assert.Equal(t, native.StatusBadConfiguration, v.canRealize(), "size left unset")
			}
		})
	}
}
