package view

import (
	"errors"
	"strings"

	"github.com/bnema/viewkit/native"
)

var (
	// ErrClosed is returned when operating on a destroyed view
	ErrClosed = errors.New("view is closed")
	// ErrNoHandler is returned when the constructor callback returns nil
	ErrNoHandler = errors.New("no handler returned for view")
)

// Handle is the lifecycle contract of a view. It is implemented by the
// native backend and by the simulated backend, and both behave the same for
// everything observable through this interface.
//
// Default size, min and max size, aspect ratio and resizability only shape
// the initial layout when set before Realize. Realize may be called once.
type Handle interface {
	// PostRedisplay requests an expose of the whole view. From within
	// event dispatch the expose arrives no earlier than the end of the
	// current dispatch cycle; otherwise no earlier than the next Update.
	PostRedisplay() Status
	// PostRedisplayRect is PostRedisplay limited to a region
	PostRedisplayRect(pos Coord, size Size) Status

	Frame() Rect
	SetFrame(frame Rect) Status
	SetDefaultSize(width, height int) Status
	SetMinSize(width, height int) Status
	SetMaxSize(width, height int) Status
	SetAspectRatio(minX, minY, maxX, maxY int) Status

	IsResizable() bool
	MakeResizable() Status
	IsIgnoringKeyRepeats() ViewHintBool
	SetIgnoreKeyRepeats(value ViewHintBool) Status
	RedBits() uint32
	GreenBits() uint32
	BlueBits() uint32
	AlphaBits() uint32
	DepthBits() uint32
	StencilBits() uint32
	Samples() uint32
	DoubleBuffer() bool
	SetDoubleBuffer(on bool) Status
	SwapInterval() ViewHintInt
	RefreshRate() ViewHintInt

	// SetWindowTitle panics if title contains a NUL byte
	SetWindowTitle(title string) Status

	// Realize creates the system window. It fails with BadConfiguration if
	// no default size was configured.
	Realize() Status
	// ShowWindow realizes the view first if needed, then shows it
	ShowWindow() Status
	HideWindow() Status
	IsVisible() bool

	SetCursor(c Cursor) Status

	// Update runs one iteration of event processing and returns Success if
	// at least one event was processed. A zero timeout never blocks.
	Update(timeout float64) Status

	// StartTimer starts or replaces a repeating timer with a period in
	// seconds
	StartTimer(id uintptr, period float64) Status
	// StopTimer returns Failure if no timer with that id is running
	StopTimer(id uintptr) Status

	// NativeWindow is the system window for host embedding, zero until
	// the view is realized
	NativeWindow() native.NativeWindow

	bind(h Handler)
	destroy()
}

// Options are fixed when a view is created
type Options struct {
	// Parent embeds the view into a host window
	Parent native.NativeWindow
	// Drawing selects the drawing context passed to OnExpose
	Drawing native.DrawingBackend
}

// Backend creates the handle a View owns
type Backend interface {
	Name() string
	Open(opts Options) (Handle, error)
}

// checkTitle enforces that titles can be passed to C-string based window
// systems unchanged
func checkTitle(title string) {
	if strings.IndexByte(title, 0) >= 0 {
		panic("view: window title must not contain NUL bytes")
	}
}
