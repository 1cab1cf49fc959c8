package native

// EventFunc receives every event a toolkit delivers to a view. The record is
// only valid for the duration of the call.
type EventFunc func(v View, ev *Event) Status

// Toolkit opens worlds. A world is the session scope every view lives in and
// must outlive all of its views.
type Toolkit interface {
	Name() string
	NewWorld(t WorldType) (World, error)
}

// World owns the connection to the window system and pumps its events.
type World interface {
	// NewView creates an unrealized view within this world.
	NewView() (View, error)

	// Update runs one iteration of event processing. A zero timeout polls, a
	// positive timeout waits up to that many seconds, and a negative timeout
	// waits until an event arrives. It returns StatusSuccess if any event was
	// processed and StatusFailure otherwise.
	Update(timeout float64) Status

	// Free releases the world. All views must have been freed first.
	Free()
}

// View is a single native view. Configuration that affects the initial
// layout must be set before Realize.
type View interface {
	World() World

	SetHandle(h any)
	Handle() any

	SetEventFunc(f EventFunc) Status
	SetDrawingBackend(b DrawingBackend) Status
	SetParentWindow(w NativeWindow) Status

	SetHint(h Hint, value int32) Status
	GetHint(h Hint) int32

	Frame() Rect
	SetFrame(r Rect) Status
	SetDefaultSize(width, height int) Status
	SetMinSize(width, height int) Status
	SetMaxSize(width, height int) Status
	SetAspectRatio(minX, minY, maxX, maxY int) Status
	SetWindowTitle(title string) Status

	Realize() Status
	Show() Status
	Hide() Status
	Visible() bool

	SetCursor(c Cursor) Status
	PostRedisplay() Status
	PostRedisplayRect(r Rect) Status

	StartTimer(id uintptr, period float64) Status
	StopTimer(id uintptr) Status

	// NativeWindow is zero until the view is realized.
	NativeWindow() NativeWindow

	// Context is the drawing context, valid only while an expose is being
	// handled. It is nil for the stub drawing backend.
	Context() any

	// Free destroys the view. The world it was created in stays valid.
	Free()
}
