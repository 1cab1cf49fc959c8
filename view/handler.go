package view

// DrawContext is the drawing context handed to OnExpose. Its concrete type
// depends on the toolkit's drawing backend (a draw.Image for the X11 image
// backend, nil for stub backends). It must not be retained after OnExpose
// returns.
type DrawContext any

// Handler is the application logic bound to a View.
//
// Pointer and keyboard events arrive through OnEvent. Expose, resize and
// close requests have dedicated methods that report no status back to the
// toolkit. Focus and timer events are delivered only if the handler also
// implements FocusHandler or TimerHandler.
type Handler interface {
	// OnEvent handles key, button, motion, scroll and crossing events
	OnEvent(ev Event) Status

	// OnExpose redraws area using dc
	OnExpose(area ExposeArea, dc DrawContext)

	// OnResize is called with the new view size. The size may be negative
	// while a resize is in flight; use Size.Clamp before laying out.
	OnResize(size Size)

	// OnCloseRequest is called when the window system asks the view to
	// close. The application should stop updating after this call.
	OnCloseRequest()

	// ViewHandle returns the handle this handler was constructed with
	ViewHandle() Handle
}

// FocusHandler receives keyboard focus changes
type FocusHandler interface {
	OnFocusIn() Status
	OnFocusOut() Status
}

// TimerHandler receives ticks of timers started with Handle.StartTimer
type TimerHandler interface {
	OnTimer(id uintptr) Status
}
