package view

import (
	"fmt"
	"reflect"

	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native"
)

// View owns a handle and the application handler bound to it. Closing the
// View destroys the handle; the handler is never used afterwards.
type View[T Handler] struct {
	handle  Handle
	app     T
	backend string
	closed  bool
}

// New opens a view on backend b and binds the handler returned by newApp to
// it. newApp receives the handle before any event can be delivered and must
// return a non-nil handler, otherwise the view is destroyed and ErrNoHandler
// is returned.
//
// New views ignore key repeats unless the application changes the hint.
func New[T Handler](b Backend, opts Options, newApp func(Handle) T) (*View[T], error) {
	h, err := b.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open view: %w", err)
	}

	app := newApp(h)
	if isNil(app) {
		h.destroy()
		return nil, ErrNoHandler
	}

	h.bind(app)
	if st := h.SetIgnoreKeyRepeats(HintTrue); st != Success {
		logger.Debugf("view: %s backend rejected ignore-key-repeat hint: %s", b.Name(), st)
	}

	logger.Debug("view: created", "backend", b.Name())
	return &View[T]{handle: h, app: app, backend: b.Name()}, nil
}

// isNil reports whether a handler is a nil interface or a typed nil pointer
func isNil(h Handler) bool {
	if h == nil {
		return true
	}
	rv := reflect.ValueOf(h)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// App returns the bound handler
func (v *View[T]) App() T {
	return v.app
}

// Handle returns the view's handle. It is nil once the view is closed.
func (v *View[T]) Handle() Handle {
	if v.closed {
		return nil
	}
	return v.handle
}

// Backend returns the name of the backend the view was opened on
func (v *View[T]) Backend() string {
	return v.backend
}

// NativeWindow returns the system window, zero if not realized or closed
func (v *View[T]) NativeWindow() native.NativeWindow {
	if v.closed {
		return 0
	}
	return v.handle.NativeWindow()
}

// Update pumps events once and reports whether any event was processed. It
// returns ErrClosed once the view is closed and wraps any status other than
// Success or Failure.
func (v *View[T]) Update(timeout float64) (bool, error) {
	if v.closed {
		return false, ErrClosed
	}
	switch st := v.handle.Update(timeout); st {
	case Success:
		return true, nil
	case Failure:
		return false, nil
	default:
		return false, fmt.Errorf("update failed: %w", st)
	}
}

// Close releases the handler association, then the view, then its world.
// Calling Close more than once is a no-op.
func (v *View[T]) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.handle.destroy()
	logger.Debug("view: closed", "backend", v.backend)
	return nil
}
