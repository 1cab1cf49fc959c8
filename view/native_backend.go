package view

import (
	"fmt"

	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native"
)

type nativeBackend struct {
	toolkit native.Toolkit
}

// Native returns a Backend that drives views through a native toolkit
func Native(tk native.Toolkit) Backend {
	return nativeBackend{toolkit: tk}
}

func (b nativeBackend) Name() string {
	return b.toolkit.Name()
}

// Open creates a world and a view inside it
func (b nativeBackend) Open(opts Options) (Handle, error) {
	world, err := b.toolkit.NewWorld(native.WorldProgram)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s world: %w", b.toolkit.Name(), err)
	}

	nv, err := world.NewView()
	if err != nil {
		world.Free()
		return nil, fmt.Errorf("failed to create %s view: %w", b.toolkit.Name(), err)
	}

	if opts.Parent != 0 {
		if st := StatusFromNative(nv.SetParentWindow(opts.Parent)); st != Success {
			nv.Free()
			world.Free()
			return nil, fmt.Errorf("failed to set parent window: %w", st)
		}
	}
	if st := StatusFromNative(nv.SetDrawingBackend(opts.Drawing)); st != Success {
		nv.Free()
		world.Free()
		return nil, fmt.Errorf("failed to set drawing backend: %w", st)
	}

	h := &nativeHandle{world: world, view: nv}
	h.viewHints = viewHints{store: h}
	logger.Debugf("view: opened %s view", b.toolkit.Name())
	return h, nil
}

// nativeHandle implements Handle on top of a native view. It keeps the
// lifecycle state itself so the ordering rules hold whatever the toolkit
// does.
type nativeHandle struct {
	viewHints

	world native.World
	view  native.View

	defaultW int
	defaultH int
	realized bool
	closed   bool
}

func (h *nativeHandle) getHint(hint native.Hint) int32 {
	if h.closed {
		return native.DontCare
	}
	return h.view.GetHint(hint)
}

func (h *nativeHandle) setHint(hint native.Hint, v int32) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.SetHint(hint, v))
}

func (h *nativeHandle) PostRedisplay() Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.PostRedisplay())
}

func (h *nativeHandle) PostRedisplayRect(pos Coord, size Size) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.PostRedisplayRect(Rect{Pos: pos, Size: size}.Native()))
}

func (h *nativeHandle) Frame() Rect {
	if h.closed {
		return Rect{}
	}
	return RectFromNative(h.view.Frame())
}

func (h *nativeHandle) SetFrame(frame Rect) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.SetFrame(frame.Native()))
}

func (h *nativeHandle) SetDefaultSize(width, height int) Status {
	if h.closed {
		return Failure
	}
	st := StatusFromNative(h.view.SetDefaultSize(width, height))
	if st == Success {
		h.defaultW, h.defaultH = width, height
	}
	return st
}

func (h *nativeHandle) SetMinSize(width, height int) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.SetMinSize(width, height))
}

func (h *nativeHandle) SetMaxSize(width, height int) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.SetMaxSize(width, height))
}

func (h *nativeHandle) SetAspectRatio(minX, minY, maxX, maxY int) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.SetAspectRatio(minX, minY, maxX, maxY))
}

func (h *nativeHandle) SetWindowTitle(title string) Status {
	checkTitle(title)
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.SetWindowTitle(title))
}

func (h *nativeHandle) Realize() Status {
	if h.closed {
		return Failure
	}
	if h.realized {
		logger.Warn("view: realize called on an already realized view")
		return Failure
	}
	if h.defaultW == 0 || h.defaultH == 0 {
		return BadConfiguration
	}

	st := StatusFromNative(h.view.Realize())
	if st != Success {
		logger.Debugf("view: realize failed: %s", st)
		return st
	}
	h.realized = true
	logger.Debug("view: realized", "window", h.view.NativeWindow())
	return Success
}

func (h *nativeHandle) ShowWindow() Status {
	if h.closed {
		return Failure
	}
	if !h.realized {
		if st := h.Realize(); st != Success {
			return st
		}
	}
	return StatusFromNative(h.view.Show())
}

func (h *nativeHandle) HideWindow() Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.Hide())
}

func (h *nativeHandle) IsVisible() bool {
	return !h.closed && h.view.Visible()
}

func (h *nativeHandle) SetCursor(c Cursor) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.SetCursor(c.native()))
}

func (h *nativeHandle) Update(timeout float64) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.world.Update(timeout))
}

func (h *nativeHandle) StartTimer(id uintptr, period float64) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.StartTimer(id, period))
}

func (h *nativeHandle) StopTimer(id uintptr) Status {
	if h.closed {
		return Failure
	}
	return StatusFromNative(h.view.StopTimer(id))
}

func (h *nativeHandle) NativeWindow() native.NativeWindow {
	if h.closed {
		return 0
	}
	return h.view.NativeWindow()
}

// bind associates the handler with the native view so dispatchNative can
// reach it
func (h *nativeHandle) bind(app Handler) {
	h.view.SetHandle(app)
	h.view.SetEventFunc(dispatchNative)
}

// destroy releases the association, then the view, then the world
func (h *nativeHandle) destroy() {
	if h.closed {
		return
	}
	h.closed = true

	h.view.SetHandle(nil)
	h.view.Free()
	logger.Debug("view: native view freed")
	h.world.Free()
	logger.Debug("view: native world freed")
}
