package x11

import (
	"image"
	"image/draw"
	"math"
	"time"

	"github.com/jezek/xgb/xproto"

	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native"
)

const eventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange

// maxWindowSize is the largest width or height the protocol can carry
const maxWindowSize = math.MaxUint16

type timer struct {
	period time.Duration
	next   time.Time
}

// window is an X11 view. It has no system window until Realize.
type window struct {
	world *world
	id    xproto.Window

	handle    any
	eventFunc native.EventFunc
	drawing   native.DrawingBackend
	parent    xproto.Window

	hints  [native.NumHints]int32
	frame  native.Rect
	size   sizeHints
	title  string
	cursor native.Cursor

	visible  bool
	exposing bool
	freed    bool

	timers        map[uintptr]*timer
	pendingExpose image.Rectangle
	surface       *surface
}

func newWindow(w *world) *window {
	return &window{
		world:  w,
		hints:  native.DefaultHints(),
		timers: make(map[uintptr]*timer),
	}
}

func (v *window) World() native.World { return v.world }

func (v *window) SetHandle(h any) { v.handle = h }
func (v *window) Handle() any     { return v.handle }

func (v *window) SetEventFunc(f native.EventFunc) native.Status {
	v.eventFunc = f
	return native.StatusSuccess
}

func (v *window) SetDrawingBackend(b native.DrawingBackend) native.Status {
	if v.id != 0 {
		return native.StatusFailure
	}
	switch b {
	case native.StubBackend, native.ImageBackend:
		v.drawing = b
		return native.StatusSuccess
	default:
		return native.StatusUnsupportedType
	}
}

func (v *window) SetParentWindow(p native.NativeWindow) native.Status {
	if v.id != 0 {
		return native.StatusFailure
	}
	v.parent = xproto.Window(p)
	return native.StatusSuccess
}

func (v *window) SetHint(h native.Hint, value int32) native.Status {
	if h >= native.NumHints {
		return native.StatusBadParameter
	}
	v.hints[h] = value
	if h == native.HintResizable {
		v.size.resizable = value == native.True
		v.updateSizeHints()
	}
	return native.StatusSuccess
}

func (v *window) GetHint(h native.Hint) int32 {
	if h >= native.NumHints {
		return native.DontCare
	}
	return v.hints[h]
}

func (v *window) Frame() native.Rect { return v.frame }

func (v *window) SetFrame(r native.Rect) native.Status {
	if r.Width < 0 || r.Height < 0 {
		return native.StatusBadParameter
	}
	v.frame = r
	if v.id == 0 {
		return native.StatusSuccess
	}
	xproto.ConfigureWindow(v.world.conn, v.id,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(r.X)), uint32(int32(r.Y)), uint32(r.Width), uint32(r.Height)})
	return native.StatusSuccess
}

func (v *window) SetDefaultSize(width, height int) native.Status {
	if width < 0 || height < 0 || width > maxWindowSize || height > maxWindowSize {
		return native.StatusBadParameter
	}
	v.size.width, v.size.height = width, height
	v.updateSizeHints()
	return native.StatusSuccess
}

func (v *window) SetMinSize(width, height int) native.Status {
	if width < 0 || height < 0 {
		return native.StatusBadParameter
	}
	v.size.minWidth, v.size.minHeight = width, height
	v.updateSizeHints()
	return native.StatusSuccess
}

func (v *window) SetMaxSize(width, height int) native.Status {
	if width < 0 || height < 0 {
		return native.StatusBadParameter
	}
	v.size.maxWidth, v.size.maxHeight = width, height
	v.updateSizeHints()
	return native.StatusSuccess
}

func (v *window) SetAspectRatio(minX, minY, maxX, maxY int) native.Status {
	if minX < 0 || minY < 0 || maxX < 0 || maxY < 0 {
		return native.StatusBadParameter
	}
	v.size.minAspectX, v.size.minAspectY = minX, minY
	v.size.maxAspectX, v.size.maxAspectY = maxX, maxY
	v.updateSizeHints()
	return native.StatusSuccess
}

func (v *window) SetWindowTitle(title string) native.Status {
	v.title = title
	if v.id != 0 {
		v.applyTitle()
	}
	return native.StatusSuccess
}

func (v *window) updateSizeHints() {
	if v.id == 0 {
		return
	}
	data := v.size.encode()
	xproto.ChangeProperty(v.world.conn, xproto.PropModeReplace, v.id,
		xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 32, uint32(len(data)/4), data)
}

func (v *window) applyTitle() {
	conn := v.world.conn
	xproto.ChangeProperty(conn, xproto.PropModeReplace, v.id,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(v.title)), []byte(v.title))
	xproto.ChangeProperty(conn, xproto.PropModeReplace, v.id,
		v.world.atoms.netWMName, v.world.atoms.utf8String, 8, uint32(len(v.title)), []byte(v.title))
}

// Realize creates the system window with the configured default size. The
// window is published to the world only once every step has succeeded, so a
// failed Realize can be retried.
func (v *window) Realize() native.Status {
	if st := v.canRealize(); st != native.StatusSuccess {
		return st
	}

	w := v.world
	id, err := xproto.NewWindowId(w.conn)
	if err != nil {
		logger.Errorf("x11: failed to allocate window id: %v", err)
		return native.StatusRealizeFailed
	}

	parent := w.screen.Root
	if v.parent != 0 {
		parent = v.parent
	}

	err = xproto.CreateWindowChecked(w.conn, w.screen.RootDepth, id, parent,
		int16(v.frame.X), int16(v.frame.Y), uint16(v.size.width), uint16(v.size.height), 0,
		xproto.WindowClassInputOutput, w.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{w.screen.BlackPixel, eventMask}).Check()
	if err != nil {
		logger.Errorf("x11: failed to create window: %v", err)
		return native.StatusRealizeFailed
	}

	var surf *surface
	if v.drawing == native.ImageBackend {
		var st native.Status
		if surf, st = v.createSurface(id); st != native.StatusSuccess {
			xproto.DestroyWindow(w.conn, id)
			return st
		}
	}
	v.adopt(id, surf)

	protocols := cardinals(uint32(w.atoms.wmDelete))
	xproto.ChangeProperty(w.conn, xproto.PropModeReplace, id,
		w.atoms.wmProtocols, xproto.AtomAtom, 32, 1, protocols)
	v.updateSizeHints()
	if v.title != "" {
		v.applyTitle()
	}
	if v.cursor != native.CursorArrow {
		v.applyCursor()
	}

	logger.Debug("x11: window created", "id", id, "width", v.size.width, "height", v.size.height)
	return native.StatusSuccess
}

// canRealize checks the state Realize needs before any request is sent
func (v *window) canRealize() native.Status {
	if v.id != 0 || v.freed {
		return native.StatusFailure
	}
	if v.size.width == 0 || v.size.height == 0 {
		return native.StatusBadConfiguration
	}
	return native.StatusSuccess
}

// adopt publishes a created system window
func (v *window) adopt(id xproto.Window, surf *surface) {
	v.id = id
	v.world.views[id] = v
	v.surface = surf

	v.frame.Width, v.frame.Height = float64(v.size.width), float64(v.size.height)
	v.hints[native.HintRefreshRate] = v.world.refreshRate
}

func (v *window) createSurface(id xproto.Window) (*surface, native.Status) {
	w := v.world
	gc, err := xproto.NewGcontextId(w.conn)
	if err != nil {
		logger.Errorf("x11: failed to allocate graphics context: %v", err)
		return nil, native.StatusCreateContextFailed
	}
	err = xproto.CreateGCChecked(w.conn, gc, xproto.Drawable(id),
		xproto.GcGraphicsExposures, []uint32{0}).Check()
	if err != nil {
		logger.Errorf("x11: failed to create graphics context: %v", err)
		return nil, native.StatusCreateContextFailed
	}
	surf := &surface{gc: gc}
	surf.resize(v.size.width, v.size.height)
	return surf, native.StatusSuccess
}

func (v *window) Show() native.Status {
	if v.id == 0 {
		logger.Debugf("x11: show: %v", ErrNotRealized)
		return native.StatusFailure
	}
	xproto.MapWindow(v.world.conn, v.id)
	v.visible = true
	return native.StatusSuccess
}

func (v *window) Hide() native.Status {
	if v.id == 0 {
		return native.StatusSuccess
	}
	xproto.UnmapWindow(v.world.conn, v.id)
	v.visible = false
	return native.StatusSuccess
}

func (v *window) Visible() bool { return v.visible }

func (v *window) SetCursor(c native.Cursor) native.Status {
	v.cursor = c
	if v.id == 0 {
		return native.StatusSuccess
	}
	return v.applyCursor()
}

func (v *window) applyCursor() native.Status {
	cur, err := v.world.cursor(v.cursor)
	if err != nil {
		logger.Warnf("x11: %v", err)
		return native.StatusFailure
	}
	xproto.ChangeWindowAttributes(v.world.conn, v.id, xproto.CwCursor, []uint32{uint32(cur)})
	return native.StatusSuccess
}

func (v *window) PostRedisplay() native.Status {
	return v.PostRedisplayRect(native.Rect{Width: v.frame.Width, Height: v.frame.Height})
}

// PostRedisplayRect adds r to the region exposed at the end of the next
// Update
func (v *window) PostRedisplayRect(r native.Rect) native.Status {
	if v.id == 0 {
		logger.Debugf("x11: redisplay: %v", ErrNotRealized)
		return native.StatusFailure
	}
	area := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width+0.5), int(r.Y+r.Height+0.5))
	v.pendingExpose = v.pendingExpose.Union(area)
	return native.StatusSuccess
}

func (v *window) StartTimer(id uintptr, period float64) native.Status {
	if period <= 0 {
		return native.StatusBadParameter
	}
	d := time.Duration(period * float64(time.Second))
	v.timers[id] = &timer{period: d, next: time.Now().Add(d)}
	logger.Debug("x11: timer started", "id", id, "period", d)
	return native.StatusSuccess
}

func (v *window) StopTimer(id uintptr) native.Status {
	if _, ok := v.timers[id]; !ok {
		return native.StatusFailure
	}
	delete(v.timers, id)
	return native.StatusSuccess
}

func (v *window) NativeWindow() native.NativeWindow {
	return native.NativeWindow(v.id)
}

// Context is the window's RGBA buffer while an expose is being handled
func (v *window) Context() any {
	if !v.exposing || v.surface == nil {
		return nil
	}
	var img draw.Image = v.surface.img
	return img
}

// process updates window state from a record, then dispatches it. Exposes
// are collected and delivered by the world after the batch.
func (v *window) process(rec *native.Event) {
	switch rec.Type {
	case native.EventConfigure:
		c := rec.Configure
		if c.X == v.frame.X && c.Y == v.frame.Y && c.Width == v.frame.Width && c.Height == v.frame.Height {
			return
		}
		v.frame = native.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
		if v.surface != nil {
			v.surface.resize(int(c.Width), int(c.Height))
		}
	case native.EventExpose:
		e := rec.Expose
		area := image.Rect(int(e.X), int(e.Y), int(e.X+e.Width), int(e.Y+e.Height))
		v.pendingExpose = v.pendingExpose.Union(area)
		return
	case native.EventMap:
		v.visible = true
	case native.EventUnmap:
		v.visible = false
	}
	v.dispatch(rec)
}

func (v *window) dispatch(rec *native.Event) {
	if v.eventFunc == nil {
		return
	}
	if st := v.eventFunc(v, rec); st != native.StatusSuccess {
		logger.Debugf("x11: %s handler returned status %d", rec.Type, st)
	}
}

// expose delivers an expose for area and uploads the drawn region
func (v *window) expose(area image.Rectangle) {
	rec := native.Event{
		Type: native.EventExpose,
		Expose: native.ExposeRecord{
			Type:   native.EventExpose,
			X:      float64(area.Min.X),
			Y:      float64(area.Min.Y),
			Width:  float64(area.Dx()),
			Height: float64(area.Dy()),
		},
	}

	v.exposing = true
	v.dispatch(&rec)
	v.exposing = false

	if v.surface != nil {
		w := v.world
		v.surface.upload(w.conn, v.id, w.screen.RootDepth, w.setup.MaximumRequestLength, area)
	}
}

// Free destroys the system window. The world stays connected.
func (v *window) Free() {
	if v.freed {
		return
	}
	v.freed = true
	v.timers = map[uintptr]*timer{}

	w := v.world
	if v.id != 0 {
		if v.surface != nil {
			xproto.FreeGC(w.conn, v.surface.gc)
		}
		xproto.DestroyWindow(w.conn, v.id)
		logger.Debug("x11: window destroyed", "id", v.id)
	}
	w.forget(v)
}
