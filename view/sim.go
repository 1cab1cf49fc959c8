package view

import (
	"sort"

	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native"
)

// Journal entries recorded by SimBackend, in the order the native backend
// performs the equivalent toolkit calls.
const (
	JournalWorldNew      = "world.new"
	JournalViewNew       = "view.new"
	JournalHandleBind    = "handle.bind"
	JournalViewRealize   = "view.realize"
	JournalViewShow      = "view.show"
	JournalViewHide      = "view.hide"
	JournalHandleRelease = "handle.release"
	JournalViewFree      = "view.free"
	JournalWorldFree     = "world.free"
)

// DefaultSimRefreshRate is the refresh rate a simulated view reports once
// realized
const DefaultSimRefreshRate = 60

// SimBackend opens simulated views. It needs no display and keeps a journal
// of the lifecycle calls made against it.
type SimBackend struct {
	// RefreshRate is reported by views realized after it is set
	RefreshRate uint32

	journal    []string
	nextWindow native.NativeWindow
}

// NewSimBackend returns a simulated backend
func NewSimBackend() *SimBackend {
	return &SimBackend{
		RefreshRate: DefaultSimRefreshRate,
		nextWindow:  1,
	}
}

func (b *SimBackend) Name() string {
	return "sim"
}

// Open creates a simulated world and view
func (b *SimBackend) Open(opts Options) (Handle, error) {
	b.record(JournalWorldNew)
	b.record(JournalViewNew)

	h := &SimHandle{
		backend: b,
		parent:  opts.Parent,
		drawing: opts.Drawing,
		hints:   native.DefaultHints(),
		timers:  make(map[uintptr]float64),
	}
	h.viewHints = viewHints{store: h}
	return h, nil
}

// Journal returns a copy of the recorded lifecycle calls
func (b *SimBackend) Journal() []string {
	out := make([]string, len(b.journal))
	copy(out, b.journal)
	return out
}

func (b *SimBackend) record(entry string) {
	b.journal = append(b.journal, entry)
}

// SimHandle is the in-memory implementation of Handle. Its fields are the
// source of truth for assertions in tests.
type SimHandle struct {
	viewHints

	backend *SimBackend
	app     Handler
	parent  native.NativeWindow
	drawing native.DrawingBackend

	frame Rect

	defaultW, defaultH int
	minW, minH         int
	maxW, maxH         int

	minAspectX, minAspectY int
	maxAspectX, maxAspectY int

	hints  [native.NumHints]int32
	title  string
	cursor Cursor

	visible  bool
	realized bool
	closed   bool
	window   native.NativeWindow

	lastTimeout    float64
	updateCalled   bool
	queue          []Event
	timers         map[uintptr]float64
	redisplays     []Rect
	dispatchStatus []Status
}

func (h *SimHandle) getHint(hint native.Hint) int32 {
	if h.closed || hint >= native.NumHints {
		return native.DontCare
	}
	return h.hints[hint]
}

func (h *SimHandle) setHint(hint native.Hint, v int32) Status {
	if h.closed {
		return Failure
	}
	if hint >= native.NumHints {
		return BadParameter
	}
	h.hints[hint] = v
	return Success
}

func (h *SimHandle) PostRedisplay() Status {
	if h.closed {
		return Failure
	}
	h.redisplays = append(h.redisplays, Rect{Size: h.frame.Size})
	return Success
}

func (h *SimHandle) PostRedisplayRect(pos Coord, size Size) Status {
	if h.closed {
		return Failure
	}
	h.redisplays = append(h.redisplays, Rect{Pos: pos, Size: size})
	return Success
}

func (h *SimHandle) Frame() Rect {
	if h.closed {
		return Rect{}
	}
	return h.frame
}

func (h *SimHandle) SetFrame(frame Rect) Status {
	if h.closed {
		return Failure
	}
	h.frame = frame
	return Success
}

func (h *SimHandle) SetDefaultSize(width, height int) Status {
	if h.closed {
		return Failure
	}
	if width < 0 || height < 0 {
		return BadParameter
	}
	h.defaultW, h.defaultH = width, height
	return Success
}

func (h *SimHandle) SetMinSize(width, height int) Status {
	if h.closed {
		return Failure
	}
	if width < 0 || height < 0 {
		return BadParameter
	}
	h.minW, h.minH = width, height
	return Success
}

func (h *SimHandle) SetMaxSize(width, height int) Status {
	if h.closed {
		return Failure
	}
	if width < 0 || height < 0 {
		return BadParameter
	}
	h.maxW, h.maxH = width, height
	return Success
}

func (h *SimHandle) SetAspectRatio(minX, minY, maxX, maxY int) Status {
	if h.closed {
		return Failure
	}
	if minX < 0 || minY < 0 || maxX < 0 || maxY < 0 {
		return BadParameter
	}
	h.minAspectX, h.minAspectY = minX, minY
	h.maxAspectX, h.maxAspectY = maxX, maxY
	return Success
}

func (h *SimHandle) SetWindowTitle(title string) Status {
	checkTitle(title)
	if h.closed {
		return Failure
	}
	h.title = title
	return Success
}

func (h *SimHandle) Realize() Status {
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

	h.realized = true
	h.frame.Size = Size{W: float64(h.defaultW), H: float64(h.defaultH)}
	h.hints[native.HintRefreshRate] = int32(h.backend.RefreshRate)
	h.window = h.backend.nextWindow
	h.backend.nextWindow++
	h.backend.record(JournalViewRealize)
	return Success
}

func (h *SimHandle) ShowWindow() Status {
	if h.closed {
		return Failure
	}
	if !h.realized {
		if st := h.Realize(); st != Success {
			return st
		}
	}
	h.visible = true
	h.backend.record(JournalViewShow)
	return Success
}

func (h *SimHandle) HideWindow() Status {
	if h.closed {
		return Failure
	}
	h.visible = false
	h.backend.record(JournalViewHide)
	return Success
}

func (h *SimHandle) IsVisible() bool {
	return h.visible
}

func (h *SimHandle) SetCursor(c Cursor) Status {
	if h.closed {
		return Failure
	}
	h.cursor = c
	return Success
}

// Update records the timeout and delivers at most one queued event. The
// simulated backend never blocks: with an empty queue it returns Failure
// whatever the timeout.
func (h *SimHandle) Update(timeout float64) Status {
	if h.closed {
		return Failure
	}
	h.lastTimeout = timeout
	h.updateCalled = true

	if len(h.queue) == 0 || h.app == nil {
		return Failure
	}
	ev := h.queue[0]
	h.queue = h.queue[1:]

	st := deliver(h.app, message{route: RouteEvent, event: ev}, nil)
	h.dispatchStatus = append(h.dispatchStatus, st)
	return Success
}

func (h *SimHandle) StartTimer(id uintptr, period float64) Status {
	if h.closed {
		return Failure
	}
	if period <= 0 {
		return BadParameter
	}
	h.timers[id] = period
	return Success
}

func (h *SimHandle) StopTimer(id uintptr) Status {
	if h.closed {
		return Failure
	}
	if _, ok := h.timers[id]; !ok {
		return Failure
	}
	delete(h.timers, id)
	return Success
}

func (h *SimHandle) NativeWindow() native.NativeWindow {
	if h.closed {
		return 0
	}
	return h.window
}

func (h *SimHandle) bind(app Handler) {
	h.app = app
	h.backend.record(JournalHandleBind)
}

func (h *SimHandle) destroy() {
	if h.closed {
		return
	}
	h.closed = true
	h.visible = false

	h.app = nil
	h.backend.record(JournalHandleRelease)
	h.queue = nil
	h.backend.record(JournalViewFree)
	h.backend.record(JournalWorldFree)
}

// Queue appends an event to the synthetic queue. Update delivers queued
// events first in, first out.
func (h *SimHandle) Queue(ev Event) {
	h.queue = append(h.queue, ev)
}

// Pending returns the number of queued events
func (h *SimHandle) Pending() int {
	return len(h.queue)
}

// ForceResize sets the frame size and calls OnResize, as a configure event
// from the window system would
func (h *SimHandle) ForceResize(size Size) {
	h.frame.Size = size
	if h.app != nil {
		deliver(h.app, message{route: RouteResize, size: size}, nil)
	}
}

// ForceFocusIn delivers a focus-in event
func (h *SimHandle) ForceFocusIn() Status {
	if h.app == nil {
		return Failure
	}
	return deliver(h.app, message{route: RouteFocusIn}, nil)
}

// ForceFocusOut delivers a focus-out event
func (h *SimHandle) ForceFocusOut() Status {
	if h.app == nil {
		return Failure
	}
	return deliver(h.app, message{route: RouteFocusOut}, nil)
}

// ForceClose delivers a close request
func (h *SimHandle) ForceClose() {
	if h.app != nil {
		deliver(h.app, message{route: RouteClose}, nil)
	}
}

// ForceExpose delivers an expose of area with dc as the drawing context and
// clears recorded redisplay requests
func (h *SimHandle) ForceExpose(area ExposeArea, dc DrawContext) {
	h.redisplays = nil
	if h.app != nil {
		deliver(h.app, message{route: RouteExpose, area: area}, dc)
	}
}

// FireTimer delivers one tick of a running timer. It returns Failure if the
// timer is not running.
func (h *SimHandle) FireTimer(id uintptr) Status {
	if _, ok := h.timers[id]; !ok || h.app == nil {
		return Failure
	}
	return deliver(h.app, message{route: RouteTimer, timer: id}, nil)
}

// DefaultSize returns the configured default size
func (h *SimHandle) DefaultSize() Size {
	return Size{W: float64(h.defaultW), H: float64(h.defaultH)}
}

// MinSize returns the configured minimum size
func (h *SimHandle) MinSize() Size {
	return Size{W: float64(h.minW), H: float64(h.minH)}
}

// MaxSize returns the configured maximum size
func (h *SimHandle) MaxSize() Size {
	return Size{W: float64(h.maxW), H: float64(h.maxH)}
}

// Aspect returns the configured aspect ratio bounds
func (h *SimHandle) Aspect() (minX, minY, maxX, maxY int) {
	return h.minAspectX, h.minAspectY, h.maxAspectX, h.maxAspectY
}

func (h *SimHandle) Title() string                  { return h.title }
func (h *SimHandle) Cursor() Cursor                 { return h.cursor }
func (h *SimHandle) IsRealized() bool               { return h.realized }
func (h *SimHandle) IsClosed() bool                 { return h.closed }
func (h *SimHandle) Parent() native.NativeWindow    { return h.parent }
func (h *SimHandle) Drawing() native.DrawingBackend { return h.drawing }

// LastTimeout returns the timeout of the most recent Update call
func (h *SimHandle) LastTimeout() (float64, bool) {
	return h.lastTimeout, h.updateCalled
}

// Timers returns the running timer ids in ascending order
func (h *SimHandle) Timers() []uintptr {
	ids := make([]uintptr, 0, len(h.timers))
	for id := range h.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TimerPeriod returns the period of a running timer
func (h *SimHandle) TimerPeriod(id uintptr) (float64, bool) {
	p, ok := h.timers[id]
	return p, ok
}

// Redisplays returns the redisplay requests since the last ForceExpose
func (h *SimHandle) Redisplays() []Rect {
	out := make([]Rect, len(h.redisplays))
	copy(out, h.redisplays)
	return out
}

// DispatchStatuses returns what OnEvent returned for each delivered event
func (h *SimHandle) DispatchStatuses() []Status {
	out := make([]Status, len(h.dispatchStatus))
	copy(out, h.dispatchStatus)
	return out
}
