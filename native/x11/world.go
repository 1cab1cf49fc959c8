// Package x11 implements the native toolkit contract on an X11 display using
// the pure Go xgb protocol bindings.
//
// A world owns one connection. A reader goroutine receives events from the
// connection; everything else, including dispatch to views, happens on the
// goroutine that calls Update.
package x11

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native"
)

var (
	// ErrNotRealized is reported for operations that need the system window
	ErrNotRealized = errors.New("x11: view is not realized")
	// ErrConnectionLost is reported once the display connection has closed
	ErrConnectionLost = errors.New("x11: display connection lost")
)

// Toolkit opens worlds on an X display
type Toolkit struct {
	display string
}

// New returns a toolkit for display. An empty display uses $DISPLAY.
func New(display string) *Toolkit {
	return &Toolkit{display: display}
}

func (t *Toolkit) Name() string {
	return "x11"
}

// NewWorld connects to the display
func (t *Toolkit) NewWorld(kind native.WorldType) (native.World, error) {
	conn, err := xgb.NewConnDisplay(t.display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display %q: %w", t.display, err)
	}

	w, err := newWorld(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	logger.Debug("x11: connected", "display", t.display, "kind", kind)
	return w, nil
}

type xevent struct {
	ev  xgb.Event
	err xgb.Error
}

type atoms struct {
	wmProtocols xproto.Atom
	wmDelete    xproto.Atom
	netWMName   xproto.Atom
	utf8String  xproto.Atom
}

type world struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
	atoms  atoms
	tr     translator

	events chan xevent
	done   chan struct{}
	lost   bool

	views map[xproto.Window]*window
	all   []*window

	cursorFont xproto.Font
	cursors    map[native.Cursor]xproto.Cursor

	refreshRate int32
	freed       bool
}

func newWorld(conn *xgb.Conn) (*world, error) {
	setup := xproto.Setup(conn)
	w := &world{
		conn:        conn,
		setup:       setup,
		screen:      setup.DefaultScreen(conn),
		events:      make(chan xevent, 64),
		done:        make(chan struct{}),
		views:       make(map[xproto.Window]*window),
		cursors:     make(map[native.Cursor]xproto.Cursor),
		refreshRate: native.DontCare,
	}

	for name, dst := range map[string]*xproto.Atom{
		"WM_PROTOCOLS":     &w.atoms.wmProtocols,
		"WM_DELETE_WINDOW": &w.atoms.wmDelete,
		"_NET_WM_NAME":     &w.atoms.netWMName,
		"UTF8_STRING":      &w.atoms.utf8String,
	} {
		atom, err := internAtom(conn, name)
		if err != nil {
			return nil, err
		}
		*dst = atom
	}

	keys, err := loadKeymap(conn, setup)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyboard mapping: %w", err)
	}
	w.tr = translator{keys: keys, wmProtocols: w.atoms.wmProtocols, wmDelete: w.atoms.wmDelete}

	w.refreshRate = queryRefreshRate(conn, w.screen.Root)

	go w.read()
	return w, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

// queryRefreshRate asks RandR for the current rate of the screen. Servers
// without the extension leave the rate unknown.
func queryRefreshRate(conn *xgb.Conn, root xproto.Window) int32 {
	if err := randr.Init(conn); err != nil {
		logger.Debugf("x11: RandR unavailable: %v", err)
		return native.DontCare
	}
	reply, err := randr.GetScreenInfo(conn, root).Reply()
	if err != nil || reply.Rate == 0 {
		logger.Debugf("x11: no refresh rate from RandR: %v", err)
		return native.DontCare
	}
	return int32(reply.Rate)
}

// read forwards events until the connection closes or the world is freed
func (w *world) read() {
	for {
		ev, err := w.conn.WaitForEvent()
		if ev == nil && err == nil {
			close(w.events)
			return
		}
		select {
		case w.events <- xevent{ev: ev, err: err}:
		case <-w.done:
			return
		}
	}
}

func (w *world) NewView() (native.View, error) {
	if w.freed {
		return nil, errors.New("x11: world is freed")
	}
	v := newWindow(w)
	w.all = append(w.all, v)
	return v, nil
}

// Update fires due timers, waits for X events as the timeout allows,
// dispatches every ready event and finally delivers pending exposes.
func (w *world) Update(timeout float64) native.Status {
	if w.freed || w.lost {
		return native.StatusFailure
	}

	processed := w.fireTimers(time.Now())
	if processed || w.exposePending() {
		timeout = 0
	}

	var batch []xevent
	if first, ok := w.wait(timeout); ok {
		batch = append(batch, first)
		batch = w.drain(batch)
	}

	if w.dispatch(batch) {
		processed = true
	}
	if w.fireTimers(time.Now()) {
		processed = true
	}
	if w.flushExposes() {
		processed = true
	}

	if processed {
		return native.StatusSuccess
	}
	return native.StatusFailure
}

// wait returns the next event, waking early for the next timer
func (w *world) wait(timeout float64) (xevent, bool) {
	if timeout == 0 {
		select {
		case ev, ok := <-w.events:
			return w.received(ev, ok)
		default:
			return xevent{}, false
		}
	}

	d := time.Duration(-1)
	if timeout > 0 {
		d = time.Duration(timeout * float64(time.Second))
	}
	if next, ok := w.nextTimer(); ok {
		if until := max(time.Until(next), 0); d < 0 || until < d {
			d = until
		}
	}

	var wake <-chan time.Time
	if d >= 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		wake = t.C
	}

	select {
	case ev, ok := <-w.events:
		return w.received(ev, ok)
	case <-wake:
		return xevent{}, false
	}
}

func (w *world) received(ev xevent, ok bool) (xevent, bool) {
	if !ok {
		w.lost = true
		logger.Error("x11: display connection closed", "err", ErrConnectionLost)
	}
	return ev, ok
}

// drain appends every event that is already queued
func (w *world) drain(batch []xevent) []xevent {
	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				w.received(ev, ok)
				return batch
			}
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

func (w *world) dispatch(batch []xevent) bool {
	processed := false
	for i := 0; i < len(batch); i++ {
		item := batch[i]
		if item.err != nil {
			logger.Warnf("x11: protocol error: %v", item.err)
			continue
		}

		id, ok := eventWindow(item.ev)
		if !ok {
			continue
		}
		v, ok := w.views[id]
		if !ok {
			continue
		}

		if release, isRelease := item.ev.(xproto.KeyReleaseEvent); isRelease &&
			v.hints[native.HintIgnoreKeyRepeat] == native.True &&
			i+1 < len(batch) && isRepeat(release, batch[i+1].ev) {
			i++
			processed = true
			continue
		}

		rec, ok := w.tr.translate(item.ev)
		if !ok {
			continue
		}
		processed = true
		v.process(&rec)
	}
	return processed
}

func (w *world) nextTimer() (time.Time, bool) {
	var next time.Time
	found := false
	for _, v := range w.all {
		for _, t := range v.timers {
			if !found || t.next.Before(next) {
				next, found = t.next, true
			}
		}
	}
	return next, found
}

// fireTimers dispatches one tick for every due timer
func (w *world) fireTimers(now time.Time) bool {
	type due struct {
		v  *window
		id uintptr
	}
	var ticks []due
	for _, v := range w.all {
		for id, t := range v.timers {
			if !t.next.After(now) {
				ticks = append(ticks, due{v: v, id: id})
				t.next = t.next.Add(t.period)
				if !t.next.After(now) {
					t.next = now.Add(t.period)
				}
			}
		}
	}

	for _, d := range ticks {
		if _, running := d.v.timers[d.id]; !running {
			continue
		}
		rec := native.Event{
			Type:  native.EventTimer,
			Timer: native.TimerRecord{Type: native.EventTimer, ID: d.id},
		}
		d.v.dispatch(&rec)
	}
	return len(ticks) > 0
}

func (w *world) exposePending() bool {
	for _, v := range w.all {
		if !v.pendingExpose.Empty() {
			return true
		}
	}
	return false
}

// flushExposes delivers one expose per view covering everything requested
// since the last flush
func (w *world) flushExposes() bool {
	processed := false
	for _, v := range w.all {
		area := v.pendingExpose
		if area.Empty() || v.id == 0 {
			continue
		}
		v.pendingExpose = image.Rectangle{}
		v.expose(area)
		processed = true
	}
	return processed
}

func (w *world) forget(v *window) {
	delete(w.views, v.id)
	for i, other := range w.all {
		if other == v {
			w.all = append(w.all[:i], w.all[i+1:]...)
			break
		}
	}
}

// cursor returns the glyph cursor for c, creating it on first use
func (w *world) cursor(c native.Cursor) (xproto.Cursor, error) {
	if cur, ok := w.cursors[c]; ok {
		return cur, nil
	}

	if w.cursorFont == 0 {
		font, err := xproto.NewFontId(w.conn)
		if err != nil {
			return 0, fmt.Errorf("failed to allocate font id: %w", err)
		}
		if err := xproto.OpenFontChecked(w.conn, font, uint16(len("cursor")), "cursor").Check(); err != nil {
			return 0, fmt.Errorf("failed to open cursor font: %w", err)
		}
		w.cursorFont = font
	}

	cur, err := xproto.NewCursorId(w.conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate cursor id: %w", err)
	}
	glyph := cursorGlyph(c)
	xproto.CreateGlyphCursor(w.conn, cur, w.cursorFont, w.cursorFont,
		glyph, glyph+1, 0, 0, 0, 0xffff, 0xffff, 0xffff)
	w.cursors[c] = cur
	return cur, nil
}

// cursorGlyph returns the index of c in the standard X cursor font
func cursorGlyph(c native.Cursor) uint16 {
	switch c {
	case native.CursorCaret:
		return 152 // xterm
	case native.CursorCrosshair:
		return 34 // crosshair
	case native.CursorHand:
		return 60 // hand2
	case native.CursorNo:
		return 0 // X_cursor
	case native.CursorLeftRight:
		return 108 // sb_h_double_arrow
	case native.CursorUpDown:
		return 116 // sb_v_double_arrow
	default:
		return 68 // left_ptr
	}
}

// Free closes the connection. Views must have been freed first.
func (w *world) Free() {
	if w.freed {
		return
	}
	w.freed = true

	if len(w.all) > 0 {
		logger.Warnf("x11: world freed with %d live views", len(w.all))
	}
	for _, cur := range w.cursors {
		xproto.FreeCursor(w.conn, cur)
	}
	if w.cursorFont != 0 {
		xproto.CloseFont(w.conn, w.cursorFont)
	}

	close(w.done)
	w.conn.Close()
	logger.Debug("x11: disconnected")
}
