// Package demo is the application `viewkit run` and `viewkit replay` drive:
// a view that shows what it receives and can record it.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/view"
)

// Colors of the rendered label
var (
	Background = color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}
	Foreground = color.RGBA{R: 0xcd, G: 0xd6, B: 0xf4, A: 0xff}
	Accent     = color.RGBA{R: 0x89, G: 0xb4, B: 0xfa, A: 0xff}
)

// Activity is one thing that happened to the app, as reported to observers
type Activity struct {
	Kind   string
	Detail string
	At     time.Time
}

// Recorder receives every generic event the app handles
type Recorder interface {
	Write(ev view.Event) error
}

// Stats is a snapshot of what the app has seen
type Stats struct {
	Events  map[string]int
	Exposes int
	Resizes int
	Ticks   map[uintptr]int
	Size    view.Size
	Focused bool
	Closed  bool
	Last    string
}

// App implements view.Handler, view.FocusHandler and view.TimerHandler
type App struct {
	handle   view.Handle
	recorder Recorder
	observe  func(Activity)
	now      func() time.Time

	events  map[string]int
	ticks   map[uintptr]int
	exposes int
	resizes int
	size    view.Size
	focused bool
	closed  bool
	last    string
	recErr  error
}

// Option configures an App
type Option func(*App)

// WithRecorder records handled events
func WithRecorder(r Recorder) Option {
	return func(a *App) { a.recorder = r }
}

// WithObserver reports activity to f. It is called on the goroutine that
// runs the view's Update.
func WithObserver(f func(Activity)) Option {
	return func(a *App) { a.observe = f }
}

// New returns an app bound to h, for use as the constructor callback of
// view.New
func New(h view.Handle, opts ...Option) *App {
	a := &App{
		handle: h,
		events: make(map[string]int),
		ticks:  make(map[uintptr]int),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Constructor adapts New to view.New
func Constructor(opts ...Option) func(view.Handle) *App {
	return func(h view.Handle) *App {
		return New(h, opts...)
	}
}

func (a *App) ViewHandle() view.Handle {
	return a.handle
}

func (a *App) report(kind, detail string) {
	a.last = kind
	if detail != "" {
		a.last = kind + " " + detail
	}
	if a.observe != nil {
		a.observe(Activity{Kind: kind, Detail: detail, At: a.now()})
	}
}

// OnEvent counts the event, records it and redraws. Escape or q asks the
// app to close.
func (a *App) OnEvent(ev view.Event) view.Status {
	kind := ev.Kind()
	a.events[kind]++

	if a.recorder != nil && a.recErr == nil {
		if err := a.recorder.Write(ev); err != nil {
			a.recErr = err
			logger.Errorf("Failed to record event, recording stopped: %v", err)
		}
	}

	detail := fmt.Sprintf("(%.0f, %.0f)", ev.Context.Pos.X, ev.Context.Pos.Y)
	switch d := ev.Data.(type) {
	case view.KeyPress:
		detail = d.Val.String()
		if d.Modifiers != 0 {
			detail = d.Modifiers.String() + "+" + detail
		}
		if special, ok := d.Val.Special(); ok && special == view.KeyEscape {
			a.closed = true
		}
		if r, ok := d.TryChar(); ok && r == 'q' {
			a.closed = true
		}
	case view.KeyRelease:
		detail = d.Val.String()
	case view.ButtonPress:
		detail = fmt.Sprintf("button %d %s", d.Num, detail)
	case view.Wheel:
		detail = fmt.Sprintf("%+.1f %+.1f", d.DX, d.DY)
	}
	a.report(kind, detail)

	if a.handle != nil {
		a.handle.PostRedisplay()
	}
	return view.Success
}

// OnExpose draws the label when the drawing context is an image
func (a *App) OnExpose(area view.ExposeArea, dc view.DrawContext) {
	a.exposes++
	a.report("expose", fmt.Sprintf("%.0fx%.0f", area.Size.W, area.Size.H))

	img, ok := dc.(draw.Image)
	if !ok {
		return
	}
	Render(img, a.Lines())
}

func (a *App) OnResize(size view.Size) {
	a.resizes++
	a.size = size.Clamp()
	a.report("resize", fmt.Sprintf("%.0fx%.0f", a.size.W, a.size.H))
	if a.handle != nil {
		a.handle.PostRedisplay()
	}
}

func (a *App) OnCloseRequest() {
	a.closed = true
	a.report("close", "")
}

func (a *App) OnFocusIn() view.Status {
	a.focused = true
	a.report("focus-in", "")
	return view.Success
}

func (a *App) OnFocusOut() view.Status {
	a.focused = false
	a.report("focus-out", "")
	return view.Success
}

func (a *App) OnTimer(id uintptr) view.Status {
	a.ticks[id]++
	a.report("timer", fmt.Sprintf("%d", id))
	if a.handle != nil {
		a.handle.PostRedisplay()
	}
	return view.Success
}

// Closed reports whether the app asked to stop
func (a *App) Closed() bool {
	return a.closed
}

// RecordErr is the error that stopped recording, if any
func (a *App) RecordErr() error {
	return a.recErr
}

// Stats returns a copy of the counters
func (a *App) Stats() Stats {
	s := Stats{
		Events:  make(map[string]int, len(a.events)),
		Ticks:   make(map[uintptr]int, len(a.ticks)),
		Exposes: a.exposes,
		Resizes: a.resizes,
		Size:    a.size,
		Focused: a.focused,
		Closed:  a.closed,
		Last:    a.last,
	}
	for k, v := range a.events {
		s.Events[k] = v
	}
	for k, v := range a.ticks {
		s.Ticks[k] = v
	}
	return s
}

// Lines is the text the app renders
func (a *App) Lines() []string {
	total := 0
	for _, n := range a.events {
		total += n
	}
	focus := "unfocused"
	if a.focused {
		focus = "focused"
	}
	last := a.last
	if last == "" {
		last = "waiting for input"
	}
	return []string{
		"viewkit",
		fmt.Sprintf("%.0fx%.0f %s", a.size.W, a.size.H, focus),
		fmt.Sprintf("%d events, %d exposes", total, a.exposes),
		last,
	}
}

// Render clears img and draws lines with the 7x13 bitmap font. The first
// line uses the accent color.
func Render(img draw.Image, lines []string) {
	bounds := img.Bounds()
	draw.Draw(img, bounds, image.NewUniform(Background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	d := &font.Drawer{Dst: img, Face: face}
	for i, line := range lines {
		d.Src = image.NewUniform(Foreground)
		if i == 0 {
			d.Src = image.NewUniform(Accent)
		}
		d.Dot = fixed.P(bounds.Min.X+8, bounds.Min.Y+8+face.Metrics().Ascent.Ceil()+i*lineHeight)
		d.DrawString(line)
	}
}
