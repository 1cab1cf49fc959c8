package view

import (
	"fmt"

	"github.com/bnema/viewkit/native"
)

// EventContext is attached to every pointer and keyboard event
type EventContext struct {
	// Pos is relative to the top left corner of the view
	Pos Coord
	// PosRoot is relative to the top left corner of the root window
	PosRoot Coord
	// Time is a monotonic timestamp in seconds
	Time float64
}

// MouseButton identifies a pressed or released mouse button
type MouseButton struct {
	Num       uint32
	Modifiers Modifiers
}

// MotionContext accompanies pointer motion
type MotionContext struct {
	Modifiers Modifiers
	Flags     EventFlags
}

// Scroll is a scroll distance in lines, one line being a single detent of a
// mouse wheel. Devices with finer resolution report fractional values.
type Scroll struct {
	DX        float64
	DY        float64
	Modifiers Modifiers
}

// ExposeArea is the part of a view that needs to be redrawn
type ExposeArea struct {
	Pos  Coord
	Size Size
}

// EventData is the kind-specific part of an Event. It is one of KeyPress,
// KeyRelease, ButtonPress, ButtonRelease, Motion, Wheel, PointerIn or
// PointerOut.
type EventData interface {
	eventName() string
}

type (
	KeyPress      struct{ Key }
	KeyRelease    struct{ Key }
	ButtonPress   struct{ MouseButton }
	ButtonRelease struct{ MouseButton }
	Motion        struct{ MotionContext }
	Wheel         struct{ Scroll }
	PointerIn     struct{}
	PointerOut    struct{}
)

func (KeyPress) eventName() string      { return "key-press" }
func (KeyRelease) eventName() string    { return "key-release" }
func (ButtonPress) eventName() string   { return "button-press" }
func (ButtonRelease) eventName() string { return "button-release" }
func (Motion) eventName() string        { return "motion" }
func (Wheel) eventName() string         { return "scroll" }
func (PointerIn) eventName() string     { return "pointer-in" }
func (PointerOut) eventName() string    { return "pointer-out" }

// Event is what the generic Handler.OnEvent receives
type Event struct {
	Data    EventData
	Context EventContext
}

// Kind names the event kind, e.g. "button-press"
func (e Event) Kind() string {
	if e.Data == nil {
		return "none"
	}
	return e.Data.eventName()
}

// TryKeyPress returns the key if the event is a key press
func (e Event) TryKeyPress() (Key, bool) {
	if kp, ok := e.Data.(KeyPress); ok {
		return kp.Key, true
	}
	return Key{}, false
}

// Pos returns the pointer position relative to the view
func (e Event) Pos() Coord {
	return e.Context.Pos
}

// PosRoot returns the pointer position relative to the root window
func (e Event) PosRoot() Coord {
	return e.Context.PosRoot
}

// ScalePos returns a copy of the event with its view relative position
// scaled by factor
func (e Event) ScalePos(factor float64) Event {
	e.Context.Pos = e.Context.Pos.Scale(factor)
	return e
}

func (e Event) String() string {
	return fmt.Sprintf("%s at (%.1f, %.1f) t=%.3f", e.Kind(), e.Context.Pos.X, e.Context.Pos.Y, e.Context.Time)
}

// Cursor is a mouse cursor shape
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorCaret
	CursorCrossHair
	CursorHand
	CursorNo
	CursorLeftRight
	CursorUpDown
)

var cursorNames = map[Cursor]string{
	CursorArrow:     "arrow",
	CursorCaret:     "caret",
	CursorCrossHair: "crosshair",
	CursorHand:      "hand",
	CursorNo:        "no",
	CursorLeftRight: "left-right",
	CursorUpDown:    "up-down",
}

func (c Cursor) String() string {
	if name, ok := cursorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCursor looks a cursor up by the name String returns
func ParseCursor(name string) (Cursor, bool) {
	for c, n := range cursorNames {
		if n == name {
			return c, true
		}
	}
	return CursorArrow, false
}

func (c Cursor) native() native.Cursor {
	switch c {
	case CursorCaret:
		return native.CursorCaret
	case CursorCrossHair:
		return native.CursorCrosshair
	case CursorHand:
		return native.CursorHand
	case CursorNo:
		return native.CursorNo
	case CursorLeftRight:
		return native.CursorLeftRight
	case CursorUpDown:
		return native.CursorUpDown
	default:
		return native.CursorArrow
	}
}
