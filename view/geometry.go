// Package view owns the lifecycle of a single on-screen view, translates the
// native toolkit's event records into typed events and dispatches them to an
// application Handler. A simulated backend implements the same contract in
// memory so application logic can be driven without a display.
package view

import "github.com/bnema/viewkit/native"

// Coord is a point in view or screen coordinates
type Coord struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of c and o
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Scale multiplies both components by factor
func (c Coord) Scale(factor float64) Coord {
	return Coord{X: c.X * factor, Y: c.Y * factor}
}

// Size is the extent of a rectangle
type Size struct {
	W float64
	H float64
}

// Add returns the component-wise sum of s and o
func (s Size) Add(o Size) Size {
	return Size{W: s.W + o.W, H: s.H + o.H}
}

// Scale multiplies both components by factor
func (s Size) Scale(factor float64) Size {
	return Size{W: s.W * factor, H: s.H * factor}
}

// Clamp replaces negative components with zero. Window systems may report
// negative sizes while a resize is in flight.
func (s Size) Clamp() Size {
	if s.W < 0 {
		s.W = 0
	}
	if s.H < 0 {
		s.H = 0
	}
	return s
}

// Rect is a view position and size in screen space, origin top left
type Rect struct {
	Pos  Coord
	Size Size
}

// RectFromNative converts a toolkit rectangle
func RectFromNative(r native.Rect) Rect {
	return Rect{
		Pos:  Coord{X: r.X, Y: r.Y},
		Size: Size{W: r.Width, H: r.Height},
	}
}

// Native converts r to a toolkit rectangle
func (r Rect) Native() native.Rect {
	return native.Rect{
		X:      r.Pos.X,
		Y:      r.Pos.Y,
		Width:  r.Size.W,
		Height: r.Size.H,
	}
}
