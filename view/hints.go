package view

import (
	"fmt"

	"github.com/bnema/viewkit/native"
)

// ViewHintBool is a tri-state boolean hint
type ViewHintBool int

const (
	HintFalse ViewHintBool = iota
	HintTrue
	HintDontCare
)

// HintBoolFromNative maps a raw hint value. Anything other than the native
// true and false values is DontCare.
func HintBoolFromNative(v int32) ViewHintBool {
	switch v {
	case native.True:
		return HintTrue
	case native.False:
		return HintFalse
	default:
		return HintDontCare
	}
}

// Native returns the raw hint value
func (h ViewHintBool) Native() int32 {
	switch h {
	case HintTrue:
		return native.True
	case HintFalse:
		return native.False
	default:
		return native.DontCare
	}
}

func (h ViewHintBool) String() string {
	switch h {
	case HintTrue:
		return "true"
	case HintFalse:
		return "false"
	default:
		return "dont-care"
	}
}

// ViewHintInt is an integer hint that may be unknown. The zero value is
// HintIntDontCare.
type ViewHintInt struct {
	value uint32
	known bool
}

// HintIntDontCare is the unknown integer hint
var HintIntDontCare = ViewHintInt{}

// HintValue returns a known integer hint
func HintValue(v uint32) ViewHintInt {
	return ViewHintInt{value: v, known: true}
}

// HintIntFromNative maps a raw hint value. Negative values mean unknown.
func HintIntFromNative(v int32) ViewHintInt {
	if v < 0 {
		return HintIntDontCare
	}
	return HintValue(uint32(v))
}

// Value returns the hint value and whether it is known
func (h ViewHintInt) Value() (uint32, bool) {
	return h.value, h.known
}

// Native returns the raw hint value
func (h ViewHintInt) Native() int32 {
	if !h.known {
		return native.DontCare
	}
	return int32(h.value)
}

func (h ViewHintInt) String() string {
	if !h.known {
		return "dont-care"
	}
	return fmt.Sprintf("%d", h.value)
}

// hintStore is the raw hint table a backend keeps
type hintStore interface {
	getHint(h native.Hint) int32
	setHint(h native.Hint, v int32) Status
}

// viewHints implements the typed hint accessors on top of a hintStore. Both
// backends embed it.
type viewHints struct {
	store hintStore
}

// IsResizable reports whether the view may be resized by the user
func (v viewHints) IsResizable() bool {
	return v.store.getHint(native.HintResizable) == native.True
}

// MakeResizable allows the user to resize the view. Call it before the view
// is realized.
func (v viewHints) MakeResizable() Status {
	return v.store.setHint(native.HintResizable, native.True)
}

// IsIgnoringKeyRepeats reports whether key repeats are dropped
func (v viewHints) IsIgnoringKeyRepeats() ViewHintBool {
	return HintBoolFromNative(v.store.getHint(native.HintIgnoreKeyRepeat))
}

// SetIgnoreKeyRepeats sets whether key repeats are dropped
func (v viewHints) SetIgnoreKeyRepeats(value ViewHintBool) Status {
	return v.store.setHint(native.HintIgnoreKeyRepeat, value.Native())
}

func (v viewHints) RedBits() uint32     { return uint32(v.store.getHint(native.HintRedBits)) }
func (v viewHints) GreenBits() uint32   { return uint32(v.store.getHint(native.HintGreenBits)) }
func (v viewHints) BlueBits() uint32    { return uint32(v.store.getHint(native.HintBlueBits)) }
func (v viewHints) AlphaBits() uint32   { return uint32(v.store.getHint(native.HintAlphaBits)) }
func (v viewHints) DepthBits() uint32   { return uint32(v.store.getHint(native.HintDepthBits)) }
func (v viewHints) StencilBits() uint32 { return uint32(v.store.getHint(native.HintStencilBits)) }

// Samples returns the number of samples per pixel
func (v viewHints) Samples() uint32 { return uint32(v.store.getHint(native.HintSamples)) }

// DoubleBuffer reports whether double buffering is requested
func (v viewHints) DoubleBuffer() bool {
	return v.store.getHint(native.HintDoubleBuffer) == native.True
}

// SetDoubleBuffer sets whether double buffering is requested
func (v viewHints) SetDoubleBuffer(on bool) Status {
	value := native.False
	if on {
		value = native.True
	}
	return v.store.setHint(native.HintDoubleBuffer, value)
}

// SwapInterval returns the number of frames between buffer swaps
func (v viewHints) SwapInterval() ViewHintInt {
	return HintIntFromNative(v.store.getHint(native.HintSwapInterval))
}

// RefreshRate returns the refresh rate in Hz, known once the view is realized
func (v viewHints) RefreshRate() ViewHintInt {
	return HintIntFromNative(v.store.getHint(native.HintRefreshRate))
}
