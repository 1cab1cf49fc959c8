// Package native describes the windowing toolkit service that the view
// package drives. It carries the raw enumerations and tagged event records
// exactly as a toolkit reports them; nothing here is type safe.
package native

// Status is the raw result code returned by every toolkit operation.
type Status int32

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusUnknownError
	StatusBadBackend
	StatusBadConfiguration
	StatusBadParameter
	StatusBackendFailed
	StatusRegistrationFailed
	StatusRealizeFailed
	StatusSetFormatFailed
	StatusCreateContextFailed
	StatusUnsupportedType
)

// EventType tags a native event record.
type EventType uint32

const (
	EventNothing EventType = iota
	EventButtonPress
	EventButtonRelease
	EventConfigure
	EventExpose
	EventClose
	EventKeyPress
	EventKeyRelease
	EventText
	EventPointerIn
	EventPointerOut
	EventMotion
	EventScroll
	EventFocusIn
	EventFocusOut
	EventClient
	EventTimer
	EventCreate
	EventDestroy
	EventMap
	EventUnmap
	EventUpdate
)

var eventTypeNames = map[EventType]string{
	EventNothing:       "nothing",
	EventButtonPress:   "button-press",
	EventButtonRelease: "button-release",
	EventConfigure:     "configure",
	EventExpose:        "expose",
	EventClose:         "close",
	EventKeyPress:      "key-press",
	EventKeyRelease:    "key-release",
	EventText:          "text",
	EventPointerIn:     "pointer-in",
	EventPointerOut:    "pointer-out",
	EventMotion:        "motion",
	EventScroll:        "scroll",
	EventFocusIn:       "focus-in",
	EventFocusOut:      "focus-out",
	EventClient:        "client",
	EventTimer:         "timer",
	EventCreate:        "create",
	EventDestroy:       "destroy",
	EventMap:           "map",
	EventUnmap:         "unmap",
	EventUpdate:        "update",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Key codes for keys that do not produce a character. Printable keys are
// reported through the Key field of a key record instead.
const (
	KeyBackspace uint32 = 0x08
	KeyEscape    uint32 = 0x1B
	KeyDelete    uint32 = 0x7F
)

const (
	KeyF1 uint32 = 0xE000 + iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyShiftL
	KeyShiftR
	KeyCtrlL
	KeyCtrlR
	KeyAltL
	KeyAltR
	KeySuperL
	KeySuperR
	KeyMenu
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
)

// Modifier bits carried in the State field of input records.
const (
	ModShift uint32 = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Event flag bits.
const (
	FlagIsSendEvent uint32 = 1 << iota
	FlagIsHint
)

// Hint names a view configuration knob.
type Hint uint32

const (
	HintUseCompatProfile Hint = iota
	HintUseDebugContext
	HintContextVersionMajor
	HintContextVersionMinor
	HintRedBits
	HintGreenBits
	HintBlueBits
	HintAlphaBits
	HintDepthBits
	HintStencilBits
	HintSamples
	HintDoubleBuffer
	HintSwapInterval
	HintResizable
	HintIgnoreKeyRepeat
	HintRefreshRate
	NumHints
)

// Hint values. Integer hints use their plain value; negative means unknown.
const (
	DontCare int32 = -1
	False    int32 = 0
	True     int32 = 1
)

// DefaultHints returns the hint table a freshly created view starts with.
func DefaultHints() [NumHints]int32 {
	var h [NumHints]int32
	h[HintUseCompatProfile] = True
	h[HintUseDebugContext] = False
	h[HintContextVersionMajor] = 2
	h[HintContextVersionMinor] = 0
	h[HintRedBits] = 8
	h[HintGreenBits] = 8
	h[HintBlueBits] = 8
	h[HintAlphaBits] = 8
	h[HintDepthBits] = 0
	h[HintStencilBits] = 0
	h[HintSamples] = 0
	h[HintDoubleBuffer] = True
	h[HintSwapInterval] = DontCare
	h[HintResizable] = False
	h[HintIgnoreKeyRepeat] = False
	h[HintRefreshRate] = DontCare
	return h
}

// Cursor is a system mouse cursor shape.
type Cursor uint32

const (
	CursorArrow Cursor = iota
	CursorCaret
	CursorCrosshair
	CursorHand
	CursorNo
	CursorLeftRight
	CursorUpDown
)

// WorldType selects whether a world drives a whole program or a plugin
// embedded in a host.
type WorldType uint32

const (
	WorldProgram WorldType = iota
	WorldModule
)

// DrawingBackend selects what kind of drawing context expose events carry.
type DrawingBackend uint32

const (
	// StubBackend provides no drawing context at all.
	StubBackend DrawingBackend = iota
	// ImageBackend provides a draw.Image that is pushed to the window after
	// each expose.
	ImageBackend
)

// NativeWindow is the platform identifier of a realized system window.
type NativeWindow uintptr
