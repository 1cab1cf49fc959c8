package native

// Rect is a position and size in screen coordinates, origin top left.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// AnyRecord is the header shared by all records.
type AnyRecord struct {
	Type  EventType
	Flags uint32
}

// KeyRecord is a key press or release.
//
// Key is the Unicode scalar the key produces, or zero for keys that do not
// produce a character, in which case Keycode holds one of the Key* codes.
type KeyRecord struct {
	Type    EventType
	Flags   uint32
	Time    float64
	X       float64
	Y       float64
	XRoot   float64
	YRoot   float64
	State   uint32
	Keycode uint32
	Key     uint32
}

// ButtonRecord is a mouse button press or release.
type ButtonRecord struct {
	Type   EventType
	Flags  uint32
	Time   float64
	X      float64
	Y      float64
	XRoot  float64
	YRoot  float64
	State  uint32
	Button uint32
}

// MotionRecord is pointer movement inside a view.
type MotionRecord struct {
	Type  EventType
	Flags uint32
	Time  float64
	X     float64
	Y     float64
	XRoot float64
	YRoot float64
	State uint32
}

// ScrollDirection is the discrete direction of a scroll record.
type ScrollDirection uint32

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
	ScrollSmooth
)

// ScrollRecord is a scroll wheel or touchpad scroll.
type ScrollRecord struct {
	Type      EventType
	Flags     uint32
	Time      float64
	X         float64
	Y         float64
	XRoot     float64
	YRoot     float64
	State     uint32
	Direction ScrollDirection
	DX        float64
	DY        float64
}

// CrossingMode tells why the pointer entered or left a view.
type CrossingMode uint32

const (
	CrossingNormal CrossingMode = iota
	CrossingGrab
	CrossingUngrab
)

// CrossingRecord is the pointer entering or leaving a view.
type CrossingRecord struct {
	Type  EventType
	Flags uint32
	Time  float64
	X     float64
	Y     float64
	XRoot float64
	YRoot float64
	State uint32
	Mode  CrossingMode
}

// FocusRecord is keyboard focus entering or leaving a view.
type FocusRecord struct {
	Type  EventType
	Flags uint32
	Mode  CrossingMode
}

// ConfigureRecord reports a new view position and size. Width and Height may
// transiently be negative during interactive resizes.
type ConfigureRecord struct {
	Type   EventType
	Flags  uint32
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ExposeRecord asks for a region of the view to be redrawn.
type ExposeRecord struct {
	Type   EventType
	Flags  uint32
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// TimerRecord is one tick of a timer started with View.StartTimer.
type TimerRecord struct {
	Type  EventType
	Flags uint32
	ID    uintptr
}

// Event is the tagged record handed to an EventFunc. Only the member that
// matches Type is meaningful.
type Event struct {
	Type      EventType
	Any       AnyRecord
	Key       KeyRecord
	Button    ButtonRecord
	Motion    MotionRecord
	Scroll    ScrollRecord
	Crossing  CrossingRecord
	Focus     FocusRecord
	Configure ConfigureRecord
	Expose    ExposeRecord
	Timer     TimerRecord
}
