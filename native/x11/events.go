package x11

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/bnema/viewkit/native"
)

// translator converts X events to native records
type translator struct {
	keys        keymap
	wmProtocols xproto.Atom
	wmDelete    xproto.Atom
}

// eventWindow returns the window an X event is addressed to
func eventWindow(ev xgb.Event) (xproto.Window, bool) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return e.Event, true
	case xproto.KeyReleaseEvent:
		return e.Event, true
	case xproto.ButtonPressEvent:
		return e.Event, true
	case xproto.ButtonReleaseEvent:
		return e.Event, true
	case xproto.MotionNotifyEvent:
		return e.Event, true
	case xproto.EnterNotifyEvent:
		return e.Event, true
	case xproto.LeaveNotifyEvent:
		return e.Event, true
	case xproto.FocusInEvent:
		return e.Event, true
	case xproto.FocusOutEvent:
		return e.Event, true
	case xproto.ExposeEvent:
		return e.Window, true
	case xproto.ConfigureNotifyEvent:
		return e.Window, true
	case xproto.MapNotifyEvent:
		return e.Window, true
	case xproto.UnmapNotifyEvent:
		return e.Window, true
	case xproto.ClientMessageEvent:
		return e.Window, true
	default:
		return 0, false
	}
}

func seconds(t xproto.Timestamp) float64 {
	return float64(t) / 1000
}

// translate maps one X event. It returns false for events that have no
// native record, such as releases of scroll buttons.
func (tr translator) translate(ev xgb.Event) (native.Event, bool) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return tr.key(native.EventKeyPress, e), true
	case xproto.KeyReleaseEvent:
		return tr.key(native.EventKeyRelease, xproto.KeyPressEvent(e)), true
	case xproto.ButtonPressEvent:
		return button(native.EventButtonPress, e)
	case xproto.ButtonReleaseEvent:
		return button(native.EventButtonRelease, xproto.ButtonPressEvent(e))
	case xproto.MotionNotifyEvent:
		return motion(e), true
	case xproto.EnterNotifyEvent:
		return crossing(native.EventPointerIn, e), true
	case xproto.LeaveNotifyEvent:
		return crossing(native.EventPointerOut, xproto.EnterNotifyEvent(e)), true
	case xproto.FocusInEvent:
		return focus(native.EventFocusIn, e), true
	case xproto.FocusOutEvent:
		return focus(native.EventFocusOut, xproto.FocusInEvent(e)), true
	case xproto.ExposeEvent:
		return native.Event{
			Type: native.EventExpose,
			Expose: native.ExposeRecord{
				Type:   native.EventExpose,
				X:      float64(e.X),
				Y:      float64(e.Y),
				Width:  float64(e.Width),
				Height: float64(e.Height),
			},
		}, true
	case xproto.ConfigureNotifyEvent:
		return native.Event{
			Type: native.EventConfigure,
			Configure: native.ConfigureRecord{
				Type:   native.EventConfigure,
				X:      float64(e.X),
				Y:      float64(e.Y),
				Width:  float64(e.Width),
				Height: float64(e.Height),
			},
		}, true
	case xproto.MapNotifyEvent:
		return native.Event{Type: native.EventMap, Any: native.AnyRecord{Type: native.EventMap}}, true
	case xproto.UnmapNotifyEvent:
		return native.Event{Type: native.EventUnmap, Any: native.AnyRecord{Type: native.EventUnmap}}, true
	case xproto.ClientMessageEvent:
		if e.Type == tr.wmProtocols && e.Format == 32 && len(e.Data.Data32) > 0 &&
			xproto.Atom(e.Data.Data32[0]) == tr.wmDelete {
			return native.Event{Type: native.EventClose, Any: native.AnyRecord{Type: native.EventClose}}, true
		}
		return native.Event{Type: native.EventClient, Any: native.AnyRecord{Type: native.EventClient}}, true
	default:
		return native.Event{}, false
	}
}

func (tr translator) key(t native.EventType, e xproto.KeyPressEvent) native.Event {
	sym := tr.keys.lookup(e.Detail, e.State)
	char, special := keysymToKey(sym)

	rec := native.KeyRecord{
		Type:    t,
		Time:    seconds(e.Time),
		X:       float64(e.EventX),
		Y:       float64(e.EventY),
		XRoot:   float64(e.RootX),
		YRoot:   float64(e.RootY),
		State:   modifiers(e.State),
		Keycode: uint32(e.Detail),
		Key:     char,
	}
	if char == 0 {
		rec.Keycode = special
	}
	return native.Event{Type: t, Key: rec}
}

// button maps a button record. Buttons 4 to 7 are scroll wheel detents and
// only their presses are reported, as scroll records. Buttons above 7 are
// renumbered to follow the first three.
func button(t native.EventType, e xproto.ButtonPressEvent) (native.Event, bool) {
	num := uint32(e.Detail)
	if num >= 4 && num <= 7 {
		if t != native.EventButtonPress {
			return native.Event{}, false
		}
		return scroll(e), true
	}
	if num > 7 {
		num -= 4
	}

	return native.Event{
		Type: t,
		Button: native.ButtonRecord{
			Type:   t,
			Time:   seconds(e.Time),
			X:      float64(e.EventX),
			Y:      float64(e.EventY),
			XRoot:  float64(e.RootX),
			YRoot:  float64(e.RootY),
			State:  modifiers(e.State),
			Button: num,
		},
	}, true
}

func scroll(e xproto.ButtonPressEvent) native.Event {
	rec := native.ScrollRecord{
		Type:  native.EventScroll,
		Time:  seconds(e.Time),
		X:     float64(e.EventX),
		Y:     float64(e.EventY),
		XRoot: float64(e.RootX),
		YRoot: float64(e.RootY),
		State: modifiers(e.State),
	}
	switch e.Detail {
	case 4:
		rec.Direction, rec.DY = native.ScrollUp, 1
	case 5:
		rec.Direction, rec.DY = native.ScrollDown, -1
	case 6:
		rec.Direction, rec.DX = native.ScrollLeft, -1
	case 7:
		rec.Direction, rec.DX = native.ScrollRight, 1
	}
	return native.Event{Type: native.EventScroll, Scroll: rec}
}

func motion(e xproto.MotionNotifyEvent) native.Event {
	var flags uint32
	if e.Detail == xproto.MotionHint {
		flags |= native.FlagIsHint
	}
	return native.Event{
		Type: native.EventMotion,
		Motion: native.MotionRecord{
			Type:  native.EventMotion,
			Flags: flags,
			Time:  seconds(e.Time),
			X:     float64(e.EventX),
			Y:     float64(e.EventY),
			XRoot: float64(e.RootX),
			YRoot: float64(e.RootY),
			State: modifiers(e.State),
		},
	}
}

func crossingMode(mode byte) native.CrossingMode {
	switch mode {
	case xproto.NotifyModeGrab:
		return native.CrossingGrab
	case xproto.NotifyModeUngrab:
		return native.CrossingUngrab
	default:
		return native.CrossingNormal
	}
}

func crossing(t native.EventType, e xproto.EnterNotifyEvent) native.Event {
	return native.Event{
		Type: t,
		Crossing: native.CrossingRecord{
			Type:  t,
			Time:  seconds(e.Time),
			X:     float64(e.EventX),
			Y:     float64(e.EventY),
			XRoot: float64(e.RootX),
			YRoot: float64(e.RootY),
			State: modifiers(e.State),
			Mode:  crossingMode(e.Mode),
		},
	}
}

func focus(t native.EventType, e xproto.FocusInEvent) native.Event {
	return native.Event{
		Type:  t,
		Focus: native.FocusRecord{Type: t, Mode: crossingMode(e.Mode)},
	}
}

// isRepeat reports whether a key release is the first half of an auto
// repeat, which X reports as a release and a press with the same keycode and
// timestamp.
func isRepeat(release xproto.KeyReleaseEvent, next xgb.Event) bool {
	press, ok := next.(xproto.KeyPressEvent)
	return ok && press.Detail == release.Detail && press.Time == release.Time && press.Event == release.Event
}
