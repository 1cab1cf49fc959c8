package view

import (
	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/native"
)

// Route is where an inbound event is delivered
type Route int

const (
	// RouteIgnore drops the event and reports Success
	RouteIgnore Route = iota
	// RouteEvent wraps the event and calls Handler.OnEvent
	RouteEvent
	RouteFocusIn
	RouteFocusOut
	RouteTimer
	RouteClose
	RouteExpose
	RouteResize
)

var routeNames = map[Route]string{
	RouteIgnore:   "ignore",
	RouteEvent:    "event",
	RouteFocusIn:  "focus-in",
	RouteFocusOut: "focus-out",
	RouteTimer:    "timer",
	RouteClose:    "close",
	RouteExpose:   "expose",
	RouteResize:   "resize",
}

func (r Route) String() string {
	if name, ok := routeNames[r]; ok {
		return name
	}
	return "unknown"
}

// RouteOf is the fixed routing table from native event kinds to handler
// methods. Focus, timer, close, expose and configure events never reach
// OnEvent.
func RouteOf(t native.EventType) Route {
	switch t {
	case native.EventKeyPress, native.EventKeyRelease,
		native.EventButtonPress, native.EventButtonRelease,
		native.EventMotion, native.EventScroll,
		native.EventPointerIn, native.EventPointerOut:
		return RouteEvent
	case native.EventFocusIn:
		return RouteFocusIn
	case native.EventFocusOut:
		return RouteFocusOut
	case native.EventTimer:
		return RouteTimer
	case native.EventClose:
		return RouteClose
	case native.EventExpose:
		return RouteExpose
	case native.EventConfigure:
		return RouteResize
	default:
		return RouteIgnore
	}
}

// message is a translated event ready for delivery
type message struct {
	route Route
	event Event
	area  ExposeArea
	size  Size
	timer uintptr
}

// translate turns a native record into a message
func translate(ev *native.Event) message {
	m := message{route: RouteOf(ev.Type)}

	switch ev.Type {
	case native.EventKeyPress:
		key, ctx := TranslateKey(ev.Key)
		m.event = Event{Data: KeyPress{key}, Context: ctx}
	case native.EventKeyRelease:
		key, ctx := TranslateKey(ev.Key)
		m.event = Event{Data: KeyRelease{key}, Context: ctx}
	case native.EventButtonPress:
		button, ctx := TranslateButton(ev.Button)
		m.event = Event{Data: ButtonPress{button}, Context: ctx}
	case native.EventButtonRelease:
		button, ctx := TranslateButton(ev.Button)
		m.event = Event{Data: ButtonRelease{button}, Context: ctx}
	case native.EventMotion:
		motion, ctx := TranslateMotion(ev.Motion)
		m.event = Event{Data: Motion{motion}, Context: ctx}
	case native.EventScroll:
		scroll, ctx := TranslateScroll(ev.Scroll)
		m.event = Event{Data: Wheel{scroll}, Context: ctx}
	case native.EventPointerIn:
		m.event = Event{Data: PointerIn{}, Context: TranslateCrossing(ev.Crossing)}
	case native.EventPointerOut:
		m.event = Event{Data: PointerOut{}, Context: TranslateCrossing(ev.Crossing)}
	case native.EventTimer:
		m.timer = ev.Timer.ID
	case native.EventExpose:
		m.area = TranslateExpose(ev.Expose)
	case native.EventConfigure:
		m.size = TranslateConfigure(ev.Configure)
	}

	return m
}

// deliver calls the handler method m is routed to and returns the status to
// report to the toolkit
func deliver(h Handler, m message, dc DrawContext) Status {
	switch m.route {
	case RouteEvent:
		return h.OnEvent(m.event)
	case RouteFocusIn:
		if fh, ok := h.(FocusHandler); ok {
			return fh.OnFocusIn()
		}
		return Success
	case RouteFocusOut:
		if fh, ok := h.(FocusHandler); ok {
			return fh.OnFocusOut()
		}
		return Success
	case RouteTimer:
		if th, ok := h.(TimerHandler); ok {
			return th.OnTimer(m.timer)
		}
		return Success
	case RouteClose:
		h.OnCloseRequest()
		return Success
	case RouteExpose:
		h.OnExpose(m.area, dc)
		return Success
	case RouteResize:
		h.OnResize(m.size)
		return Success
	default:
		return Success
	}
}

// dispatchNative is the EventFunc installed on every native view. The bound
// handler is looked up through the view's associated handle.
func dispatchNative(nv native.View, ev *native.Event) native.Status {
	h, ok := nv.Handle().(Handler)
	if !ok {
		logger.Debugf("view: %s event without bound handler dropped", ev.Type)
		return native.StatusSuccess
	}

	m := translate(ev)
	if m.route == RouteIgnore {
		logger.Debugf("view: ignoring native event %s (%d)", ev.Type, ev.Type)
		return native.StatusSuccess
	}

	var dc DrawContext
	if m.route == RouteExpose {
		dc = nv.Context()
	}
	return deliver(h, m, dc).Native()
}
