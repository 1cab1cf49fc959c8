package view

// recorder is a Handler that records every callback it receives
type recorder struct {
	handle Handle

	events   []Event
	exposes  []ExposeArea
	contexts []DrawContext
	resizes  []Size
	closes   int

	eventStatus Status
}

func newRecorder(h Handle) *recorder {
	return &recorder{handle: h}
}

func (r *recorder) OnEvent(ev Event) Status {
	r.events = append(r.events, ev)
	return r.eventStatus
}

func (r *recorder) OnExpose(area ExposeArea, dc DrawContext) {
	r.exposes = append(r.exposes, area)
	r.contexts = append(r.contexts, dc)
}

func (r *recorder) OnResize(size Size) {
	r.resizes = append(r.resizes, size)
}

func (r *recorder) OnCloseRequest() {
	r.closes++
}

func (r *recorder) ViewHandle() Handle {
	return r.handle
}

// focusRecorder also receives focus and timer events
type focusRecorder struct {
	recorder

	focusIn  int
	focusOut int
	ticks    []uintptr
}

func newFocusRecorder(h Handle) *focusRecorder {
	return &focusRecorder{recorder: recorder{handle: h}}
}

func (r *focusRecorder) OnFocusIn() Status {
	r.focusIn++
	return Success
}

func (r *focusRecorder) OnFocusOut() Status {
	r.focusOut++
	return Failure
}

func (r *focusRecorder) OnTimer(id uintptr) Status {
	r.ticks = append(r.ticks, id)
	return Success
}

func clickAt(x, y float64, num uint32) Event {
	return Event{
		Data:    ButtonPress{MouseButton{Num: num}},
		Context: EventContext{Pos: Coord{X: x, Y: y}},
	}
}

func releaseAt(x, y float64, num uint32) Event {
	return Event{
		Data:    ButtonRelease{MouseButton{Num: num}},
		Context: EventContext{Pos: Coord{X: x, Y: y}},
	}
}
