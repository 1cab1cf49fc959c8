package view

import "github.com/bnema/viewkit/native"

// fakeToolkit is a native.Toolkit that records calls into a shared log
type fakeToolkit struct {
	log []string

	worldErr   error
	viewErr    error
	drawStatus native.Status

	world *fakeWorld
}

func (tk *fakeToolkit) Name() string { return "fake" }

func (tk *fakeToolkit) NewWorld(t native.WorldType) (native.World, error) {
	if tk.worldErr != nil {
		return nil, tk.worldErr
	}
	tk.log = append(tk.log, "world.new")
	tk.world = &fakeWorld{tk: tk}
	return tk.world, nil
}

type fakeWorld struct {
	tk    *fakeToolkit
	view  *fakeView
	queue []native.Event

	updateTimeouts []float64
}

func (w *fakeWorld) NewView() (native.View, error) {
	if w.tk.viewErr != nil {
		return nil, w.tk.viewErr
	}
	w.tk.log = append(w.tk.log, "view.new")
	w.view = &fakeView{world: w, hints: native.DefaultHints(), timers: map[uintptr]float64{}}
	return w.view, nil
}

// Update dispatches every queued record, like a toolkit draining ready
// events
func (w *fakeWorld) Update(timeout float64) native.Status {
	w.updateTimeouts = append(w.updateTimeouts, timeout)
	if len(w.queue) == 0 {
		return native.StatusFailure
	}
	queue := w.queue
	w.queue = nil
	for i := range queue {
		if w.view.eventFunc != nil {
			w.view.eventFunc(w.view, &queue[i])
		}
	}
	return native.StatusSuccess
}

func (w *fakeWorld) Free() {
	w.tk.log = append(w.tk.log, "world.free")
}

type fakeView struct {
	world *fakeWorld

	handle    any
	eventFunc native.EventFunc
	drawing   native.DrawingBackend
	parent    native.NativeWindow
	hints     [native.NumHints]int32
	frame     native.Rect
	defW      int
	defH      int
	title     string
	realized  bool
	visible   bool
	cursor    native.Cursor
	timers    map[uintptr]float64
	context   any
	redraws   int
}

func (v *fakeView) World() native.World { return v.world }

func (v *fakeView) SetHandle(h any) {
	if h == nil {
		v.world.tk.log = append(v.world.tk.log, "handle.release")
	} else {
		v.world.tk.log = append(v.world.tk.log, "handle.bind")
	}
	v.handle = h
}

func (v *fakeView) Handle() any { return v.handle }

func (v *fakeView) SetEventFunc(f native.EventFunc) native.Status {
	v.eventFunc = f
	return native.StatusSuccess
}

func (v *fakeView) SetDrawingBackend(b native.DrawingBackend) native.Status {
	v.drawing = b
	return v.world.tk.drawStatus
}

func (v *fakeView) SetParentWindow(p native.NativeWindow) native.Status {
	v.parent = p
	return native.StatusSuccess
}

func (v *fakeView) SetHint(h native.Hint, value int32) native.Status {
	if h >= native.NumHints {
		return native.StatusBadParameter
	}
	v.hints[h] = value
	return native.StatusSuccess
}

func (v *fakeView) GetHint(h native.Hint) int32 {
	if h >= native.NumHints {
		return native.DontCare
	}
	return v.hints[h]
}

func (v *fakeView) Frame() native.Rect { return v.frame }

func (v *fakeView) SetFrame(r native.Rect) native.Status {
	v.frame = r
	return native.StatusSuccess
}

func (v *fakeView) SetDefaultSize(w, h int) native.Status {
	v.defW, v.defH = w, h
	return native.StatusSuccess
}

func (v *fakeView) SetMinSize(w, h int) native.Status { return native.StatusSuccess }
func (v *fakeView) SetMaxSize(w, h int) native.Status { return native.StatusSuccess }

func (v *fakeView) SetAspectRatio(minX, minY, maxX, maxY int) native.Status {
	return native.StatusSuccess
}

func (v *fakeView) SetWindowTitle(title string) native.Status {
	v.title = title
	return native.StatusSuccess
}

func (v *fakeView) Realize() native.Status {
	v.world.tk.log = append(v.world.tk.log, "view.realize")
	v.realized = true
	v.frame.Width, v.frame.Height = float64(v.defW), float64(v.defH)
	v.hints[native.HintRefreshRate] = 75
	return native.StatusSuccess
}

func (v *fakeView) Show() native.Status {
	v.world.tk.log = append(v.world.tk.log, "view.show")
	v.visible = true
	return native.StatusSuccess
}

func (v *fakeView) Hide() native.Status {
	v.visible = false
	return native.StatusSuccess
}

func (v *fakeView) Visible() bool { return v.visible }

func (v *fakeView) SetCursor(c native.Cursor) native.Status {
	v.cursor = c
	return native.StatusSuccess
}

func (v *fakeView) PostRedisplay() native.Status {
	v.redraws++
	return native.StatusSuccess
}

func (v *fakeView) PostRedisplayRect(r native.Rect) native.Status {
	v.redraws++
	return native.StatusSuccess
}

func (v *fakeView) StartTimer(id uintptr, period float64) native.Status {
	v.timers[id] = period
	return native.StatusSuccess
}

func (v *fakeView) StopTimer(id uintptr) native.Status {
	if _, ok := v.timers[id]; !ok {
		return native.StatusFailure
	}
	delete(v.timers, id)
	return native.StatusSuccess
}

func (v *fakeView) NativeWindow() native.NativeWindow {
	if !v.realized {
		return 0
	}
	return 0x2a00001
}

func (v *fakeView) Context() any { return v.context }

func (v *fakeView) Free() {
	v.world.tk.log = append(v.world.tk.log, "view.free")
}
