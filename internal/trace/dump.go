package trace

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bnema/viewkit/view"
)

// Entry is the readable form of a recorded event
type Entry struct {
	Kind      string     `yaml:"kind"`
	Time      float64    `yaml:"time"`
	Pos       [2]float64 `yaml:"pos,flow"`
	PosRoot   [2]float64 `yaml:"pos_root,flow"`
	Modifiers string     `yaml:"modifiers,omitempty"`
	Key       string     `yaml:"key,omitempty"`
	Code      uint32     `yaml:"code,omitempty"`
	Button    uint32     `yaml:"button,omitempty"`
	Hint      bool       `yaml:"hint,omitempty"`
	Scroll    []float64  `yaml:"scroll,flow,omitempty"`
}

// NewEntry describes ev
func NewEntry(ev view.Event) Entry {
	e := Entry{
		Kind:    ev.Kind(),
		Time:    ev.Context.Time,
		Pos:     [2]float64{ev.Context.Pos.X, ev.Context.Pos.Y},
		PosRoot: [2]float64{ev.Context.PosRoot.X, ev.Context.PosRoot.Y},
	}

	var mods view.Modifiers
	switch d := ev.Data.(type) {
	case view.KeyPress:
		e.Key, e.Code, mods = d.Val.String(), d.Code, d.Modifiers
	case view.KeyRelease:
		e.Key, e.Code, mods = d.Val.String(), d.Code, d.Modifiers
	case view.ButtonPress:
		e.Button, mods = d.Num, d.Modifiers
	case view.ButtonRelease:
		e.Button, mods = d.Num, d.Modifiers
	case view.Motion:
		mods = d.Modifiers
		e.Hint = d.Flags.Has(view.FlagIsHint)
	case view.Wheel:
		mods = d.Modifiers
		e.Scroll = []float64{d.DX, d.DY}
	}
	if mods != 0 {
		e.Modifiers = mods.String()
	}
	return e
}

// Dump writes events as a YAML sequence
func Dump(w io.Writer, events []view.Event) error {
	entries := make([]Entry, len(events))
	for i, ev := range events {
		entries[i] = NewEntry(ev)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return enc.Close()
}
