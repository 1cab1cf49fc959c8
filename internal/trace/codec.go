// Package trace records view events to a file and reads them back.
//
// A trace starts with a four byte magic followed by one frame per event.
// Each frame is a 4 byte big-endian length and a protobuf wire encoded event.
package trace

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/bnema/viewkit/view"
)

// Event kinds on the wire
const (
	kindKeyPress uint64 = iota + 1
	kindKeyRelease
	kindButtonPress
	kindButtonRelease
	kindMotion
	kindScroll
	kindPointerIn
	kindPointerOut
)

// Field numbers
const (
	fieldKind protowire.Number = iota + 1
	fieldTime
	fieldX
	fieldY
	fieldXRoot
	fieldYRoot
	fieldModifiers
	fieldChar
	fieldSpecial
	fieldCode
	fieldButton
	fieldFlags
	fieldDX
	fieldDY
)

var (
	// ErrUnknownKind is returned for events without a wire kind
	ErrUnknownKind = errors.New("trace: unknown event kind")
	// ErrMalformed is returned when a frame cannot be decoded
	ErrMalformed = errors.New("trace: malformed event")
)

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendUint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendKey(b []byte, k view.Key) []byte {
	if r, ok := k.Val.Char(); ok {
		// A character is always written, even NUL, so it is not mistaken
		// for a special key.
		b = protowire.AppendTag(b, fieldChar, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r))
	} else {
		special, _ := k.Val.Special()
		b = appendUint(b, fieldSpecial, uint64(special))
	}
	b = appendUint(b, fieldModifiers, uint64(k.Modifiers))
	return appendUint(b, fieldCode, uint64(k.Code))
}

func appendButton(b []byte, m view.MouseButton) []byte {
	b = appendUint(b, fieldButton, uint64(m.Num))
	return appendUint(b, fieldModifiers, uint64(m.Modifiers))
}

// Marshal encodes one event
func Marshal(ev view.Event) ([]byte, error) {
	var kind uint64
	var body []byte

	switch d := ev.Data.(type) {
	case view.KeyPress:
		kind, body = kindKeyPress, appendKey(nil, d.Key)
	case view.KeyRelease:
		kind, body = kindKeyRelease, appendKey(nil, d.Key)
	case view.ButtonPress:
		kind, body = kindButtonPress, appendButton(nil, d.MouseButton)
	case view.ButtonRelease:
		kind, body = kindButtonRelease, appendButton(nil, d.MouseButton)
	case view.Motion:
		kind = kindMotion
		body = appendUint(body, fieldModifiers, uint64(d.Modifiers))
		body = appendUint(body, fieldFlags, uint64(d.Flags))
	case view.Wheel:
		kind = kindScroll
		body = appendUint(body, fieldModifiers, uint64(d.Modifiers))
		body = appendDouble(body, fieldDX, d.DX)
		body = appendDouble(body, fieldDY, d.DY)
	case view.PointerIn:
		kind = kindPointerIn
	case view.PointerOut:
		kind = kindPointerOut
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, ev.Kind())
	}

	b := protowire.AppendTag(nil, fieldKind, protowire.VarintType)
	b = protowire.AppendVarint(b, kind)
	b = appendDouble(b, fieldTime, ev.Context.Time)
	b = appendDouble(b, fieldX, ev.Context.Pos.X)
	b = appendDouble(b, fieldY, ev.Context.Pos.Y)
	b = appendDouble(b, fieldXRoot, ev.Context.PosRoot.X)
	b = appendDouble(b, fieldYRoot, ev.Context.PosRoot.Y)
	return append(b, body...), nil
}

// fields holds the decoded values of one event
type fields struct {
	kind      uint64
	ctx       view.EventContext
	modifiers uint64
	char      uint64
	hasChar   bool
	special   uint64
	code      uint64
	button    uint64
	flags     uint64
	dx, dy    float64
}

func (f *fields) setDouble(num protowire.Number, v float64) {
	switch num {
	case fieldTime:
		f.ctx.Time = v
	case fieldX:
		f.ctx.Pos.X = v
	case fieldY:
		f.ctx.Pos.Y = v
	case fieldXRoot:
		f.ctx.PosRoot.X = v
	case fieldYRoot:
		f.ctx.PosRoot.Y = v
	case fieldDX:
		f.dx = v
	case fieldDY:
		f.dy = v
	}
}

func (f *fields) setUint(num protowire.Number, v uint64) {
	switch num {
	case fieldKind:
		f.kind = v
	case fieldModifiers:
		f.modifiers = v
	case fieldChar:
		f.char, f.hasChar = v, true
	case fieldSpecial:
		f.special = v
	case fieldCode:
		f.code = v
	case fieldButton:
		f.button = v
	case fieldFlags:
		f.flags = v
	}
}

func (f *fields) key() view.Key {
	k := view.Key{
		Modifiers: view.ModifiersFromBits(uint32(f.modifiers)),
		Code:      uint32(f.code),
	}
	if f.hasChar {
		k.Val = view.Character(rune(f.char))
	} else {
		k.Val = view.Special(view.SpecialKey(f.special))
	}
	return k
}

func (f *fields) mouseButton() view.MouseButton {
	return view.MouseButton{Num: uint32(f.button), Modifiers: view.ModifiersFromBits(uint32(f.modifiers))}
}

// Unmarshal decodes one event. Unknown fields are skipped.
func Unmarshal(b []byte) (view.Event, error) {
	var f fields
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return view.Event{}, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return view.Event{}, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			f.setUint(num, v)
			b = b[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return view.Event{}, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			f.setDouble(num, math.Float64frombits(v))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return view.Event{}, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	ev := view.Event{Context: f.ctx}
	mods := view.ModifiersFromBits(uint32(f.modifiers))
	switch f.kind {
	case kindKeyPress:
		ev.Data = view.KeyPress{Key: f.key()}
	case kindKeyRelease:
		ev.Data = view.KeyRelease{Key: f.key()}
	case kindButtonPress:
		ev.Data = view.ButtonPress{MouseButton: f.mouseButton()}
	case kindButtonRelease:
		ev.Data = view.ButtonRelease{MouseButton: f.mouseButton()}
	case kindMotion:
		ev.Data = view.Motion{MotionContext: view.MotionContext{
			Modifiers: mods,
			Flags:     view.EventFlagsFromBits(uint32(f.flags)),
		}}
	case kindScroll:
		ev.Data = view.Wheel{Scroll: view.Scroll{DX: f.dx, DY: f.dy, Modifiers: mods}}
	case kindPointerIn:
		ev.Data = view.PointerIn{}
	case kindPointerOut:
		ev.Data = view.PointerOut{}
	default:
		return view.Event{}, fmt.Errorf("%w: %d", ErrUnknownKind, f.kind)
	}
	return ev, nil
}
