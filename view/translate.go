package view

import (
	"unicode"
	"unicode/utf8"

	"github.com/bnema/viewkit/native"
)

// The Translate* functions map one native record shape each. They have no
// side effects and never fail: unknown key codes become KeyNone and invalid
// Unicode scalars become U+FFFD.

// TranslateSpecialKey maps a native key code, falling back to KeyNone
func TranslateSpecialKey(code uint32) SpecialKey {
	if k, ok := specialKeys[code]; ok {
		return k
	}
	return KeyNone
}

// TranslateKeyVal decodes the key of a key record. A zero Key field means
// the key has no character and Keycode names a special key.
func TranslateKeyVal(ke native.KeyRecord) KeyVal {
	if ke.Key == 0 {
		return Special(TranslateSpecialKey(ke.Keycode))
	}
	r := rune(ke.Key)
	if !utf8.ValidRune(r) {
		r = unicode.ReplacementChar
	}
	return Character(r)
}

// TranslateKey maps a key press or release record
func TranslateKey(ke native.KeyRecord) (Key, EventContext) {
	key := Key{
		Val:       TranslateKeyVal(ke),
		Modifiers: ModifiersFromBits(ke.State),
		Code:      ke.Keycode,
	}
	ctx := EventContext{
		Pos:     Coord{X: ke.X, Y: ke.Y},
		PosRoot: Coord{X: ke.XRoot, Y: ke.YRoot},
		Time:    ke.Time,
	}
	return key, ctx
}

// TranslateButton maps a button press or release record
func TranslateButton(be native.ButtonRecord) (MouseButton, EventContext) {
	button := MouseButton{
		Num:       be.Button,
		Modifiers: ModifiersFromBits(be.State),
	}
	ctx := EventContext{
		Pos:     Coord{X: be.X, Y: be.Y},
		PosRoot: Coord{X: be.XRoot, Y: be.YRoot},
		Time:    be.Time,
	}
	return button, ctx
}

// TranslateMotion maps a pointer motion record
func TranslateMotion(me native.MotionRecord) (MotionContext, EventContext) {
	motion := MotionContext{
		Modifiers: ModifiersFromBits(me.State),
		Flags:     EventFlagsFromBits(me.Flags),
	}
	ctx := EventContext{
		Pos:     Coord{X: me.X, Y: me.Y},
		PosRoot: Coord{X: me.XRoot, Y: me.YRoot},
		Time:    me.Time,
	}
	return motion, ctx
}

// TranslateScroll maps a scroll record
func TranslateScroll(se native.ScrollRecord) (Scroll, EventContext) {
	scroll := Scroll{
		DX:        se.DX,
		DY:        se.DY,
		Modifiers: ModifiersFromBits(se.State),
	}
	ctx := EventContext{
		Pos:     Coord{X: se.X, Y: se.Y},
		PosRoot: Coord{X: se.XRoot, Y: se.YRoot},
		Time:    se.Time,
	}
	return scroll, ctx
}

// TranslateCrossing maps a pointer enter or leave record
func TranslateCrossing(ce native.CrossingRecord) EventContext {
	return EventContext{
		Pos:     Coord{X: ce.X, Y: ce.Y},
		PosRoot: Coord{X: ce.XRoot, Y: ce.YRoot},
		Time:    ce.Time,
	}
}

// TranslateExpose maps an expose record
func TranslateExpose(ee native.ExposeRecord) ExposeArea {
	return ExposeArea{
		Pos:  Coord{X: ee.X, Y: ee.Y},
		Size: Size{W: ee.Width, H: ee.Height},
	}
}

// TranslateConfigure maps a configure record to the new view size. The size
// is passed through unclamped.
func TranslateConfigure(ce native.ConfigureRecord) Size {
	return Size{W: ce.Width, H: ce.Height}
}
