package view

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/viewkit/native"
)

func TestGeometry(t *testing.T) {
	t.Run("coord arithmetic", func(t *testing.T) {
		c := Coord{X: 1, Y: 2}.Add(Coord{X: 3, Y: 4})
		assert.Equal(t, Coord{X: 4, Y: 6}, c)
		assert.Equal(t, Coord{X: 8, Y: 12}, c.Scale(2))
	})

	t.Run("size arithmetic", func(t *testing.T) {
		s := Size{W: 10, H: 5}.Add(Size{W: 1, H: 1})
		assert.Equal(t, Size{W: 11, H: 6}, s)
		assert.Equal(t, Size{W: 5.5, H: 3}, s.Scale(0.5))
		assert.Equal(t, Size{W: 0, H: 3}, Size{W: -2, H: 3}.Clamp())
	})

	t.Run("rect round trips through native", func(t *testing.T) {
		rects := []Rect{
			{},
			{Pos: Coord{X: 1.25, Y: -7.5}, Size: Size{W: 640, H: 480}},
			{Pos: Coord{X: 1e9, Y: 1e-9}, Size: Size{W: 0.1, H: 0.2}},
		}
		for _, r := range rects {
			assert.Equal(t, r, RectFromNative(r.Native()))
		}
	})
}

func TestModifiers(t *testing.T) {
	m := ModifiersFromBits(native.ModShift | native.ModAlt | 0xF0)
	assert.Equal(t, ModShift|ModAlt, m)
	assert.True(t, m.Has(ModShift))
	assert.False(t, m.Has(ModCtrl))
	assert.Equal(t, "shift+alt", m.String())
	assert.Equal(t, "none", Modifiers(0).String())
}

func TestKeyVal(t *testing.T) {
	c := Character('x')
	r, ok := c.Char()
	assert.True(t, ok)
	assert.Equal(t, 'x', r)
	_, ok = c.Special()
	assert.False(t, ok)
	assert.Equal(t, "'x'", c.String())

	s := Special(KeyEscape)
	_, ok = s.Char()
	assert.False(t, ok)
	k, ok := s.Special()
	assert.True(t, ok)
	assert.Equal(t, KeyEscape, k)
	assert.Equal(t, "Escape", s.String())

	assert.Equal(t, "SpecialKey(999)", SpecialKey(999).String())
}

func TestEvent(t *testing.T) {
	key := Key{Val: Character('q'), Modifiers: ModCtrl}
	ev := Event{
		Data:    KeyPress{key},
		Context: EventContext{Pos: Coord{X: 2, Y: 4}, PosRoot: Coord{X: 20, Y: 40}, Time: 0.5},
	}

	assert.Equal(t, "key-press", ev.Kind())
	got, ok := ev.TryKeyPress()
	require.True(t, ok)
	assert.Equal(t, key, got)
	r, ok := got.TryChar()
	assert.True(t, ok)
	assert.Equal(t, 'q', r)

	scaled := ev.ScalePos(1.5)
	assert.Equal(t, Coord{X: 3, Y: 6}, scaled.Pos())
	assert.Equal(t, Coord{X: 20, Y: 40}, scaled.PosRoot())
	assert.Equal(t, Coord{X: 2, Y: 4}, ev.Pos(), "ScalePos must not modify the receiver")

	_, ok = Event{Data: KeyRelease{key}}.TryKeyPress()
	assert.False(t, ok)
	assert.Equal(t, "none", Event{}.Kind())

	kinds := map[EventData]string{
		KeyPress{}:      "key-press",
		KeyRelease{}:    "key-release",
		ButtonPress{}:   "button-press",
		ButtonRelease{}: "button-release",
		Motion{}:        "motion",
		Wheel{}:         "scroll",
		PointerIn{}:     "pointer-in",
		PointerOut{}:    "pointer-out",
	}
	for data, want := range kinds {
		assert.Equal(t, want, Event{Data: data}.Kind())
	}
}

func TestCursor(t *testing.T) {
	for _, c := range []Cursor{CursorArrow, CursorCaret, CursorCrossHair, CursorHand, CursorNo, CursorLeftRight, CursorUpDown} {
		parsed, ok := ParseCursor(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}
	_, ok := ParseCursor("spinner")
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	t.Run("every status round trips through native", func(t *testing.T) {
		for st := Success; st <= UnsupportedType; st++ {
			assert.Equal(t, st, StatusFromNative(st.Native()), st.String())
		}
	})

	t.Run("unknown native codes are unsupported, never success", func(t *testing.T) {
		for _, code := range []native.Status{-1, 12, 99, 1 << 20} {
			assert.Equal(t, UnsupportedType, StatusFromNative(code))
		}
	})

	t.Run("err", func(t *testing.T) {
		assert.NoError(t, Success.Err())

		err := fmt.Errorf("realize: %w", BadConfiguration.Err())
		assert.True(t, errors.Is(err, BadConfiguration))
		assert.False(t, errors.Is(err, Failure))
		assert.Equal(t, "view: bad configuration", BadConfiguration.Error())
	})
}

func TestHintValues(t *testing.T) {
	assert.Equal(t, HintTrue, HintBoolFromNative(native.True))
	assert.Equal(t, HintFalse, HintBoolFromNative(native.False))
	assert.Equal(t, HintDontCare, HintBoolFromNative(native.DontCare))
	assert.Equal(t, HintDontCare, HintBoolFromNative(7))
	for _, h := range []ViewHintBool{HintTrue, HintFalse, HintDontCare} {
		assert.Equal(t, h, HintBoolFromNative(h.Native()))
	}

	v, ok := HintIntFromNative(-5).Value()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, HintIntDontCare, HintIntFromNative(native.DontCare))
	assert.Equal(t, HintValue(144), HintIntFromNative(144))
	assert.Equal(t, int32(144), HintValue(144).Native())
	assert.Equal(t, native.DontCare, HintIntDontCare.Native())
	assert.Equal(t, "dont-care", HintIntDontCare.String())
	assert.Equal(t, "0", HintValue(0).String())
}
