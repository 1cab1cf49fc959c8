package view

import (
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/viewkit/native"
)

func TestTranslateSpecialKey(t *testing.T) {
	tests := []struct {
		code uint32
		want SpecialKey
	}{
		{native.KeyBackspace, KeyBackspace},
		{native.KeyEscape, KeyEscape},
		{native.KeyDelete, KeyDelete},
		{native.KeyF1, KeyF1},
		{native.KeyF12, KeyF12},
		{native.KeyLeft, KeyLeft},
		{native.KeyPageDown, KeyPageDown},
		{native.KeyShiftL, KeyShiftL},
		{native.KeySuperR, KeySuperR},
		{native.KeyPause, KeyPause},
		{42, KeyNone},
		{0, KeyNone},
		{0xFFFF_FFFF, KeyNone},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateSpecialKey(tt.code))
		})
	}
}

func TestSpecialKeyTableIsComplete(t *testing.T) {
	// every named key except None has exactly one native code
	seen := make(map[SpecialKey]uint32)
	for code, k := range specialKeys {
		prev, dup := seen[k]
		require.False(t, dup, "%s mapped from %#x and %#x", k, prev, code)
		seen[k] = code
	}
	assert.Len(t, seen, len(specialKeyNames)-1)
	assert.NotContains(t, seen, KeyNone)
}

func TestTranslateKeyVal(t *testing.T) {
	t.Run("zero key field is special", func(t *testing.T) {
		kv := TranslateKeyVal(native.KeyRecord{Keycode: native.KeyF5})
		sk, ok := kv.Special()
		require.True(t, ok)
		assert.Equal(t, KeyF5, sk)
		_, isChar := kv.Char()
		assert.False(t, isChar)
	})

	t.Run("unknown special code falls back to none", func(t *testing.T) {
		kv := TranslateKeyVal(native.KeyRecord{Keycode: 42})
		assert.Equal(t, Special(KeyNone), kv)
	})

	t.Run("non-zero key field is a character", func(t *testing.T) {
		for _, r := range []rune{'a', 'Z', '€', '😀', 0x7F} {
			kv := TranslateKeyVal(native.KeyRecord{Key: uint32(r), Keycode: 38})
			c, ok := kv.Char()
			require.True(t, ok)
			assert.Equal(t, r, c)
		}
	})

	t.Run("invalid scalars become the replacement character", func(t *testing.T) {
		for _, v := range []uint32{0xD800, 0xDFFF, 0x110000, 0xFFFF_FFFF} {
			kv := TranslateKeyVal(native.KeyRecord{Key: v})
			c, ok := kv.Char()
			require.True(t, ok)
			assert.Equal(t, unicode.ReplacementChar, c)
		}
	})
}

func TestTranslateKey(t *testing.T) {
	key, ctx := TranslateKey(native.KeyRecord{
		Type:    native.EventKeyPress,
		Time:    1.5,
		X:       10,
		Y:       20,
		XRoot:   110,
		YRoot:   220,
		State:   native.ModShift | native.ModCtrl | 0x100,
		Keycode: 38,
		Key:     'A',
	})

	want := Key{Val: Character('A'), Modifiers: ModShift | ModCtrl, Code: 38}
	if diff := cmp.Diff(want, key, cmp.AllowUnexported(KeyVal{})); diff != "" {
		t.Errorf("TranslateKey() key mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, EventContext{Pos: Coord{10, 20}, PosRoot: Coord{110, 220}, Time: 1.5}, ctx)
}

func TestTranslatePointerRecords(t *testing.T) {
	t.Run("button", func(t *testing.T) {
		b, ctx := TranslateButton(native.ButtonRecord{X: 3, Y: 4, XRoot: 5, YRoot: 6, Time: 2, State: native.ModAlt, Button: 3})
		assert.Equal(t, MouseButton{Num: 3, Modifiers: ModAlt}, b)
		assert.Equal(t, Coord{3, 4}, ctx.Pos)
		assert.Equal(t, Coord{5, 6}, ctx.PosRoot)
		assert.Equal(t, 2.0, ctx.Time)
	})

	t.Run("motion keeps flags", func(t *testing.T) {
		m, ctx := TranslateMotion(native.MotionRecord{X: 1, Y: 2, Flags: native.FlagIsHint | 0x80, State: native.ModSuper})
		assert.Equal(t, MotionContext{Modifiers: ModSuper, Flags: FlagIsHint}, m)
		assert.True(t, m.Flags.Has(FlagIsHint))
		assert.False(t, m.Flags.Has(FlagSendEvent))
		assert.Equal(t, Coord{1, 2}, ctx.Pos)
	})

	t.Run("scroll", func(t *testing.T) {
		s, ctx := TranslateScroll(native.ScrollRecord{X: 7, Y: 8, DX: -0.5, DY: 1, Direction: native.ScrollSmooth})
		assert.Equal(t, Scroll{DX: -0.5, DY: 1}, s)
		assert.Equal(t, Coord{7, 8}, ctx.Pos)
	})

	t.Run("crossing", func(t *testing.T) {
		ctx := TranslateCrossing(native.CrossingRecord{X: 9, Y: 10, XRoot: 11, YRoot: 12, Time: 0.25})
		assert.Equal(t, EventContext{Pos: Coord{9, 10}, PosRoot: Coord{11, 12}, Time: 0.25}, ctx)
	})
}

func TestTranslateExposeAndConfigure(t *testing.T) {
	area := TranslateExpose(native.ExposeRecord{X: 1, Y: 2, Width: 30, Height: 40})
	assert.Equal(t, ExposeArea{Pos: Coord{1, 2}, Size: Size{30, 40}}, area)

	// negative sizes during a resize are passed through
	size := TranslateConfigure(native.ConfigureRecord{Width: -3, Height: 12})
	assert.Equal(t, Size{-3, 12}, size)
	assert.Equal(t, Size{0, 12}, size.Clamp())
}
