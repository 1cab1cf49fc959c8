package view

import (
	"fmt"
	"strings"

	"github.com/bnema/viewkit/native"
)

// SpecialKey is a key that does not produce a character
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyBackspace
	KeyEscape
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyShiftL
	KeyShiftR
	KeyCtrlL
	KeyCtrlR
	KeyAltL
	KeyAltR
	KeySuperL
	KeySuperR
	KeyMenu
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
)

var specialKeys = map[uint32]SpecialKey{
	native.KeyBackspace:   KeyBackspace,
	native.KeyEscape:      KeyEscape,
	native.KeyDelete:      KeyDelete,
	native.KeyF1:          KeyF1,
	native.KeyF2:          KeyF2,
	native.KeyF3:          KeyF3,
	native.KeyF4:          KeyF4,
	native.KeyF5:          KeyF5,
	native.KeyF6:          KeyF6,
	native.KeyF7:          KeyF7,
	native.KeyF8:          KeyF8,
	native.KeyF9:          KeyF9,
	native.KeyF10:         KeyF10,
	native.KeyF11:         KeyF11,
	native.KeyF12:         KeyF12,
	native.KeyLeft:        KeyLeft,
	native.KeyUp:          KeyUp,
	native.KeyRight:       KeyRight,
	native.KeyDown:        KeyDown,
	native.KeyPageUp:      KeyPageUp,
	native.KeyPageDown:    KeyPageDown,
	native.KeyHome:        KeyHome,
	native.KeyEnd:         KeyEnd,
	native.KeyInsert:      KeyInsert,
	native.KeyShiftL:      KeyShiftL,
	native.KeyShiftR:      KeyShiftR,
	native.KeyCtrlL:       KeyCtrlL,
	native.KeyCtrlR:       KeyCtrlR,
	native.KeyAltL:        KeyAltL,
	native.KeyAltR:        KeyAltR,
	native.KeySuperL:      KeySuperL,
	native.KeySuperR:      KeySuperR,
	native.KeyMenu:        KeyMenu,
	native.KeyCapsLock:    KeyCapsLock,
	native.KeyScrollLock:  KeyScrollLock,
	native.KeyNumLock:     KeyNumLock,
	native.KeyPrintScreen: KeyPrintScreen,
	native.KeyPause:       KeyPause,
}

var specialKeyNames = [...]string{
	"None", "Backspace", "Escape", "Delete",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Left", "Up", "Right", "Down", "PageUp", "PageDown", "Home", "End", "Insert",
	"ShiftL", "ShiftR", "CtrlL", "CtrlR", "AltL", "AltR", "SuperL", "SuperR",
	"Menu", "CapsLock", "ScrollLock", "NumLock", "PrintScreen", "Pause",
}

func (k SpecialKey) String() string {
	if k < 0 || int(k) >= len(specialKeyNames) {
		return fmt.Sprintf("SpecialKey(%d)", int(k))
	}
	return specialKeyNames[k]
}

// Modifiers is the set of keyboard modifiers held during an event
type Modifiers uint32

const (
	ModShift Modifiers = Modifiers(native.ModShift)
	ModCtrl  Modifiers = Modifiers(native.ModCtrl)
	ModAlt   Modifiers = Modifiers(native.ModAlt)
	ModSuper Modifiers = Modifiers(native.ModSuper)

	modAll = ModShift | ModCtrl | ModAlt | ModSuper
)

// ModifiersFromBits keeps the known modifier bits and drops the rest
func ModifiersFromBits(bits uint32) Modifiers {
	return Modifiers(bits) & modAll
}

// Has reports whether all modifiers in o are set
func (m Modifiers) Has(o Modifiers) bool {
	return m&o == o
}

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, mod := range []struct {
		bit  Modifiers
		name string
	}{
		{ModShift, "shift"}, {ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModSuper, "super"},
	} {
		if m.Has(mod.bit) {
			parts = append(parts, mod.name)
		}
	}
	return strings.Join(parts, "+")
}

// EventFlags qualifies how an event was produced
type EventFlags uint32

const (
	FlagSendEvent EventFlags = EventFlags(native.FlagIsSendEvent)
	FlagIsHint    EventFlags = EventFlags(native.FlagIsHint)

	flagsAll = FlagSendEvent | FlagIsHint
)

// EventFlagsFromBits keeps the known flag bits and drops the rest
func EventFlagsFromBits(bits uint32) EventFlags {
	return EventFlags(bits) & flagsAll
}

// Has reports whether all flags in o are set
func (f EventFlags) Has(o EventFlags) bool {
	return f&o == o
}

// KeyVal is either a character or a special key, never both
type KeyVal struct {
	char    rune
	special SpecialKey
	isChar  bool
}

// Character returns the KeyVal for a character key
func Character(r rune) KeyVal {
	return KeyVal{char: r, isChar: true}
}

// Special returns the KeyVal for a non-character key
func Special(k SpecialKey) KeyVal {
	return KeyVal{special: k}
}

// Char returns the character if k is a character key
func (k KeyVal) Char() (rune, bool) {
	return k.char, k.isChar
}

// Special returns the special key if k is not a character key
func (k KeyVal) Special() (SpecialKey, bool) {
	return k.special, !k.isChar
}

func (k KeyVal) String() string {
	if k.isChar {
		return fmt.Sprintf("%q", k.char)
	}
	return k.special.String()
}

// Key is a keyboard key together with its modifiers and system key code
type Key struct {
	Val       KeyVal
	Modifiers Modifiers
	Code      uint32
}

// TryChar returns the character if the key is a character key
func (k Key) TryChar() (rune, bool) {
	return k.Val.Char()
}
