package x11

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/bnema/viewkit/native"
)

// Keysyms without a character that map to native special key codes
var specialKeysyms = map[xproto.Keysym]uint32{
	0xff08: native.KeyBackspace,
	0xff1b: native.KeyEscape,
	0xffff: native.KeyDelete,
	0xffbe: native.KeyF1,
	0xffbf: native.KeyF2,
	0xffc0: native.KeyF3,
	0xffc1: native.KeyF4,
	0xffc2: native.KeyF5,
	0xffc3: native.KeyF6,
	0xffc4: native.KeyF7,
	0xffc5: native.KeyF8,
	0xffc6: native.KeyF9,
	0xffc7: native.KeyF10,
	0xffc8: native.KeyF11,
	0xffc9: native.KeyF12,
	0xff51: native.KeyLeft,
	0xff52: native.KeyUp,
	0xff53: native.KeyRight,
	0xff54: native.KeyDown,
	0xff55: native.KeyPageUp,
	0xff56: native.KeyPageDown,
	0xff50: native.KeyHome,
	0xff57: native.KeyEnd,
	0xff63: native.KeyInsert,
	0xffe1: native.KeyShiftL,
	0xffe2: native.KeyShiftR,
	0xffe3: native.KeyCtrlL,
	0xffe4: native.KeyCtrlR,
	0xffe9: native.KeyAltL,
	0xffea: native.KeyAltR,
	0xffeb: native.KeySuperL,
	0xffec: native.KeySuperR,
	0xff67: native.KeyMenu,
	0xffe5: native.KeyCapsLock,
	0xff14: native.KeyScrollLock,
	0xff7f: native.KeyNumLock,
	0xff61: native.KeyPrintScreen,
	0xff13: native.KeyPause,
}

// Function keys that still produce a character
var textKeysyms = map[xproto.Keysym]rune{
	0xff09: '\t',
	0xff0d: '\r',
	0xff8d: '\r', // KP_Enter
	0xff80: ' ',  // KP_Space
	0xffaa: '*',
	0xffab: '+',
	0xffad: '-',
	0xffae: '.',
	0xffaf: '/',
	0xffbd: '=',
}

// keysymToKey splits a keysym into the character and special code of a
// native key record. Exactly one of them is non-zero for known keysyms;
// both are zero otherwise.
func keysymToKey(sym xproto.Keysym) (char uint32, special uint32) {
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return uint32(sym), 0
	case sym >= 0x01000100 && sym <= 0x0110ffff:
		return uint32(sym) - 0x01000000, 0
	case sym >= 0xffb0 && sym <= 0xffb9:
		return uint32('0' + sym - 0xffb0), 0
	}
	if r, ok := textKeysyms[sym]; ok {
		return uint32(r), 0
	}
	if code, ok := specialKeysyms[sym]; ok {
		return 0, code
	}
	return 0, 0
}

// keymap is the keyboard mapping of a display, keysymsPerCode entries per
// keycode starting at minCode
type keymap struct {
	minCode        xproto.Keycode
	keysymsPerCode int
	keysyms        []xproto.Keysym
}

func loadKeymap(conn *xgb.Conn, setup *xproto.SetupInfo) (keymap, error) {
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return keymap{}, err
	}
	return keymap{
		minCode:        setup.MinKeycode,
		keysymsPerCode: int(reply.KeysymsPerKeycode),
		keysyms:        reply.Keysyms,
	}, nil
}

// lookup returns the keysym for a keycode. The shifted column is used when
// Shift is held and the keycode has one; lower case letters are upper cased
// when only one column is populated.
func (k keymap) lookup(code xproto.Keycode, state uint16) xproto.Keysym {
	if k.keysymsPerCode == 0 || code < k.minCode {
		return 0
	}
	base := int(code-k.minCode) * k.keysymsPerCode
	if base >= len(k.keysyms) {
		return 0
	}

	sym := k.keysyms[base]
	shifted := xproto.Keysym(0)
	if k.keysymsPerCode > 1 && base+1 < len(k.keysyms) {
		shifted = k.keysyms[base+1]
	}

	if state&xproto.KeyButMaskShift == 0 {
		return sym
	}
	if shifted != 0 {
		return shifted
	}
	if sym >= 'a' && sym <= 'z' {
		return sym - 'a' + 'A'
	}
	return sym
}

// modifiers converts an X key and button mask to native modifier bits
func modifiers(state uint16) uint32 {
	var mods uint32
	if state&xproto.KeyButMaskShift != 0 {
		mods |= native.ModShift
	}
	if state&xproto.KeyButMaskControl != 0 {
		mods |= native.ModCtrl
	}
	if state&xproto.KeyButMaskMod1 != 0 {
		mods |= native.ModAlt
	}
	if state&xproto.KeyButMaskMod4 != 0 {
		mods |= native.ModSuper
	}
	return mods
}
