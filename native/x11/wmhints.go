package x11

import "github.com/jezek/xgb"

// WM_NORMAL_HINTS flag bits
const (
	hintUSSize   = 1 << 1
	hintPSize    = 1 << 3
	hintPMinSize = 1 << 4
	hintPMaxSize = 1 << 5
	hintPAspect  = 1 << 7
)

// sizeHints is the WM_NORMAL_HINTS property of a window
type sizeHints struct {
	width, height       int
	minWidth, minHeight int
	maxWidth, maxHeight int
	minAspectX          int
	minAspectY          int
	maxAspectX          int
	maxAspectY          int
	resizable           bool
}

// encode returns the property as 18 CARD32 values. A window that is not
// resizable gets its default size as both minimum and maximum.
func (h sizeHints) encode() []byte {
	var fields [18]uint32

	if h.width > 0 && h.height > 0 {
		fields[0] |= hintPSize | hintUSSize
		fields[3] = uint32(h.width)
		fields[4] = uint32(h.height)
	}

	minW, minH := h.minWidth, h.minHeight
	maxW, maxH := h.maxWidth, h.maxHeight
	if !h.resizable && h.width > 0 && h.height > 0 {
		minW, minH = h.width, h.height
		maxW, maxH = h.width, h.height
	}
	if minW > 0 || minH > 0 {
		fields[0] |= hintPMinSize
		fields[5] = uint32(minW)
		fields[6] = uint32(minH)
	}
	if maxW > 0 || maxH > 0 {
		fields[0] |= hintPMaxSize
		fields[7] = uint32(maxW)
		fields[8] = uint32(maxH)
	}
	if h.minAspectX > 0 && h.minAspectY > 0 && h.maxAspectX > 0 && h.maxAspectY > 0 {
		fields[0] |= hintPAspect
		fields[11] = uint32(h.minAspectX)
		fields[12] = uint32(h.minAspectY)
		fields[13] = uint32(h.maxAspectX)
		fields[14] = uint32(h.maxAspectY)
	}

	return cardinals(fields[:]...)
}

// cardinals packs 32-bit values for a format 32 property in the byte order
// xgb announces to the server
func cardinals(values ...uint32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(buf[4*i:], v)
	}
	return buf
}
