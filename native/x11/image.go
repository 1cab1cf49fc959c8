package x11

import (
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// putImageHeader is the size of a PutImage request without its data
const putImageHeader = 24

// surface is the drawing context of the image backend: an RGBA buffer the
// size of the window, uploaded after every expose
type surface struct {
	img *image.RGBA
	gc  xproto.Gcontext
}

// resize replaces the buffer when the window size changes. Contents are
// dropped; the next expose redraws everything.
func (s *surface) resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if s.img != nil && s.img.Rect.Dx() == width && s.img.Rect.Dy() == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// zpixmap converts r of img to 32 bits per pixel rows in BGRX order, the
// layout of a depth 24 TrueColor visual on a little endian connection
func zpixmap(img *image.RGBA, r image.Rectangle) []byte {
	r = r.Intersect(img.Rect)
	if r.Empty() {
		return nil
	}

	out := make([]byte, 0, 4*r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			out = append(out, row[i+2], row[i+1], row[i], 0)
		}
	}
	return out
}

// rowsPerRequest returns how many rows of width pixels fit in one PutImage
// request. maxRequest is the server limit in 4 byte units.
func rowsPerRequest(width int, maxRequest uint16) int {
	if width <= 0 {
		return 0
	}
	budget := int(maxRequest)*4 - putImageHeader
	rows := budget / (4 * width)
	if rows < 1 {
		rows = 1
	}
	return rows
}

// upload sends r of the surface to the window in as many requests as the
// server's maximum request length needs
func (s *surface) upload(conn *xgb.Conn, win xproto.Window, depth byte, maxRequest uint16, r image.Rectangle) {
	r = r.Intersect(s.img.Rect)
	if r.Empty() {
		return
	}

	step := rowsPerRequest(r.Dx(), maxRequest)
	for y := r.Min.Y; y < r.Max.Y; y += step {
		band := image.Rect(r.Min.X, y, r.Max.X, min(y+step, r.Max.Y))
		data := zpixmap(s.img, band)
		xproto.PutImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(win), s.gc,
			uint16(band.Dx()), uint16(band.Dy()), int16(band.Min.X), int16(band.Min.Y),
			0, depth, data)
	}
}
