package x11

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurfaceResize(t *testing.T) {
	var s surface

	s.resize(0, -3)
	assert.Equal(t, image.Rect(0, 0, 1, 1), s.img.Rect)

	s.resize(32, 16)
	img := s.img
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Rect)

	s.resize(32, 16)
	assert.Same(t, img, s.img, "same size keeps the buffer")
}

func TestZPixmap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 0, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})
	img.Set(2, 1, color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff})

	data := zpixmap(img, image.Rect(1, 0, 3, 2))
	assert.Equal(t, []byte{
		0x33, 0x22, 0x11, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0xcc, 0xbb, 0xaa, 0,
	}, data)

	assert.Nil(t, zpixmap(img, image.Rect(5, 5, 8, 8)))
	assert.Len(t, zpixmap(img, image.Rect(-4, -4, 100, 100)), 3*2*4, "clipped to the image")
}

func TestRowsPerRequest(t *testing.T) {
	assert.Equal(t, 0, rowsPerRequest(0, 65535))
	assert.Equal(t, (65535*4-putImageHeader)/(4*640), rowsPerRequest(640, 65535))
	assert.Equal(t, 1, rowsPerRequest(100000, 65535), "always at least one row")
	assert.Equal(t, 2, rowsPerRequest(2, 10))
}
