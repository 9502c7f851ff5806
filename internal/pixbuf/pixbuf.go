// Package pixbuf holds the pixel buffer every pipeline stage works on and the
// two ways of producing one: validating raw RGBA bytes or decoding an
// encoded image.
package pixbuf

import (
	"image"

	"github.com/AnyUserName/beautimg/internal/imgerr"
)

// Channels is the number of bytes per pixel (R, G, B, A).
const Channels = 4

// Buffer is row-major, straight-alpha RGBA8 pixel data.
// len(Pix) == Width*Height*4 always holds for a buffer built by this package.
type Buffer struct {
	Width  uint32
	Height uint32
	Pix    []byte
}

// ExpectedLen returns width*height*4, computed without 32-bit overflow.
func ExpectedLen(width, height uint32) uint64 {
	return uint64(width) * uint64(height) * Channels
}

// FromRaw validates data against the declared dimensions and returns a buffer
// owning a copy of it.
func FromRaw(data []byte, width, height uint32) (*Buffer, error) {
	want := ExpectedLen(width, height)
	if uint64(len(data)) != want {
		return nil, imgerr.InvalidBuffer("raw",
			"RGBA data length %d does not match %dx%dx4 = %d", len(data), width, height, want)
	}
	pix := make([]byte, len(data))
	copy(pix, data)
	return &Buffer{Width: width, Height: height, Pix: pix}, nil
}

// FromNRGBA adopts img's pixel slice when it is tightly packed at the origin,
// and copies it otherwise.
func FromNRGBA(img *image.NRGBA) *Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if b.Min == (image.Point{}) && img.Stride == w*Channels && len(img.Pix) == w*h*Channels {
		return &Buffer{Width: uint32(w), Height: uint32(h), Pix: img.Pix}
	}
	pix := make([]byte, w*h*Channels)
	for y := 0; y < h; y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w*Channels:(y+1)*w*Channels], img.Pix[src:src+w*Channels])
	}
	return &Buffer{Width: uint32(w), Height: uint32(h), Pix: pix}
}

// NRGBA returns an *image.NRGBA view sharing b's pixels.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: int(b.Width) * Channels,
		Rect:   image.Rect(0, 0, int(b.Width), int(b.Height)),
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Validate checks the length invariant.
func (b *Buffer) Validate() error {
	if want := ExpectedLen(b.Width, b.Height); uint64(len(b.Pix)) != want {
		return imgerr.InvalidBuffer("buffer",
			"pixel length %d does not match %dx%dx4 = %d", len(b.Pix), b.Width, b.Height, want)
	}
	return nil
}

// Empty reports whether the buffer has a zero dimension.
func (b *Buffer) Empty() bool {
	return b.Width == 0 || b.Height == 0
}
