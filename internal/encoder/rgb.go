package encoder

import (
	"image"
	"image/color"

	"github.com/AnyUserName/beautimg/internal/pixbuf"
)

// RGB is a 3-channel, row-major, 8-bit image. It is what remains of a pixel
// buffer once alpha is dropped.
type RGB struct {
	Pix    []byte
	Width  int
	Height int
}

// DropAlpha copies R, G and B of every pixel into a new RGB image. Alpha is
// discarded, not composited.
func DropAlpha(buf *pixbuf.Buffer) *RGB {
	n := int(buf.Width) * int(buf.Height)
	pix := make([]byte, n*3)
	for i, j := 0, 0; i < n*4; i, j = i+4, j+3 {
		pix[j] = buf.Pix[i]
		pix[j+1] = buf.Pix[i+1]
		pix[j+2] = buf.Pix[i+2]
	}
	return &RGB{Pix: pix, Width: int(buf.Width), Height: int(buf.Height)}
}

func (m *RGB) ColorModel() color.Model { return color.RGBAModel }

func (m *RGB) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

func (m *RGB) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.RGBA{}
	}
	i := (y*m.Width + x) * 3
	return color.RGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: 255}
}

// Opaque always reports true.
func (m *RGB) Opaque() bool { return true }

// RGBA expands m to an opaque *image.RGBA, the layout the JPEG writer has a
// fast path for.
func (m *RGB) RGBA() *image.RGBA {
	dst := image.NewRGBA(m.Bounds())
	for i, j := 0, 0; j < len(m.Pix); i, j = i+4, j+3 {
		dst.Pix[i] = m.Pix[j]
		dst.Pix[i+1] = m.Pix[j+1]
		dst.Pix[i+2] = m.Pix[j+2]
		dst.Pix[i+3] = 255
	}
	return dst
}
