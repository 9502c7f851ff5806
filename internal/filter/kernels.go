package filter

import (
	"image"
	"image/color"
	"math"

	"github.com/AnyUserName/beautimg/internal/pixbuf"
	"github.com/disintegration/imaging"
)

// Unsharpen sharpens buf by adding back, per colour channel, the difference
// between the original and a gaussian-blurred copy wherever that difference
// exceeds threshold. A negative threshold sharpens every pixel. Alpha is kept.
func Unsharpen(buf *pixbuf.Buffer, sigma float64, threshold int) (*pixbuf.Buffer, error) {
	if err := checkSigma(StageUnsharp, sigma); err != nil {
		return nil, err
	}
	blurred := gaussian(buf.NRGBA(), sigma)

	out := make([]byte, len(buf.Pix))
	for i := 0; i < len(buf.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := int(buf.Pix[i+c])
			diff := v - int(blurred.Pix[i+c])
			if abs(diff) > threshold {
				v += diff
			}
			out[i+c] = clampInt(v)
		}
		out[i+3] = buf.Pix[i+3]
	}
	return &pixbuf.Buffer{Width: buf.Width, Height: buf.Height, Pix: out}, nil
}

// Blur applies a separable gaussian blur. Pixels beyond the border repeat
// the nearest edge pixel.
func Blur(buf *pixbuf.Buffer, sigma float64) (*pixbuf.Buffer, error) {
	if err := checkSigma(StageBlur, sigma); err != nil {
		return nil, err
	}
	return pixbuf.FromNRGBA(gaussian(buf.NRGBA(), sigma)), nil
}

// gaussian blurs src over an edge-clamped margin of one kernel radius and
// crops the margin away again.
func gaussian(src *image.NRGBA, sigma float64) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if sigma <= 0 || w == 0 || h == 0 {
		return imaging.Clone(src)
	}
	// Beyond the image's longest side the blur is saturated; the cap also
	// bounds imaging.Blur's kernel allocation.
	if limit := float64(max(w, h)); sigma > limit {
		sigma = limit
	}
	pad := int(math.Ceil(sigma * 3))
	if limit := max(w, h); pad > limit {
		pad = limit
	}

	padded := image.NewNRGBA(image.Rect(0, 0, w+2*pad, h+2*pad))
	for y := 0; y < h+2*pad; y++ {
		sy := min(max(y-pad, 0), h-1)
		row := padded.Pix[y*padded.Stride : (y+1)*padded.Stride]
		for x := 0; x < w+2*pad; x++ {
			sx := min(max(x-pad, 0), w-1)
			s := src.PixOffset(sx, sy)
			copy(row[x*4:x*4+4], src.Pix[s:s+4])
		}
	}

	blurred := imaging.Blur(padded, sigma)
	return imaging.Crop(blurred, image.Rect(pad, pad, pad+w, pad+h))
}

// Brighten adds delta to R, G and B, clamping to [0, 255].
func Brighten(buf *pixbuf.Buffer, delta int) *pixbuf.Buffer {
	delta = min(max(delta, -255), 255)
	out := imaging.AdjustFunc(buf.NRGBA(), func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clampInt(int(c.R) + delta),
			G: clampInt(int(c.G) + delta),
			B: clampInt(int(c.B) + delta),
			A: c.A,
		}
	})
	return pixbuf.FromNRGBA(out)
}

// Contrast remaps R, G and B around the midpoint 128:
// v' = clamp(128 + factor*(v-128)). A factor of 1 is the identity, 0 flattens
// to mid-grey and negative factors mirror around 128.
func Contrast(buf *pixbuf.Buffer, factor float64) (*pixbuf.Buffer, error) {
	if err := checkContrast(factor); err != nil {
		return nil, err
	}
	remap := func(v uint8) uint8 {
		return clampFloat(128 + factor*(float64(v)-128))
	}
	out := imaging.AdjustFunc(buf.NRGBA(), func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: remap(c.R), G: remap(c.G), B: remap(c.B), A: c.A}
	})
	return pixbuf.FromNRGBA(out), nil
}

// Grayscale replaces R, G and B with the Rec. 601 luma of the pixel
// (0.299 R + 0.587 G + 0.114 B), as computed by imaging.Grayscale. Alpha is
// kept.
func Grayscale(buf *pixbuf.Buffer) *pixbuf.Buffer {
	return pixbuf.FromNRGBA(imaging.Grayscale(buf.NRGBA()))
}

// Invert replaces R, G and B with 255 minus their value.
func Invert(buf *pixbuf.Buffer) *pixbuf.Buffer {
	return pixbuf.FromNRGBA(imaging.Invert(buf.NRGBA()))
}

// HueRotate shifts every pixel's hue by degrees (mod 360), keeping HSL
// saturation and lightness.
func HueRotate(buf *pixbuf.Buffer, degrees int) *pixbuf.Buffer {
	shift := ((degrees % 360) + 360) % 360
	if shift == 0 {
		return buf.Clone()
	}
	out := imaging.AdjustFunc(buf.NRGBA(), func(c color.NRGBA) color.NRGBA {
		h, s, l := toHSL(c)
		r, g, b := fromHSL(math.Mod(h+float64(shift), 360), s, l)
		return color.NRGBA{R: r, G: g, B: b, A: c.A}
	})
	return pixbuf.FromNRGBA(out)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampFloat(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
