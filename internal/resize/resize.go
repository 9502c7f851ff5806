// Package resize downsamples pixel buffers to a target width while keeping
// the aspect ratio. It never upscales.
package resize

import (
	"fmt"
	"math"
	"strings"

	"github.com/AnyUserName/beautimg/internal/pixbuf"
	"github.com/disintegration/imaging"
)

// Mode selects the resampling kernel.
type Mode int

const (
	// Standard uses the triangle (bilinear-equivalent) kernel.
	Standard Mode = iota
	// HighQuality uses Lanczos-3: wider support, sharper edges, slower.
	HighQuality
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case HighQuality:
		return "high-quality"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "standard", "high-quality", "hq" and "" (Standard).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "triangle":
		return Standard, nil
	case "high-quality", "highquality", "hq", "lanczos":
		return HighQuality, nil
	}
	return Standard, fmt.Errorf("unknown resize mode %q (want standard or high-quality)", s)
}

// Filter returns the resampling kernel for m.
func (m Mode) Filter() imaging.ResampleFilter {
	if m == HighQuality {
		return imaging.Lanczos
	}
	return imaging.Linear
}

// TargetSize returns the output dimensions for a resize of (w, h) to
// targetWidth. A zero targetWidth or one not smaller than w keeps the size.
func TargetSize(w, h, targetWidth uint32) (uint32, uint32) {
	if targetWidth == 0 || targetWidth >= w {
		return w, h
	}
	th := uint32(math.Round(float64(h) * float64(targetWidth) / float64(w)))
	if th < 1 {
		th = 1
	}
	return targetWidth, th
}

// Apply downsamples buf to targetWidth using the kernel selected by mode.
// buf is returned unchanged when no downscale is needed.
func Apply(buf *pixbuf.Buffer, targetWidth uint32, mode Mode) *pixbuf.Buffer {
	dw, dh := TargetSize(buf.Width, buf.Height, targetWidth)
	if dw == buf.Width && dh == buf.Height {
		return buf
	}
	if buf.Empty() {
		return buf
	}
	filter := mode.Filter()

	tmp := resampleRows(buf.Pix, int(buf.Width), int(buf.Height), int(dw), filter)
	pix := resampleColumns(tmp, int(dw), int(buf.Height), int(dh), filter)
	return &pixbuf.Buffer{Width: dw, Height: dh, Pix: pix}
}
