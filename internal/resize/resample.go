package resize

import (
	"math"

	"github.com/disintegration/imaging"
)

type tap struct {
	index  int
	weight float64
}

// weights precomputes, for each destination sample, the source samples it
// draws from and their normalized kernel weights. The kernel is stretched by
// the downscale factor so every source sample contributes.
func weights(dstSize, srcSize int, filter imaging.ResampleFilter) [][]tap {
	du := float64(srcSize) / float64(dstSize)
	scale := du
	if scale < 1 {
		scale = 1
	}
	radius := math.Ceil(scale * filter.Support)

	out := make([][]tap, dstSize)
	for v := 0; v < dstSize; v++ {
		center := (float64(v)+0.5)*du - 0.5
		begin := int(math.Ceil(center - radius))
		if begin < 0 {
			begin = 0
		}
		end := int(math.Floor(center + radius))
		if end > srcSize-1 {
			end = srcSize - 1
		}

		var sum float64
		taps := make([]tap, 0, end-begin+1)
		for u := begin; u <= end; u++ {
			w := filter.Kernel((float64(u) - center) / scale)
			if w != 0 {
				sum += w
				taps = append(taps, tap{index: u, weight: w})
			}
		}
		if sum != 0 {
			for i := range taps {
				taps[i].weight /= sum
			}
		} else {
			// Kernel vanished on every tap; fall back to nearest sample.
			n := int(math.Round(center))
			if n < 0 {
				n = 0
			}
			if n > srcSize-1 {
				n = srcSize - 1
			}
			taps = append(taps[:0], tap{index: n, weight: 1})
		}
		out[v] = taps
	}
	return out
}

// resampleRows changes the width of a w×h RGBA image to dw. Each channel,
// alpha included, is filtered independently.
func resampleRows(src []byte, w, h, dw int, filter imaging.ResampleFilter) []byte {
	ws := weights(dw, w, filter)
	dst := make([]byte, dw*h*4)
	for y := 0; y < h; y++ {
		row := src[y*w*4 : (y+1)*w*4]
		out := dst[y*dw*4 : (y+1)*dw*4]
		for x, taps := range ws {
			var acc [4]float64
			for _, t := range taps {
				s := row[t.index*4 : t.index*4+4 : t.index*4+4]
				acc[0] += float64(s[0]) * t.weight
				acc[1] += float64(s[1]) * t.weight
				acc[2] += float64(s[2]) * t.weight
				acc[3] += float64(s[3]) * t.weight
			}
			d := out[x*4 : x*4+4 : x*4+4]
			for c := 0; c < 4; c++ {
				d[c] = clampByte(acc[c])
			}
		}
	}
	return dst
}

// resampleColumns changes the height of a w×h RGBA image to dh.
func resampleColumns(src []byte, w, h, dh int, filter imaging.ResampleFilter) []byte {
	ws := weights(dh, h, filter)
	dst := make([]byte, w*dh*4)
	stride := w * 4
	for y, taps := range ws {
		out := dst[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			var acc [4]float64
			for _, t := range taps {
				i := t.index*stride + x*4
				s := src[i : i+4 : i+4]
				acc[0] += float64(s[0]) * t.weight
				acc[1] += float64(s[1]) * t.weight
				acc[2] += float64(s[2]) * t.weight
				acc[3] += float64(s[3]) * t.weight
			}
			d := out[x*4 : x*4+4 : x*4+4]
			for c := 0; c < 4; c++ {
				d[c] = clampByte(acc[c])
			}
		}
	}
	return dst
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
