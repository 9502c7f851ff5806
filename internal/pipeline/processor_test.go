package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"
	"testing"

	"github.com/AnyUserName/beautimg/internal/filter"
	"github.com/AnyUserName/beautimg/internal/imgerr"
	"github.com/AnyUserName/beautimg/internal/resize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func gradientNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestProcessImageTinyBuffer(t *testing.T) {
	p := New()
	data, err := p.ProcessImage(ProcessRequest{
		RGBA:    make([]byte, 16),
		Width:   2,
		Height:  2,
		Quality: 90,
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)
	w, h := jpegSize(t, data)
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
}

func TestProcessImageShortBuffer(t *testing.T) {
	p := New()
	_, err := p.ProcessImage(ProcessRequest{
		RGBA:    make([]byte, 15),
		Width:   2,
		Height:  2,
		Quality: 90,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, imgerr.ErrInvalidBuffer)
	assert.Equal(t, imgerr.KindInvalidBuffer, imgerr.KindOf(err))
}

func TestProcessImageZeroDimension(t *testing.T) {
	_, err := New().ProcessImage(ProcessRequest{Width: 0, Height: 0, Quality: 80})
	assert.ErrorIs(t, err, imgerr.ErrEncode)
}

func TestProcessImageFilterParameterError(t *testing.T) {
	_, err := New().ProcessImage(ProcessRequest{
		RGBA: make([]byte, 16), Width: 2, Height: 2, Quality: 80,
		Filters: filter.Config{BlurSigma: filter.Ptr(-1.0)},
	})
	assert.ErrorIs(t, err, imgerr.ErrFilterParameter)
}

func TestProcessImageSharpenSigmaAlone(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := New(WithLogger(zap.New(core)))

	img := gradientNRGBA(8, 8)
	_, err := p.ProcessImage(ProcessRequest{
		RGBA: img.Pix, Width: 8, Height: 8, Quality: 80,
		Filters: filter.Config{
			SharpenSigma: filter.Ptr(1.5),
			Grayscale:    true,
			Invert:       true,
		},
	})
	require.NoError(t, err)

	var stages []string
	for _, e := range logs.FilterMessage("filter applied").All() {
		stages = append(stages, e.ContextMap()["stage"].(string))
	}
	assert.Equal(t, []string{filter.StageGrayscale, filter.StageInvert}, stages)
}

func TestProcessMatchesFilterThenEncode(t *testing.T) {
	img := gradientNRGBA(16, 12)
	cfg := filter.Config{Brightness: filter.Ptr(15), Contrast: filter.Ptr(1.3), HueRotate: filter.Ptr(200)}

	p := New()
	res, err := p.Process(ProcessRequest{RGBA: img.Pix, Width: 16, Height: 12, Quality: 85, Filters: cfg})
	require.NoError(t, err)
	assert.Equal(t, int64(len(img.Pix)), res.OriginalSize)
	assert.Equal(t, int64(len(res.Data)), res.OptimizedSize)
	assert.InDelta(t, 1-float64(res.OptimizedSize)/float64(res.OriginalSize), res.CompressionRatio, 1e-12)

	// Same inputs, same output bytes.
	again, err := p.ProcessImage(ProcessRequest{RGBA: img.Pix, Width: 16, Height: 12, Quality: 85, Filters: cfg})
	require.NoError(t, err)
	assert.Equal(t, res.Data, again)
}

func TestCompressionRatio(t *testing.T) {
	assert.InDelta(t, 0.75, CompressionRatio(1000, 250), 1e-12)
	assert.InDelta(t, -0.5, CompressionRatio(100, 150), 1e-12)
	assert.Zero(t, CompressionRatio(0, 10))
}

func TestHueRotateFullTurnMatchesZero(t *testing.T) {
	img := gradientNRGBA(10, 10)
	p := New()
	zero, err := p.ProcessImage(ProcessRequest{RGBA: img.Pix, Width: 10, Height: 10, Quality: 90,
		Filters: filter.Config{HueRotate: filter.Ptr(0)}})
	require.NoError(t, err)
	full, err := p.ProcessImage(ProcessRequest{RGBA: img.Pix, Width: 10, Height: 10, Quality: 90,
		Filters: filter.Config{HueRotate: filter.Ptr(360)}})
	require.NoError(t, err)
	assert.Equal(t, zero, full)
}

func TestOptimizeImageNoUpscale(t *testing.T) {
	src := encodePNG(t, gradientNRGBA(40, 30))
	p := New()

	for _, mode := range []resize.Mode{resize.Standard, resize.HighQuality} {
		data, err := p.OptimizeImage(OptimizeRequest{Data: src, TargetWidth: 400, Quality: 80, Mode: mode})
		require.NoError(t, err)
		w, h := jpegSize(t, data)
		assert.Equal(t, 40, w)
		assert.Equal(t, 30, h)
	}
}

func TestOptimizeImageDownscales(t *testing.T) {
	src := encodePNG(t, gradientNRGBA(40, 30))

	res, err := New().Optimize(OptimizeRequest{Data: src, TargetWidth: 20, Quality: 80, Mode: resize.HighQuality})
	require.NoError(t, err)
	assert.Equal(t, uint32(20), res.Width)
	assert.Equal(t, uint32(15), res.Height)
	w, h := jpegSize(t, res.Data)
	assert.Equal(t, 20, w)
	assert.Equal(t, 15, h)
	assert.Equal(t, int64(len(src)), res.OriginalSize)
}

func TestOptimizeImageDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 255, 0 // transparent red
	}
	data, err := New().OptimizeImage(OptimizeRequest{Data: encodePNG(t, img), Quality: 95})
	require.NoError(t, err)

	out, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, _, _ := out.At(1, 1).RGBA()
	assert.Greater(t, r>>8, uint32(200), "colour kept, not composited onto black")
	assert.Less(t, g>>8, uint32(60))
}

func TestOptimizeImageDecodeError(t *testing.T) {
	_, err := New().OptimizeImage(OptimizeRequest{Data: []byte{0x00, 0x01, 0x02}, TargetWidth: 10, Quality: 80})
	require.Error(t, err)
	assert.ErrorIs(t, err, imgerr.ErrDecode)
	assert.Contains(t, err.Error(), "decode error")
}

func TestConcurrentCallsShareNothing(t *testing.T) {
	p := New()
	img := gradientNRGBA(24, 24)
	want, err := p.ProcessImage(ProcessRequest{RGBA: img.Pix, Width: 24, Height: 24, Quality: 80,
		Filters: filter.Config{Invert: true, BlurSigma: filter.Ptr(1.0)}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	outs := make([][]byte, 8)
	errs := make([]error, 8)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = p.ProcessImage(ProcessRequest{RGBA: img.Pix, Width: 24, Height: 24, Quality: 80,
				Filters: filter.Config{Invert: true, BlurSigma: filter.Ptr(1.0)}})
		}(i)
	}
	wg.Wait()
	for i := range outs {
		require.NoError(t, errs[i])
		assert.Equal(t, want, outs[i])
	}
	assert.Equal(t, gradientNRGBA(24, 24).Pix, img.Pix, "input untouched")
}

func BenchmarkOptimizeImage(b *testing.B) {
	src := encodePNG(b, gradientNRGBA(1024, 768))
	p := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.OptimizeImage(OptimizeRequest{Data: src, TargetWidth: 320, Quality: 82}); err != nil {
			b.Fatal(err)
		}
	}
}
