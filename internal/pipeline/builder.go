package pipeline

import (
	"github.com/AnyUserName/beautimg/internal/filter"
	"github.com/AnyUserName/beautimg/internal/pixbuf"
	"github.com/AnyUserName/beautimg/internal/resize"
)

// Default unsharp parameters used by SharpenDefault.
const (
	DefaultSharpenSigma     = 1.5
	DefaultSharpenThreshold = 1
)

// Builder collects a resize and a set of filters for one encoded image and
// runs them in one go with ToJPEG. Calling a filter method twice keeps the
// last value; the application order is always the filter chain's own.
type Builder struct {
	p       *Processor
	data    []byte
	width   uint32
	mode    resize.Mode
	filters filter.Config
}

// Image starts a Builder for an encoded image using a default Processor.
func Image(data []byte) *Builder {
	return New().Image(data)
}

// Image starts a Builder for an encoded image.
func (p *Processor) Image(data []byte) *Builder {
	return &Builder{p: p, data: data}
}

// Resize caps the output width. The image is never upscaled.
func (b *Builder) Resize(width uint32) *Builder {
	b.width = width
	return b
}

// Mode selects the resampling kernel for Resize.
func (b *Builder) Mode(m resize.Mode) *Builder {
	b.mode = m
	return b
}

func (b *Builder) Sharpen(sigma float64, threshold int) *Builder {
	b.filters.SharpenSigma = filter.Ptr(sigma)
	b.filters.SharpenThreshold = filter.Ptr(threshold)
	return b
}

// SharpenDefault is Sharpen(1.5, 1).
func (b *Builder) SharpenDefault() *Builder {
	return b.Sharpen(DefaultSharpenSigma, DefaultSharpenThreshold)
}

func (b *Builder) Blur(sigma float64) *Builder {
	b.filters.BlurSigma = filter.Ptr(sigma)
	return b
}

func (b *Builder) Brightness(delta int) *Builder {
	b.filters.Brightness = filter.Ptr(delta)
	return b
}

func (b *Builder) Contrast(factor float64) *Builder {
	b.filters.Contrast = filter.Ptr(factor)
	return b
}

func (b *Builder) Grayscale() *Builder {
	b.filters.Grayscale = true
	return b
}

func (b *Builder) Invert() *Builder {
	b.filters.Invert = true
	return b
}

func (b *Builder) HueRotate(degrees int) *Builder {
	b.filters.HueRotate = filter.Ptr(degrees)
	return b
}

// WithFilters replaces the collected filters with cfg.
func (b *Builder) WithFilters(cfg filter.Config) *Builder {
	b.filters = cfg
	return b
}

// Filters returns the collected filter configuration.
func (b *Builder) Filters() filter.Config {
	return b.filters
}

// ToJPEG decodes the image, downsizes it, runs the filters and encodes the
// result at quality.
func (b *Builder) ToJPEG(quality int) (*Result, error) {
	buf, err := pixbuf.Decode(b.data)
	if err != nil {
		return nil, err
	}
	buf = b.p.resize(buf, b.width, b.mode)
	buf, err = filter.Apply(buf, b.filters, b.p.log)
	if err != nil {
		return nil, err
	}
	return b.p.encode(buf, quality, int64(len(b.data)))
}
