// Package filter applies the fixed-order chain of pixel adjustments:
// unsharp mask, gaussian blur, brightness, contrast, grayscale, invert and
// hue rotation. Each stage takes a buffer and returns a new one.
package filter

import (
	"github.com/AnyUserName/beautimg/internal/pixbuf"
	"go.uber.org/zap"
)

// Stage names, in application order.
const (
	StageUnsharp    = "unsharp"
	StageBlur       = "blur"
	StageBrightness = "brightness"
	StageContrast   = "contrast"
	StageGrayscale  = "grayscale"
	StageInvert     = "invert"
	StageHueRotate  = "hue-rotate"
)

type stage struct {
	name   string
	active func(Config) bool
	apply  func(*pixbuf.Buffer, Config) (*pixbuf.Buffer, error)
	fields func(Config) []zap.Field
}

// chain is the canonical order. Config field order and caller argument order
// have no influence on it.
var chain = []stage{
	{
		name: StageUnsharp,
		active: func(c Config) bool {
			_, _, ok := c.Unsharp()
			return ok
		},
		apply: func(b *pixbuf.Buffer, c Config) (*pixbuf.Buffer, error) {
			sigma, threshold, _ := c.Unsharp()
			return Unsharpen(b, sigma, threshold)
		},
		fields: func(c Config) []zap.Field {
			return []zap.Field{zap.Float64("sigma", *c.SharpenSigma), zap.Int("threshold", *c.SharpenThreshold)}
		},
	},
	{
		name:   StageBlur,
		active: func(c Config) bool { return c.BlurSigma != nil },
		apply: func(b *pixbuf.Buffer, c Config) (*pixbuf.Buffer, error) {
			return Blur(b, *c.BlurSigma)
		},
		fields: func(c Config) []zap.Field { return []zap.Field{zap.Float64("sigma", *c.BlurSigma)} },
	},
	{
		name:   StageBrightness,
		active: func(c Config) bool { return c.Brightness != nil },
		apply: func(b *pixbuf.Buffer, c Config) (*pixbuf.Buffer, error) {
			return Brighten(b, *c.Brightness), nil
		},
		fields: func(c Config) []zap.Field { return []zap.Field{zap.Int("delta", *c.Brightness)} },
	},
	{
		name:   StageContrast,
		active: func(c Config) bool { return c.Contrast != nil },
		apply: func(b *pixbuf.Buffer, c Config) (*pixbuf.Buffer, error) {
			return Contrast(b, *c.Contrast)
		},
		fields: func(c Config) []zap.Field { return []zap.Field{zap.Float64("factor", *c.Contrast)} },
	},
	{
		name:   StageGrayscale,
		active: func(c Config) bool { return c.Grayscale },
		apply: func(b *pixbuf.Buffer, _ Config) (*pixbuf.Buffer, error) {
			return Grayscale(b), nil
		},
	},
	{
		name:   StageInvert,
		active: func(c Config) bool { return c.Invert },
		apply: func(b *pixbuf.Buffer, _ Config) (*pixbuf.Buffer, error) {
			return Invert(b), nil
		},
	},
	{
		name:   StageHueRotate,
		active: func(c Config) bool { return c.HueRotate != nil },
		apply: func(b *pixbuf.Buffer, c Config) (*pixbuf.Buffer, error) {
			return HueRotate(b, *c.HueRotate), nil
		},
		fields: func(c Config) []zap.Field { return []zap.Field{zap.Int("degrees", *c.HueRotate)} },
	},
}

// Apply runs every active stage of cfg over buf. Parameters are validated
// before the first stage runs; any error aborts the whole chain.
// A nil log disables tracing.
func Apply(buf *pixbuf.Buffer, cfg Config, log *zap.Logger) (*pixbuf.Buffer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := buf
	for _, s := range chain {
		if !s.active(cfg) {
			continue
		}
		next, err := s.apply(out, cfg)
		if err != nil {
			return nil, err
		}
		out = next

		fields := []zap.Field{zap.String("stage", s.name)}
		if s.fields != nil {
			fields = append(fields, s.fields(cfg)...)
		}
		log.Debug("filter applied", fields...)
	}
	return out, nil
}
