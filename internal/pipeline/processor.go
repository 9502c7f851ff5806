// Package pipeline wires the image source, resizer, filter chain and encoder
// into the two call shapes the tool exposes: processing raw RGBA pixels with
// filters, and optimizing an encoded image by resizing only.
//
// A Processor holds no per-call state. Every call owns its buffers, so one
// Processor can serve concurrent calls without locking.
package pipeline

import (
	"github.com/AnyUserName/beautimg/internal/encoder"
	"github.com/AnyUserName/beautimg/internal/filter"
	"github.com/AnyUserName/beautimg/internal/pixbuf"
	"github.com/AnyUserName/beautimg/internal/resize"
	"go.uber.org/zap"
)

// Processor runs pipeline calls.
type Processor struct {
	log *zap.Logger
	enc encoder.Encoder
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the trace sink. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// WithEncoder replaces the JPEG encoder.
func WithEncoder(e encoder.Encoder) Option {
	return func(p *Processor) { p.enc = e }
}

// New returns a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.enc == nil {
		p.enc = &encoder.JPEGEncoder{Log: p.log}
	}
	return p
}

// ProcessRequest is raw RGBA pixels plus the filters to run over them.
type ProcessRequest struct {
	RGBA    []byte
	Width   uint32
	Height  uint32
	Quality int
	Filters filter.Config
}

// OptimizeRequest is an encoded image to shrink and re-encode.
type OptimizeRequest struct {
	Data []byte
	// TargetWidth of 0, or at least the source width, keeps the source size.
	TargetWidth uint32
	Quality     int
	Mode        resize.Mode
}

// Result is the encoded output and its size bookkeeping.
type Result struct {
	Data             []byte
	Width            uint32
	Height           uint32
	OriginalSize     int64
	OptimizedSize    int64
	CompressionRatio float64
}

// CompressionRatio returns 1 - optimized/original, or 0 when original is 0.
// It is negative when the output is larger than the input.
func CompressionRatio(original, optimized int64) float64 {
	if original <= 0 {
		return 0
	}
	return 1 - float64(optimized)/float64(original)
}

// ProcessImage validates raw RGBA pixels, applies the filter chain and
// returns the encoded bytes.
func (p *Processor) ProcessImage(req ProcessRequest) ([]byte, error) {
	res, err := p.Process(req)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Process is ProcessImage returning size bookkeeping as well.
func (p *Processor) Process(req ProcessRequest) (*Result, error) {
	buf, err := pixbuf.FromRaw(req.RGBA, req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	buf, err = filter.Apply(buf, req.Filters, p.log)
	if err != nil {
		return nil, err
	}
	return p.encode(buf, req.Quality, int64(len(req.RGBA)))
}

// OptimizeImage decodes an encoded image, downsizes it to the target width
// and re-encodes it. No filters run.
func (p *Processor) OptimizeImage(req OptimizeRequest) ([]byte, error) {
	res, err := p.Optimize(req)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Optimize is OptimizeImage returning size bookkeeping as well.
func (p *Processor) Optimize(req OptimizeRequest) (*Result, error) {
	buf, err := pixbuf.Decode(req.Data)
	if err != nil {
		return nil, err
	}
	buf = p.resize(buf, req.TargetWidth, req.Mode)
	return p.encode(buf, req.Quality, int64(len(req.Data)))
}

func (p *Processor) resize(buf *pixbuf.Buffer, targetWidth uint32, mode resize.Mode) *pixbuf.Buffer {
	out := resize.Apply(buf, targetWidth, mode)
	if out == buf {
		p.log.Debug("resize skipped",
			zap.Uint32("width", buf.Width), zap.Uint32("target_width", targetWidth))
		return buf
	}
	p.log.Debug("resized",
		zap.Uint32("from_width", buf.Width), zap.Uint32("from_height", buf.Height),
		zap.Uint32("to_width", out.Width), zap.Uint32("to_height", out.Height),
		zap.Stringer("mode", mode))
	return out
}

func (p *Processor) encode(buf *pixbuf.Buffer, quality int, originalSize int64) (*Result, error) {
	data, err := p.enc.Encode(buf, quality)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Data:             data,
		Width:            buf.Width,
		Height:           buf.Height,
		OriginalSize:     originalSize,
		OptimizedSize:    int64(len(data)),
		CompressionRatio: CompressionRatio(originalSize, int64(len(data))),
	}
	p.log.Debug("encoded",
		zap.String("format", p.enc.Format()),
		zap.Uint32("width", res.Width), zap.Uint32("height", res.Height),
		zap.Int64("original_size", res.OriginalSize), zap.Int64("optimized_size", res.OptimizedSize))
	return res, nil
}
