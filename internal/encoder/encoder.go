package encoder

import (
	"github.com/AnyUserName/beautimg/internal/pixbuf"
)

// Encoder compresses a pixel buffer into an output format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg").
	Format() string

	// Encode compresses buf at the given quality (1-100).
	Encode(buf *pixbuf.Buffer, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}

const (
	MinQuality     = 1
	MaxQuality     = 100
	DefaultQuality = 82
)

// ClampQuality pulls q into [MinQuality, MaxQuality] and reports whether it
// had to.
func ClampQuality(q int) (int, bool) {
	switch {
	case q < MinQuality:
		return MinQuality, true
	case q > MaxQuality:
		return MaxQuality, true
	}
	return q, false
}
