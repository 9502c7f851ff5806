package encoder

import (
	"bytes"
	"fmt"

	"github.com/AnyUserName/beautimg/internal/imgerr"
	"github.com/AnyUserName/beautimg/internal/pixbuf"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// maxDimension is the largest side the baseline JPEG format can carry.
const maxDimension = 1<<16 - 1

// JPEGEncoder drops alpha and compresses to baseline JPEG.
type JPEGEncoder struct {
	// Log receives quality clamping warnings. Nil disables them.
	Log *zap.Logger
}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpeg" }

func (e *JPEGEncoder) Encode(buf *pixbuf.Buffer, quality int) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if buf.Empty() {
		return nil, imgerr.Encode("jpeg",
			fmt.Sprintf("image has zero dimension %dx%d", buf.Width, buf.Height), nil)
	}
	if buf.Width > maxDimension || buf.Height > maxDimension {
		return nil, imgerr.Encode("jpeg",
			fmt.Sprintf("image %dx%d exceeds the JPEG limit of %d per side", buf.Width, buf.Height, maxDimension), nil)
	}

	q, clamped := ClampQuality(quality)
	if clamped && e.Log != nil {
		e.Log.Warn("jpeg quality out of range, clamped",
			zap.Int("requested", quality), zap.Int("used", q))
	}

	rgb := DropAlpha(buf)

	var out bytes.Buffer
	out.Grow(len(rgb.Pix)/8 + 1024)
	if err := imaging.Encode(&out, rgb.RGBA(), imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return nil, imgerr.Encode("jpeg", "", err)
	}
	return out.Bytes(), nil
}
