package pixbuf

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/AnyUserName/beautimg/internal/imgerr"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes an encoded image (png, jpeg, gif, bmp, tiff, webp) and
// normalizes it to RGBA8. Only the first frame of an animation is kept.
func Decode(data []byte) (*Buffer, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, imgerr.Decode(err)
	}
	return FromImage(img), nil
}

// FromImage converts any image to an owned straight-alpha RGBA8 buffer.
func FromImage(img image.Image) *Buffer {
	return FromNRGBA(imaging.Clone(img))
}
