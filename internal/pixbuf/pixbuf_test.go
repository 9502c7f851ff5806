package pixbuf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/AnyUserName/beautimg/internal/imgerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		length        int
		wantErr       bool
	}{
		{"2x2 exact", 2, 2, 16, false},
		{"2x2 one byte short", 2, 2, 15, true},
		{"2x2 one byte long", 2, 2, 17, true},
		{"1x1", 1, 1, 4, false},
		{"zero size", 0, 0, 0, false},
		{"zero width with data", 0, 3, 12, true},
		{"wide", 7, 3, 84, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := FromRaw(make([]byte, tt.length), tt.width, tt.height)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, imgerr.ErrInvalidBuffer)
				assert.Nil(t, buf)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, buf.Width)
			assert.Equal(t, tt.height, buf.Height)
			assert.Len(t, buf.Pix, tt.length)
			assert.NoError(t, buf.Validate())
		})
	}
}

func TestFromRawCopiesInput(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	buf, err := FromRaw(data, 1, 1)
	require.NoError(t, err)

	data[0] = 99
	assert.Equal(t, byte(1), buf.Pix[0])
}

func TestExpectedLenNoOverflow(t *testing.T) {
	assert.Equal(t, uint64(1<<16)*uint64(1<<16)*4, ExpectedLen(1<<16, 1<<16))
}

func TestFromNRGBASubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)

	buf := FromNRGBA(sub)
	require.NoError(t, buf.Validate())
	assert.Equal(t, uint32(2), buf.Width)
	assert.Equal(t, uint32(2), buf.Height)
	assert.Equal(t, []byte{1, 1, 7, 255}, buf.Pix[:4])
	assert.Equal(t, []byte{2, 2, 7, 255}, buf.Pix[12:16])
}

func TestNRGBAViewSharesPixels(t *testing.T) {
	buf, err := FromRaw(make([]byte, 8), 2, 1)
	require.NoError(t, err)

	view := buf.NRGBA()
	view.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	assert.Equal(t, []byte{10, 20, 30, 40}, buf.Pix[4:8])

	clone := buf.Clone()
	clone.Pix[4] = 0
	assert.Equal(t, byte(10), buf.Pix[4])
}

func TestDecodePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	var enc bytes.Buffer
	require.NoError(t, png.Encode(&enc, src))

	buf, err := Decode(enc.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(3), buf.Width)
	assert.Equal(t, uint32(2), buf.Height)
	require.NoError(t, buf.Validate())

	off := (1*3 + 2) * Channels
	assert.Equal(t, []byte{200, 100, 50, 128}, buf.Pix[off:off+4])
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	require.Error(t, err)
	assert.ErrorIs(t, err, imgerr.ErrDecode)
	assert.Contains(t, err.Error(), "unknown format")

	_, err = Decode(nil)
	assert.ErrorIs(t, err, imgerr.ErrDecode)
}
