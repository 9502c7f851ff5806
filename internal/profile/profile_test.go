package profile

import (
	"testing"

	"github.com/AnyUserName/beautimg/internal/resize"
	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	p := Get("web-hq")
	assert.Equal(t, "web-hq", p.Name)
	assert.Equal(t, resize.HighQuality, p.Mode)

	unknown := Get("custom")
	assert.Equal(t, "custom", unknown.Name)
	assert.Equal(t, Get(DefaultName).Widths, unknown.Widths)

	assert.Equal(t, DefaultName, Get("").Name)
}

func TestGetReturnsCopy(t *testing.T) {
	p := Get("web")
	p.Widths[0] = 1
	assert.Equal(t, uint32(640), Get("web").Widths[0])
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"thumbnail", "web", "web-hq"}, Names())
}

func TestEffectiveWidths(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		orig    uint32
		want    []uint32
	}{
		{"all fit", Profile{Widths: []uint32{640, 1280}}, 2000, []uint32{640, 1280}},
		{"drop larger", Profile{Widths: []uint32{640, 1280}}, 1000, []uint32{640}},
		{"none fit uses original", Profile{Widths: []uint32{640}}, 300, []uint32{300}},
		{"retina", Profile{Widths: []uint32{160, 320}, Retina: true}, 700, []uint32{160, 320, 640}},
		{"dedupe", Profile{Widths: []uint32{320, 320, 160}, Retina: true}, 5000, []uint32{160, 320, 640}},
		{"zero original", Profile{Widths: []uint32{320}}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.EffectiveWidths(tt.orig))
		})
	}
}
