// Package profile holds named presets for batch optimization.
package profile

import (
	"sort"

	"github.com/AnyUserName/beautimg/internal/resize"
)

// Profile describes which variants to produce for every source image.
type Profile struct {
	Name    string
	Widths  []uint32 // target widths, never upscaled
	Quality int      // JPEG quality 1-100
	Mode    resize.Mode
	Retina  bool // also produce 2x widths when the source allows
}

// DefaultName is used when no profile is requested or the name is unknown.
const DefaultName = "web"

var profiles = map[string]Profile{
	"web": {
		Name:    "web",
		Widths:  []uint32{640, 1280},
		Quality: 82,
		Mode:    resize.Standard,
	},
	"web-hq": {
		Name:    "web-hq",
		Widths:  []uint32{640, 1280, 1920},
		Quality: 88,
		Mode:    resize.HighQuality,
	},
	"thumbnail": {
		Name:    "thumbnail",
		Widths:  []uint32{160, 320},
		Quality: 75,
		Mode:    resize.Standard,
		Retina:  true,
	},
}

// Get returns a profile by name. Unknown names get the default presets under
// the requested name.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		p.Widths = append([]uint32(nil), p.Widths...)
		return p
	}
	p := profiles[DefaultName]
	p.Widths = append([]uint32(nil), p.Widths...)
	if name != "" {
		p.Name = name
	}
	return p
}

// Names lists the built-in profiles, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EffectiveWidths returns the distinct widths to produce for a source of
// originalWidth, ascending. Widths above the source are dropped; if nothing
// is left the source width itself is used.
func (p Profile) EffectiveWidths(originalWidth uint32) []uint32 {
	seen := map[uint32]bool{}
	var result []uint32
	add := func(w uint32) {
		if w == 0 || w > originalWidth || seen[w] {
			return
		}
		seen[w] = true
		result = append(result, w)
	}

	for _, w := range p.Widths {
		add(w)
		if p.Retina {
			add(w * 2)
		}
	}
	if len(result) == 0 && originalWidth > 0 {
		result = append(result, originalWidth)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
