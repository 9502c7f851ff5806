package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/beautimg/internal/filter"
	"github.com/AnyUserName/beautimg/internal/resize"
	"github.com/spf13/pflag"
)

// addFilterFlags registers the filter chain flags. A flag that is not given
// leaves its stage out of the chain.
func addFilterFlags(fs *pflag.FlagSet) {
	fs.Float64("sharpen-sigma", 0, "unsharp mask radius; needs --sharpen-threshold")
	fs.Int("sharpen-threshold", 0, "unsharp mask threshold; needs --sharpen-sigma")
	fs.Float64("blur", 0, "gaussian blur sigma")
	fs.Int("brightness", 0, "add to each RGB channel (-255..255)")
	fs.Float64("contrast", 1, "contrast factor around mid-grey (1 = unchanged)")
	fs.Bool("grayscale", false, "convert to grayscale")
	fs.Bool("invert", false, "invert RGB channels")
	fs.Int("hue-rotate", 0, "rotate hue by degrees")
}

// filterConfigFromFlags builds a filter.Config from the flags that were set.
// Lookups cannot fail: the flags are registered by addFilterFlags.
func filterConfigFromFlags(fs *pflag.FlagSet) (filter.Config, error) {
	var c filter.Config
	if fs.Changed("sharpen-sigma") {
		v, _ := fs.GetFloat64("sharpen-sigma")
		c.SharpenSigma = &v
	}
	if fs.Changed("sharpen-threshold") {
		v, _ := fs.GetInt("sharpen-threshold")
		c.SharpenThreshold = &v
	}
	if fs.Changed("blur") {
		v, _ := fs.GetFloat64("blur")
		c.BlurSigma = &v
	}
	if fs.Changed("brightness") {
		v, _ := fs.GetInt("brightness")
		c.Brightness = &v
	}
	if fs.Changed("contrast") {
		v, _ := fs.GetFloat64("contrast")
		c.Contrast = &v
	}
	c.Grayscale, _ = fs.GetBool("grayscale")
	c.Invert, _ = fs.GetBool("invert")
	if fs.Changed("hue-rotate") {
		v, _ := fs.GetInt("hue-rotate")
		c.HueRotate = &v
	}
	return c, c.Validate()
}

// qualityFrom returns the --quality flag when set, otherwise the config value.
func qualityFrom(fs *pflag.FlagSet, fallback int) int {
	if fs.Changed("quality") {
		if q, err := fs.GetInt("quality"); err == nil {
			return q
		}
	}
	return fallback
}

// modeFrom returns the --mode flag when set, otherwise the config value.
func modeFrom(fs *pflag.FlagSet, fallback string) (resize.Mode, error) {
	s := fallback
	if fs.Changed("mode") {
		s, _ = fs.GetString("mode")
	}
	return resize.ParseMode(s)
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
