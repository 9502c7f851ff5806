package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/beautimg/internal/filter"
	"github.com/AnyUserName/beautimg/internal/imgerr"
	"github.com/AnyUserName/beautimg/internal/report"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilterFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFilterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestFilterConfigFromFlagsOnlySetFlags(t *testing.T) {
	c, err := filterConfigFromFlags(newFilterFlags(t))
	require.NoError(t, err)
	assert.True(t, c.Empty())

	c, err = filterConfigFromFlags(newFilterFlags(t,
		"--contrast=1", "--brightness=-20", "--invert", "--hue-rotate=90"))
	require.NoError(t, err)
	assert.Equal(t, filter.Config{
		Contrast:   filter.Ptr(1.0),
		Brightness: filter.Ptr(-20),
		Invert:     true,
		HueRotate:  filter.Ptr(90),
	}, c)
	assert.Equal(t, []string{filter.StageBrightness, filter.StageContrast, filter.StageInvert, filter.StageHueRotate}, c.Stages())
}

func TestFilterConfigFromFlagsSharpenNeedsBoth(t *testing.T) {
	c, err := filterConfigFromFlags(newFilterFlags(t, "--sharpen-sigma=1.5"))
	require.NoError(t, err)
	_, _, ok := c.Unsharp()
	assert.False(t, ok)

	c, err = filterConfigFromFlags(newFilterFlags(t, "--sharpen-sigma=1.5", "--sharpen-threshold=2"))
	require.NoError(t, err)
	sigma, threshold, ok := c.Unsharp()
	require.True(t, ok)
	assert.Equal(t, 1.5, sigma)
	assert.Equal(t, 2, threshold)
}

func TestFilterConfigFromFlagsValidates(t *testing.T) {
	_, err := filterConfigFromFlags(newFilterFlags(t, "--blur=-2"))
	assert.ErrorIs(t, err, imgerr.ErrFilterParameter)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestProcessCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	raw := filepath.Join(dir, "in.rgba")
	require.NoError(t, os.WriteFile(raw, bytes.Repeat([]byte{200, 10, 10, 255}, 16), 0o644))
	dst := filepath.Join(dir, "out.jpeg")

	out, err := execute(t, "process", raw, "--width=4", "--height=4", "-o", dst, "--invert")
	require.NoError(t, err)
	assert.Contains(t, out, "4x4")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])
}

func TestOptimizeValidateStatsCommands(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	in := filepath.Join(dir, "in")
	require.NoError(t, os.MkdirAll(filepath.Join(in, "cards"), 0o755))
	writePNG(t, filepath.Join(in, "banner.png"), 300, 200)
	writePNG(t, filepath.Join(in, "cards", "a.png"), 120, 80)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "optimize", in, "-o", outDir, "--widths=100,200", "-w", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Variants:    3")

	r, err := report.ReadJSON(filepath.Join(outDir, report.FileName))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Stats.TotalAssets)
	assert.Len(t, r.Assets["banner"].Variants, 2)
	assert.Len(t, r.Assets["cards/a"].Variants, 1)

	out, err = execute(t, "validate", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report is valid")

	out, err = execute(t, "stats", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Total variants:   3")
	assert.Contains(t, out, "png")
}

func TestOptimizeSingleFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	src := filepath.Join(dir, "photo.png")
	writePNG(t, src, 80, 40)
	dst := filepath.Join(dir, "photo.jpeg")

	out, err := execute(t, "optimize", src, "-o", dst, "--width=40", "--mode=hq")
	require.NoError(t, err)
	assert.Contains(t, out, "40x20")
	_, err = os.Stat(dst)
	assert.NoError(t, err)
}

func TestValidateReportsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	r := report.New(report.ProfileInfo{Name: "web"})
	r.Assets["x"] = report.Asset{
		Source:   report.Source{Path: "x.png", Format: "png", Width: 10, Height: 10, Size: 100},
		Variants: []report.Variant{{Width: 10, Height: 10, Size: 5, Hash: "0123456789abcdef", Path: "x.10.10.01234567.jpeg"}},
	}
	require.NoError(t, report.WriteJSON(r, filepath.Join(dir, report.FileName)))

	out, err := execute(t, "validate", dir)
	require.Error(t, err)
	assert.Contains(t, out, "file not found")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
