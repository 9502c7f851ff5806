//go:build ignore

// gen_fixtures writes sample inputs for a manual CLI smoke run:
//
//	go run e2e/gen_fixtures.go /tmp/fx
//	beautimg optimize /tmp/fx/images -o /tmp/fx/out -p web-hq
//	beautimg validate /tmp/fx/out
//	beautimg process /tmp/fx/swatch.rgba --width 320 --height 240 --contrast 1.4 --hue-rotate 120
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	images := filepath.Join(dir, "images")
	must(os.MkdirAll(filepath.Join(images, "cards"), 0o755))

	must(imaging.Save(gradient(1600, 900), filepath.Join(images, "banner.jpg"), imaging.JPEGQuality(90)))
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("card-%d.png", i)
		must(imaging.Save(bordered(480, 320, uint8(i*60)), filepath.Join(images, "cards", name)))
	}
	must(imaging.Save(alphaGradient(256, 256), filepath.Join(images, "logo.png")))
	must(imaging.Save(gradient(300, 200), filepath.Join(images, "wide.gif")))

	// Straight RGBA, row-major, no header.
	swatch := gradient(320, 240)
	must(os.WriteFile(filepath.Join(dir, "swatch.rgba"), swatch.Pix, 0o644))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] wrote 6 images and swatch.rgba (320x240) to %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func bordered(w, h int, base uint8) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255})
	border := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < 6 || x >= w-6 || y < 6 || y >= h-6 {
				img.SetNRGBA(x, y, border)
			}
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 220, G: 60, B: 30, A: uint8(x * 255 / w)})
		}
	}
	return img
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
