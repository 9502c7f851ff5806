package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/beautimg/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	transformOut     string
	transformWidth   uint32
	transformSharpen bool
)

var transformCmd = &cobra.Command{
	Use:   "transform <image>",
	Short: "Decode, resize, filter and re-encode one image",
	Long: `Combines optimize and process: the image is decoded, downsized to --width
(never upscaled), passed through the filter chain and encoded as JPEG.

--sharpen applies the default unsharp mask (sigma 1.5, threshold 1) unless
--sharpen-sigma/--sharpen-threshold are given.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	f := transformCmd.Flags()
	f.StringVarP(&transformOut, "out", "o", "out.jpeg", "output file")
	f.Uint32Var(&transformWidth, "width", 0, "target width (0 = keep)")
	f.String("mode", "", "resize mode: standard | high-quality (default from config)")
	f.IntP("quality", "q", 0, "JPEG quality 1-100 (default from config)")
	f.BoolVar(&transformSharpen, "sharpen", false, "apply the default unsharp mask")
	addFilterFlags(f)
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	mode, err := modeFrom(cmd.Flags(), cfg.Mode)
	if err != nil {
		return err
	}
	filters, err := filterConfigFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	b := pipeline.New(pipeline.WithLogger(logger)).
		Image(data).
		Resize(transformWidth).
		Mode(mode).
		WithFilters(filters)
	if _, _, ok := filters.Unsharp(); transformSharpen && !ok {
		b.SharpenDefault()
	}

	res, err := b.ToJPEG(qualityFrom(cmd.Flags(), cfg.Quality))
	if err != nil {
		return err
	}
	if err := writeOutput(transformOut, res.Data); err != nil {
		return err
	}
	printResult(cmd, transformOut, res)
	return nil
}
