package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/beautimg/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	processOut    string
	processWidth  uint32
	processHeight uint32
)

var processCmd = &cobra.Command{
	Use:   "process <rgba_file>",
	Short: "Run the filter chain over a raw RGBA buffer and encode it as JPEG",
	Long: `Reads a raw, row-major, 8-bit RGBA buffer of exactly width*height*4 bytes,
applies the requested filters in fixed order and writes a JPEG.

Filter order: unsharp, blur, brightness, contrast, grayscale, invert,
hue-rotate. Filters whose flags are not given are skipped. Unsharp runs only
when both --sharpen-sigma and --sharpen-threshold are given.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	f := processCmd.Flags()
	f.StringVarP(&processOut, "out", "o", "out.jpeg", "output file")
	f.Uint32Var(&processWidth, "width", 0, "buffer width in pixels")
	f.Uint32Var(&processHeight, "height", 0, "buffer height in pixels")
	f.IntP("quality", "q", 0, "JPEG quality 1-100 (default from config)")
	addFilterFlags(f)
	_ = processCmd.MarkFlagRequired("width")
	_ = processCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	filters, err := filterConfigFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	logger.Debug("process",
		zap.String("input", args[0]),
		zap.Uint32("width", processWidth), zap.Uint32("height", processHeight),
		zap.Strings("stages", filters.Stages()))

	p := pipeline.New(pipeline.WithLogger(logger))
	res, err := p.Process(pipeline.ProcessRequest{
		RGBA:    raw,
		Width:   processWidth,
		Height:  processHeight,
		Quality: qualityFrom(cmd.Flags(), cfg.Quality),
		Filters: filters,
	})
	if err != nil {
		return err
	}
	if err := writeOutput(processOut, res.Data); err != nil {
		return err
	}
	printResult(cmd, processOut, res)
	return nil
}

func printResult(cmd *cobra.Command, path string, res *pipeline.Result) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  %s  %dx%d  %s → %s  (%.1f%% saved)\n",
		path, res.Width, res.Height,
		formatBytes(res.OriginalSize), formatBytes(res.OptimizedSize),
		res.CompressionRatio*100)
}
