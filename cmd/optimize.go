package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AnyUserName/beautimg/internal/pipeline"
	"github.com/AnyUserName/beautimg/internal/profile"
	"github.com/AnyUserName/beautimg/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	optimizeOut    string
	optimizeWidth  uint32
	optimizeWidths []uint
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <image_or_dir>",
	Short: "Downsize and re-encode images as JPEG",
	Long: `With a file argument, decodes it (png, jpeg, gif, webp, bmp, tiff), downsizes
it to --width keeping the aspect ratio and writes a JPEG to --out. Images
narrower than --width keep their size.

With a directory argument, every image below it is optimized against a
profile into --out as <key>.<w>.<h>.<hash>.jpeg, and a report is written
to <out>/` + report.FileName + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVarP(&optimizeOut, "out", "o", "", "output file, or output directory in batch mode")
	f.Uint32Var(&optimizeWidth, "width", 0, "target width (0 = keep)")
	f.UintSliceVar(&optimizeWidths, "widths", nil, "batch widths (overrides profile)")
	f.String("mode", "", "resize mode: standard | high-quality (default from config)")
	f.IntP("quality", "q", 0, "JPEG quality 1-100 (default from config or profile)")
	f.StringP("profile", "p", "", "batch profile: "+fmt.Sprint(profile.Names()))
	f.IntP("workers", "w", 0, "batch workers (0 = NumCPU, default from config)")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("stat %s: %w", args[0], err)
	}
	if info.IsDir() {
		return runOptimizeDir(cmd, args[0])
	}
	return runOptimizeFile(cmd, args[0])
}

func runOptimizeFile(cmd *cobra.Command, input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	mode, err := modeFrom(cmd.Flags(), cfg.Mode)
	if err != nil {
		return err
	}
	out := optimizeOut
	if out == "" {
		out = trimExt(input) + ".opt.jpeg"
	}

	res, err := pipeline.New(pipeline.WithLogger(logger)).Optimize(pipeline.OptimizeRequest{
		Data:        data,
		TargetWidth: optimizeWidth,
		Quality:     qualityFrom(cmd.Flags(), cfg.Quality),
		Mode:        mode,
	})
	if err != nil {
		return err
	}
	if err := writeOutput(out, res.Data); err != nil {
		return err
	}
	printResult(cmd, out, res)
	return nil
}

func runOptimizeDir(cmd *cobra.Command, input string) error {
	start := time.Now()
	fs := cmd.Flags()

	absInput, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	out := optimizeOut
	if out == "" {
		out = "./beautimg_out"
	}
	absOutput, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	name := cfg.Profile
	if fs.Changed("profile") {
		name, _ = fs.GetString("profile")
	}
	prof := profile.Get(name)
	if optimizeWidths != nil {
		prof.Widths = prof.Widths[:0]
		for _, w := range optimizeWidths {
			prof.Widths = append(prof.Widths, uint32(w))
		}
	}
	if fs.Changed("quality") {
		prof.Quality, _ = fs.GetInt("quality")
	}
	if fs.Changed("mode") {
		if prof.Mode, err = modeFrom(fs, cfg.Mode); err != nil {
			return err
		}
	}
	workers := cfg.Workers
	if fs.Changed("workers") {
		workers, _ = fs.GetInt("workers")
	}

	logger.Info("optimize directory",
		zap.String("input", absInput), zap.String("output", absOutput),
		zap.String("profile", prof.Name), zap.Uint32s("widths", prof.Widths),
		zap.Int("quality", prof.Quality))

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	b := &pipeline.Batch{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   workers,
		Processor: pipeline.New(pipeline.WithLogger(logger)),
		Log:       logger,
	}
	r, err := b.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	reportPath := filepath.Join(absOutput, report.FileName)
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBatchSummary(cmd, r, time.Since(start))
	return nil
}

func printBatchSummary(cmd *cobra.Command, r *report.Report, elapsed time.Duration) {
	w := cmd.OutOrStdout()
	s := r.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Run:         %s\n", r.RunID)
	fmt.Fprintf(w, "  Assets:      %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Variants:    %d\n", s.TotalVariants)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d\n", s.Failed)
	}
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		fmt.Fprintf(w, "  Ratio:       %.1f%% of original\n",
			float64(s.TotalOutputBytes)/float64(s.TotalInputBytes)*100)
	}
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)

	type assetSize struct {
		key     string
		in, out int64
	}
	var items []assetSize
	for key, a := range r.Assets {
		var sum int64
		for _, v := range a.Variants {
			sum += v.Size
		}
		items = append(items, assetSize{key, a.Source.Size, sum})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].in != items[j].in {
			return items[i].in > items[j].in
		}
		return items[i].key < items[j].key
	})
	if len(items) > 10 {
		items = items[:10]
	}
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  Top %d heaviest (original → optimized):\n", len(items))
	for _, it := range items {
		fmt.Fprintf(w, "    %-40s %8s → %8s  (%.0f%% saved)\n",
			truncKey(it.key, 40), formatBytes(it.in), formatBytes(it.out),
			pipeline.CompressionRatio(it.in, it.out)*100)
	}
	fmt.Fprintln(w)
}

func trimExt(p string) string {
	return p[:len(p)-len(filepath.Ext(p))]
}
