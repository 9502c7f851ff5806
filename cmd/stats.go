package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/beautimg/internal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for an optimized output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), r)
	return nil
}

// reportPath resolves a directory to the report file inside it.
func reportPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, report.FileName), nil
	}
	return path, nil
}

func printStats(w io.Writer, r *report.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Report version:   %d\n", r.Version)
	fmt.Fprintf(w, "  Run:              %s\n", r.RunID)
	fmt.Fprintf(w, "  Generated:        %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "  Profile:          %s (q%d, %s)\n", r.Profile.Name, r.Profile.Quality, r.Profile.Mode)
	if r.Profile.Workers > 0 {
		fmt.Fprintf(w, "  Workers:          %d\n", r.Profile.Workers)
	}
	fmt.Fprintln(w)

	s := r.Stats
	fmt.Fprintf(w, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Total variants:   %d\n", s.TotalVariants)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed sources:   %d\n", s.Failed)
	}
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		fmt.Fprintf(w, "  Compression:      %.1f%% of original\n",
			float64(s.TotalOutputBytes)/float64(s.TotalInputBytes)*100)
	}
	fmt.Fprintln(w)

	// Per source format.
	formats := map[string]int{}
	for _, a := range r.Assets {
		formats[a.Source.Format]++
	}
	var names []string
	for f := range formats {
		names = append(names, f)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "  Source formats:")
	for _, f := range names {
		fmt.Fprintf(w, "    %-6s  %4d files\n", f, formats[f])
	}
	fmt.Fprintln(w)

	// Per width.
	widthStats := map[uint32]int{}
	for _, a := range r.Assets {
		for _, v := range a.Variants {
			widthStats[v.Width]++
		}
	}
	var widths []uint32
	for wd := range widthStats {
		widths = append(widths, wd)
	}
	sort.Slice(widths, func(i, j int) bool { return widths[i] < widths[j] })
	fmt.Fprintln(w, "  Width breakdown:")
	for _, wd := range widths {
		fmt.Fprintf(w, "    %5dpx  %4d variants\n", wd, widthStats[wd])
	}

	// Variants that came out larger than their source.
	var warnings []string
	for key, a := range r.Assets {
		if len(a.Variants) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no variants", key))
		}
		for _, v := range a.Variants {
			if v.CompressionRatio < 0 {
				warnings = append(warnings, fmt.Sprintf("%s is larger than its source", v.Path))
			}
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
	}
	fmt.Fprintln(w)
}
