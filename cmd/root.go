package cmd

import (
	"fmt"
	"runtime"

	"github.com/AnyUserName/beautimg/internal/config"
	"github.com/AnyUserName/beautimg/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
	logFile    string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "beautimg",
	Short: "Filter, resize and re-encode images as JPEG",
	Long: `beautimg turns raw RGBA buffers or encoded images into compact JPEGs.

Raw buffers go through an ordered filter chain (unsharp mask, blur,
brightness, contrast, grayscale, invert, hue rotation). Encoded images are
downsized to a target width, never upscaled. Directories are optimized in
parallel against a named profile and summarized in a JSON report.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&configPath, "config", "", "config file (default ./beautimg.yaml)")
	pf.StringVar(&logFile, "log-file", "", "write logs to a rotating file instead of stderr")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"beautimg %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads the config and builds the logger every command shares.
func setup(_ *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if logFile != "" {
		c.Log.File = logFile
	}
	l, err := logging.New(c.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	cfg, logger = c, l
	logger.Debug("config loaded", zap.Int("quality", cfg.Quality), zap.String("mode", cfg.Mode))
	return nil
}
