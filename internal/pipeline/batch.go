package pipeline

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/AnyUserName/beautimg/internal/hasher"
	"github.com/AnyUserName/beautimg/internal/pixbuf"
	"github.com/AnyUserName/beautimg/internal/profile"
	"github.com/AnyUserName/beautimg/internal/report"
	"go.uber.org/zap"
)

// Batch optimizes every image under InputDir into OutputDir.
type Batch struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	// Workers bounds concurrent images; 0 means runtime.NumCPU().
	Workers   int
	Processor *Processor
	Log       *zap.Logger
}

type batchResult struct {
	key   string
	asset report.Asset
	err   error
}

// Run processes all sources and returns the report. Individual failures are
// logged and counted; Run fails only when nothing could be processed.
func (b *Batch) Run() (*report.Report, error) {
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}
	proc := b.Processor
	if proc == nil {
		proc = New(WithLogger(log))
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	sources, err := ScanImages(b.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", b.InputDir)
	}
	log.Info("batch started",
		zap.Int("images", len(sources)), zap.Int("workers", workers),
		zap.String("profile", b.Profile.Name))

	results := make([]batchResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	// Sources are sorted, so the first file claiming a key keeps it. Later
	// ones would overwrite its outputs and report entry.
	owner := make(map[string]string, len(sources))
	for i, src := range sources {
		if first, ok := owner[src.Key]; ok {
			results[i] = batchResult{
				key: src.Key,
				err: fmt.Errorf("%s: key %q already taken by %s", src.RelPath, src.Key, first),
			}
			continue
		}
		owner[src.Key] = src.RelPath

		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = b.processSource(proc, s)
			if results[idx].err == nil {
				log.Debug("image done",
					zap.String("key", s.Key), zap.Int("variants", len(results[idx].asset.Variants)))
			}
		}(i, src)
	}
	wg.Wait()

	r := report.New(report.ProfileInfo{
		Name:    b.Profile.Name,
		Widths:  b.Profile.Widths,
		Quality: b.Profile.Quality,
		Mode:    b.Profile.Mode.String(),
		Workers: workers,
	})
	for _, res := range results {
		if res.err != nil {
			log.Error("image failed", zap.String("key", res.key), zap.Error(res.err))
			r.Stats.Failed++
			continue
		}
		r.Assets[res.key] = res.asset
	}
	if r.Stats.Failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", len(sources))
	}
	if r.Stats.Failed > 0 {
		log.Warn("some images failed", zap.Int("failed", r.Stats.Failed), zap.Int("total", len(sources)))
	}
	r.ComputeStats()
	return r, nil
}

// processSource decodes one file once and writes a JPEG per effective width.
func (b *Batch) processSource(proc *Processor, src Source) batchResult {
	res := batchResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		res.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return res
	}
	buf, err := pixbuf.Decode(data)
	if err != nil {
		res.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return res
	}

	res.asset.Source = report.Source{
		Path:   src.RelPath,
		Format: src.Format,
		Width:  buf.Width,
		Height: buf.Height,
		Size:   src.Size,
	}

	keyDir := path.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(b.OutputDir, filepath.FromSlash(keyDir)), 0o755); err != nil {
			res.err = fmt.Errorf("create output dir for %s: %w", src.RelPath, err)
			return res
		}
	}

	for _, w := range b.Profile.EffectiveWidths(buf.Width) {
		out, err := proc.encode(proc.resize(buf, w, b.Profile.Mode), b.Profile.Quality, src.Size)
		if err != nil {
			res.err = fmt.Errorf("%s at width %d: %w", src.RelPath, w, err)
			return res
		}

		sum := hasher.ContentHash(out.Data, 16)
		name := fmt.Sprintf("%s.%d.%d.%s.%s", path.Base(src.Key), out.Width, out.Height, sum[:8], proc.enc.Extension())
		rel := path.Join(keyDir, name)
		if err := os.WriteFile(filepath.Join(b.OutputDir, filepath.FromSlash(rel)), out.Data, 0o644); err != nil {
			res.err = fmt.Errorf("write %s: %w", rel, err)
			return res
		}

		res.asset.Variants = append(res.asset.Variants, report.Variant{
			Width:            out.Width,
			Height:           out.Height,
			Size:             out.OptimizedSize,
			Hash:             sum,
			Path:             rel,
			CompressionRatio: out.CompressionRatio,
		})
	}
	return res
}
