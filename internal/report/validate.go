package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/beautimg/internal/hasher"
)

// Validate checks the report's internal consistency and that every variant
// exists under baseDir with the recorded size and hash. It returns one
// message per problem, in a stable order.
func (r *Report) Validate(baseDir string) []string {
	var errs []string

	if r.Version != CurrentVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}

	keys := make([]string, 0, len(r.Assets))
	for k := range r.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	variantCount := 0
	for _, key := range keys {
		asset := r.Assets[key]
		variantCount += len(asset.Variants)

		if asset.Source.Width == 0 || asset.Source.Height == 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid source dimensions %dx%d",
				key, asset.Source.Width, asset.Source.Height))
		}
		if len(asset.Variants) == 0 {
			errs = append(errs, fmt.Sprintf("asset %q: no variants", key))
		}

		seen := map[string]bool{}
		for i, v := range asset.Variants {
			if v.Width == 0 || v.Height == 0 {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: invalid dimensions %dx%d", key, i, v.Width, v.Height))
			}
			if v.Width > asset.Source.Width {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: width %d exceeds source width %d",
					key, i, v.Width, asset.Source.Width))
			}
			if v.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: missing path", key, i))
				continue
			}
			if seen[v.Path] {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: duplicate path %q", key, i, v.Path))
			}
			seen[v.Path] = true

			errs = append(errs, checkFile(filepath.Join(baseDir, filepath.FromSlash(v.Path)), key, i, v)...)
		}
	}

	if r.Stats.TotalAssets != len(r.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", r.Stats.TotalAssets, len(r.Assets)))
	}
	if r.Stats.TotalVariants != variantCount {
		errs = append(errs, fmt.Sprintf("stats.total_variants mismatch: %d != %d", r.Stats.TotalVariants, variantCount))
	}
	return errs
}

func checkFile(path, key string, i int, v Variant) []string {
	f, err := os.Open(path)
	if err != nil {
		return []string{fmt.Sprintf("asset %q variant[%d]: file not found: %s", key, i, v.Path)}
	}
	defer f.Close()

	var errs []string
	if info, err := f.Stat(); err == nil && v.Size > 0 && info.Size() != v.Size {
		errs = append(errs, fmt.Sprintf("asset %q variant[%d]: size mismatch: report=%d, disk=%d",
			key, i, v.Size, info.Size()))
	}
	if v.Hash != "" {
		sum, err := hasher.ContentHashReader(f, len(v.Hash))
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q variant[%d]: read: %v", key, i, err))
		} else if sum != v.Hash {
			errs = append(errs, fmt.Sprintf("asset %q variant[%d]: hash mismatch: report=%s, disk=%s", key, i, v.Hash, sum))
		}
	}
	return errs
}
