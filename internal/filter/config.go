package filter

import (
	"math"

	"github.com/AnyUserName/beautimg/internal/imgerr"
)

// Config is a sparse set of filter parameters. A nil field skips its stage;
// a present field applies it exactly once, in the order listed by Stages.
type Config struct {
	// SharpenSigma and SharpenThreshold drive the unsharp mask. Both must be
	// set, otherwise the stage is skipped.
	SharpenSigma     *float64
	SharpenThreshold *int

	BlurSigma  *float64
	Brightness *int
	Contrast   *float64
	Grayscale  bool
	Invert     bool
	// HueRotate is in degrees, taken mod 360.
	HueRotate *int
}

// Ptr returns a pointer to v, for filling optional Config fields.
func Ptr[T any](v T) *T { return &v }

// Unsharp returns the unsharp mask parameters when both are present.
func (c Config) Unsharp() (sigma float64, threshold int, ok bool) {
	if c.SharpenSigma == nil || c.SharpenThreshold == nil {
		return 0, 0, false
	}
	return *c.SharpenSigma, *c.SharpenThreshold, true
}

// Empty reports whether no stage is active.
func (c Config) Empty() bool {
	return len(c.Stages()) == 0
}

// Stages lists the active stage names in application order.
func (c Config) Stages() []string {
	var names []string
	for _, s := range chain {
		if s.active(c) {
			names = append(names, s.name)
		}
	}
	return names
}

// Validate checks every active stage's parameters. Inactive stages are not
// inspected, so a lone SharpenSigma is never rejected.
func (c Config) Validate() error {
	if sigma, _, ok := c.Unsharp(); ok {
		if err := checkSigma(StageUnsharp, sigma); err != nil {
			return err
		}
	}
	if c.BlurSigma != nil {
		if err := checkSigma(StageBlur, *c.BlurSigma); err != nil {
			return err
		}
	}
	if c.Contrast != nil {
		if err := checkContrast(*c.Contrast); err != nil {
			return err
		}
	}
	return nil
}

func checkContrast(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return imgerr.FilterParameter(StageContrast, "factor must be finite, got %g", f)
	}
	return nil
}

func checkSigma(stage string, sigma float64) error {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return imgerr.FilterParameter(stage, "sigma must be a finite value >= 0, got %g", sigma)
	}
	return nil
}
