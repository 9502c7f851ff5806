// Package report records what a batch optimize run produced.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// New returns an empty report stamped with a fresh run id.
func New(profile ProfileInfo) *Report {
	return &Report{
		Version:     CurrentVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profile,
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates totals from the assets. Failed is kept.
func (r *Report) ComputeStats() {
	s := Stats{Failed: r.Stats.Failed, TotalAssets: len(r.Assets)}
	for _, a := range r.Assets {
		s.TotalInputBytes += a.Source.Size
		s.TotalVariants += len(a.Variants)
		for _, v := range a.Variants {
			s.TotalOutputBytes += v.Size
		}
	}
	r.Stats = s
}

// WriteJSON writes r, indented, to path. Stats are recomputed first.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report. Unknown fields are ignored.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
