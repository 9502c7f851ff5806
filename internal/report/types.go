package report

// Report is the JSON record of a batch optimize run.
type Report struct {
	Version     int              `json:"version"`
	RunID       string           `json:"run_id"`
	GeneratedAt string           `json:"generated_at"`
	Profile     ProfileInfo      `json:"profile"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// ProfileInfo records the settings the run used.
type ProfileInfo struct {
	Name    string   `json:"name"`
	Widths  []uint32 `json:"widths"`
	Quality int      `json:"quality"`
	Mode    string   `json:"mode"`
	Workers int      `json:"workers,omitempty"`
}

// Asset is one source image and the JPEG variants produced from it.
type Asset struct {
	Source   Source    `json:"source"`
	Variants []Variant `json:"variants"`
}

// Source describes the input file.
type Source struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Size   int64  `json:"size"`
}

// Variant is one encoded output.
type Variant struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to the report's directory
	// CompressionRatio is 1 - size/source size; negative when the variant is larger.
	CompressionRatio float64 `json:"compression_ratio"`
}

// Stats aggregates the run.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalVariants    int   `json:"total_variants"`
	Failed           int   `json:"failed,omitempty"`
}

// CurrentVersion is the schema version written by this package.
const CurrentVersion = 1

// FileName is the report's name inside an output directory.
const FileName = "beautimg.report.json"
