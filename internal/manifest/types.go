package manifest

// FileName is the manifest written at the root of a batch output dir.
const FileName = "matstudio.manifest.json"

// Manifest is the report of one batch warp run.
type Manifest struct {
	Version     int              `json:"version"`
	RunID       string           `json:"run_id"`
	GeneratedAt string           `json:"generated_at"`
	Recipe      string           `json:"recipe"`
	Transform   Transform        `json:"transform"`
	BasePath    string           `json:"base_path"`
	RunInfo     *RunInfo         `json:"run_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// Transform records what every asset in the run was warped with. Manual is
// set when the recipe supplied the combined matrix directly, in which case
// Order and Params are the neutral defaults.
type Transform struct {
	Order  []string    `json:"order"`
	Params Params      `json:"params"`
	Manual *[6]float64 `json:"manual_matrix,omitempty"`
}

// Params mirrors transform.Params with stable JSON names.
type Params struct {
	ScaleX  float64 `json:"scale_x"`
	ScaleY  float64 `json:"scale_y"`
	Degrees float64 `json:"rotation_degrees"`
	ShearX  float64 `json:"shear_x"`
	ShearY  float64 `json:"shear_y"`
}

// RunInfo captures run parameters for diagnostics.
type RunInfo struct {
	Workers     int    `json:"workers"`
	BandWorkers int    `json:"band_workers"`
	Format      string `json:"format"`
	Quality     int    `json:"quality,omitempty"`
	PreviewW    int    `json:"preview_width,omitempty"`
}

// Asset describes one source image and its warped output.
type Asset struct {
	Source SourceInfo `json:"source"`
	Output Output     `json:"output"`

	// Matrix is the final source-to-output matrix (a, b, c, d, e, f) with
	// the canvas offset folded in.
	Matrix     [6]float64 `json:"matrix"`
	Degenerate bool       `json:"degenerate,omitempty"`
	Preview    *Output    `json:"preview,omitempty"`
}

// SourceInfo holds metadata about the input image.
type SourceInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"`
}

// Output is one encoded file.
type Output struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // xxhash64 prefix, also embedded in Path
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalPixels      int64 `json:"total_output_pixels"`
	Degenerate       int   `json:"degenerate,omitempty"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
