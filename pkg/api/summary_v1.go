// pkg/api/summary_v1.go
package api

// SummaryV1 is the stable JSON schema of a run summary (--summary).
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SummaryV1 struct {
	RunID   string `json:"run_id"`
	Version string `json:"version"`

	// Input
	Input    string `json:"input"`
	Matrix   string `json:"matrix"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Nonzeros int    `json:"nonzeros"`
	// ValueBits is 32 for float32 data and 64 otherwise.
	ValueBits     int  `json:"value_bits"`
	ShapeInferred bool `json:"shape_inferred,omitempty"`

	// Output
	Output      string `json:"output"`
	Orientation string `json:"orientation"` // "var-names" | "obs-names"
	Delimiter   string `json:"delimiter"`
	Compression string `json:"compression"`
	Lines       int    `json:"lines"`
	Bytes       int64  `json:"bytes"`

	DurationSeconds float64 `json:"duration_seconds"`
}
