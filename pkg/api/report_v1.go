// pkg/api/report_v1.go
package api

// TractV1 is the stable JSON/JSONL schema for one called tract.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type TractV1 struct {
	QueryID    string  `json:"query_id"`
	DonorID    string  `json:"donor_id"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Length     int     `json:"length"`
	Matches    int     `json:"matches"`
	Comparable int     `json:"comparable"`
	P          float64 `json:"p"`
	PAdj       float64 `json:"p_adj"`
}

// WarningV1 records a non-fatal per-donor condition.
type WarningV1 struct {
	DonorID string `json:"donor_id"`
	Reason  string `json:"reason"`
}

// ReportV1 is the stable schema for one query's analysis.
type ReportV1 struct {
	QueryID        string      `json:"query_id"`
	Positions      int         `json:"positions"`
	Alpha          float64     `json:"alpha"`
	Correction     string      `json:"correction"`
	WindowHalf     int         `json:"window_half_width"`
	Candidates     int         `json:"candidates"`
	MutatedColumns int         `json:"mutated_columns"`
	TemplatedFrac  float64     `json:"templated_fraction"`
	Tracts         []TractV1   `json:"tracts"`
	Warnings       []WarningV1 `json:"warnings,omitempty"`
}
