// internal/output/api_conv.go
package output

import "gcvscan/pkg/api"

// ToAPIReport converts the internal report to the stable v1 schema.
func ToAPIReport(r Report) api.ReportV1 {
	m := r.Result.Meta
	out := api.ReportV1{
		QueryID:        r.QueryID,
		Positions:      m.Positions,
		Alpha:          m.Alpha,
		Correction:     m.Correction,
		WindowHalf:     m.WindowHalf,
		Candidates:     m.Candidates,
		MutatedColumns: m.MutatedColumns,
		TemplatedFrac:  m.TemplatedFrac,
		Tracts:         []api.TractV1{},
	}
	for _, t := range r.Result.Tracts {
		out.Tracts = append(out.Tracts, api.TractV1{
			QueryID:    r.QueryID,
			DonorID:    t.DonorID,
			Start:      t.Start,
			End:        t.End,
			Length:     t.Length(),
			Matches:    t.Matches,
			Comparable: t.Comparable,
			P:          t.P,
			PAdj:       t.PAdj,
		})
	}
	for _, w := range m.Warnings {
		out.Warnings = append(out.Warnings, api.WarningV1{DonorID: w.DonorID, Reason: w.Reason})
	}
	return out
}
