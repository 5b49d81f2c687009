// internal/common/sort.go
package common

import (
	"sort"

	"gcvscan/internal/output"
)

// LessReport defines a stable order for reports (for -sort).
func LessReport(a, b output.Report) bool {
	if a.QueryID != b.QueryID {
		return a.QueryID < b.QueryID
	}
	at, bt := a.Result.Tracts, b.Result.Tracts
	if len(at) == 0 || len(bt) == 0 {
		return len(at) < len(bt)
	}
	return at[0].Start < bt[0].Start
}

func SortReports(rs []output.Report) {
	sort.Slice(rs, func(i, j int) bool { return LessReport(rs[i], rs[j]) })
}
