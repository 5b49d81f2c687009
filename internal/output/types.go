// internal/output/types.go
package output

import "gcvscan-core/assemble"

// Report pairs one query id with its analysis result.
type Report struct {
	QueryID string
	Result  assemble.CallResult
}
