// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"gcvscan/pkg/api"
)

// WriteJSON emits the full report list as one indented JSON array.
func WriteJSON(w io.Writer, list []Report) error {
	arr := make([]api.ReportV1, 0, len(list))
	for _, r := range list {
		arr = append(arr, ToAPIReport(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(arr)
}

// StreamJSONL emits one ReportV1 per line.
func StreamJSONL(w io.Writer, in <-chan Report) error {
	enc := json.NewEncoder(w)
	for r := range in {
		if err := enc.Encode(ToAPIReport(r)); err != nil {
			return err
		}
	}
	return nil
}
