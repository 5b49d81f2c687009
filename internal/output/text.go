// internal/output/text.go
package output

import (
	"fmt"
	"io"
)

const textHeader = "query_id\tdonor_id\tstart\tend\tlength\tmatches\tcomparable\tp\tp_adj\ttemplated_fraction\n"

// WriteText prints one TSV line per called tract. Queries without tracts
// produce no rows; their metadata is only visible in json/jsonl output.
func WriteText(w io.Writer, list []Report, header bool) error {
	if header {
		if _, err := io.WriteString(w, textHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if err := writeTextRows(w, r); err != nil {
			return err
		}
	}
	return nil
}

// StreamText is the channel-driven variant used by the writer goroutine.
func StreamText(w io.Writer, in <-chan Report, header bool) error {
	if header {
		if _, err := io.WriteString(w, textHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if err := writeTextRows(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeTextRows(w io.Writer, r Report) error {
	for _, t := range r.Result.Tracts {
		_, err := fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%.4g\t%.4g\t%.4g\n",
			r.QueryID, t.DonorID, t.Start, t.End, t.Length(),
			t.Matches, t.Comparable, t.P, t.PAdj, r.Result.Meta.TemplatedFrac,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
