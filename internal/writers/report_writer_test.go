// internal/writers/report_writer_test.go
package writers

import (
	"bytes"
	"strings"
	"testing"

	"gcvscan-core/assemble"
	"gcvscan-core/tract"
	"gcvscan/internal/output"
)

func rep(query string, start int) output.Report {
	return output.Report{
		QueryID: query,
		Result: assemble.CallResult{
			Tracts: []tract.Tract{{DonorID: "d1", Start: start, End: start + 3, Matches: 3, Comparable: 3, P: 0.01, PAdj: 0.01}},
		},
	}
}

func TestReportWriterTextSorted(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartReportWriter(&buf, "text", true, false, 4)
	in <- rep("q2", 5)
	in <- rep("q1", 0)
	close(in)
	if err := <-errCh; err != nil {
		t.Fatalf("writer: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "q1\t") || !strings.HasPrefix(lines[1], "q2\t") {
		t.Errorf("not sorted:\n%s", buf.String())
	}
}

func TestReportWriterJSONL(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartReportWriter(&buf, "jsonl", false, true, 4)
	in <- rep("q1", 0)
	close(in)
	if err := <-errCh; err != nil {
		t.Fatalf("writer: %v", err)
	}
	if !strings.HasPrefix(buf.String(), `{"query_id":"q1"`) {
		t.Errorf("jsonl = %s", buf.String())
	}
}

func TestReportWriterUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartReportWriter(&buf, "xml", false, true, 1)
	close(in)
	if err := <-errCh; err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestIsBrokenPipeNil(t *testing.T) {
	if IsBrokenPipe(nil) {
		t.Error("nil is not a broken pipe")
	}
}
