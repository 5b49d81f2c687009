// internal/output/output_test.go
package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gcvscan-core/assemble"
	"gcvscan-core/tract"
	"gcvscan/pkg/api"
)

func sampleReport() Report {
	return Report{
		QueryID: "q1",
		Result: assemble.CallResult{
			Tracts: []tract.Tract{
				{DonorID: "d1", Start: 3, End: 6, Matches: 3, Comparable: 3, P: 0.296, PAdj: 0.296},
			},
			Meta: assemble.Meta{
				Alpha: 0.5, Correction: "none", WindowHalf: 0,
				Positions: 10, Candidates: 1,
				TemplatedFrac: 1, MutatedColumns: 3,
			},
		},
	}
}

func TestWriteTextHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, []Report{sampleReport()}, true); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "query_id\tdonor_id\tstart") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "q1\td1\t3\t6\t3\t3\t3\t") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteTextNoHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, []Report{sampleReport()}, false); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if strings.Contains(buf.String(), "query_id") {
		t.Errorf("header present despite --no-header:\n%s", buf.String())
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, []Report{sampleReport()}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var got []api.ReportV1
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].QueryID != "q1" || len(got[0].Tracts) != 1 {
		t.Fatalf("got = %+v", got)
	}
	if got[0].Tracts[0].Length != 3 || got[0].Tracts[0].DonorID != "d1" {
		t.Errorf("tract = %+v", got[0].Tracts[0])
	}
}

func TestStreamJSONLOneLinePerReport(t *testing.T) {
	in := make(chan Report, 2)
	in <- sampleReport()
	r2 := sampleReport()
	r2.QueryID = "q2"
	r2.Result.Tracts = nil
	in <- r2
	close(in)

	var buf bytes.Buffer
	if err := StreamJSONL(&buf, in); err != nil {
		t.Fatalf("StreamJSONL: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var rep api.ReportV1
	if err := json.Unmarshal([]byte(lines[1]), &rep); err != nil {
		t.Fatalf("line 2: %v", err)
	}
	if rep.QueryID != "q2" || len(rep.Tracts) != 0 {
		t.Errorf("rep = %+v", rep)
	}
	// empty tract list must serialize as [], not null
	if strings.Contains(lines[1], `"tracts":null`) {
		t.Errorf("tracts serialized as null: %s", lines[1])
	}
}

func TestToAPIReportWarnings(t *testing.T) {
	r := sampleReport()
	r.Result.Meta.Warnings = []assemble.Warning{{DonorID: "dx", Reason: "insufficient data: no comparable positions"}}
	out := ToAPIReport(r)
	if len(out.Warnings) != 1 || out.Warnings[0].DonorID != "dx" {
		t.Errorf("warnings = %+v", out.Warnings)
	}
}
