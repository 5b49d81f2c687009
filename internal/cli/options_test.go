// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"testing"

	"gcvscan-core/seqset"
)

func parse(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	return ParseArgs(NewFlagSet("test"), args)
}

func required(extra ...string) []string {
	base := []string{"--queries", "q.fa", "--acceptor", "gl.fa", "--donors", "d.fa"}
	return append(base, extra...)
}

func TestParseDefaults(t *testing.T) {
	opt, err := parse(t, required()...)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Window != 3 || opt.Margin != 0.05 || opt.MinTract != 2 {
		t.Errorf("detection defaults wrong: %+v", opt)
	}
	if opt.Alpha != 0.05 || opt.Correction != "bonferroni" || opt.MergeGap != 0 || opt.Null != "empirical" {
		t.Errorf("stat defaults wrong: %+v", opt)
	}
	if opt.Output != "text" || !opt.Header || opt.Sort {
		t.Errorf("output defaults wrong: %+v", opt)
	}
	if opt.Alphabet != seqset.Nucleotide {
		t.Errorf("alphabet default = %v", opt.Alphabet)
	}
	if opt.NoHitExitCode != 1 {
		t.Errorf("no-hit exit code = %d", opt.NoHitExitCode)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing queries", []string{"--acceptor", "a", "--donors", "d"}},
		{"missing acceptor", []string{"--queries", "q", "--donors", "d"}},
		{"missing donors", []string{"--queries", "q", "--acceptor", "a"}},
		{"bad alphabet", required("--alphabet", "rna2")},
		{"rc on aa", required("--alphabet", "aa", "--rc")},
		{"bad output", required("--output", "xml")},
		{"bad divergence", required("--max-divergence", "1.5")},
	}
	for _, tc := range tests {
		if _, err := parse(t, tc.args...); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestParseHelpAndVersion(t *testing.T) {
	if _, err := parse(t, "-h"); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h err = %v, want ErrHelp", err)
	}
	opt, err := parse(t, "--version")
	if err != nil || !opt.Version {
		t.Errorf("--version = %+v, %v", opt, err)
	}
}

func TestParseNoHeader(t *testing.T) {
	opt, err := parse(t, required("--no-header", "--sort", "--rc")...)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Header || !opt.Sort || !opt.RevComp {
		t.Errorf("opt = %+v", opt)
	}
}
