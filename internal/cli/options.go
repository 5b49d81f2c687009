// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"gcvscan-core/seqset"
	"gcvscan/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	QueryFile    string
	AcceptorFile string
	AcceptorID   string
	DonorFile    string
	Alphabet     seqset.Alphabet
	RevComp      bool

	// Query filtering
	MaxDivergence float64
	Lenient       bool

	// Detection parameters
	Window     int
	Margin     float64
	MinTract   int
	Alpha      float64
	Correction string
	MergeGap   int
	Null       string

	// Performance
	Threads int

	// Output
	Output        string
	Sort          bool
	Header        bool // true unless --no-header
	Quiet         bool
	Verbose       bool
	NoHitExitCode int

	Version bool
}

// Usage prints the custom help text on fs's output.
func Usage(fs *flag.FlagSet, name string) {
	fmt.Fprintf(fs.Output(),
		`%s: gene-conversion tract detection in aligned sequence sets

Version: %s

Usage of %s:
`, name, version.Version, name)
	fs.PrintDefaults()
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	var alphabet string

	// Input
	fs.StringVar(&opt.QueryFile, "queries", "", "FASTA of aligned query sequences ('-' = stdin) [*]")
	fs.StringVar(&opt.AcceptorFile, "acceptor", "", "FASTA holding the germline acceptor [*]")
	fs.StringVar(&opt.AcceptorID, "acceptor-id", "", "record id to use from the acceptor FASTA (default: first) []")
	fs.StringVar(&opt.DonorFile, "donors", "", "FASTA of donor candidate references [*]")
	fs.StringVar(&alphabet, "alphabet", "nt", "sequence alphabet: nt | aa [nt]")
	fs.BoolVar(&opt.RevComp, "rc", false, "also scan reverse-complement donors (nt only) [false]")

	// Query filtering
	fs.Float64Var(&opt.MaxDivergence, "max-divergence", 1, "skip queries whose divergence from the acceptor exceeds this rate [1]")
	fs.BoolVar(&opt.Lenient, "lenient", false, "skip malformed query records instead of aborting [false]")

	// Detection parameters
	fs.IntVar(&opt.Window, "window", 3, "window half-width for local scoring (0 = single position) [3]")
	fs.Float64Var(&opt.Margin, "margin", 0.05, "minimum score margin a donor must clear over the acceptor [0.05]")
	fs.IntVar(&opt.MinTract, "min-tract", 2, "minimum candidate tract length [2]")
	fs.Float64Var(&opt.Alpha, "alpha", 0.05, "significance level in (0,1) [0.05]")
	fs.StringVar(&opt.Correction, "correction", "bonferroni", "multiple-testing correction: none | bonferroni | fdr [bonferroni]")
	fs.IntVar(&opt.MergeGap, "merge-gap", 0, "max unresolved gap bridged when merging same-donor tracts [0]")
	fs.StringVar(&opt.Null, "null", "empirical", "null match model: empirical | uniform [empirical]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | jsonl [text]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort reports for determinism (QueryID, then tract Start) [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging [false]")
	fs.IntVar(&opt.NoHitExitCode, "no-hit-exit-code", 1, "exit code when no tract is called anywhere [1]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	// Validation
	ab, ok := seqset.ParseAlphabet(alphabet)
	if !ok {
		return opt, fmt.Errorf("invalid --alphabet %q (want nt or aa)", alphabet)
	}
	opt.Alphabet = ab
	if opt.RevComp && ab != seqset.Nucleotide {
		return opt, errors.New("--rc requires --alphabet nt")
	}
	if opt.QueryFile == "" {
		return opt, errors.New("--queries is required")
	}
	if opt.AcceptorFile == "" {
		return opt, errors.New("--acceptor is required")
	}
	if opt.DonorFile == "" {
		return opt, errors.New("--donors is required")
	}
	switch opt.Output {
	case "text", "json", "jsonl":
	default:
		return opt, fmt.Errorf("invalid --output %q (want text, json or jsonl)", opt.Output)
	}
	if opt.MaxDivergence < 0 || opt.MaxDivergence > 1 {
		return opt, fmt.Errorf("invalid --max-divergence %g (want 0..1)", opt.MaxDivergence)
	}
	return opt, nil
}
