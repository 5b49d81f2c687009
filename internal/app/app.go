// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"gcvscan-core/engine"
	"gcvscan-core/fasta"
	"gcvscan-core/seqset"
	"gcvscan/internal/cli"
	"gcvscan/internal/cmdutil"
	"gcvscan/internal/output"
	"gcvscan/internal/pipeline"
	"gcvscan/internal/version"
	"gcvscan/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("gcvscan")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"}) // register flags for usage
		fs.SetOutput(outw)
		cli.Usage(fs, "gcvscan")
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			cli.Usage(fs, "gcvscan")
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "gcvscan version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)

	ecfg := engine.Config{
		WindowHalfWidth: opts.Window,
		Margin:          opts.Margin,
		MinTractLength:  opts.MinTract,
		Alpha:           opts.Alpha,
		Correction:      opts.Correction,
		MergeGap:        opts.MergeGap,
		Null:            opts.Null,
	}
	if err := ecfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	acceptor, donors, err := loadReferences(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log.WithField("donors", len(donors)).Debug("references loaded")

	thr := opts.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	inCh, writeErr := writers.StartReportWriter(outw, opts.Output, opts.Sort, opts.Header, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, perr := pipeline.ForEachReport(
		ctx,
		pipeline.Config{
			Threads:       thr,
			MaxDivergence: opts.MaxDivergence,
			Lenient:       opts.Lenient,
			Log:           log,
		},
		opts.QueryFile,
		acceptor,
		donors,
		opts.Alphabet,
		ecfg,
		func(r output.Report) error {
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		if errors.Is(perr, engine.ErrInputShape) || errors.Is(perr, engine.ErrConfig) {
			return 2
		}
		return 3
	}
	if total == 0 {
		return opts.NoHitExitCode
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// loadReferences reads the acceptor and donor FASTAs per the options,
// applying --acceptor-id selection and --rc donor extension.
func loadReferences(opts cli.Options) (seqset.Sequence, []seqset.Sequence, error) {
	var acceptor seqset.Sequence

	accRecs, err := fasta.ReadAllPath(opts.AcceptorFile)
	if err != nil {
		return acceptor, nil, err
	}
	if len(accRecs) == 0 {
		return acceptor, nil, fmt.Errorf("%s: no records", opts.AcceptorFile)
	}
	picked := accRecs[0]
	if opts.AcceptorID != "" {
		found := false
		for _, r := range accRecs {
			if r.ID == opts.AcceptorID {
				picked, found = r, true
				break
			}
		}
		if !found {
			return acceptor, nil, fmt.Errorf("%s: no record %q", opts.AcceptorFile, opts.AcceptorID)
		}
	}
	acceptor = seqset.NewSequence(picked.ID, picked.Seq)

	donRecs, err := fasta.ReadAllPath(opts.DonorFile)
	if err != nil {
		return acceptor, nil, err
	}
	if len(donRecs) == 0 {
		return acceptor, nil, fmt.Errorf("%s: no records", opts.DonorFile)
	}
	donors := make([]seqset.Sequence, 0, len(donRecs))
	for _, r := range donRecs {
		donors = append(donors, seqset.NewSequence(r.ID, r.Seq))
	}
	if opts.RevComp {
		donors = seqset.WithRevCompDonors(donors)
	}
	return acceptor, donors, nil
}
