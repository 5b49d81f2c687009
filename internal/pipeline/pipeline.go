// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"gcvscan-core/engine"
	"gcvscan-core/fasta"
	"gcvscan-core/seqset"
	"gcvscan-core/window"
	"gcvscan/internal/output"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads       int     // number of worker goroutines (>=1)
	MaxDivergence float64 // skip queries more diverged from the acceptor
	Lenient       bool    // skip malformed query records instead of failing
	Log           *logrus.Logger
}

// ForEachReport streams one Report per analyzed query record to visit.
// Query records are read from queryPath and analyzed independently
// against the shared acceptor and donors; analyses run on cfg.Threads
// workers and results arrive in completion order (use -sort downstream
// for determinism). It returns the total number of called tracts and the
// first error encountered (including context cancellation).
func ForEachReport(
	ctx context.Context,
	cfg Config,
	queryPath string,
	acceptor seqset.Sequence,
	donors []seqset.Sequence,
	alphabet seqset.Alphabet,
	ecfg engine.Config,
	visit func(output.Report) error,
) (int, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	log := cfg.Log
	if log == nil {
		log = logrus.New()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan fasta.Record, cfg.Threads*2)
	results := make(chan output.Report, cfg.Threads*2)
	errs := make(chan error, cfg.Threads+1)

	fail := func(err error) {
		select {
		case errs <- err:
			cancel()
		default:
		}
	}

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case rec, ok := <-jobs:
					if !ok {
						return
					}
					rep, skip, err := analyzeOne(rec, acceptor, donors, alphabet, ecfg, cfg, log)
					if err != nil {
						fail(err)
						return
					}
					if skip {
						continue
					}
					select {
					case results <- rep:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cwg    sync.WaitGroup
		tracts int
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for rep := range results {
			if err := visit(rep); err != nil {
				fail(err)
				return
			}
			tracts += len(rep.Result.Tracts)
		}
	}()

	// Feed
	ferr := fasta.ForEachPath(ctx, queryPath, func(rec fasta.Record) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case jobs <- rec:
			return nil
		}
	})

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	select {
	case err := <-errs:
		return tracts, err
	default:
	}
	if ferr != nil && !errors.Is(ferr, context.Canceled) {
		return tracts, ferr
	}
	if err := ctx.Err(); err != nil {
		return tracts, err
	}
	return tracts, nil
}

// analyzeOne builds the SequenceSet for one query record and runs the
// engine. Shape problems are skips under Lenient; over-diverged queries
// are always skips.
func analyzeOne(
	rec fasta.Record,
	acceptor seqset.Sequence,
	donors []seqset.Sequence,
	alphabet seqset.Alphabet,
	ecfg engine.Config,
	cfg Config,
	log *logrus.Logger,
) (output.Report, bool, error) {
	set, err := seqset.New(seqset.NewSequence(rec.ID, rec.Seq), acceptor, donors, alphabet)
	if err != nil {
		if cfg.Lenient && errors.Is(err, seqset.ErrShape) {
			log.WithField("query", rec.ID).Warnf("skipped: %v", err)
			return output.Report{}, true, nil
		}
		return output.Report{}, false, err
	}

	if cfg.MaxDivergence < 1 {
		m, n := window.Identity(set, set.Acceptor, 0, set.Len())
		if n > 0 {
			div := 1 - float64(m)/float64(n)
			if div > cfg.MaxDivergence {
				log.WithFields(logrus.Fields{"query": rec.ID, "divergence": fmt.Sprintf("%.3f", div)}).
					Debug("skipped: over max divergence")
				return output.Report{}, true, nil
			}
		}
	}

	res, err := engine.Analyze(set, ecfg)
	if err != nil {
		return output.Report{}, false, err
	}
	for _, w := range res.Meta.Warnings {
		log.WithFields(logrus.Fields{"query": rec.ID, "donor": w.DonorID}).Warn(w.Reason)
	}
	return output.Report{QueryID: rec.ID, Result: res}, false, nil
}
