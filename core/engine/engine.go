// core/engine/engine.go
package engine

import (
	"errors"
	"fmt"

	"gcvscan-core/assemble"
	"gcvscan-core/attrib"
	"gcvscan-core/seqset"
	"gcvscan-core/tract"
	"gcvscan-core/window"
)

// ErrConfig marks an out-of-range analysis parameter. Matched with
// errors.Is.
var ErrConfig = errors.New("configuration")

// ErrInputShape re-exports the seqset invariant error so callers can
// match either layer.
var ErrInputShape = seqset.ErrShape

// Null model names.
const (
	NullEmpirical = "empirical"
	NullUniform   = "uniform"
)

// Config holds gene-conversion detection parameters.
type Config struct {
	WindowHalfWidth int     // w >= 0; 0 = single-position comparison
	Margin          float64 // epsilon a donor must clear over the acceptor
	MinTractLength  int     // candidates shorter than this are dropped
	Alpha           float64 // significance level in (0,1)
	Correction      string  // none | bonferroni | fdr
	MergeGap        int     // max unresolved gap bridged when merging
	Null            string  // empirical | uniform
}

// DefaultConfig mirrors the CLI defaults.
func DefaultConfig() Config {
	return Config{
		WindowHalfWidth: 3,
		Margin:          0.05,
		MinTractLength:  2,
		Alpha:           0.05,
		Correction:      assemble.CorrectionBonferroni,
		MergeGap:        0,
		Null:            NullEmpirical,
	}
}

// Validate rejects out-of-range parameters before any scoring begins.
func (c Config) Validate() error {
	if c.WindowHalfWidth < 0 {
		return fmt.Errorf("%w: window half-width %d < 0", ErrConfig, c.WindowHalfWidth)
	}
	if c.Margin < 0 {
		return fmt.Errorf("%w: margin %g < 0", ErrConfig, c.Margin)
	}
	if c.MinTractLength < 1 {
		return fmt.Errorf("%w: min tract length %d < 1", ErrConfig, c.MinTractLength)
	}
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return fmt.Errorf("%w: alpha %g outside (0,1)", ErrConfig, c.Alpha)
	}
	switch c.Correction {
	case assemble.CorrectionNone, assemble.CorrectionBonferroni, assemble.CorrectionFDR:
	default:
		return fmt.Errorf("%w: unknown correction %q", ErrConfig, c.Correction)
	}
	if c.MergeGap < 0 {
		return fmt.Errorf("%w: merge gap %d < 0", ErrConfig, c.MergeGap)
	}
	switch c.Null {
	case NullEmpirical, NullUniform:
	default:
		return fmt.Errorf("%w: unknown null model %q", ErrConfig, c.Null)
	}
	return nil
}

// Analyze runs the full detection pass over one SequenceSet: windowed
// scoring, per-position attribution, tract calling, correction and
// merging. Pure and deterministic; identical inputs yield bit-identical
// results. Donors with no comparable positions anywhere are excluded with
// a warning in the result metadata rather than aborting.
func Analyze(set *seqset.Set, cfg Config) (assemble.CallResult, error) {
	if err := cfg.Validate(); err != nil {
		return assemble.CallResult{}, err
	}

	prof := window.Score(set, cfg.WindowHalfWidth)

	// Exclude all-no-data donors up front; insufficient data is a
	// recorded warning, not a fatal error.
	var warnings []assemble.Warning
	live := prof.Donors[:0]
	for _, d := range prof.Donors {
		if d.Comparable == 0 {
			warnings = append(warnings, assemble.Warning{
				DonorID: d.ID,
				Reason:  "insufficient data: no comparable positions",
			})
			continue
		}
		live = append(live, d)
	}
	prof.Donors = live

	sig := significance(set, cfg)

	attrs := attrib.Attribute(set, prof, cfg.Margin)
	candidates := tract.Call(set, attrs, cfg.MinTractLength, sig)

	meta := assemble.Meta{WindowHalf: cfg.WindowHalfWidth, Warnings: warnings}
	res := assemble.Assemble(set, attrs, candidates, cfg.Alpha, cfg.Correction, cfg.MergeGap, sig, meta)
	return res, nil
}

func significance(set *seqset.Set, cfg Config) tract.Significance {
	p0 := tract.NullP0(set)
	if cfg.Null == NullUniform {
		p0 = tract.UniformP0(set.Alphabet)
	}
	return tract.BinomialTest{P0: p0}
}
