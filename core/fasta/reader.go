// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one parsed FASTA sequence. Records are read whole: aligned
// sequences must keep their column coordinates, so there is no chunking.
type Record struct {
	ID  string
	Seq []byte
}

// ReadAll parses every record from r.
func ReadAll(r io.Reader) ([]Record, error) {
	var out []Record
	err := ForEach(context.Background(), r, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// ReadAllPath parses every record from a path ("-" = stdin, .gz ok).
func ReadAllPath(path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	recs, err := ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ForEach streams whole records from r to emit. Cancelable between
// records via ctx.
func ForEach(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id   string
		seen bool
		seq  = make([]byte, 0, 1<<16)
	)
	flush := func() error {
		if !seen {
			return nil
		}
		rec := Record{ID: id, Seq: append([]byte(nil), seq...)}
		seq = seq[:0]
		return emit(rec)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = headerID(line[1:])
			seen = true
			continue
		}
		if !seen {
			return fmt.Errorf("fasta: sequence data before first header")
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ForEachPath is ForEach over an opened path.
func ForEachPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	if err := ForEach(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func headerID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
