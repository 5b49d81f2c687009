// internal/writers/report.go
package writers

import (
	"fmt"
	"io"

	"gcvscan/internal/common"
	"gcvscan/internal/output"
)

// StartReportWriter spins up a writer goroutine for reports. json always
// buffers (it writes one array); text and jsonl stream unless sort is
// requested. The returned channel is closed by the caller; the error
// channel yields the writer's terminal status.
func StartReportWriter(out io.Writer, format string, sortOut, header bool, bufSize int) (chan<- output.Report, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Report, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case "json":
			var buf []output.Report
			for r := range in {
				buf = append(buf, r)
			}
			if sortOut {
				common.SortReports(buf)
			}
			err = output.WriteJSON(out, buf)

		case "jsonl":
			if sortOut {
				var buf []output.Report
				for r := range in {
					buf = append(buf, r)
				}
				common.SortReports(buf)
				ch := make(chan output.Report, len(buf))
				for _, r := range buf {
					ch <- r
				}
				close(ch)
				err = output.StreamJSONL(out, ch)
			} else {
				err = output.StreamJSONL(out, in)
			}

		case "text":
			if sortOut {
				var buf []output.Report
				for r := range in {
					buf = append(buf, r)
				}
				common.SortReports(buf)
				err = output.WriteText(out, buf, header)
			} else {
				err = output.StreamText(out, in, header)
			}

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// Drain so producers never block after a writer error.
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
