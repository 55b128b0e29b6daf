package processor

import (
	"fmt"
	"io"
	"log"
)

// Process consumes transaction records from r, applies each one in order
// against a fresh Processor, and writes the final account snapshot to w.
//
// Rejected records are logged to logger and skipped: a run only fails on a
// fatal condition (unreadable stream, broken header, overflow). Individual
// rejected transactions never fail the run and never appear in the output.
func Process(r io.Reader, w io.Writer, logger *log.Logger) error {
	p := New()
	reader := NewRecordReader(r)
	for rec, err := range reader.All() {
		if err == nil {
			err = p.Apply(rec)
		}
		if err == nil {
			continue
		}
		if !RecoverableError(err) {
			return fmt.Errorf("could not process input: %w", err)
		}
		if rec.Kind == "" {
			logger.Printf("skipping row: %v", err)
		} else {
			logger.Printf("skipping %s (client %d, tx %d): %v", rec.Kind, rec.Client, rec.Tx, err)
		}
	}
	if err := EncodeSummaries(w, p.Summaries()); err != nil {
		return err
	}
	return nil
}
