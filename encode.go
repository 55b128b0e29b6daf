package processor

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// summaryHeader is the output header of an account snapshot.
var summaryHeader = []string{"client", "available", "held", "total", "locked"}

// EncodeSummaries renders account summaries as CSV in the given order, with
// every monetary field carrying exactly 4 decimal digits.
//
// The header row is written even when there is no account to report.
func EncodeSummaries(w io.Writer, summaries []Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("could not write summary header: %w", err)
	}
	for _, s := range summaries {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write summary of client %d: %w", s.Client, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
