package processor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Input column names.
const (
	colType   = "type"
	colClient = "client"
	colTx     = "tx"
	colAmount = "amount"
)

// RecordReader decodes typed transaction records from tabular CSV input,
// one row at a time.
//
// The first row must be a header naming the type, client, tx and amount
// columns; column order does not matter and whitespace around every field
// is trimmed. Dispute-lifecycle rows may leave the amount field empty or
// omit it entirely.
type RecordReader struct {
	csv       *csv.Reader
	cols      map[string]int
	line      int
	headerErr error
}

// NewRecordReader creates a reader decoding records from r.
func NewRecordReader(r io.Reader) *RecordReader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Row arity varies: lifecycle rows may drop the amount field. Arity is
	// validated per record instead.
	cr.FieldsPerRecord = -1
	return &RecordReader{csv: cr}
}

// Read returns the next record from the input.
//
// It returns io.EOF at the end of the stream. A malformed row is reported
// as ErrParse and does not invalidate the reader: the next Read moves on to
// the following row. Underlying I/O failures are returned as-is and are
// fatal.
func (rr *RecordReader) Read() (Record, error) {
	if rr.cols == nil {
		if rr.headerErr != nil {
			return Record{}, rr.headerErr
		}
		if err := rr.readHeader(); err != nil {
			if !errors.Is(err, io.EOF) {
				// A broken header prevents any further progress; do not
				// let a later Read mistake a data row for the header.
				rr.headerErr = err
			}
			return Record{}, err
		}
	}
	row, err := rr.csv.Read()
	rr.line++
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return Record{}, fmt.Errorf("%w: line %d: %v", ErrParse, perr.Line, perr.Err)
		}
		return Record{}, err
	}
	return rr.decode(row)
}

// All returns an iterator over the remaining records of the stream.
//
// Recoverable row failures are yielded as (zero Record, error) and the
// iteration continues with the next row. The iteration stops at the end of
// input, or right after yielding a fatal stream error.
func (rr *RecordReader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := rr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) {
				return
			}
			if err != nil && !RecoverableError(err) {
				return
			}
		}
	}
}

// readHeader reads the header row and resolves column positions.
// An empty stream is a valid stream with no records. A header missing one
// of the required columns prevents any further progress and is fatal.
func (rr *RecordReader) readHeader() error {
	row, err := rr.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("could not read header row: %w", err)
	}
	cols := make(map[string]int, len(row))
	for i, name := range row {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{colType, colClient, colTx, colAmount} {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("header is missing the %q column", name)
		}
	}
	rr.cols = cols
	rr.line = 1
	return nil
}

// decode turns one CSV row into a Record.
func (rr *RecordReader) decode(row []string) (Record, error) {
	kindText := rr.field(row, colType)
	kind, err := ParseKind(kindText)
	if err != nil {
		return Record{}, fmt.Errorf("line %d: %w", rr.line, err)
	}
	client, err := rr.id(row, colClient)
	if err != nil {
		return Record{}, err
	}
	tx, err := rr.id(row, colTx)
	if err != nil {
		return Record{}, err
	}

	rec := Record{Kind: kind, Client: ClientID(client), Tx: TxID(tx)}
	amountText := rr.field(row, colAmount)
	switch {
	case kind.HasAmount():
		if amountText == "" {
			return Record{}, fmt.Errorf("%w: line %d: %s record without amount", ErrParse, rr.line, kind)
		}
		amount, err := ParseAmount(amountText)
		if err != nil {
			return Record{}, fmt.Errorf("line %d: %w", rr.line, err)
		}
		rec.Amount = &amount
	case amountText != "":
		return Record{}, fmt.Errorf("%w: line %d: %s record with an amount", ErrParse, rr.line, kind)
	}
	return rec, nil
}

// field returns the trimmed value of a named column, or "" when the row is
// too short to contain it.
func (rr *RecordReader) field(row []string, name string) string {
	i := rr.cols[name]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// id parses an unsigned identifier column.
func (rr *RecordReader) id(row []string, name string) (uint64, error) {
	s := rr.field(row, name)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s %q", ErrParse, rr.line, name, s)
	}
	return v, nil
}
