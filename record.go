package processor

import "fmt"

// Kind is a typed string identifying the kind of an input record.
type Kind string

// Record kinds of the input stream.
const (
	Deposit    Kind = "deposit"
	Withdrawal Kind = "withdrawal"
	Dispute    Kind = "dispute"
	Resolve    Kind = "resolve"
	Chargeback Kind = "chargeback"
)

// ParseKind parses the textual record type of an input row.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Deposit, Withdrawal, Dispute, Resolve, Chargeback:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown record type %q", ErrParse, s)
	}
}

// HasAmount reports whether records of this kind carry an amount.
// Dispute-lifecycle records reference an earlier transaction instead.
func (k Kind) HasAmount() bool { return k == Deposit || k == Withdrawal }

// ClientID identifies an account holder.
type ClientID uint64

// TxID identifies a deposit or withdrawal. Dispute, resolve and chargeback
// records reference an existing TxID, they never mint one.
type TxID uint64

// Record is one typed transaction record, as produced by the input adapter.
// Amount is nil for the dispute-lifecycle kinds.
type Record struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount *Amount
}
