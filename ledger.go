package processor

import "fmt"

// DisputeState is the dispute lifecycle position of a deposit.
//
// Transitions are monotonic: Clean → Disputed → {Resolved | ChargedBack}.
// An entry never returns to Clean once disputed.
type DisputeState int

const (
	Clean DisputeState = iota
	Disputed
	Resolved
	ChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case Clean:
		return "clean"
	case Disputed:
		return "disputed"
	case Resolved:
		return "resolved"
	case ChargedBack:
		return "charged back"
	default:
		return fmt.Sprintf("DisputeState(%d)", int(s))
	}
}

// ledgerEntry is the dispute-eligible record of a single deposit.
type ledgerEntry struct {
	client ClientID
	amount Amount
	state  DisputeState
}

// Ledger records dispute-eligible transactions (deposits) and the dispute
// state of each, keyed by transaction id. It also remembers withdrawal ids,
// so transaction ids stay unique across all deposit and withdrawal records.
//
// Withdrawals are not disputable: they leave no entry, and a dispute
// referencing one fails with ErrUnknownTransaction.
type Ledger struct {
	entries map[TxID]*ledgerEntry
	minted  map[TxID]struct{} // every id ever used by a deposit or withdrawal
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[TxID]*ledgerEntry),
		minted:  make(map[TxID]struct{}),
	}
}

// Known reports whether tx was already used by a deposit or withdrawal.
func (l *Ledger) Known(tx TxID) bool {
	_, ok := l.minted[tx]
	return ok
}

// RecordDeposit inserts a Clean entry for a deposit.
func (l *Ledger) RecordDeposit(tx TxID, client ClientID, amount Amount) error {
	if l.Known(tx) {
		return fmt.Errorf("%w: tx %d", ErrDuplicateTransaction, tx)
	}
	l.entries[tx] = &ledgerEntry{client: client, amount: amount}
	l.minted[tx] = struct{}{}
	return nil
}

// RecordWithdrawal marks a withdrawal id as used without creating an entry.
func (l *Ledger) RecordWithdrawal(tx TxID) error {
	if l.Known(tx) {
		return fmt.Errorf("%w: tx %d", ErrDuplicateTransaction, tx)
	}
	l.minted[tx] = struct{}{}
	return nil
}

// lookup fetches the entry for tx and checks that client owns it.
func (l *Ledger) lookup(tx TxID, client ClientID) (*ledgerEntry, error) {
	e, ok := l.entries[tx]
	if !ok {
		return nil, fmt.Errorf("%w: tx %d", ErrUnknownTransaction, tx)
	}
	if e.client != client {
		return nil, fmt.Errorf("%w: tx %d belongs to client %d, not client %d",
			ErrClientMismatch, tx, e.client, client)
	}
	return e, nil
}

// Dispute moves a Clean entry to Disputed and returns the amount the caller
// must hold against the account.
func (l *Ledger) Dispute(tx TxID, client ClientID) (Amount, error) {
	e, err := l.lookup(tx, client)
	if err != nil {
		return 0, err
	}
	if e.state != Clean {
		return 0, fmt.Errorf("%w: tx %d is %s, cannot be disputed",
			ErrInvalidStateTransition, tx, e.state)
	}
	e.state = Disputed
	return e.amount, nil
}

// Resolve moves a Disputed entry to Resolved and returns the amount the
// caller must release back to available funds.
func (l *Ledger) Resolve(tx TxID, client ClientID) (Amount, error) {
	e, err := l.lookup(tx, client)
	if err != nil {
		return 0, err
	}
	if e.state != Disputed {
		return 0, fmt.Errorf("%w: tx %d is %s, cannot be resolved",
			ErrInvalidStateTransition, tx, e.state)
	}
	e.state = Resolved
	return e.amount, nil
}

// Chargeback moves a Disputed entry to ChargedBack and returns the amount
// the caller must charge back, which also locks the account.
func (l *Ledger) Chargeback(tx TxID, client ClientID) (Amount, error) {
	e, err := l.lookup(tx, client)
	if err != nil {
		return 0, err
	}
	if e.state != Disputed {
		return 0, fmt.Errorf("%w: tx %d is %s, cannot be charged back",
			ErrInvalidStateTransition, tx, e.state)
	}
	e.state = ChargedBack
	return e.amount, nil
}

// State returns the dispute state of a transaction, or false if the id has
// no dispute-eligible entry.
func (l *Ledger) State(tx TxID) (DisputeState, bool) {
	e, ok := l.entries[tx]
	if !ok {
		return Clean, false
	}
	return e.state, true
}
