package processor

import "errors"

// Failure taxonomy for a single record. The engine reports every failure as
// a typed error and never swallows one internally; the caller owns the
// skip-and-continue policy.
var (
	// ErrParse reports a malformed input row: an unknown record type, an
	// unparseable id or amount, or an amount missing where required or
	// present where forbidden.
	ErrParse = errors.New("malformed record")

	// ErrInvalidAmount reports a deposit or withdrawal whose amount is
	// missing or not strictly positive.
	ErrInvalidAmount = errors.New("invalid amount (must be > 0)")

	// ErrUnknownClient reports a withdrawal for a client that never
	// deposited.
	ErrUnknownClient = errors.New("unknown client")

	// ErrUnknownTransaction reports a dispute, resolve or chargeback that
	// references a transaction id with no ledger entry.
	ErrUnknownTransaction = errors.New("unknown transaction")

	// ErrClientMismatch reports a dispute-lifecycle record whose client does
	// not own the referenced transaction.
	ErrClientMismatch = errors.New("transaction owned by another client")

	// ErrDuplicateTransaction reports a deposit or withdrawal reusing a
	// transaction id that was already minted.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountLocked     = errors.New("account locked")

	// ErrInvalidStateTransition reports a dispute-lifecycle record applied
	// to an entry whose state does not allow it. The lifecycle is
	// monotonic: an entry never returns to clean once disputed.
	ErrInvalidStateTransition = errors.New("invalid dispute state transition")

	// ErrAmountOverflow reports arithmetic that would leave the fixed-point
	// range. Amounts never wrap or clamp; with bounded inputs this is not
	// expected, so it is treated as fatal rather than skippable.
	ErrAmountOverflow = errors.New("amount overflow")
)

// recordErrors are the failures recoverable at single-record granularity.
var recordErrors = []error{
	ErrParse,
	ErrInvalidAmount,
	ErrUnknownClient,
	ErrUnknownTransaction,
	ErrClientMismatch,
	ErrDuplicateTransaction,
	ErrInsufficientFunds,
	ErrAccountLocked,
	ErrInvalidStateTransition,
}

// RecoverableError reports whether err is a single-record failure that the
// caller may log and skip before continuing with the rest of the stream.
// Anything else (I/O failures, a broken header, overflow) is fatal.
func RecoverableError(err error) bool {
	for _, e := range recordErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
