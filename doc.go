// Package processor implements a transaction-processing engine for streams
// of financial ledger events.
//
// The core of the package is the per-client account state machine and the
// dispute lifecycle: deposit and withdrawal records move available funds,
// while dispute, resolve and chargeback records drive previously deposited
// amounts through the Clean → Disputed → {Resolved | ChargedBack}
// lifecycle. Amounts are fixed-point values with 4 digits of precision, so
// every balance is exact and immune to floating-point drift.
//
// The engine is independent of any input or output format. Thin adapters
// decode CSV rows into Records and encode the final account snapshot back
// to CSV; they carry no business logic and can be replaced without touching
// the core.
//
// This package serves as the foundational logic for the `tp` command-line
// tool, which processes a transactions file and prints the resulting
// account snapshot.
package processor
