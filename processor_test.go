package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Record builders keeping the scenario tests readable.

func depositRec(client ClientID, tx TxID, amount string) Record {
	return Record{Kind: Deposit, Client: client, Tx: tx, Amount: mustAmount(amount)}
}

func withdrawalRec(client ClientID, tx TxID, amount string) Record {
	return Record{Kind: Withdrawal, Client: client, Tx: tx, Amount: mustAmount(amount)}
}

func lifecycleRec(kind Kind, client ClientID, tx TxID) Record {
	return Record{Kind: kind, Client: client, Tx: tx}
}

func mustAmount(s string) *Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return &a
}

// checkInvariant verifies total == available + held on every summary.
func checkInvariant(t *testing.T, p *Processor) {
	t.Helper()
	for _, s := range p.Summaries() {
		assert.Equal(t, s.Available+s.Held, s.Total,
			"client %d: total must equal available+held", s.Client)
	}
}

func TestProcessor_EmptyRun(t *testing.T) {
	p := New()
	assert.Empty(t, p.Summaries())
}

func TestProcessor_DepositsAndWithdrawals(t *testing.T) {
	// Scenario: two clients, three deposits, one withdrawal, one
	// insufficient-funds withdrawal that must leave no trace.
	p := New()

	require.NoError(t, p.Apply(depositRec(1, 1, "1.0")))
	require.NoError(t, p.Apply(depositRec(2, 2, "2.0")))
	require.NoError(t, p.Apply(depositRec(1, 3, "2.0")))
	require.NoError(t, p.Apply(withdrawalRec(1, 4, "1.5")))
	assert.ErrorIs(t, p.Apply(withdrawalRec(2, 5, "3.0")), ErrInsufficientFunds)

	checkInvariant(t, p)
	assert.Equal(t, []Summary{
		{Client: 1, Available: 15000, Held: 0, Total: 15000, Locked: false},
		{Client: 2, Available: 20000, Held: 0, Total: 20000, Locked: false},
	}, p.Summaries())
}

func TestProcessor_ConservationWithoutDisputes(t *testing.T) {
	// With only deposits and withdrawals, the final available balance is
	// the sum of the successful deposits minus the successful withdrawals;
	// rejected records contribute zero.
	p := New()

	require.NoError(t, p.Apply(depositRec(1, 1, "10.0")))
	require.NoError(t, p.Apply(depositRec(1, 2, "123.123")))
	assert.ErrorIs(t, p.Apply(depositRec(1, 2, "50.0")), ErrDuplicateTransaction)
	assert.ErrorIs(t, p.Apply(depositRec(1, 3, "-10.0")), ErrInvalidAmount)
	require.NoError(t, p.Apply(withdrawalRec(1, 4, "25.0")))
	assert.ErrorIs(t, p.Apply(withdrawalRec(1, 4, "25.0")), ErrDuplicateTransaction)
	assert.ErrorIs(t, p.Apply(withdrawalRec(1, 5, "1000.0")), ErrInsufficientFunds)

	// 10.0 + 123.123 - 25.0 = 108.123
	assert.Equal(t, []Summary{
		{Client: 1, Available: 1081230, Held: 0, Total: 1081230, Locked: false},
	}, p.Summaries())
}

func TestProcessor_DisputeResolve(t *testing.T) {
	p := New()

	require.NoError(t, p.Apply(depositRec(1, 1, "5.0")))
	require.NoError(t, p.Apply(lifecycleRec(Dispute, 1, 1)))
	checkInvariant(t, p)
	assert.Equal(t, []Summary{
		{Client: 1, Available: 0, Held: 50000, Total: 50000, Locked: false},
	}, p.Summaries())

	require.NoError(t, p.Apply(lifecycleRec(Resolve, 1, 1)))
	assert.Equal(t, []Summary{
		{Client: 1, Available: 50000, Held: 0, Total: 50000, Locked: false},
	}, p.Summaries())
}

func TestProcessor_ChargebackLocksAccount(t *testing.T) {
	p := New()

	require.NoError(t, p.Apply(depositRec(1, 1, "5.0")))
	require.NoError(t, p.Apply(lifecycleRec(Dispute, 1, 1)))
	require.NoError(t, p.Apply(lifecycleRec(Chargeback, 1, 1)))

	// Locked accounts refuse everything: deposits, withdrawals and
	// dispute-lifecycle records on other transactions.
	assert.ErrorIs(t, p.Apply(depositRec(1, 2, "10.0")), ErrAccountLocked)
	assert.ErrorIs(t, p.Apply(withdrawalRec(1, 3, "1.0")), ErrAccountLocked)
	assert.ErrorIs(t, p.Apply(lifecycleRec(Dispute, 1, 1)), ErrAccountLocked)
	assert.ErrorIs(t, p.Apply(lifecycleRec(Resolve, 1, 1)), ErrAccountLocked)
	assert.ErrorIs(t, p.Apply(lifecycleRec(Chargeback, 1, 1)), ErrAccountLocked)

	checkInvariant(t, p)
	assert.Equal(t, []Summary{
		{Client: 1, Available: 0, Held: 0, Total: 0, Locked: true},
	}, p.Summaries())
}

func TestProcessor_DisputeUnknownTransaction(t *testing.T) {
	p := New()

	assert.ErrorIs(t, p.Apply(lifecycleRec(Dispute, 1, 99)), ErrUnknownTransaction)
	// The rejected record must not mint an account for client 1.
	assert.Empty(t, p.Summaries())
}

func TestProcessor_DisputeRejectionIsIdempotent(t *testing.T) {
	p := New()
	require.NoError(t, p.Apply(depositRec(1, 1, "100.0")))
	require.NoError(t, p.Apply(lifecycleRec(Dispute, 1, 1)))

	before := p.Summaries()
	// Replaying the dispute always fails and never mutates the account.
	for range 3 {
		assert.ErrorIs(t, p.Apply(lifecycleRec(Dispute, 1, 1)), ErrInvalidStateTransition)
		assert.Equal(t, before, p.Summaries())
	}
}

func TestProcessor_ResolveRequiresDispute(t *testing.T) {
	p := New()
	require.NoError(t, p.Apply(depositRec(1, 1, "100.0")))

	assert.ErrorIs(t, p.Apply(lifecycleRec(Resolve, 1, 1)), ErrInvalidStateTransition)
	assert.ErrorIs(t, p.Apply(lifecycleRec(Chargeback, 1, 1)), ErrInvalidStateTransition)
	assert.Equal(t, []Summary{
		{Client: 1, Available: 1000000, Held: 0, Total: 1000000, Locked: false},
	}, p.Summaries())
}

func TestProcessor_PartialResolve(t *testing.T) {
	// Two disputes, only one resolved: the other amount stays held.
	p := New()
	require.NoError(t, p.Apply(depositRec(1, 1, "100.0")))
	require.NoError(t, p.Apply(depositRec(1, 2, "30.0")))
	require.NoError(t, p.Apply(lifecycleRec(Dispute, 1, 1)))
	require.NoError(t, p.Apply(lifecycleRec(Dispute, 1, 2)))
	require.NoError(t, p.Apply(lifecycleRec(Resolve, 1, 2)))

	checkInvariant(t, p)
	assert.Equal(t, []Summary{
		{Client: 1, Available: 300000, Held: 1000000, Total: 1300000, Locked: false},
	}, p.Summaries())
}

func TestProcessor_DisputeAfterWithdrawalGoesNegative(t *testing.T) {
	p := New()
	require.NoError(t, p.Apply(depositRec(1, 1, "5.0")))
	require.NoError(t, p.Apply(withdrawalRec(1, 2, "4.0")))
	require.NoError(t, p.Apply(lifecycleRec(Dispute, 1, 1)))

	checkInvariant(t, p)
	assert.Equal(t, []Summary{
		{Client: 1, Available: -40000, Held: 50000, Total: 10000, Locked: false},
	}, p.Summaries())
}

func TestProcessor_ClientMismatch(t *testing.T) {
	p := New()
	require.NoError(t, p.Apply(depositRec(1, 1, "5.0")))
	require.NoError(t, p.Apply(depositRec(2, 2, "5.0")))

	assert.ErrorIs(t, p.Apply(lifecycleRec(Dispute, 2, 1)), ErrClientMismatch)
	assert.Equal(t, []Summary{
		{Client: 1, Available: 50000, Held: 0, Total: 50000, Locked: false},
		{Client: 2, Available: 50000, Held: 0, Total: 50000, Locked: false},
	}, p.Summaries())
}

func TestProcessor_WithdrawalsAreNotDisputable(t *testing.T) {
	p := New()
	require.NoError(t, p.Apply(depositRec(1, 1, "100.0")))
	require.NoError(t, p.Apply(withdrawalRec(1, 2, "20.0")))

	assert.ErrorIs(t, p.Apply(lifecycleRec(Dispute, 1, 2)), ErrUnknownTransaction)
	assert.Equal(t, []Summary{
		{Client: 1, Available: 800000, Held: 0, Total: 800000, Locked: false},
	}, p.Summaries())
}

func TestProcessor_WithdrawalUnknownClient(t *testing.T) {
	p := New()

	assert.ErrorIs(t, p.Apply(withdrawalRec(1, 1, "25.0")), ErrUnknownClient)
	assert.Empty(t, p.Summaries())
}

func TestProcessor_MissingOrNonPositiveAmount(t *testing.T) {
	p := New()
	require.NoError(t, p.Apply(depositRec(1, 1, "100.0")))

	assert.ErrorIs(t, p.Apply(lifecycleRec(Deposit, 1, 2)), ErrInvalidAmount)
	assert.ErrorIs(t, p.Apply(lifecycleRec(Withdrawal, 1, 2)), ErrInvalidAmount)
	assert.ErrorIs(t, p.Apply(depositRec(1, 2, "0")), ErrInvalidAmount)
	assert.ErrorIs(t, p.Apply(depositRec(1, 2, "-10.0")), ErrInvalidAmount)
	assert.ErrorIs(t, p.Apply(withdrawalRec(1, 2, "-10.0")), ErrInvalidAmount)

	assert.Equal(t, []Summary{
		{Client: 1, Available: 1000000, Held: 0, Total: 1000000, Locked: false},
	}, p.Summaries())
}

func TestProcessor_UnknownKind(t *testing.T) {
	p := New()
	assert.ErrorIs(t, p.Apply(Record{Kind: "transfer", Client: 1, Tx: 1}), ErrParse)
}

func TestProcessor_SummariesInFirstSeenOrder(t *testing.T) {
	p := New()
	require.NoError(t, p.Apply(depositRec(5, 1, "1.0")))
	require.NoError(t, p.Apply(depositRec(2, 2, "1.0")))
	require.NoError(t, p.Apply(depositRec(9, 3, "1.0")))
	require.NoError(t, p.Apply(depositRec(2, 4, "1.0")))

	var clients []ClientID
	for _, s := range p.Summaries() {
		clients = append(clients, s.Client)
	}
	assert.Equal(t, []ClientID{5, 2, 9}, clients)
}

func TestProcessor_IndependentRuns(t *testing.T) {
	// Two processors in the same process share nothing.
	p1, p2 := New(), New()
	require.NoError(t, p1.Apply(depositRec(1, 1, "10.0")))
	require.NoError(t, p2.Apply(depositRec(1, 1, "20.0")))

	assert.Equal(t, Amount(100000), p1.Summaries()[0].Available)
	assert.Equal(t, Amount(200000), p2.Summaries()[0].Available)
}
