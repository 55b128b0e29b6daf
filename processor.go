package processor

import "fmt"

// Summary is the reportable state of one account at the end of a run.
type Summary struct {
	Client    ClientID
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}

// Processor dispatches records against the account map and the dispute
// ledger, enforcing the transaction state machine.
//
// A Processor exclusively owns its accounts and ledger for the duration of
// a run; construct a fresh one per run, nothing is shared or ambient.
type Processor struct {
	accounts map[ClientID]*Account
	order    []ClientID // clients in first-seen order, for stable snapshots
	ledger   *Ledger
}

// New creates a Processor with an empty account map and ledger.
func New() *Processor {
	return &Processor{
		accounts: make(map[ClientID]*Account),
		ledger:   NewLedger(),
	}
}

// Apply runs one record against the processor state. The record is either
// fully applied or rejected without mutating anything. A rejection never
// poisons the Processor: the caller may keep applying further records.
func (p *Processor) Apply(rec Record) error {
	switch rec.Kind {
	case Deposit:
		return p.deposit(rec)
	case Withdrawal:
		return p.withdraw(rec)
	case Dispute:
		return p.dispute(rec)
	case Resolve:
		return p.resolve(rec)
	case Chargeback:
		return p.chargeback(rec)
	default:
		return fmt.Errorf("%w: unknown record kind %q", ErrParse, rec.Kind)
	}
}

func (p *Processor) deposit(rec Record) error {
	amount, err := requireAmount(rec)
	if err != nil {
		return err
	}
	// Check the id before touching the account, so a duplicate leaves no
	// trace.
	if p.ledger.Known(rec.Tx) {
		return fmt.Errorf("%w: tx %d", ErrDuplicateTransaction, rec.Tx)
	}
	acct, ok := p.accounts[rec.Client]
	if !ok {
		acct = NewAccount(rec.Client)
	}
	if err := acct.Deposit(amount); err != nil {
		return err
	}
	if !ok {
		// Only a successful deposit mints the account.
		p.accounts[rec.Client] = acct
		p.order = append(p.order, rec.Client)
	}
	return p.ledger.RecordDeposit(rec.Tx, rec.Client, amount)
}

func (p *Processor) withdraw(rec Record) error {
	amount, err := requireAmount(rec)
	if err != nil {
		return err
	}
	acct, ok := p.accounts[rec.Client]
	if !ok {
		return fmt.Errorf("%w: client %d never deposited", ErrUnknownClient, rec.Client)
	}
	if p.ledger.Known(rec.Tx) {
		return fmt.Errorf("%w: tx %d", ErrDuplicateTransaction, rec.Tx)
	}
	if err := acct.Withdraw(amount); err != nil {
		return err
	}
	return p.ledger.RecordWithdrawal(rec.Tx)
}

func (p *Processor) dispute(rec Record) error {
	if err := p.requireUnlocked(rec.Client); err != nil {
		return err
	}
	amount, err := p.ledger.Dispute(rec.Tx, rec.Client)
	if err != nil {
		return err
	}
	// The entry's client matches, so the account exists: the deposit that
	// created the entry created it.
	p.accounts[rec.Client].Hold(amount)
	return nil
}

func (p *Processor) resolve(rec Record) error {
	if err := p.requireUnlocked(rec.Client); err != nil {
		return err
	}
	amount, err := p.ledger.Resolve(rec.Tx, rec.Client)
	if err != nil {
		return err
	}
	p.accounts[rec.Client].Release(amount)
	return nil
}

func (p *Processor) chargeback(rec Record) error {
	if err := p.requireUnlocked(rec.Client); err != nil {
		return err
	}
	amount, err := p.ledger.Chargeback(rec.Tx, rec.Client)
	if err != nil {
		return err
	}
	p.accounts[rec.Client].Chargeback(amount)
	return nil
}

// requireUnlocked rejects dispute-lifecycle records for locked clients.
// Chargeback is terminal, so even disputes on other transactions of the
// same client are refused once the account is locked.
func (p *Processor) requireUnlocked(client ClientID) error {
	if acct, ok := p.accounts[client]; ok && acct.Locked() {
		return fmt.Errorf("%w: client %d", ErrAccountLocked, client)
	}
	return nil
}

// requireAmount validates the amount of a deposit or withdrawal record.
func requireAmount(rec Record) (Amount, error) {
	if rec.Amount == nil {
		return 0, fmt.Errorf("%w: %s record without amount", ErrInvalidAmount, rec.Kind)
	}
	if !rec.Amount.IsPositive() {
		return 0, fmt.Errorf("%w: %s record with amount %s", ErrInvalidAmount, rec.Kind, rec.Amount)
	}
	return *rec.Amount, nil
}

// Summaries returns an immutable snapshot of every account, in
// first-seen-client order. The order only depends on the input stream, so
// output is reproducible for a given input.
func (p *Processor) Summaries() []Summary {
	out := make([]Summary, 0, len(p.order))
	for _, client := range p.order {
		out = append(out, p.accounts[client].Summary())
	}
	return out
}
