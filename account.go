package processor

import "fmt"

// Account holds the balance state of a single client.
//
// The total balance is never stored: it is always derived as
// available+held. Every transition either succeeds and mutates the account,
// or fails and leaves it untouched.
type Account struct {
	client    ClientID
	available Amount
	held      Amount
	locked    bool
}

// NewAccount creates an empty, unlocked account for a client.
func NewAccount(client ClientID) *Account {
	return &Account{client: client}
}

func (a *Account) Client() ClientID  { return a.client }
func (a *Account) Available() Amount { return a.available }
func (a *Account) Held() Amount      { return a.held }
func (a *Account) Locked() bool      { return a.locked }

// Total returns available+held. Both sides were built from overflow-checked
// deposits, so the sum stays in range.
func (a *Account) Total() Amount { return a.available + a.held }

// Deposit credits the available balance.
func (a *Account) Deposit(amount Amount) error {
	if a.locked {
		return fmt.Errorf("%w: client %d", ErrAccountLocked, a.client)
	}
	available, err := a.available.Add(amount)
	if err != nil {
		return err
	}
	a.available = available
	return nil
}

// Withdraw debits the available balance.
func (a *Account) Withdraw(amount Amount) error {
	if a.locked {
		return fmt.Errorf("%w: client %d", ErrAccountLocked, a.client)
	}
	if a.available < amount {
		return fmt.Errorf("%w: client %d has %s available, needs %s",
			ErrInsufficientFunds, a.client, a.available, amount)
	}
	a.available -= amount
	return nil
}

// Hold moves a disputed amount from available to held. Withdrawals between
// the deposit and the dispute may have reduced available below the disputed
// amount, in which case available goes negative; that is allowed, dispute
// holds can exceed currently free funds.
func (a *Account) Hold(amount Amount) {
	a.available -= amount
	a.held += amount
}

// Release moves a resolved dispute's amount from held back to available.
func (a *Account) Release(amount Amount) {
	a.held -= amount
	a.available += amount
}

// Chargeback removes a charged-back amount from held and locks the
// account. Locking is terminal: every later transition for this client
// fails with ErrAccountLocked.
func (a *Account) Chargeback(amount Amount) {
	a.held -= amount
	a.locked = true
}

// Summary returns the reportable snapshot of the account.
func (a *Account) Summary() Summary {
	return Summary{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.locked,
	}
}
