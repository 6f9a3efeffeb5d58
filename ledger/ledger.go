// Package ledger keeps per-user cookie balances on top of a store.RecordStorer. It owns
// the balance rules (defaulting to zero, clamping removals at zero) while the storer
// only persists records
package ledger

import (
	"context"
	"github.com/alexandre-normand/cookiebot/store"
)

// Ledger reads and updates cookie balances
type Ledger struct {
	storer store.RecordStorer
}

// New returns a new Ledger persisting balances with the given storer
func New(storer store.RecordStorer) (l *Ledger) {
	return &Ledger{storer: storer}
}

// GetBalance returns the balance of userID or 0 if the user has no record
func (l *Ledger) GetBalance(ctx context.Context, userID string) (balance int64, err error) {
	r, err := l.storer.ReadOrDefault(ctx, userID)
	if err != nil {
		return 0, err
	}

	return r.Cookies, nil
}

// Add increments the balance of userID by amount, creating the record if it doesn't exist.
// amount isn't validated: a negative amount lowers the balance without clamping
func (l *Ledger) Add(ctx context.Context, userID string, amount int64) (err error) {
	return l.storer.IncrementOrCreate(ctx, userID, amount)
}

// Remove lowers the balance of userID by amount, never going below zero. The balance is read
// and then overwritten so concurrent updates of the same user may be lost
func (l *Ledger) Remove(ctx context.Context, userID string, amount int64) (err error) {
	current, err := l.GetBalance(ctx, userID)
	if err != nil {
		return err
	}

	balance := current - amount
	if balance < 0 {
		balance = 0
	}

	return l.storer.SetOrCreate(ctx, userID, balance)
}

// Top returns up to limit records ordered by balance, highest first, after skipping the first
// skip records. The result is empty when skip is past the last record
func (l *Ledger) Top(ctx context.Context, skip int, limit int) (records []store.Record, err error) {
	return l.storer.ScanDescending(ctx, skip, limit)
}
