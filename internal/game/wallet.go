package game

import (
	"fmt"

	"github.com/osse101/idlefarm/internal/domain"
)

// Wallet holds the player's coins. Balance never goes negative.
type Wallet struct {
	coins int64
}

func (w *Wallet) Balance() int64 { return w.coins }

// Earn credits a non-negative amount
func (w *Wallet) Earn(amount int64) {
	if amount > 0 {
		w.coins += amount
	}
}

// Spend debits amount, failing without change when the balance is short
func (w *Wallet) Spend(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount %d", domain.ErrInvalidInput, amount)
	}
	if w.coins < amount {
		return fmt.Errorf(ErrFmtFunds, domain.ErrInsufficientFunds, amount, w.coins)
	}
	w.coins -= amount
	return nil
}
