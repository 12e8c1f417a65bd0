package models

import "github.com/shopspring/decimal"

// OpeningEntryID keys the ledger entry that holds a wallet's opening balance.
// Bill IDs are UUIDs and never collide with it.
const OpeningEntryID = "opening-balance"

// LedgerEntry records how much a paid bill contributed to a wallet balance.
type LedgerEntry struct {
	BillID string
	Amount decimal.Decimal
}

// Wallet is an account-like balance holder.
//
// Balance is a cached value: it always equals the sum of Entries. Use Post
// and SetBalance to change it, never assign Balance directly.
type Wallet struct {
	// ID is assigned by the store on insert.
	ID int64

	Title string

	Balance decimal.Decimal

	// Entries is the ledger of signed contributions, one per bill at most.
	Entries []LedgerEntry
}

// Entry returns the ledger entry recorded for billID, if any.
func (w *Wallet) Entry(billID string) (LedgerEntry, bool) {
	for _, e := range w.Entries {
		if e.BillID == billID {
			return e, true
		}
	}
	return LedgerEntry{}, false
}

// Post records amount as billID's contribution, replacing any previous one,
// and recomputes the balance.
func (w *Wallet) Post(billID string, amount decimal.Decimal) {
	replaced := false
	for i := range w.Entries {
		if w.Entries[i].BillID == billID {
			w.Entries[i].Amount = amount
			replaced = true
			break
		}
	}
	if !replaced {
		w.Entries = append(w.Entries, LedgerEntry{BillID: billID, Amount: amount})
	}
	w.Balance = w.Sum()
}

// SetBalance makes the wallet hold balance by adjusting the opening entry.
// Contributions of bills are left untouched.
func (w *Wallet) SetBalance(balance decimal.Decimal) {
	others := decimal.Zero
	for _, e := range w.Entries {
		if e.BillID != OpeningEntryID {
			others = others.Add(e.Amount)
		}
	}
	opening := balance.Sub(others)
	if _, ok := w.Entry(OpeningEntryID); !ok && opening.IsZero() {
		w.Balance = w.Sum()
		return
	}
	w.Post(OpeningEntryID, opening)
}

// Sum adds up every ledger entry.
func (w *Wallet) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, e := range w.Entries {
		total = total.Add(e.Amount)
	}
	return total
}

// WalletCard is a credit line owned by a wallet.
type WalletCard struct {
	ID       int64
	WalletID int64
	Title    string
	Limit    decimal.Decimal
	Spent    decimal.Decimal
	Blocked  bool
}

// Available is the part of the limit not yet spent.
func (c *WalletCard) Available() decimal.Decimal {
	return c.Limit.Sub(c.Spent)
}

// WalletWithCards joins a wallet to the cards it owns. Read-only.
type WalletWithCards struct {
	Wallet Wallet
	Cards  []WalletCard
}
