package service

import (
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/pkg/api"
)

func billFromAPI(b api.Bill) models.Bill {
	return models.Bill{
		ID:          b.ID,
		Type:        models.BillType(b.Type),
		Value:       b.Value,
		Date:        b.Date,
		DueDate:     b.DueDate,
		Paid:        b.Paid,
		Origin:      b.Origin,
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		Tags:        b.Tags,
		WalletID:    b.WalletID,
		CardID:      b.CardID,
	}
}

func billToAPI(b models.Bill) api.Bill {
	return api.Bill{
		ID:          b.ID,
		Type:        string(b.Type),
		Value:       b.Value,
		Date:        b.Date,
		DueDate:     b.DueDate,
		Paid:        b.Paid,
		Expired:     b.Expired(),
		Origin:      b.Origin,
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		Tags:        b.Tags,
		WalletID:    b.WalletID,
		CardID:      b.CardID,
	}
}

func walletFromAPI(w api.Wallet) models.Wallet {
	return models.Wallet{ID: w.ID, Title: w.Title, Balance: w.Balance}
}

func walletToAPI(w models.Wallet) api.Wallet {
	entries := make([]api.LedgerEntry, len(w.Entries))
	for i, e := range w.Entries {
		entries[i] = api.LedgerEntry{BillID: e.BillID, Amount: e.Amount}
	}
	return api.Wallet{ID: w.ID, Title: w.Title, Balance: w.Balance, Entries: entries}
}

func cardFromAPI(c api.WalletCard) models.WalletCard {
	return models.WalletCard{
		ID:       c.ID,
		WalletID: c.WalletID,
		Title:    c.Title,
		Limit:    c.Limit,
		Spent:    c.Spent,
		Blocked:  c.Blocked,
	}
}

func cardToAPI(c models.WalletCard) api.WalletCard {
	return api.WalletCard{
		ID:        c.ID,
		WalletID:  c.WalletID,
		Title:     c.Title,
		Limit:     c.Limit,
		Spent:     c.Spent,
		Available: c.Available(),
		Blocked:   c.Blocked,
	}
}

func walletWithCardsToAPI(w models.WalletWithCards) api.WalletWithCards {
	return api.WalletWithCards{Wallet: walletToAPI(w.Wallet), Cards: mapSlice(w.Cards, cardToAPI)}
}

func subscriptionFromAPI(s api.Subscription) models.Subscription {
	return models.Subscription{
		ID:        s.ID,
		Title:     s.Title,
		StartDate: s.StartDate,
		DueDate:   s.DueDate,
		Price:     s.Price,
		Months:    s.Months,
		Expired:   s.Expired,
		AutoRenew: s.AutoRenew,
	}
}

func subscriptionToAPI(s models.Subscription) api.Subscription {
	return api.Subscription{
		ID:        s.ID,
		Title:     s.Title,
		StartDate: s.StartDate,
		DueDate:   s.DueDate,
		Price:     s.Price,
		Months:    s.Months,
		Expired:   s.Expired,
		AutoRenew: s.AutoRenew,
	}
}

// mapSlice converts every element of in; a nil input gives an empty slice.
func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
