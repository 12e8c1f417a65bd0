package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/storage"
)

// walletTables are the tables a wallet projection reads.
var walletTables = []string{tableWallets, tableWalletEntries, tableWalletCards}

// SaveWallet inserts a wallet and its ledger. A zero wallet.ID lets SQLite
// assign one; a non-zero ID is inserted as given.
func (s *SQLiteStore) SaveWallet(ctx context.Context, wallet *models.Wallet) (int64, error) {
	var id int64
	err := s.write(ctx, func(q querier) error {
		var walletID any = nil
		if wallet.ID != 0 {
			walletID = wallet.ID
		}

		res, err := q.ExecContext(ctx,
			"INSERT INTO wallets (id, title, balance) VALUES (?, ?, ?)",
			walletID, wallet.Title, wallet.Balance.String(),
		)
		if err != nil {
			return wrapErr("insert wallet", err)
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read wallet id: %w", err)
		}
		return insertEntries(ctx, q, id, wallet.Entries)
	}, walletTables...)
	if err != nil {
		return 0, err
	}

	if id != 0 {
		wallet.ID = id
	}
	return id, nil
}

// UpdateWallet overwrites the wallet's title and balance and replaces its
// ledger with wallet.Entries.
func (s *SQLiteStore) UpdateWallet(ctx context.Context, wallet *models.Wallet) (int64, error) {
	var updated int64
	err := s.write(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			"UPDATE wallets SET title = ?, balance = ? WHERE id = ?",
			wallet.Title, wallet.Balance.String(), wallet.ID,
		)
		if err != nil {
			return wrapErr("update wallet", err)
		}
		if updated, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if updated == 0 {
			return nil
		}

		if _, err := q.ExecContext(ctx, "DELETE FROM wallet_entries WHERE wallet_id = ?", wallet.ID); err != nil {
			return wrapErr("clear wallet entries", err)
		}
		return insertEntries(ctx, q, wallet.ID, wallet.Entries)
	}, walletTables...)
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// DeleteWallet removes a wallet. Its entries, cards and bills cascade.
func (s *SQLiteStore) DeleteWallet(ctx context.Context, wallet *models.Wallet) (int64, error) {
	var deleted int64
	err := s.write(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, "DELETE FROM wallets WHERE id = ?", wallet.ID)
		if err != nil {
			return wrapErr("delete wallet", err)
		}
		deleted, err = res.RowsAffected()
		return err
	}, append(walletTables, tableBills, tableBillTags)...)
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// GetWalletWithCards retrieves one wallet with its ledger and cards.
func (s *SQLiteStore) GetWalletWithCards(ctx context.Context, id int64) (*models.WalletWithCards, error) {
	wallets, err := s.queryWallets(ctx, "WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		return nil, fmt.Errorf("wallet %d: %w", id, storage.ErrNotFound)
	}
	return &wallets[0], nil
}

// WatchWalletsWithCards emits every wallet with its cards, ordered by ID.
func (s *SQLiteStore) WatchWalletsWithCards(ctx context.Context) <-chan storage.Snapshot[[]models.WalletWithCards] {
	return watch(ctx, s, func(ctx context.Context) ([]models.WalletWithCards, error) {
		return s.queryWallets(ctx, "")
	}, walletTables...)
}

// WatchWalletWithCards emits one wallet with its cards.
func (s *SQLiteStore) WatchWalletWithCards(ctx context.Context, id int64) <-chan storage.Snapshot[models.WalletWithCards] {
	return watch(ctx, s, func(ctx context.Context) (models.WalletWithCards, error) {
		w, err := s.GetWalletWithCards(ctx, id)
		if err != nil {
			return models.WalletWithCards{}, err
		}
		return *w, nil
	}, walletTables...)
}

// queryWallets loads the wallets matching where, then their entries and
// cards, one query each, filtered by the same where.
func (s *SQLiteStore) queryWallets(ctx context.Context, where string, args ...any) ([]models.WalletWithCards, error) {
	q := s.conn(ctx)

	rows, err := q.QueryContext(ctx, "SELECT id, title, balance FROM wallets "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, wrapErr("query wallets", err)
	}

	wallets := []models.WalletWithCards{}
	index := make(map[int64]int)
	for rows.Next() {
		var w models.WalletWithCards
		if err := rows.Scan(&w.Wallet.ID, &w.Wallet.Title, &w.Wallet.Balance); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		w.Cards = []models.WalletCard{}
		index[w.Wallet.ID] = len(wallets)
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate wallets: %w", err)
	}
	rows.Close()

	if len(wallets) == 0 {
		return wallets, nil
	}

	// Child queries repeat the filter rather than bind every wallet ID.
	in := "(SELECT id FROM wallets " + where + ")"

	entryRows, err := q.QueryContext(ctx,
		"SELECT wallet_id, bill_id, amount FROM wallet_entries WHERE wallet_id IN "+in+" ORDER BY wallet_id, position",
		args...,
	)
	if err != nil {
		return nil, wrapErr("query wallet entries", err)
	}
	for entryRows.Next() {
		var walletID int64
		var e models.LedgerEntry
		if err := entryRows.Scan(&walletID, &e.BillID, &e.Amount); err != nil {
			entryRows.Close()
			return nil, fmt.Errorf("failed to scan wallet entry: %w", err)
		}
		i, ok := index[walletID]
		if !ok {
			continue
		}
		w := &wallets[i].Wallet
		w.Entries = append(w.Entries, e)
	}
	if err := entryRows.Err(); err != nil {
		entryRows.Close()
		return nil, fmt.Errorf("failed to iterate wallet entries: %w", err)
	}
	entryRows.Close()

	cards, err := s.queryCards(ctx, "WHERE wallet_id IN "+in, args...)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		i, ok := index[c.WalletID]
		if !ok {
			continue
		}
		wallets[i].Cards = append(wallets[i].Cards, c)
	}

	return wallets, nil
}

func insertEntries(ctx context.Context, q querier, walletID int64, entries []models.LedgerEntry) error {
	for i, e := range entries {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO wallet_entries (wallet_id, bill_id, amount, position) VALUES (?, ?, ?, ?)",
			walletID, e.BillID, e.Amount.String(), i,
		); err != nil {
			return wrapErr("insert wallet entry", err)
		}
	}
	return nil
}
