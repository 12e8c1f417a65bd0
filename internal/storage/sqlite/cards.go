package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/storage"
)

// SaveCard inserts a wallet card and returns its new ID.
func (s *SQLiteStore) SaveCard(ctx context.Context, card *models.WalletCard) (int64, error) {
	var id int64
	err := s.write(ctx, func(q querier) error {
		var cardID any = nil
		if card.ID != 0 {
			cardID = card.ID
		}

		res, err := q.ExecContext(ctx,
			`INSERT INTO wallet_cards (id, wallet_id, title, credit_limit, spent, blocked)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			cardID, card.WalletID, card.Title, card.Limit.String(), card.Spent.String(), card.Blocked,
		)
		if err != nil {
			return wrapErr("insert card", err)
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return err
		}
		id, err = res.LastInsertId()
		return err
	}, tableWalletCards)
	if err != nil {
		return 0, err
	}

	if id != 0 {
		card.ID = id
	}
	return id, nil
}

// UpdateCard overwrites a card by ID.
func (s *SQLiteStore) UpdateCard(ctx context.Context, card *models.WalletCard) (int64, error) {
	var updated int64
	err := s.write(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			`UPDATE wallet_cards SET wallet_id = ?, title = ?, credit_limit = ?, spent = ?, blocked = ?
			 WHERE id = ?`,
			card.WalletID, card.Title, card.Limit.String(), card.Spent.String(), card.Blocked, card.ID,
		)
		if err != nil {
			return wrapErr("update card", err)
		}
		updated, err = res.RowsAffected()
		return err
	}, tableWalletCards)
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// DeleteCard removes a card. Bills paid with it keep existing without a card.
func (s *SQLiteStore) DeleteCard(ctx context.Context, card *models.WalletCard) (int64, error) {
	var deleted int64
	err := s.write(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, "DELETE FROM wallet_cards WHERE id = ?", card.ID)
		if err != nil {
			return wrapErr("delete card", err)
		}
		deleted, err = res.RowsAffected()
		return err
	}, tableWalletCards, tableBills)
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// WatchCards emits the cards of one wallet.
func (s *SQLiteStore) WatchCards(ctx context.Context, walletID int64) <-chan storage.Snapshot[[]models.WalletCard] {
	return watch(ctx, s, func(ctx context.Context) ([]models.WalletCard, error) {
		return s.queryCards(ctx, "WHERE wallet_id = ?", walletID)
	}, tableWalletCards)
}

func (s *SQLiteStore) queryCards(ctx context.Context, where string, args ...any) ([]models.WalletCard, error) {
	rows, err := s.conn(ctx).QueryContext(ctx,
		"SELECT id, wallet_id, title, credit_limit, spent, blocked FROM wallet_cards "+where+" ORDER BY id",
		args...,
	)
	if err != nil {
		return nil, wrapErr("query cards", err)
	}
	defer rows.Close()

	cards := []models.WalletCard{}
	for rows.Next() {
		var c models.WalletCard
		if err := rows.Scan(&c.ID, &c.WalletID, &c.Title, &c.Limit, &c.Spent, &c.Blocked); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}
