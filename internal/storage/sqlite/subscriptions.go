package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/storage"
)

// SaveSubscription inserts a subscription and returns its new ID.
func (s *SQLiteStore) SaveSubscription(ctx context.Context, sub *models.Subscription) (int64, error) {
	var id int64
	err := s.write(ctx, func(q querier) error {
		var subID any = nil
		if sub.ID != 0 {
			subID = sub.ID
		}

		res, err := q.ExecContext(ctx,
			`INSERT INTO subscriptions (id, title, start_date, due_date, price, months, expired, auto_renew)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			subID, sub.Title, sub.StartDate.UnixMilli(), sub.DueDate.UnixMilli(),
			sub.Price.String(), sub.Months, sub.Expired, sub.AutoRenew,
		)
		if err != nil {
			return wrapErr("insert subscription", err)
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return err
		}
		id, err = res.LastInsertId()
		return err
	}, tableSubscriptions)
	if err != nil {
		return 0, err
	}

	if id != 0 {
		sub.ID = id
	}
	return id, nil
}

// UpdateSubscription overwrites a subscription by ID.
func (s *SQLiteStore) UpdateSubscription(ctx context.Context, sub *models.Subscription) (int64, error) {
	var updated int64
	err := s.write(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			`UPDATE subscriptions SET title = ?, start_date = ?, due_date = ?, price = ?,
			 months = ?, expired = ?, auto_renew = ? WHERE id = ?`,
			sub.Title, sub.StartDate.UnixMilli(), sub.DueDate.UnixMilli(), sub.Price.String(),
			sub.Months, sub.Expired, sub.AutoRenew, sub.ID,
		)
		if err != nil {
			return wrapErr("update subscription", err)
		}
		updated, err = res.RowsAffected()
		return err
	}, tableSubscriptions)
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// DeleteSubscription removes a subscription by ID.
func (s *SQLiteStore) DeleteSubscription(ctx context.Context, sub *models.Subscription) (int64, error) {
	var deleted int64
	err := s.write(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, "DELETE FROM subscriptions WHERE id = ?", sub.ID)
		if err != nil {
			return wrapErr("delete subscription", err)
		}
		deleted, err = res.RowsAffected()
		return err
	}, tableSubscriptions)
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// WatchSubscriptions emits every subscription ordered by due date.
func (s *SQLiteStore) WatchSubscriptions(ctx context.Context) <-chan storage.Snapshot[[]models.Subscription] {
	return watch(ctx, s, s.querySubscriptions, tableSubscriptions)
}

func (s *SQLiteStore) querySubscriptions(ctx context.Context) ([]models.Subscription, error) {
	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT id, title, start_date, due_date, price, months, expired, auto_renew
		 FROM subscriptions ORDER BY due_date, id`,
	)
	if err != nil {
		return nil, wrapErr("query subscriptions", err)
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var (
			sub        models.Subscription
			start, due int64
		)
		if err := rows.Scan(&sub.ID, &sub.Title, &start, &due, &sub.Price,
			&sub.Months, &sub.Expired, &sub.AutoRenew); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		sub.StartDate = time.UnixMilli(start).UTC()
		sub.DueDate = time.UnixMilli(due).UTC()
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}
