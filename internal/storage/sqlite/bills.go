package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/storage"
)

const billColumns = `id, type, value, date, due_date, paid, origin, title, description, category, wallet_id, card_id`

// SaveBill inserts a bill and its tags. The caller assigns bill.ID.
func (s *SQLiteStore) SaveBill(ctx context.Context, bill *models.Bill) (string, error) {
	var inserted int64
	err := s.write(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			`INSERT INTO bills (`+billColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			billArgs(bill)...,
		)
		if err != nil {
			return wrapErr("insert bill", err)
		}
		if inserted, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		return insertTags(ctx, q, bill.ID, bill.Tags)
	}, tableBills, tableBillTags)
	if err != nil {
		return "", err
	}

	if inserted == 0 {
		return "", nil
	}
	return bill.ID, nil
}

// UpdateBill overwrites every column of the bill with the same ID and
// replaces its tags.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) (int64, error) {
	var updated int64
	err := s.write(ctx, func(q querier) error {
		args := billArgs(bill)
		res, err := q.ExecContext(ctx,
			`UPDATE bills SET type = ?, value = ?, date = ?, due_date = ?, paid = ?, origin = ?,
			 title = ?, description = ?, category = ?, wallet_id = ?, card_id = ?
			 WHERE id = ?`,
			append(args[1:], bill.ID)...,
		)
		if err != nil {
			return wrapErr("update bill", err)
		}
		if updated, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if updated == 0 {
			return nil
		}

		if _, err := q.ExecContext(ctx, "DELETE FROM bill_tags WHERE bill_id = ?", bill.ID); err != nil {
			return wrapErr("clear bill tags", err)
		}
		return insertTags(ctx, q, bill.ID, bill.Tags)
	}, tableBills, tableBillTags)
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// DeleteBill removes a bill by ID. Tags go with it.
func (s *SQLiteStore) DeleteBill(ctx context.Context, bill *models.Bill) (int64, error) {
	var deleted int64
	err := s.write(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", bill.ID)
		if err != nil {
			return wrapErr("delete bill", err)
		}
		deleted, err = res.RowsAffected()
		return err
	}, tableBills, tableBillTags)
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// GetBill retrieves a bill by ID, including its tags.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bills, err := s.queryBills(ctx, "WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, fmt.Errorf("bill %s: %w", id, storage.ErrNotFound)
	}
	return &bills[0], nil
}

// WatchBills emits all bills, newest first.
func (s *SQLiteStore) WatchBills(ctx context.Context) <-chan storage.Snapshot[[]models.Bill] {
	return watch(ctx, s, func(ctx context.Context) ([]models.Bill, error) {
		return s.queryBills(ctx, "")
	}, tableBills, tableBillTags)
}

// WatchBillsByDate emits the bills dated within [start, end].
func (s *SQLiteStore) WatchBillsByDate(ctx context.Context, start, end time.Time) <-chan storage.Snapshot[[]models.Bill] {
	return watch(ctx, s, func(ctx context.Context) ([]models.Bill, error) {
		return s.queryBills(ctx, "WHERE date BETWEEN ? AND ?", start.UnixMilli(), end.UnixMilli())
	}, tableBills, tableBillTags)
}

// WatchBillsByText emits the bills whose title, origin or description
// contains needle. SQLite's LIKE ignores case for ASCII letters only.
func (s *SQLiteStore) WatchBillsByText(ctx context.Context, needle string) <-chan storage.Snapshot[[]models.Bill] {
	pattern := "%" + escapeLike(needle) + "%"
	return watch(ctx, s, func(ctx context.Context) ([]models.Bill, error) {
		return s.queryBills(ctx,
			`WHERE title LIKE ? ESCAPE '\' OR origin LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}, tableBills, tableBillTags)
}

// queryBills loads the bills matching where, then their tags in one query
// filtered by the same where. Rows are closed before the tag query runs: the
// pool has one connection.
func (s *SQLiteStore) queryBills(ctx context.Context, where string, args ...any) ([]models.Bill, error) {
	q := s.conn(ctx)

	rows, err := q.QueryContext(ctx,
		"SELECT "+billColumns+" FROM bills "+where+" ORDER BY date DESC, id",
		args...,
	)
	if err != nil {
		return nil, wrapErr("query bills", err)
	}

	bills := []models.Bill{}
	index := make(map[string]int)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		index[bill.ID] = len(bills)
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	rows.Close()

	if len(bills) == 0 {
		return bills, nil
	}

	// The tag query repeats the filter instead of binding one variable per
	// bill: SQLite caps bound variables at 32766.
	tagRows, err := q.QueryContext(ctx,
		"SELECT bill_id, tag FROM bill_tags WHERE bill_id IN (SELECT id FROM bills "+where+") ORDER BY bill_id, position",
		args...,
	)
	if err != nil {
		return nil, wrapErr("query bill tags", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var billID, tag string
		if err := tagRows.Scan(&billID, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		// A bill written between the two queries is not in this snapshot.
		i, ok := index[billID]
		if !ok {
			continue
		}
		bills[i].Tags = append(bills[i].Tags, tag)
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return bills, nil
}

func insertTags(ctx context.Context, q querier, billID string, tags []string) error {
	for i, tag := range tags {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO bill_tags (bill_id, position, tag) VALUES (?, ?, ?)",
			billID, i, tag,
		); err != nil {
			return wrapErr("insert bill tag", err)
		}
	}
	return nil
}

// billArgs returns the column values in billColumns order.
func billArgs(b *models.Bill) []any {
	var dueDate any = nil
	if b.DueDate != nil {
		dueDate = b.DueDate.UnixMilli()
	}
	var cardID any = nil
	if b.CardID != nil {
		cardID = *b.CardID
	}
	return []any{
		b.ID, string(b.Type), b.Value.String(), b.Date.UnixMilli(), dueDate, b.Paid,
		b.Origin, b.Title, b.Description, b.Category, b.WalletID, cardID,
	}
}

func scanBill(rows *sql.Rows) (models.Bill, error) {
	var (
		b       models.Bill
		billTyp string
		date    int64
		dueDate sql.NullInt64
		cardID  sql.NullInt64
	)
	err := rows.Scan(&b.ID, &billTyp, &b.Value, &date, &dueDate, &b.Paid,
		&b.Origin, &b.Title, &b.Description, &b.Category, &b.WalletID, &cardID)
	if err != nil {
		return models.Bill{}, err
	}

	b.Type = models.BillType(billTyp)
	b.Date = time.UnixMilli(date).UTC()
	if dueDate.Valid {
		due := time.UnixMilli(dueDate.Int64).UTC()
		b.DueDate = &due
	}
	if cardID.Valid {
		id := cardID.Int64
		b.CardID = &id
	}
	return b, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
