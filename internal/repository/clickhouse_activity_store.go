package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"BasketNa/internal/domain/models"
	"BasketNa/internal/domain/repository"
)

// ClickHouseActivityStore appends view events and aggregates per-identity
// view counts from the activity_events table.
type ClickHouseActivityStore struct {
	db    *sql.DB
	table string
}

func NewClickHouseActivityStore(db *sql.DB, table string) repository.ActivityStore {
	return &ClickHouseActivityStore{db: db, table: table}
}

func (s *ClickHouseActivityStore) RecordView(ctx context.Context, ev *models.ViewEvent) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, user_id, session_id, product_id, category, event) VALUES (?, ?, ?, ?, ?, ?)", s.table)
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, q, ts, ev.UserID, ev.SessionID, ev.ProductID, ev.Category, "view")
	return err
}

// ViewCounts aggregates view events per product for a user and/or
// session identity since the given time.
func (s *ClickHouseActivityStore) ViewCounts(ctx context.Context, userID, sessionID string, since time.Time) (map[string]int64, error) {
	if userID == "" && sessionID == "" {
		return map[string]int64{}, nil
	}

	where := "ts >= ? AND event = 'view'"
	args := []interface{}{since}
	switch {
	case userID != "" && sessionID != "":
		where += " AND (user_id = ? OR session_id = ?)"
		args = append(args, userID, sessionID)
	case userID != "":
		where += " AND user_id = ?"
		args = append(args, userID)
	default:
		where += " AND session_id = ?"
		args = append(args, sessionID)
	}

	q := fmt.Sprintf("SELECT product_id, count() FROM %s WHERE %s GROUP BY product_id", s.table, where)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var productID string
		var n uint64
		if err := rows.Scan(&productID, &n); err != nil {
			return nil, err
		}
		out[productID] = int64(n)
	}
	return out, rows.Err()
}
