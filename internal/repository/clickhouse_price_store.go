package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"BasketNa/internal/domain/models"
	"BasketNa/internal/domain/repository"
)

// PriceSchema holds the idempotent DDL for the price tables.
func PriceSchema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.price_points (
			product_id String,
			retailer   LowCardinality(String),
			day        Date,
			price      Float64,
			ts         DateTime
		) ENGINE = MergeTree
		ORDER BY (product_id, retailer, day)`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.activity_events (
			ts         DateTime,
			user_id    String,
			session_id String,
			product_id String,
			category   LowCardinality(String),
			event      LowCardinality(String)
		) ENGINE = MergeTree
		ORDER BY (user_id, session_id, ts)`, database),
	}
}

// ClickHousePriceStore implements PriceStore on the price_points table.
type ClickHousePriceStore struct {
	db    *sql.DB
	table string
}

// NewClickHousePriceStore creates ClickHouse price storage.
func NewClickHousePriceStore(db *sql.DB, table string) repository.PriceStore {
	return &ClickHousePriceStore{db: db, table: table}
}

func (s *ClickHousePriceStore) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHousePriceStore) Store(ctx context.Context, t *models.PriceTick) error {
	q := fmt.Sprintf("INSERT INTO %s (product_id, retailer, day, price, ts) VALUES (?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		t.ProductID,
		string(t.Retailer),
		t.Day(),
		t.Price,
		time.Unix(t.Timestamp, 0),
	)
	return err
}

func (s *ClickHousePriceStore) StoreBatch(ctx context.Context, ticks []*models.PriceTick) error {
	if len(ticks) == 0 {
		return nil
	}
	// Multi-row VALUES to reduce round-trips, chunked at 2000 rows.
	const chunkSize = 2000
	for start := 0; start < len(ticks); start += chunkSize {
		end := start + chunkSize
		if end > len(ticks) {
			end = len(ticks)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, t := range ticks[start:end] {
			if t == nil || t.ProductID == "" || t.Timestamp == 0 {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args,
				t.ProductID,
				string(t.Retailer),
				t.Day(),
				t.Price,
				time.Unix(t.Timestamp, 0),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (product_id, retailer, day, price, ts) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

// History returns the trailing daily series, averaged across retailers
// when no retailer filter is given.
func (s *ClickHousePriceStore) History(ctx context.Context, productID string, retailer models.Retailer, days int) ([]models.PricePoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	var q string
	args := []interface{}{productID, since}
	if retailer != "" {
		q = fmt.Sprintf(`SELECT day, avg(price)
			FROM %s
			WHERE product_id = ? AND day >= ? AND retailer = ?
			GROUP BY day ORDER BY day`, s.table)
		args = append(args, string(retailer))
	} else {
		q = fmt.Sprintf(`SELECT day, avg(price)
			FROM %s
			WHERE product_id = ? AND day >= ?
			GROUP BY day ORDER BY day`, s.table)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Day, &p.Price); err != nil {
			return nil, err
		}
		p.Retailer = retailer
		out = append(out, p)
	}
	return out, rows.Err()
}

// LatestQuotes returns the newest price per retailer for a product.
func (s *ClickHousePriceStore) LatestQuotes(ctx context.Context, productID string) ([]models.RetailerQuote, error) {
	q := fmt.Sprintf(`SELECT retailer, argMax(price, ts), max(day)
		FROM %s
		WHERE product_id = ?
		GROUP BY retailer ORDER BY retailer`, s.table)

	rows, err := s.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RetailerQuote
	for rows.Next() {
		var quote models.RetailerQuote
		var retailer string
		if err := rows.Scan(&retailer, &quote.Price, &quote.Day); err != nil {
			return nil, err
		}
		quote.Retailer = models.Retailer(retailer)
		out = append(out, quote)
	}
	return out, rows.Err()
}

func (s *ClickHousePriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHousePriceStore) Close() error {
	return nil // Managed by pkg
}
