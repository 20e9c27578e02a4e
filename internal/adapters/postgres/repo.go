// Package postgres archives saved reservations in Postgres. The KV store
// stays the source of truth for the wizard itself; the archive exists for
// server deployments that need atomic append/remove instead of a
// read-modify-write JSON blob.
package postgres

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkraev/booking-wizard/internal/domain"
)

const serializationFailureCode = "40001"

type Archive struct {
	pool *pgxpool.Pool
}

func NewArchive(pool *pgxpool.Pool) *Archive {
	return &Archive{pool: pool}
}

func (a *Archive) EnsureSchema(ctx context.Context) error {
	_, err := a.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS reservations (
			id TEXT PRIMARY KEY,
			citizenship TEXT NOT NULL,
			destination TEXT NOT NULL,
			start_date TEXT NOT NULL,
			num_days INT NOT NULL,
			board_type TEXT NOT NULL,
			saved_at BIGINT NOT NULL,
			snapshot JSONB NOT NULL
		)
	`)
	return err
}

func (a *Archive) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "SET TRANSACTION ISOLATION LEVEL SERIALIZABLE")
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == serializationFailureCode {
			return domain.ErrStoreUnavailable
		}
		return err
	}

	return tx.Commit(ctx)
}

// Append inserts the record, refusing a second row with the same id.
func (a *Archive) Append(ctx context.Context, record domain.SavedBooking) error {
	snapshot, err := json.Marshal(record.BookingState)
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}
	return a.WithTx(ctx, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			INSERT INTO reservations (id, citizenship, destination, start_date, num_days, board_type, saved_at, snapshot)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, record.ID, record.Citizenship, record.Destination, record.StartDate,
			record.NumDays, string(record.BoardType), record.SavedAt, snapshot)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return domain.ErrDuplicate
		}
		return nil
	})
}

func (a *Archive) List(ctx context.Context) ([]domain.SavedBooking, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT id, saved_at, snapshot FROM reservations ORDER BY saved_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SavedBooking
	for rows.Next() {
		var (
			record   domain.SavedBooking
			snapshot []byte
		)
		if err := rows.Scan(&record.ID, &record.SavedAt, &snapshot); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(snapshot, &record.BookingState); err != nil {
			return nil, errors.Wrapf(err, "decode reservation %s", record.ID)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Remove deletes by id, reporting whether a row existed.
func (a *Archive) Remove(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := a.WithTx(ctx, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
		if err != nil {
			return err
		}
		removed = result.RowsAffected() > 0
		return nil
	})
	return removed, err
}
