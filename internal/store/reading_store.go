package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"palmlens/internal/domain"
	"palmlens/internal/fault"
)

// HistoryCap is the maximum number of readings retained. Once exceeded, the
// oldest entries are evicted FIFO by insertion order; no access-based policy.
const HistoryCap = 20

type ReadingStore struct {
	db *sql.DB
}

func NewReadingStore(db *sql.DB) *ReadingStore {
	return &ReadingStore{db: db}
}

// Save inserts the record and prunes history down to HistoryCap.
func (s *ReadingStore) Save(ctx context.Context, rec *domain.ReadingRecord) error {
	payload, err := json.Marshal(rec.Reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO readings (id, payload, created_at) VALUES (?, ?, ?)
	`, rec.ID, string(payload), rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}

	// rowid, not created_at, orders eviction: insertion order survives clock
	// skew and equal timestamps.
	_, err = s.db.ExecContext(ctx, `
		DELETE FROM readings WHERE rowid NOT IN (
			SELECT rowid FROM readings ORDER BY rowid DESC LIMIT ?
		)
	`, HistoryCap)
	if err != nil {
		return fmt.Errorf("failed to prune readings: %w", err)
	}

	return nil
}

func (s *ReadingStore) GetByID(ctx context.Context, id string) (*domain.ReadingRecord, error) {
	var (
		rec       domain.ReadingRecord
		payload   string
		createdAt time.Time
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, payload, created_at FROM readings WHERE id = ?
	`, id).Scan(&rec.ID, &payload, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reading: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &rec.Reading); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reading %s: %w", id, err)
	}
	rec.CreatedAt = createdAt
	return &rec, nil
}

// List returns all retained readings, newest first.
func (s *ReadingStore) List(ctx context.Context) ([]*domain.ReadingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payload, created_at FROM readings ORDER BY rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*domain.ReadingRecord, 0)
	for rows.Next() {
		var (
			rec       domain.ReadingRecord
			payload   string
			createdAt time.Time
		)
		if err := rows.Scan(&rec.ID, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Reading); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reading %s: %w", rec.ID, err)
		}
		rec.CreatedAt = createdAt
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating readings: %w", err)
	}

	return records, nil
}

func (s *ReadingStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM readings WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reading: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fault.New(fault.NotFound, "reading not found")
	}

	return nil
}
