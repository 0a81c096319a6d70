package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/nlquery/internal/core/domain"
	"github.com/custodia-labs/nlquery/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// timeLayout has fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const historyColumns = `id, text, query, filter_by, sort_by, succeeded, error_kind, error, model, duration_ms, created_at`

// Save records an entry, assigning an ID when it has none.
func (s *historyStore) Save(ctx context.Context, entry domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var query, filterBy, sortBy sql.NullString
	if entry.Result != nil {
		query = nullString(entry.Result.Query)
		filterBy = nullString(entry.Result.FilterBy)
		sortBy = nullString(entry.Result.SortBy)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO translations (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			query = excluded.query,
			filter_by = excluded.filter_by,
			sort_by = excluded.sort_by,
			succeeded = excluded.succeeded,
			error_kind = excluded.error_kind,
			error = excluded.error,
			model = excluded.model,
			duration_ms = excluded.duration_ms,
			created_at = excluded.created_at
	`,
		entry.ID,
		entry.Text,
		query,
		filterBy,
		sortBy,
		boolToInt(entry.Succeeded()),
		string(entry.ErrorKind),
		entry.Error,
		entry.Model,
		entry.Duration.Milliseconds(),
		entry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving translation: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM translations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing translations: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating translations: %w", err)
	}
	return entries, nil
}

// Get returns an entry by ID.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+historyColumns+`
		FROM translations
		WHERE id = ?
	`, id)
	entry, err := scanHistoryEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return entry, err
}

// Close closes the underlying database.
func (s *historyStore) Close() error {
	return s.store.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(row rowScanner) (*domain.HistoryEntry, error) {
	var (
		entry                   domain.HistoryEntry
		query, filterBy, sortBy sql.NullString
		succeeded               int
		errorKind               string
		durationMS              int64
		createdAt               string
	)
	err := row.Scan(
		&entry.ID,
		&entry.Text,
		&query,
		&filterBy,
		&sortBy,
		&succeeded,
		&errorKind,
		&entry.Error,
		&entry.Model,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning translation: %w", err)
	}

	if succeeded == 1 {
		entry.Result = &domain.StructuredQuery{
			Query:    query.String,
			FilterBy: filterBy.String,
			SortBy:   sortBy.String,
		}
	}
	entry.ErrorKind = domain.ErrorKind(errorKind)
	entry.Duration = time.Duration(durationMS) * time.Millisecond
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		entry.CreatedAt = t
	} else if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = t
	}
	return &entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
