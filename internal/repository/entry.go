package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/catDforD/Trackit/internal/models"
	"github.com/catDforD/Trackit/internal/week"
)

type entryRepository struct {
	db *DB
}

// NewEntryRepository creates a SQLite-backed entry repository.
func NewEntryRepository(db *DB) EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = "id, timestamp, date, raw_input, category, mood, metrics_json, note, created_at"

func (r *entryRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if entry.Date.IsZero() {
		entry.Date = week.Truncate(time.Now().UTC())
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	var metricsJSON any
	if len(entry.Metrics) > 0 {
		raw, err := json.Marshal(entry.Metrics)
		if err != nil {
			return nil, fmt.Errorf("encoding metrics: %w", err)
		}
		metricsJSON = string(raw)
	}

	result, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO entries (timestamp, date, raw_input, category, mood, metrics_json, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.Format(time.RFC3339),
		entry.Date.Format(time.DateOnly),
		entry.RawInput,
		entry.Category,
		string(entry.Mood),
		metricsJSON,
		entry.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading insert id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *entryRepository) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	row := r.db.conn.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id = ?", id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching entry %d: %w", id, err)
	}
	return entry, nil
}

func (r *entryRepository) GetByDateRange(ctx context.Context, start, end time.Time, category string) ([]models.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE date >= ? AND date <= ?"
	args := []any{start.Format(time.DateOnly), end.Format(time.DateOnly)}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries by date range: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *entryRepository) GetByWeek(ctx context.Context, weekID string) ([]models.Entry, error) {
	start, end, err := week.Span(weekID)
	if err != nil {
		return nil, err
	}
	return r.GetByDateRange(ctx, start, end, "")
}

func (r *entryRepository) GetByCategory(ctx context.Context, category string, limit int) ([]models.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE category = ? ORDER BY date DESC, id DESC"
	args := []any{category}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries by category: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *entryRepository) GetCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		"SELECT DISTINCT category FROM entries ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *entryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.Entry, error) {
	var (
		entry       models.Entry
		timestamp   string
		date        string
		mood        string
		metricsJSON sql.NullString
		createdAt   string
	)
	err := row.Scan(&entry.ID, &timestamp, &date, &entry.RawInput,
		&entry.Category, &mood, &metricsJSON, &entry.Note, &createdAt)
	if err != nil {
		return nil, err
	}

	entry.Mood = models.Mood(mood)
	if entry.Date, err = time.ParseInLocation(time.DateOnly, date, time.UTC); err != nil {
		return nil, fmt.Errorf("parsing entry date %q: %w", date, err)
	}
	// Timestamps may be RFC3339 (our writes) or SQLite's default format.
	if entry.Timestamp, err = parseSQLiteTime(timestamp); err != nil {
		return nil, fmt.Errorf("parsing entry timestamp %q: %w", timestamp, err)
	}
	if entry.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing entry created_at %q: %w", createdAt, err)
	}
	if metricsJSON.Valid && metricsJSON.String != "" {
		if err := json.Unmarshal([]byte(metricsJSON.String), &entry.Metrics); err != nil {
			return nil, fmt.Errorf("decoding metrics for entry %d: %w", entry.ID, err)
		}
	}
	return &entry, nil
}

func scanEntries(rows *sql.Rows) ([]models.Entry, error) {
	entries := make([]models.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func parseSQLiteTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
}
