package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Record is one row of the files table.
type Record struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ContentType string          `json:"type"`
	URL         string          `json:"url"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FileRepository persists file records in PostgreSQL.
type FileRepository struct {
	db *sql.DB
}

// NewFileRepository creates a new repository.
func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Insert stores one record.
func (r *FileRepository) Insert(ctx context.Context, rec Record) error {
	const insertFile = `
		INSERT INTO files (id, name, type, url, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	if _, err := r.db.ExecContext(ctx, insertFile,
		rec.ID,
		rec.Name,
		rec.ContentType,
		rec.URL,
		rec.Metadata,
		rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

// URLsByIDs returns the URL for each ID that has a record. IDs without
// a record are absent from the map.
func (r *FileRepository) URLsByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	urls := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return urls, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT id::text, url FROM files WHERE id IN (%s)`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select urls: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, u string
		if err := rows.Scan(&id, &u); err != nil {
			return nil, fmt.Errorf("scan url row: %w", err)
		}
		urls[id] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate url rows: %w", err)
	}
	return urls, nil
}

// List returns every record, newest first.
func (r *FileRepository) List(ctx context.Context) ([]Record, error) {
	const listFiles = `
		SELECT id::text, name, type, url, metadata, created_at
		FROM files
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, listFiles)
	if err != nil {
		return nil, fmt.Errorf("select files: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.ContentType, &rec.URL, &rec.Metadata, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file rows: %w", err)
	}
	return out, nil
}

// Get fetches one record by ID.
func (r *FileRepository) Get(ctx context.Context, id string) (Record, error) {
	const getFile = `
		SELECT id::text, name, type, url, metadata, created_at
		FROM files
		WHERE id = $1
	`
	var rec Record
	if err := r.db.QueryRowContext(ctx, getFile, id).Scan(
		&rec.ID,
		&rec.Name,
		&rec.ContentType,
		&rec.URL,
		&rec.Metadata,
		&rec.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("select file: %w", err)
	}
	return rec, nil
}

// Delete removes one record by ID.
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
