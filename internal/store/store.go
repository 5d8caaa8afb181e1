// Package store persists speech artifacts: audio bytes go to an
// S3-compatible bucket, the describing record goes to the files table,
// and artifact IDs resolve back to public URLs.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound means no file record exists for the given ID.
var ErrNotFound = errors.New("file not found")

const audioContentType = "audio/mpeg"

// ObjectMeta describes one uploaded artifact. It is stored as the
// record's metadata document.
type ObjectMeta struct {
	Filename    string      `json:"filename"`
	Language    string      `json:"language"`
	TextLength  int         `json:"text_length"`
	GeneratedAt time.Time   `json:"generated_at"`
	Content     ContentMeta `json:"content_metadata"`
}

// ContentMeta locates the artifact inside its source document.
type ContentMeta struct {
	Section       string `json:"section"`
	ParentSection string `json:"parent_section"`
	Type          string `json:"type"`
	Source        string `json:"source"`
	Language      string `json:"language"`
	TextType      string `json:"text_type"` // "original" or "translation"
}

// Blob stores raw artifact bytes under a key.
type Blob interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	Remove(ctx context.Context, key string) error
}

// Files is the metadata side of the artifact store.
type Files interface {
	Insert(ctx context.Context, rec Record) error
	URLsByIDs(ctx context.Context, ids []string) (map[string]string, error)
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
}

// Client ties the blob store and the files table together so a single
// call stores an artifact end to end.
type Client struct {
	blob   Blob
	files  Files
	prefix string
	log    *slog.Logger
}

// NewClient builds the artifact store facade. prefix namespaces object
// keys inside the bucket.
func NewClient(blob Blob, files Files, prefix string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{blob: blob, files: files, prefix: prefix, log: log}
}

// Store uploads the audio and inserts its file record, returning the
// new artifact ID. If the record insert fails the uploaded blob is
// removed again so no orphan is left behind.
func (c *Client) Store(ctx context.Context, data []byte, meta ObjectMeta) (string, error) {
	id := uuid.NewString()
	key := c.objectKey(id, meta.Filename)

	url, err := c.blob.Put(ctx, key, data, audioContentType)
	if err != nil {
		return "", fmt.Errorf("upload blob: %w", err)
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	rec := Record{
		ID:          id,
		Name:        meta.Filename,
		ContentType: audioContentType,
		URL:         url,
		Metadata:    metaJSON,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.files.Insert(ctx, rec); err != nil {
		if rmErr := c.blob.Remove(ctx, key); rmErr != nil {
			c.log.Warn("orphaned blob cleanup failed", "key", key, "error", rmErr)
		}
		return "", fmt.Errorf("insert file record: %w", err)
	}

	c.log.Debug("artifact stored", "file_id", id, "key", key, "bytes", len(data))
	return id, nil
}

// ResolveURLs maps artifact IDs to their public URLs in one query.
// IDs that are not valid UUIDs or have no record are simply absent
// from the result.
func (c *Client) ResolveURLs(ctx context.Context, ids []string) (map[string]string, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		valid = append(valid, id)
	}
	if len(valid) == 0 {
		return map[string]string{}, nil
	}
	return c.files.URLsByIDs(ctx, valid)
}

// List returns every stored file record, newest first.
func (c *Client) List(ctx context.Context) ([]Record, error) {
	return c.files.List(ctx)
}

// Delete removes an artifact's blob and record. The record stays when
// the blob removal fails, so nothing dangles.
func (c *Client) Delete(ctx context.Context, id string) error {
	rec, err := c.files.Get(ctx, id)
	if err != nil {
		return err
	}
	key := c.objectKey(rec.ID, rec.Name)
	if err := c.blob.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	return c.files.Delete(ctx, id)
}

func (c *Client) objectKey(id, filename string) string {
	return path.Join(c.prefix, id+"_"+filename)
}
