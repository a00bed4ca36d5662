package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mlakar/wishbox/internal/model"
)

// PutBlob stores binary data under an opaque key, replacing any existing
// blob with the same key. Returns the content hash used as the entity tag.
func PutBlob(ctx context.Context, db *sqlx.DB, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", &model.ValidationError{Field: "key", Reason: "required"}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	sum := sha256.Sum256(data)
	etag := hex.EncodeToString(sum[:])

	_, err := db.ExecContext(ctx,
		`INSERT INTO blobs (key, data, content_type, etag, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET
		     data = excluded.data,
		     content_type = excluded.content_type,
		     etag = excluded.etag`,
		key, data, contentType, etag, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("storing blob: %w", err)
	}
	return etag, nil
}

// GetBlob returns the blob stored under key, or nil if it does not exist.
func GetBlob(ctx context.Context, db *sqlx.DB, key string) (*model.Blob, error) {
	var blob model.Blob
	err := db.GetContext(ctx, &blob,
		`SELECT key, data, content_type, etag, created_at FROM blobs WHERE key = ?`, key,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting blob: %w", err)
	}
	return &blob, nil
}

// DeleteBlob removes a blob. Deleting a missing key is not an error.
func DeleteBlob(ctx context.Context, db *sqlx.DB, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting blob: %w", err)
	}
	return nil
}
