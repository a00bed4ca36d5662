package model

import "time"

// Blob is a stored binary object (item image), addressed by an opaque key.
type Blob struct {
	Key         string    `db:"key"`
	Data        []byte    `db:"data"`
	ContentType string    `db:"content_type"`
	ETag        string    `db:"etag"`
	CreatedAt   time.Time `db:"created_at"`
}
