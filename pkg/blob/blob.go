// Package blob stores uploaded files as immutable binary objects addressed
// by generated ids. Two backends implement the same contract: a Postgres
// chunk-table store (default) and an S3-compatible bucket.
package blob

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound reports that no blob exists under the requested id.
	ErrNotFound = errors.New("blob not found")

	// ErrWrite wraps any fault while ingesting a blob. A Put that returns
	// an error never leaves a readable blob behind.
	ErrWrite = errors.New("blob write failed")
)

// Info describes a stored blob.
type Info struct {
	ID          uuid.UUID
	Name        string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// Store is the binary store behind resume uploads. Blobs are write-once:
// there is no update or delete.
type Store interface {
	// Put consumes r to the end and returns the generated id. The id is
	// handed out only after the blob is fully committed, so a returned id
	// always resolves.
	Put(ctx context.Context, name, contentType string, r io.Reader) (uuid.UUID, error)

	// Get returns blob metadata and a single-pass, forward-only reader
	// over its content. The caller owns the reader and must close it.
	// Returns ErrNotFound when no blob exists under id.
	Get(ctx context.Context, id uuid.UUID) (*Info, io.ReadCloser, error)
}
