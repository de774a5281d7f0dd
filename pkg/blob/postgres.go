package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omidvesal/intake_backend/pkg/database"
)

// Blob is the metadata row. Content lives in BlobChunk rows keyed by
// (blob_id, seq).
type Blob struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(512);not null"`
	ContentType string    `gorm:"type:varchar(255);not null"`
	Size        int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (Blob) TableName() string { return "blobs" }

type BlobChunk struct {
	BlobID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq    int       `gorm:"primaryKey"`
	Data   []byte    `gorm:"type:bytea;not null"`
}

func (BlobChunk) TableName() string { return "blob_chunks" }

// Models lists the tables this package owns, for migration wiring.
func Models() []any { return []any{&Blob{}, &BlobChunk{}} }

type postgresStore struct {
	handle    *database.Handle
	chunkSize int
}

// NewPostgresStore returns a Store writing through the shared database
// handle. Chunks and metadata of one blob are committed in a single
// transaction, so readers never observe a partial blob.
func NewPostgresStore(handle *database.Handle, cfg Config) Store {
	size := cfg.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &postgresStore{handle: handle, chunkSize: size}
}

func (s *postgresStore) Put(ctx context.Context, name, contentType string, r io.Reader) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	db, err := s.handle.DB(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var size int64
		for seq := 0; ; seq++ {
			buf := make([]byte, s.chunkSize)
			n, rerr := io.ReadFull(r, buf)
			if n > 0 {
				chunk := BlobChunk{BlobID: id, Seq: seq, Data: buf[:n]}
				if err := tx.Create(&chunk).Error; err != nil {
					return err
				}
				size += int64(n)
			}
			if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
				break
			}
			if rerr != nil {
				return rerr
			}
		}

		meta := Blob{
			ID:          id,
			Name:        name,
			ContentType: contentType,
			Size:        size,
			CreatedAt:   time.Now().UTC(),
		}
		return tx.Create(&meta).Error
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return id, nil
}

func (s *postgresStore) Get(ctx context.Context, id uuid.UUID) (*Info, io.ReadCloser, error) {
	db, err := s.handle.DB(ctx)
	if err != nil {
		return nil, nil, err
	}

	var meta Blob
	if err := db.First(&meta, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	info := &Info{
		ID:          meta.ID,
		Name:        meta.Name,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		CreatedAt:   meta.CreatedAt,
	}

	return info, newChunkReader(ctx, db, id), nil
}
