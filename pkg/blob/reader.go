package blob

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errReaderClosed = errors.New("blob: reader closed")

// chunkReader streams a blob one chunk row at a time. Each chunk is fetched
// when the consumer asks for it, so a blob never has to sit in memory whole.
// Chunks are immutable once written, which keeps the sequential reads
// consistent without a transaction.
type chunkReader struct {
	fetch func(seq int) ([]byte, error)

	seq int
	buf []byte
	err error
}

func newChunkReader(ctx context.Context, db *gorm.DB, id uuid.UUID) *chunkReader {
	return &chunkReader{
		fetch: func(seq int) ([]byte, error) {
			var chunk BlobChunk
			err := db.WithContext(ctx).
				First(&chunk, "blob_id = ? AND seq = ?", id, seq).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, io.EOF
			}
			if err != nil {
				return nil, err
			}
			return chunk.Data, nil
		},
	}
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	for len(r.buf) == 0 {
		data, err := r.fetch(r.seq)
		if err != nil {
			r.err = err
			return 0, err
		}
		r.seq++
		r.buf = data
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func (r *chunkReader) Close() error {
	r.err = errReaderClosed
	r.buf = nil
	return nil
}
