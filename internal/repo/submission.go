// Package repo is the persistence layer over the shared database handle.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/omidvesal/intake_backend/internal/model"
	"github.com/omidvesal/intake_backend/pkg/database"
)

// ErrPersistence wraps any storage fault raised by the repository.
var ErrPersistence = errors.New("persistence failed")

// Submissions is the append-only record store. There is no update or
// delete; accepted submissions are kept as submitted.
type Submissions interface {
	Insert(ctx context.Context, sub *model.Submission) (*model.Submission, error)
	ListByKind(ctx context.Context, kind model.Kind) ([]model.Submission, error)
}

type submissions struct {
	handle *database.Handle
}

func NewSubmissions(handle *database.Handle) Submissions {
	return &submissions{handle: handle}
}

func (r *submissions) Insert(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := db.Create(sub).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return sub, nil
}

// ListByKind returns records newest first. Ties on created_at fall back to
// descending id, which keeps the order stable because ids are time-ordered.
func (r *submissions) ListByKind(ctx context.Context, kind model.Kind) ([]model.Submission, error) {
	db, err := r.handle.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var subs []model.Submission
	err = db.Where("kind = ?", kind).
		Order("created_at DESC, id DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return subs, nil
}
