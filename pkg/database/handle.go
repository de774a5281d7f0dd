package database

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// Handle is the database resource shared by repositories and stores. The
// connection is opened lazily on the first call and cached for every caller
// after that. A handle that went bad can be dropped and re-dialed with
// Reacquire; the readiness probe drives that.
type Handle struct {
	cfg Config

	mu sync.RWMutex
	db *gorm.DB
}

func NewHandle(cfg Config) *Handle {
	return &Handle{cfg: cfg}
}

// NewHandleWithDB wraps an already-open connection. Used by tests and by
// callers that manage the connection themselves; Reacquire is not
// meaningful on such a handle.
func NewHandleWithDB(db *gorm.DB) *Handle {
	return &Handle{db: db}
}

// DB returns the cached connection scoped to ctx, opening it on first use.
func (h *Handle) DB(ctx context.Context) (*gorm.DB, error) {
	h.mu.RLock()
	db := h.db
	h.mu.RUnlock()

	if db != nil {
		return db.WithContext(ctx), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		opened, err := openGorm(ctx, h.cfg)
		if err != nil {
			return nil, err
		}
		h.db = opened
	}

	return h.db.WithContext(ctx), nil
}

// Ping verifies the cached connection, opening it if none exists yet.
func (h *Handle) Ping(ctx context.Context) error {
	db, err := h.DB(ctx)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Reacquire closes the cached connection and dials a fresh one. In-flight
// queries on the old pool finish or fail on their own.
func (h *Handle) Reacquire(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		h.db = nil
	}

	opened, err := openGorm(ctx, h.cfg)
	if err != nil {
		return err
	}
	h.db = opened

	return nil
}

// AutoMigrate applies the schema for the given models.
func (h *Handle) AutoMigrate(ctx context.Context, models ...any) error {
	db, err := h.DB(ctx)
	if err != nil {
		return err
	}
	return db.AutoMigrate(models...)
}

// Close releases the cached connection if one was opened.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}

	sqlDB, err := h.db.DB()
	h.db = nil
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
