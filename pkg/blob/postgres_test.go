package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/omidvesal/intake_backend/pkg/database"
)

// openTestHandle connects to the database named by TEST_POSTGRES_DSN and
// skips the test when it is not set.
func openTestHandle(tb testing.TB) *database.Handle {
	tb.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set; skipping postgres-backed test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		tb.Fatalf("migrate blob tables: %v", err)
	}

	return database.NewHandleWithDB(db)
}

func cleanupBlob(tb testing.TB, h *database.Handle, id uuid.UUID) {
	tb.Cleanup(func() {
		db, err := h.DB(context.Background())
		if err != nil {
			return
		}
		db.Where("blob_id = ?", id).Delete(&BlobChunk{})
		db.Where("id = ?", id).Delete(&Blob{})
	})
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	h := openTestHandle(t)
	store := NewPostgresStore(h, Config{ChunkSize: 1024})
	ctx := context.Background()

	// Three chunks: two full, one partial.
	payload := bytes.Repeat([]byte("postgres blob store round trip "), 84)

	id, err := store.Put(ctx, "resume_1700000000000_cv.pdf", "application/pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	cleanupBlob(t, h, id)

	info, rc, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()

	if info.Name != "resume_1700000000000_cv.pdf" {
		t.Errorf("name = %q", info.Name)
	}
	if info.ContentType != "application/pdf" {
		t.Errorf("content type = %q", info.ContentType)
	}
	if info.Size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", info.Size, len(payload))
	}

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read content: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("content mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}

func TestPostgresStoreRepeatedGets(t *testing.T) {
	h := openTestHandle(t)
	store := NewPostgresStore(h, Config{ChunkSize: 512})
	ctx := context.Background()

	payload := []byte(strings.Repeat("stable bytes ", 100))

	id, err := store.Put(ctx, "resume_1700000000001_cv.pdf", "application/pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	cleanupBlob(t, h, id)

	for i := 0; i < 3; i++ {
		info, rc, err := store.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read #%d: %v", i, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("read #%d returned different bytes", i)
		}
		if info.Size != int64(len(payload)) {
			t.Fatalf("read #%d size = %d", i, info.Size)
		}
	}
}

func TestPostgresStoreGetMissing(t *testing.T) {
	h := openTestHandle(t)
	store := NewPostgresStore(h, DefaultConfig())

	absent, err := uuid.NewV7()
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = store.Get(context.Background(), absent)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
