package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/omidvesal/intake_backend/config"
	"github.com/omidvesal/intake_backend/internal/model"
	"github.com/omidvesal/intake_backend/internal/service/submission"
	"github.com/omidvesal/intake_backend/pkg/blob"
	"github.com/omidvesal/intake_backend/pkg/database"
)

var pdfSample = []byte("%PDF-1.4\n%sample resume body")

// ---------------------------------------------------------------------------
// In-memory fakes
// ---------------------------------------------------------------------------

type memBlob struct {
	info blob.Info
	data []byte
}

type memStore struct {
	mu    sync.Mutex
	blobs map[uuid.UUID]*memBlob
	puts  int
}

func newMemStore() *memStore {
	return &memStore{blobs: map[uuid.UUID]*memBlob{}}
}

func (m *memStore) Put(_ context.Context, name, contentType string, r io.Reader) (uuid.UUID, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.blobs[id] = &memBlob{
		info: blob.Info{
			ID:          id,
			Name:        name,
			ContentType: contentType,
			Size:        int64(len(data)),
			CreatedAt:   time.Now().UTC(),
		},
		data: data,
	}
	return id, nil
}

func (m *memStore) Get(_ context.Context, id uuid.UUID) (*blob.Info, io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.blobs[id]
	if !ok {
		return nil, nil, blob.ErrNotFound
	}
	info := b.info
	return &info, io.NopCloser(bytes.NewReader(b.data)), nil
}

type memRepo struct {
	mu      sync.Mutex
	subs    []model.Submission
	listErr error
}

func (m *memRepo) Insert(_ context.Context, sub *model.Submission) (*model.Submission, error) {
	if err := sub.BeforeCreate(nil); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, *sub)
	return sub, nil
}

func (m *memRepo) ListByKind(_ context.Context, kind model.Kind) ([]model.Submission, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.Submission{}
	for _, s := range m.subs {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

// ---------------------------------------------------------------------------
// Test scaffolding
// ---------------------------------------------------------------------------

func testConfig(variant string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Submissions.Variant = variant
	return cfg
}

// newTestApp wires the real service over in-memory fakes and registers every
// route the way the server does.
func newTestApp(t *testing.T, cfg *config.Config) (*fiber.App, *memStore, *memRepo) {
	t.Helper()

	store := newMemStore()
	subs := &memRepo{}
	svc := submission.New(submission.FromCentralConfig(cfg), store, subs, nil)

	app := fiber.New()
	NewRouter(Params{
		Cfg:           cfg,
		DB:            database.NewHandleWithDB(nil),
		SubmissionSvc: svc,
	}).Register(app)

	return app, store, subs
}

// multipartForm builds a form body with the given text fields and, when
// filename is non-empty, a "resume" file part declared as contentType.
func multipartForm(t *testing.T, fields map[string]string, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func postForm(t *testing.T, app *fiber.App, path string, fields map[string]string, filename, contentType string, content []byte) *http.Response {
	t.Helper()

	body, ct := multipartForm(t, fields, filename, contentType, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(fiber.HeaderContentType, ct)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Routing
// ---------------------------------------------------------------------------

func TestRootReportsStatus(t *testing.T) {
	app, _, _ := newTestApp(t, testConfig(""))

	resp := get(t, app, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var out struct {
		Status      string `json:"status"`
		Timestamp   string `json:"timestamp"`
		Environment string `json:"environment"`
	}
	decodeBody(t, resp, &out)

	if out.Status != "ok" {
		t.Fatalf("status=%q", out.Status)
	}
	if out.Environment != "test" {
		t.Fatalf("environment=%q", out.Environment)
	}
	if _, err := time.Parse(time.RFC3339, out.Timestamp); err != nil {
		t.Fatalf("timestamp %q: %v", out.Timestamp, err)
	}
}

func TestLivenessEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t, testConfig(""))

	if resp := get(t, app, "/livez"); resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestCombinedVariantRoutes(t *testing.T) {
	app, _, _ := newTestApp(t, testConfig(submission.VariantCombined))

	fields := map[string]string{"name": "Sara", "email": "sara@example.com"}
	if resp := postForm(t, app, "/api/contact", fields, "", "", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/contact status=%d", resp.StatusCode)
	}
	if resp := get(t, app, "/api/contacts"); resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/contacts status=%d", resp.StatusCode)
	}

	// The split-variant paths must not exist.
	if resp := postForm(t, app, "/api/contact/general", fields, "", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("POST /api/contact/general status=%d", resp.StatusCode)
	}
	if resp := get(t, app, "/api/contacts/internship"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET /api/contacts/internship status=%d", resp.StatusCode)
	}
}

func TestSplitVariantRoutes(t *testing.T) {
	app, _, _ := newTestApp(t, testConfig(submission.VariantSplit))

	fields := map[string]string{"name": "Sara", "email": "sara@example.com"}
	if resp := postForm(t, app, "/api/contact/general", fields, "", "", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/contact/general status=%d", resp.StatusCode)
	}
	if resp := get(t, app, "/api/contacts/general"); resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/contacts/general status=%d", resp.StatusCode)
	}
	if resp := get(t, app, "/api/contacts/internship"); resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/contacts/internship status=%d", resp.StatusCode)
	}

	// The combined-variant paths must not exist.
	if resp := postForm(t, app, "/api/contact", fields, "", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("POST /api/contact status=%d", resp.StatusCode)
	}
	if resp := get(t, app, "/api/contacts"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET /api/contacts status=%d", resp.StatusCode)
	}
}
