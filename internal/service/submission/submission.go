package submission

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"time"

	"github.com/google/uuid"

	"github.com/omidvesal/intake_backend/internal/model"
	"github.com/omidvesal/intake_backend/internal/repo"
	"github.com/omidvesal/intake_backend/pkg/blob"
	"github.com/omidvesal/intake_backend/pkg/util/phone"
)

const resumeContentType = "application/pdf"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Fields carries the text fields of a form submission as given.
type Fields struct {
	Name     string
	LastName string
	Mobile   string
	Email    string
	Subject  string
	Message  string
}

// Upload is a resume attachment. The body is consumed at most once.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Record is a stored submission decorated with its resume download URL.
// The URL is derived from the record, never stored.
type Record struct {
	model.Submission
	ResumeDownloadURL *string `json:"resumeDownloadUrl"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

// Notifier is told about accepted submissions. Implementations swallow
// their own failures; notification never fails a request.
type Notifier interface {
	SubmissionAccepted(ctx context.Context, sub *model.Submission)
}

type Service interface {
	// Submit validates the fields required for kind and persists the
	// record. A non-nil upload is checked (PDF, size ceiling) and stored
	// first; the record links the returned blob id. Nothing is written
	// when validation fails.
	Submit(ctx context.Context, kind model.Kind, fields Fields, upload *Upload) (*Record, error)

	// FetchResume resolves rawID and opens the stored resume for
	// streaming. The caller owns the returned reader.
	FetchResume(ctx context.Context, rawID string) (*blob.Info, io.ReadCloser, error)

	// List returns records of one kind, newest first.
	List(ctx context.Context, kind model.Kind) ([]Record, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type submissionService struct {
	cfg      Config
	store    blob.Store
	subs     repo.Submissions
	notifier Notifier
}

// New wires the service; notifier may be nil.
func New(cfg Config, store blob.Store, subs repo.Submissions, notifier Notifier) Service {
	if cfg.MaxResumeSize <= 0 {
		cfg.MaxResumeSize = DefaultConfig().MaxResumeSize
	}
	return &submissionService{cfg: cfg, store: store, subs: subs, notifier: notifier}
}

func (s *submissionService) Submit(ctx context.Context, kind model.Kind, fields Fields, upload *Upload) (*Record, error) {
	if missing := missingFields(kind, fields, upload != nil); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	// The general form has no resume; a stray file part is ignored and the
	// blob store is never touched.
	if kind == model.KindGeneral {
		upload = nil
	}

	sub := &model.Submission{
		Kind:     kind,
		Name:     fields.Name,
		LastName: fields.LastName,
		Mobile:   phone.Normalize(fields.Mobile, s.cfg.PhoneRegion),
		Email:    fields.Email,
		Subject:  fields.Subject,
		Message:  fields.Message,
	}

	if upload != nil {
		id, storedName, err := s.storeResume(ctx, upload)
		if err != nil {
			return nil, err
		}
		sub.ResumeFileID = &id
		sub.ResumeFileName = &storedName
	}

	stored, err := s.subs.Insert(ctx, sub)
	if err != nil {
		if sub.ResumeFileID != nil {
			// No compensating delete; the orphaned blob is logged and left
			// in place.
			slog.Warn("record insert failed after resume write; blob orphaned",
				"blob_id", sub.ResumeFileID.String(),
				"error", err,
			)
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SubmissionAccepted(ctx, stored)
	}

	rec := s.record(*stored)
	return &rec, nil
}

// storeResume enforces the ingestion boundary (media type, size ceiling)
// and writes the buffered upload under a generated stored name.
func (s *submissionService) storeResume(ctx context.Context, up *Upload) (uuid.UUID, string, error) {
	mediaType := up.ContentType
	if mt, _, err := mime.ParseMediaType(up.ContentType); err == nil {
		mediaType = mt
	}
	if mediaType != resumeContentType {
		return uuid.Nil, "", fmt.Errorf("%w, got %q", ErrUnsupportedMedia, mediaType)
	}

	if up.Size > s.cfg.MaxResumeSize {
		return uuid.Nil, "", fmt.Errorf("%w, limit is %d MiB", ErrTooLarge, s.cfg.MaxResumeSize>>20)
	}

	// The declared size is client-controlled; cap the actual read too.
	data, err := io.ReadAll(io.LimitReader(up.Body, s.cfg.MaxResumeSize+1))
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %v", blob.ErrWrite, err)
	}
	if int64(len(data)) > s.cfg.MaxResumeSize {
		return uuid.Nil, "", fmt.Errorf("%w, limit is %d MiB", ErrTooLarge, s.cfg.MaxResumeSize>>20)
	}

	storedName := fmt.Sprintf("resume_%d_%s", time.Now().UnixMilli(), up.Filename)

	id, err := s.store.Put(ctx, storedName, resumeContentType, bytes.NewReader(data))
	if err != nil {
		return uuid.Nil, "", err
	}

	return id, storedName, nil
}

func (s *submissionService) FetchResume(ctx context.Context, rawID string) (*blob.Info, io.ReadCloser, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, nil, ErrInvalidID
	}

	info, rc, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	return info, rc, nil
}

func (s *submissionService) List(ctx context.Context, kind model.Kind) ([]Record, error) {
	subs, err := s.subs.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(subs))
	for _, sub := range subs {
		records = append(records, s.record(sub))
	}
	return records, nil
}

func (s *submissionService) record(sub model.Submission) Record {
	rec := Record{Submission: sub}
	if sub.ResumeFileID != nil {
		url := s.cfg.DownloadBaseURL + "/api/resume/" + sub.ResumeFileID.String()
		rec.ResumeDownloadURL = &url
	}
	return rec
}

// missingFields returns the required fields absent for kind. The
// internship form additionally requires the resume itself.
func missingFields(kind model.Kind, f Fields, hasUpload bool) []string {
	var missing []string

	if f.Name == "" {
		missing = append(missing, "name")
	}
	if kind == model.KindInternship {
		if f.LastName == "" {
			missing = append(missing, "lastName")
		}
		if f.Mobile == "" {
			missing = append(missing, "mobile")
		}
	}
	if f.Email == "" {
		missing = append(missing, "email")
	}
	if kind == model.KindInternship && !hasUpload {
		missing = append(missing, "resume")
	}

	return missing
}
