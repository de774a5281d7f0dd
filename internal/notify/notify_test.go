package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/omidvesal/intake_backend/config"
	"github.com/omidvesal/intake_backend/internal/model"
	"github.com/omidvesal/intake_backend/pkg/email"
)

func testSubmission(t *testing.T) *model.Submission {
	t.Helper()
	id, err := uuid.NewV7()
	if err != nil {
		t.Fatal(err)
	}
	return &model.Submission{
		ID:        id,
		Kind:      model.KindContact,
		Name:      "Sara",
		Email:     "sara@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

func TestSubmissionAccepted_AllChannelsDisabled(t *testing.T) {
	n := New(&config.Config{}, nil, nil)

	// Nothing is configured; the call must be a no-op.
	n.SubmissionAccepted(context.Background(), testSubmission(t))
}

func TestSubmissionAccepted_MailSkippedWithoutRecipient(t *testing.T) {
	cfg := &config.Config{}
	cfg.Notifications.Email.Enabled = true

	n := New(cfg, nil, nil)
	n.SubmissionAccepted(context.Background(), testSubmission(t))
}

func TestPublishEvent_SkippedWithoutConn(t *testing.T) {
	cfg := &config.Config{}
	cfg.Notifications.Events.Enabled = true

	n := New(cfg, nil, nil)
	n.SubmissionAccepted(context.Background(), testSubmission(t))
}

func TestSubmissionAccepted_MailDoesNotBlockCaller(t *testing.T) {
	cfg := &config.Config{}
	cfg.Notifications.Email.Enabled = true
	cfg.Notifications.Email.To = "owner@example.com"

	n := New(cfg, &email.Client{}, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	var gotCtx context.Context
	n.deliverMail = func(ctx context.Context, sub *model.Submission) {
		gotCtx = ctx
		close(started)
		<-release
	}

	sub := testSubmission(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.SubmissionAccepted(ctx, sub)
		close(done)
	}()

	// The caller returns while delivery is still in flight.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SubmissionAccepted blocked on mail delivery")
	}
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("mail delivery never started")
	}

	// Cancelling the request context must not cancel the send.
	cancel()
	if err := gotCtx.Err(); err != nil {
		t.Errorf("delivery context cancelled with the request: %v", err)
	}
	close(release)
}

func TestNew_TrimsDownloadBase(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Domain = "https://api.example.com/"

	n := New(cfg, nil, nil)
	if n.downloadBase != "https://api.example.com" {
		t.Errorf("downloadBase = %q", n.downloadBase)
	}
}
