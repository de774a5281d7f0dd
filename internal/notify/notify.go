// Package notify fans accepted submissions out to the site owner: an e-mail
// per submission and a NATS event for downstream consumers. Delivery is best
// effort; failures are logged and never surface to the submitting client.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/omidvesal/intake_backend/config"
	"github.com/omidvesal/intake_backend/internal/model"
	"github.com/omidvesal/intake_backend/pkg/constants"
	"github.com/omidvesal/intake_backend/pkg/email"
)

const defaultSubjectPrefix = "intake"

type Notifier struct {
	cfg          config.NotificationsConfig
	downloadBase string
	mailer       *email.Client
	nc           *nats.Conn

	// deliverMail is sendOwnerMail unless a test swaps it out.
	deliverMail func(ctx context.Context, sub *model.Submission)
}

// New wires the notifier. mailer and nc may be nil; the corresponding channel
// is then skipped regardless of configuration.
func New(cfg *config.Config, mailer *email.Client, nc *nats.Conn) *Notifier {
	n := &Notifier{
		cfg:          cfg.Notifications,
		downloadBase: strings.TrimRight(cfg.Server.Domain, "/"),
		mailer:       mailer,
		nc:           nc,
	}
	n.deliverMail = n.sendOwnerMail
	return n
}

func (n *Notifier) SubmissionAccepted(ctx context.Context, sub *model.Submission) {
	if n.mailEnabled() {
		// The SMTP dial can take seconds; the submitting client does not
		// wait on it. The request context is detached so the send outlives
		// the response.
		go n.deliverMail(context.WithoutCancel(ctx), sub)
	}
	n.publishEvent(sub)
}

func (n *Notifier) mailEnabled() bool {
	return n.cfg.Email.Enabled && n.cfg.Email.To != "" && n.mailer != nil
}

func (n *Notifier) sendOwnerMail(ctx context.Context, sub *model.Submission) {
	data := email.SubmissionEmailData{
		To:          n.cfg.Email.To,
		Kind:        sub.Kind.String(),
		Name:        sub.Name,
		LastName:    sub.LastName,
		Mobile:      sub.Mobile,
		Email:       sub.Email,
		Subject:     sub.Subject,
		Message:     sub.Message,
		SubmittedAt: sub.CreatedAt,
		AppName:     constants.AppName,
	}
	if sub.ResumeFileID != nil {
		data.ResumeURL = n.downloadBase + "/api/resume/" + sub.ResumeFileID.String()
	}

	if err := n.mailer.Send(ctx, email.BuildSubmissionEmail(data)); err != nil {
		slog.Warn("notify: owner mail failed", "submission_id", sub.ID, "err", err)
	}
}

func (n *Notifier) publishEvent(sub *model.Submission) {
	if !n.cfg.Events.Enabled || n.nc == nil {
		return
	}

	prefix := n.cfg.Events.SubjectPrefix
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}

	// Subscribers get the record id and look the rest up themselves.
	subject := fmt.Sprintf("%s.submissions.%s", prefix, sub.Kind)
	if err := n.nc.Publish(subject, []byte(sub.ID.String())); err != nil {
		slog.Warn("notify: event publish failed", "subject", subject, "err", err)
	}
}
