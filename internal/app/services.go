package app

import (
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/omidvesal/intake_backend/config"
	"github.com/omidvesal/intake_backend/internal/notify"
	"github.com/omidvesal/intake_backend/internal/repo"
	"github.com/omidvesal/intake_backend/internal/service/submission"
	"github.com/omidvesal/intake_backend/pkg/blob"
	"github.com/omidvesal/intake_backend/pkg/database"
	"github.com/omidvesal/intake_backend/pkg/email"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideSubmissionRepo,
		ProvideNotifier,
		ProvideSubmissionService,
	),
)

func ProvideSubmissionRepo(handle *database.Handle) repo.Submissions {
	return repo.NewSubmissions(handle)
}

func ProvideNotifier(cfg *config.Config, mailer *email.Client, nc *nats.Conn) *notify.Notifier {
	return notify.New(cfg, mailer, nc)
}

func ProvideSubmissionService(
	cfg *config.Config,
	store blob.Store,
	subs repo.Submissions,
	notifier *notify.Notifier,
) submission.Service {
	return submission.New(submission.FromCentralConfig(cfg), store, subs, notifier)
}
