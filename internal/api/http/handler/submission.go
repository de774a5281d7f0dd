package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/omidvesal/intake_backend/internal/model"
	"github.com/omidvesal/intake_backend/internal/service/submission"
)

type SubmissionHandler struct {
	svc submission.Service
}

func NewSubmissionHandler(svc submission.Service) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// Submit returns the multipart form handler for the given kind. Text fields
// and the optional resume file are read from the form; everything else is the
// service's business.
func (h *SubmissionHandler) Submit(kind model.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		fields := submission.Fields{
			Name:     c.FormValue("name"),
			LastName: c.FormValue("lastName"),
			Mobile:   c.FormValue("mobile"),
			Email:    c.FormValue("email"),
			Subject:  c.FormValue("subject"),
			Message:  c.FormValue("message"),
		}

		var up *submission.Upload
		if fh, err := c.FormFile("resume"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return failed(c, failureMessage(kind), err)
			}
			defer f.Close()

			up = &submission.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Size:        fh.Size,
				Body:        f,
			}
		}

		rec, err := h.svc.Submit(c.Context(), kind, fields, up)
		if err != nil {
			return mapSubmitError(c, kind, err)
		}
		return submitted(c, successMessage(kind), rec)
	}
}

// List returns the handler serving all records of the given kind, newest
// first.
func (h *SubmissionHandler) List(kind model.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		records, err := h.svc.List(c.Context(), kind)
		if err != nil {
			slog.Error("list submissions failed", "kind", kind, "err", err)
			return failed(c, "Failed to fetch submissions", err)
		}
		return ok(c, records)
	}
}

func mapSubmitError(c fiber.Ctx, kind model.Kind, err error) error {
	var verr *submission.ValidationError
	switch {
	case errors.As(err, &verr):
		return rejected(c, verr.Error())
	case errors.Is(err, submission.ErrUnsupportedMedia), errors.Is(err, submission.ErrTooLarge):
		return rejected(c, err.Error())
	default:
		slog.Error("submission failed", "kind", kind, "err", err)
		return failed(c, failureMessage(kind), err)
	}
}

func successMessage(kind model.Kind) string {
	if kind == model.KindInternship {
		return "Application submitted successfully"
	}
	return "Message sent successfully"
}

func failureMessage(kind model.Kind) string {
	if kind == model.KindInternship {
		return "Failed to submit application"
	}
	return "Failed to send message"
}
