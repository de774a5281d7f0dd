package handler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/omidvesal/intake_backend/internal/service/submission"
)

type ResumeHandler struct {
	svc submission.Service
}

func NewResumeHandler(svc submission.Service) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

// GET /api/resume/:id
// Streams the stored PDF inline under its stored name.
func (h *ResumeHandler) Download(c fiber.Ctx) error {
	info, rc, err := h.svc.FetchResume(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, submission.ErrInvalidID):
			return badRequest(c, "Invalid resume ID")
		case errors.Is(err, submission.ErrNotFound):
			return notFound(c, "Resume not found")
		default:
			slog.Error("resume fetch failed", "id", c.Params("id"), "err", err)
			return internalError(c, "Failed to fetch resume")
		}
	}

	c.Set(fiber.HeaderContentType, info.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", info.Name))

	// fasthttp closes the stream once the body has been written out.
	return c.SendStream(rc, int(info.Size))
}
