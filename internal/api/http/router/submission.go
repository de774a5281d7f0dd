package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/omidvesal/intake_backend/internal/api/http/handler"
	"github.com/omidvesal/intake_backend/internal/model"
	"github.com/omidvesal/intake_backend/internal/service/submission"
)

// registerSubmissionRoutes wires the form endpoints for the configured
// variant: one combined contact form, or separate general and internship
// forms.
func (r *Router) registerSubmissionRoutes(api fiber.Router, h *handler.SubmissionHandler) {
	switch r.p.Cfg.Submissions.Variant {
	case submission.VariantSplit:
		api.Post("/contact/general", h.Submit(model.KindGeneral))
		api.Post("/contact/internship", h.Submit(model.KindInternship))
		api.Get("/contacts/general", h.List(model.KindGeneral))
		api.Get("/contacts/internship", h.List(model.KindInternship))
	default:
		api.Post("/contact", h.Submit(model.KindContact))
		api.Get("/contacts", h.List(model.KindContact))
	}
}
