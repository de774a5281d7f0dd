package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/omidvesal/intake_backend/internal/api/http/handler"
)

func (r *Router) registerResumeRoutes(api fiber.Router, h *handler.ResumeHandler) {
	api.Get("/resume/:id", h.Download)
}
