package handlers

import (
	"vitrine/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TenantHandler resolves white-label tenant branding.
type TenantHandler struct {
	tenants *services.TenantService
	logger  *zap.Logger
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenants *services.TenantService, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{tenants: tenants, logger: logger}
}

// RegisterRoutes registers the tenant routes with the Fiber app.
func (h *TenantHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/tenants/:slug?", h.HandleResolve)
}

// HandleResolve returns the branding of the tenant named by slug, or the
// master branding when no slug is given.
func (h *TenantHandler) HandleResolve(c *fiber.Ctx) error {
	cfg, err := h.tenants.Resolve(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.logger, "Could not resolve client", err)
	}
	return c.JSON(cfg)
}
