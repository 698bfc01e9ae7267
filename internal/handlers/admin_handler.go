package handlers

import (
	"context"
	"io"

	"vitrine/internal/models"
	"vitrine/internal/services"
	"vitrine/internal/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SnapshotManager is the read and reload surface of the Synchronizer.
type SnapshotManager interface {
	SnapshotReader
	Diagnostics() services.Diagnostics
	Reload(ctx context.Context) error
}

// AdminHandler handles HTTP requests of the admin panel.
type AdminHandler struct {
	admin     *services.AdminService
	snapshots SnapshotManager
	describer *services.Describer
	uploader  storage.Uploader
	logger    *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *services.AdminService, snapshots SnapshotManager, describer *services.Describer, uploader storage.Uploader, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:     admin,
		snapshots: snapshots,
		describer: describer,
		uploader:  uploader,
		logger:    logger,
	}
}

// RegisterRoutes registers the admin routes. router is expected to be
// protected by middleware.AuthRequired.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/admin")
	r.Get("/snapshot", h.HandleGetSnapshot)
	r.Get("/diagnostics", h.HandleGetDiagnostics)
	r.Post("/reload", h.HandleReload)

	r.Post("/products", h.HandleCreateProduct)
	r.Put("/products/:id", h.HandleUpdateProduct)
	r.Delete("/products/:id", h.HandleDeleteProduct)

	r.Post("/tabs", h.HandleCreateTab)
	r.Put("/tabs/:id", h.HandleUpdateTab)
	r.Delete("/tabs/:id", h.HandleDeleteTab)

	r.Post("/testimonials", h.HandleCreateTestimonial)
	r.Put("/testimonials/:id", h.HandleUpdateTestimonial)
	r.Delete("/testimonials/:id", h.HandleDeleteTestimonial)

	r.Put("/promotion", h.HandleSavePromotion)
	r.Put("/site-content", h.HandleSaveSiteContent)
	r.Put("/theme", h.HandleSavePalette)
	r.Post("/theme/preset", h.HandleSelectPreset)

	r.Post("/describe", h.HandleDescribe)
	r.Post("/autofill", h.HandleAutoFill)
	r.Post("/uploads", h.HandleUpload)
}

// HandleGetSnapshot returns the snapshot as the admin panel edits it: all
// tabs except home.
func (h *AdminHandler) HandleGetSnapshot(c *fiber.Ctx) error {
	if !h.snapshots.Loaded() {
		return notLoaded(c)
	}
	snap := h.snapshots.Snapshot()
	snap.Tabs = snap.AdminTabs()
	return c.JSON(snap)
}

// HandleGetDiagnostics returns the raw and rejected rows of the last load.
func (h *AdminHandler) HandleGetDiagnostics(c *fiber.Ctx) error {
	return c.JSON(h.snapshots.Diagnostics())
}

// HandleReload reloads the snapshot from the store.
func (h *AdminHandler) HandleReload(c *fiber.Ctx) error {
	if err := h.snapshots.Reload(c.UserContext()); err != nil {
		return respondError(c, h.logger, "Could not load storefront data", err)
	}
	return c.JSON(h.snapshots.Snapshot())
}

// --- Products ---

// HandleCreateProduct creates a new product.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badBody(c, err)
	}
	created, err := h.admin.AddProduct(c.UserContext(), product)
	if err != nil {
		return respondError(c, h.logger, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct updates an existing product.
func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badBody(c, err)
	}
	updated, err := h.admin.UpdateProduct(c.UserContext(), c.Params("id"), product)
	if err != nil {
		return respondError(c, h.logger, "Could not update product", err)
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a product.
func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.admin.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{"message": "Product " + id + " deleted successfully"})
}

// --- Tabs ---

// HandleCreateTab creates a new tab.
func (h *AdminHandler) HandleCreateTab(c *fiber.Ctx) error {
	var tab models.ThemeTab
	if err := c.BodyParser(&tab); err != nil {
		return badBody(c, err)
	}
	created, err := h.admin.AddTab(c.UserContext(), tab)
	if err != nil {
		return respondError(c, h.logger, "Could not create tab", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateTab updates an existing tab.
func (h *AdminHandler) HandleUpdateTab(c *fiber.Ctx) error {
	var tab models.ThemeTab
	if err := c.BodyParser(&tab); err != nil {
		return badBody(c, err)
	}
	updated, err := h.admin.UpdateTab(c.UserContext(), c.Params("id"), tab)
	if err != nil {
		return respondError(c, h.logger, "Could not update tab", err)
	}
	return c.JSON(updated)
}

// HandleDeleteTab deletes a tab without products.
func (h *AdminHandler) HandleDeleteTab(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.admin.DeleteTab(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, "Could not delete tab", err)
	}
	return c.JSON(fiber.Map{"message": "Tab " + id + " deleted successfully"})
}

// --- Testimonials ---

// HandleCreateTestimonial creates a new testimonial.
func (h *AdminHandler) HandleCreateTestimonial(c *fiber.Ctx) error {
	var testimonial models.Testimonial
	if err := c.BodyParser(&testimonial); err != nil {
		return badBody(c, err)
	}
	created, err := h.admin.AddTestimonial(c.UserContext(), testimonial)
	if err != nil {
		return respondError(c, h.logger, "Could not create testimonial", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateTestimonial updates an existing testimonial.
func (h *AdminHandler) HandleUpdateTestimonial(c *fiber.Ctx) error {
	var testimonial models.Testimonial
	if err := c.BodyParser(&testimonial); err != nil {
		return badBody(c, err)
	}
	updated, err := h.admin.UpdateTestimonial(c.UserContext(), c.Params("id"), testimonial)
	if err != nil {
		return respondError(c, h.logger, "Could not update testimonial", err)
	}
	return c.JSON(updated)
}

// HandleDeleteTestimonial deletes a testimonial.
func (h *AdminHandler) HandleDeleteTestimonial(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.admin.DeleteTestimonial(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, "Could not delete testimonial", err)
	}
	return c.JSON(fiber.Map{"message": "Testimonial " + id + " deleted successfully"})
}

// --- Singletons ---

// HandleSavePromotion stores the promotion banner.
func (h *AdminHandler) HandleSavePromotion(c *fiber.Ctx) error {
	var promotion models.Promotion
	if err := c.BodyParser(&promotion); err != nil {
		return badBody(c, err)
	}
	saved, err := h.admin.SavePromotion(c.UserContext(), promotion)
	if err != nil {
		return respondError(c, h.logger, "Could not save promotion", err)
	}
	return c.JSON(saved)
}

// HandleSaveSiteContent stores the site content.
func (h *AdminHandler) HandleSaveSiteContent(c *fiber.Ctx) error {
	var content models.SiteContent
	if err := c.BodyParser(&content); err != nil {
		return badBody(c, err)
	}
	saved, err := h.admin.SaveSiteContent(c.UserContext(), content)
	if err != nil {
		return respondError(c, h.logger, "Could not save site content", err)
	}
	return c.JSON(saved)
}

// HandleSavePalette stores a custom palette as the current theme.
func (h *AdminHandler) HandleSavePalette(c *fiber.Ctx) error {
	var palette models.ColorPalette
	if err := c.BodyParser(&palette); err != nil {
		return badBody(c, err)
	}
	saved, err := h.admin.SavePalette(c.UserContext(), palette)
	if err != nil {
		return respondError(c, h.logger, "Could not save theme", err)
	}
	return c.JSON(saved)
}

// PresetRequest selects a preset palette by name.
type PresetRequest struct {
	Name string `json:"name"`
}

// HandleSelectPreset stores a preset palette as the current theme.
func (h *AdminHandler) HandleSelectPreset(c *fiber.Ctx) error {
	var req PresetRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	saved, err := h.admin.SelectPreset(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, h.logger, "Could not save theme", err)
	}
	return c.JSON(saved)
}

// --- Assistants ---

// DescribeRequest asks for a description of a product name.
type DescribeRequest struct {
	Name string `json:"name"`
}

// HandleDescribe generates a product description. It always answers 200;
// the description holds a fallback message when generation is unavailable.
func (h *AdminHandler) HandleDescribe(c *fiber.Ctx) error {
	var req DescribeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if req.Name == "" {
		return respondError(c, h.logger, "Could not describe product", &services.ValidationError{
			Fields: map[string]string{"name": "Field 'name' is required"},
		})
	}
	return c.JSON(fiber.Map{"description": h.describer.Describe(c.UserContext(), req.Name)})
}

// AutoFillRequest names the product page to extract a draft from.
type AutoFillRequest struct {
	URL string `json:"url"`
}

// HandleAutoFill extracts a product draft from a product page.
func (h *AdminHandler) HandleAutoFill(c *fiber.Ctx) error {
	var req AutoFillRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	draft, err := h.describer.AutoFill(c.UserContext(), req.URL)
	if err != nil {
		return respondError(c, h.logger, "Could not autofill product", err)
	}
	return c.JSON(draft)
}

// HandleUpload stores the multipart "file" field and returns its URL.
func (h *AdminHandler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badBody(c, err)
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return badBody(c, err)
	}

	url, err := h.uploader.Upload(c.UserContext(), fh.Filename, data)
	if err != nil {
		return respondError(c, h.logger, "Could not upload file", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
