package handlers

import (
	"fmt"
	"sort"
	"strings"

	"vitrine/internal/models"

	"github.com/gofiber/fiber/v2"
)

const featuredCount = 4

// SnapshotReader exposes the current storefront snapshot.
type SnapshotReader interface {
	Snapshot() models.Snapshot
	Loaded() bool
}

// StorefrontHandler serves the public, read-only storefront endpoints.
type StorefrontHandler struct {
	snapshots SnapshotReader
}

// NewStorefrontHandler creates a new StorefrontHandler.
func NewStorefrontHandler(snapshots SnapshotReader) *StorefrontHandler {
	return &StorefrontHandler{snapshots: snapshots}
}

// RegisterRoutes registers the storefront routes with the Fiber app.
func (h *StorefrontHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/storefront", h.HandleGetStorefront)
	router.Get("/storefront/tabs/:id", h.HandleGetTab)
	router.Get("/theme.css", h.HandleThemeCSS)
	router.Get("/palettes", h.HandleGetPalettes)
}

func notLoaded(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"message": "Storefront data is still loading",
	})
}

// HandleGetStorefront returns the whole snapshot.
func (h *StorefrontHandler) HandleGetStorefront(c *fiber.Ctx) error {
	if !h.snapshots.Loaded() {
		return notLoaded(c)
	}
	return c.JSON(h.snapshots.Snapshot())
}

// HandleGetTab returns one tab with its content. The home tab carries the
// promotion, the featured products and the testimonials; any other tab
// carries the products assigned to it.
func (h *StorefrontHandler) HandleGetTab(c *fiber.Ctx) error {
	if !h.snapshots.Loaded() {
		return notLoaded(c)
	}
	snap := h.snapshots.Snapshot()
	tabID := c.Params("id")
	tab, ok := snap.TabByID(tabID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Tab with ID %s not found", tabID),
		})
	}

	if tab.IsHome() {
		featured := snap.Products
		if len(featured) > featuredCount {
			featured = featured[:featuredCount]
		}
		resp := fiber.Map{
			"tab":          tab,
			"siteContent":  snap.SiteContent,
			"featured":     featured,
			"testimonials": snap.Testimonials,
		}
		if snap.Promotion.Active {
			resp["promotion"] = snap.Promotion
		}
		return c.JSON(resp)
	}

	products := snap.ProductsInTab(tab.ID)
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(fiber.Map{
		"tab":      tab,
		"products": products,
	})
}

// HandleThemeCSS renders the current palette as CSS custom properties.
func (h *StorefrontHandler) HandleThemeCSS(c *fiber.Ctx) error {
	palette := models.DefaultPalette
	if h.snapshots.Loaded() {
		palette = h.snapshots.Snapshot().CurrentPalette
	}
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	return c.SendString(PaletteCSS(palette))
}

// HandleGetPalettes lists the preset palettes.
func (h *StorefrontHandler) HandleGetPalettes(c *fiber.Ctx) error {
	return c.JSON(models.PresetPalettes)
}

// PaletteCSS renders palette as a :root rule.
func PaletteCSS(palette models.ColorPalette) string {
	vars := palette.CSSVariables()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(":root {\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s: %s;\n", name, vars[name])
	}
	sb.WriteString("}\n")
	return sb.String()
}
