package services_test

import (
	"context"
	"errors"
	"testing"

	"vitrine/internal/models"
	"vitrine/internal/services"
	"vitrine/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdmin(t *testing.T) (*services.AdminService, *services.Synchronizer, *spyClient) {
	t.Helper()
	client := newSpyClient()
	seedCatalog(t, client)
	sync := newLoadedSynchronizer(t, client, nil)
	client.Reset()
	return services.NewAdminService(sync), sync, client
}

func TestAdminService_DeleteTabGuard(t *testing.T) {
	admin, sync, client := newAdmin(t)

	err := admin.DeleteTab(context.Background(), "corporativo")
	assert.ErrorIs(t, err, services.ErrDeletionConflict)
	assert.Empty(t, client.Calls(), "no remote call is issued")
	_, ok := sync.Snapshot().TabByID("corporativo")
	assert.True(t, ok)

	err = admin.DeleteTab(context.Background(), models.HomeTabID)
	assert.ErrorIs(t, err, services.ErrHomeTabProtected)
	assert.Empty(t, client.Calls())

	// A tab without products can go.
	require.NoError(t, admin.DeleteProduct(context.Background(), "p-1"))
	require.NoError(t, admin.DeleteTab(context.Background(), "corporativo"))
	assert.Equal(t, []string{"delete products", "delete tabs"}, client.Calls())
}

func TestAdminService_UpdateHomeTab(t *testing.T) {
	admin, _, client := newAdmin(t)
	_, err := admin.UpdateTab(context.Background(), models.HomeTabID, models.ThemeTab{Title: "Começo"})
	assert.ErrorIs(t, err, services.ErrHomeTabProtected)
	assert.Empty(t, client.Calls())
}

func TestAdminService_ProductValidation(t *testing.T) {
	admin, _, client := newAdmin(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		product models.Product
		field   string
	}{
		{"blank name", models.Product{Name: "  ", ImageURL: "u", TabID: "corporativo"}, "Name"},
		{"negative price", models.Product{Name: "Copo", Price: -1, ImageURL: "u", TabID: "corporativo"}, "Price"},
		{"no image", models.Product{Name: "Copo", TabID: "corporativo"}, "ImageURL"},
		{"unknown tab", models.Product{Name: "Copo", ImageURL: "u", TabID: "nope"}, "TabID"},
		{"home tab", models.Product{Name: "Copo", ImageURL: "u", TabID: models.HomeTabID}, "TabID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := admin.AddProduct(ctx, tt.product)
			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
	assert.Empty(t, client.Calls())

	created, err := admin.AddProduct(ctx, models.Product{ID: "client-chosen", Name: "Copo", Price: 10, ImageURL: "u", TabID: "corporativo"})
	require.NoError(t, err)
	assert.NotEqual(t, "client-chosen", created.ID)

	updated, err := admin.UpdateProduct(ctx, created.ID, models.Product{Name: "Copo 2", Price: 12, ImageURL: "u", TabID: "para-casa"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "para-casa", updated.TabID)
}

func TestAdminService_TabAndTestimonialValidation(t *testing.T) {
	admin, _, client := newAdmin(t)
	ctx := context.Background()

	_, err := admin.AddTab(ctx, models.ThemeTab{Title: "   "})
	var verr *services.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = admin.AddTestimonial(ctx, models.Testimonial{Author: "Ana"})
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "Text")
	assert.Empty(t, client.Calls())

	tab, err := admin.AddTab(ctx, models.ThemeTab{Title: "  Dia dos Pais "})
	require.NoError(t, err)
	assert.Equal(t, "Dia dos Pais", tab.Title)
	assert.Contains(t, tab.ID, "dia-dos-pais-")
}

func TestAdminService_Singletons(t *testing.T) {
	admin, sync, client := newAdmin(t)
	ctx := context.Background()

	_, err := admin.SavePromotion(ctx, models.Promotion{Title: ""})
	var verr *services.ValidationError
	assert.True(t, errors.As(err, &verr))

	content := models.DefaultSiteContent
	content.WhatsAppNumber = "abc"
	_, err = admin.SaveSiteContent(ctx, content)
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "WhatsAppNumber")

	bad := models.PresetPalettes[0]
	bad.Colors.Accent = "grey"
	_, err = admin.SavePalette(ctx, bad)
	assert.True(t, errors.As(err, &verr))

	_, err = admin.SelectPreset(ctx, "Neon")
	assert.True(t, errors.As(err, &verr))
	assert.Empty(t, client.Calls())

	palette, err := admin.SelectPreset(ctx, "Vibrante")
	require.NoError(t, err)
	assert.Equal(t, models.PresetPalettes[2], *palette)
	assert.Equal(t, "Vibrante", sync.Snapshot().CurrentPalette.Name)
	assert.Equal(t, []string{"upsert " + store.Theme}, client.Calls())
}
