package services_test

import (
	"context"
	"testing"

	"vitrine/internal/models"
	"vitrine/internal/services"
	"vitrine/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func countHome(tabs []models.ThemeTab) int {
	n := 0
	for _, t := range tabs {
		if t.IsHome() {
			n++
		}
	}
	return n
}

func TestNormalizeTabs_HomeExactlyOnce(t *testing.T) {
	corp := models.ThemeTab{ID: "corporativo", Title: "Brindes Corporativos"}
	storedHome := models.ThemeTab{ID: "home", Title: "Página Inicial"}

	tests := []struct {
		name     string
		in       []models.ThemeTab
		wantHome models.ThemeTab
		wantLen  int
	}{
		{"omitted", []models.ThemeTab{corp}, models.DefaultHomeTab, 2},
		{"empty", nil, models.DefaultHomeTab, 1},
		{"once, not first", []models.ThemeTab{corp, storedHome}, storedHome, 2},
		{"duplicated", []models.ThemeTab{storedHome, corp, {ID: "home", Title: "Outra"}}, storedHome, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := services.NormalizeTabs(tt.in)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, 1, countHome(got))
			assert.Equal(t, tt.wantHome, got[0])
		})
	}
}

func TestNormalizeTabs_RejectsBlankAndRepeatedIDs(t *testing.T) {
	got, rejected := services.NormalizeTabs([]models.ThemeTab{
		{ID: "", Title: "Sem id"},
		{ID: "a", Title: "A"},
		{ID: "a", Title: "A again"},
		{ID: "home", Title: "Início"},
		{ID: "home", Title: "Outra"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "home", got[0].ID)
	assert.Equal(t, "Início", got[0].Title)
	assert.Equal(t, "A", got[1].Title)

	require.Len(t, rejected, 3)
	assert.Equal(t, "missing id", rejected[0].Reason)
	assert.Equal(t, "Sem id", rejected[0].Record["title"])
	assert.Equal(t, "duplicate id a", rejected[1].Reason)
	assert.Equal(t, "A again", rejected[1].Record["title"])
	assert.Equal(t, "duplicate id home", rejected[2].Reason)
}

func TestFilterTestimonials(t *testing.T) {
	raw := []store.Record{
		{"id": "t-1", "author": "Ana", "text": "Ótimo"},
		{"author": "Sem id", "text": "?"},
		{"id": nil, "author": "Id nulo", "text": "?"},
		nil,
		{"id": "t-1", "author": "Repetido", "text": "?"},
		{"id": 7, "author": "Numérico", "text": "ok"},
	}

	valid, rejected := services.FilterTestimonials(raw)
	require.Len(t, valid, 2)
	assert.Equal(t, "t-1", valid[0].ID)
	assert.Equal(t, "Ana", valid[0].Author)
	assert.Equal(t, "7", valid[1].ID)
	assert.Len(t, rejected, 4)
	for _, tm := range valid {
		assert.NotEmpty(t, tm.ID)
	}
}

func TestFilterTestimonials_AllValid(t *testing.T) {
	raw := []store.Record{{"id": "a", "author": "A", "text": "x"}, {"id": "b", "author": "B", "text": "y"}}
	valid, rejected := services.FilterTestimonials(raw)
	assert.Len(t, valid, len(raw))
	assert.Empty(t, rejected)
}

func TestLoader_LoadAll(t *testing.T) {
	client := newSpyClient()
	seedCatalog(t, client)
	client.rows[store.Testimonials] = []store.Record{
		{"id": "t-1", "author": "Ana", "text": "Ótimo"},
		{"author": "Anônimo", "text": "sem id"},
	}
	loader := services.NewLoader(newRepos(t, client), zap.NewNop())

	result, err := loader.LoadAll(context.Background())
	require.NoError(t, err)

	snap := result.Snapshot
	assert.Len(t, snap.Products, 2)
	assert.Equal(t, "Copo Térmico", snap.Products[0].Name)
	assert.Len(t, snap.Tabs, 3, "tabs are returned as stored")
	assert.Equal(t, models.DefaultPromotion, snap.Promotion)
	assert.Equal(t, models.DefaultSiteContent, snap.SiteContent)
	assert.Equal(t, models.DefaultPalette, snap.CurrentPalette)

	require.Len(t, snap.Testimonials, 1)
	assert.Equal(t, "t-1", snap.Testimonials[0].ID)
	assert.Len(t, result.Diagnostics.RawTestimonials, 2)
	require.Len(t, result.Diagnostics.RejectedTestimonials, 1)
	assert.Equal(t, "Anônimo", result.Diagnostics.RejectedTestimonials[0].Record["author"])
	assert.Equal(t, len(result.Diagnostics.RawTestimonials) > len(snap.Testimonials),
		len(result.Diagnostics.RejectedTestimonials) > 0)
}

func TestLoader_LoadAll_MalformedRowsAreDiagnostics(t *testing.T) {
	client := newSpyClient()
	seedCatalog(t, client)
	seed(t, client, store.Products, store.Record{"id": "p-bad", "name": "bad", "price": "abc"})
	client.rows[store.Tabs] = []store.Record{
		{"id": "corporativo", "title": "Brindes Corporativos"},
		{"title": "Sem id"},
		{"id": "corporativo", "title": "Repetida"},
	}

	result, err := services.NewLoader(newRepos(t, client), zap.NewNop()).LoadAll(context.Background())
	require.NoError(t, err, "malformed rows never fail the load")

	ids := map[string]bool{}
	for _, p := range result.Snapshot.Products {
		assert.NotEmpty(t, p.ID)
		assert.False(t, ids[p.ID])
		ids[p.ID] = true
	}
	assert.Len(t, result.Snapshot.Products, 2)
	require.Len(t, result.Diagnostics.RejectedProducts, 1)
	assert.Equal(t, "p-bad", result.Diagnostics.RejectedProducts[0].Record["id"])
	assert.Contains(t, result.Diagnostics.RejectedProducts[0].Reason, "price")

	require.Len(t, result.Snapshot.Tabs, 1)
	assert.Len(t, result.Diagnostics.RejectedTabs, 2)
	assert.Equal(t, 3, result.Diagnostics.Rejected())
}

func TestLoader_LoadAll_StoredSingletons(t *testing.T) {
	client := newSpyClient()
	seed(t, client, store.Promotion, store.Record{"id": "promo1", "title": "Natal", "active": false})
	seed(t, client, store.Theme, store.Record{"id": "current_theme", "name": "Clássico", "colors": map[string]interface{}{
		"primary": "#2F4F4F", "secondary": "#DCDCDC", "accent": "#BDB76B", "base-100": "#F5F5F5", "base-content": "#000000",
	}})

	result, err := services.NewLoader(newRepos(t, client), zap.NewNop()).LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Natal", result.Snapshot.Promotion.Title)
	assert.False(t, result.Snapshot.Promotion.Active)
	assert.Equal(t, models.PresetPalettes[3], result.Snapshot.CurrentPalette)
	assert.Empty(t, result.Snapshot.Products)
	assert.NotNil(t, result.Snapshot.Products)
}

func TestLoader_LoadAll_FailsWhenPromotionFails(t *testing.T) {
	client := newSpyClient()
	seedCatalog(t, client)
	client.FailOn(store.Promotion, errBackend)

	result, err := services.NewLoader(newRepos(t, client), zap.NewNop()).LoadAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "load promotion")
	assert.ErrorIs(t, err, errBackend)
}
