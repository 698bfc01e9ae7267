package repositories

import (
	"context"
	"strings"

	"vitrine/internal/models"
	"vitrine/internal/store"

	"github.com/bwmarrin/snowflake"
)

// TabRepository defines the interface for tab data access.
type TabRepository interface {
	List(ctx context.Context) ([]models.ThemeTab, []RejectedRecord, error)
	Add(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error)
	Update(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error)
	Remove(ctx context.Context, id string) error
}

// StoreTabRepository is a TabRepository over a store.Client. Tab
// identifiers are derived here, never by the store.
type StoreTabRepository struct {
	client store.Client
	node   *snowflake.Node
}

// NewStoreTabRepository creates a new instance of StoreTabRepository. node
// supplies the uniqueness token appended to every new tab identifier.
func NewStoreTabRepository(client store.Client, node *snowflake.Node) *StoreTabRepository {
	return &StoreTabRepository{client: client, node: node}
}

// List returns every stored tab ordered by title.
func (r *StoreTabRepository) List(ctx context.Context) ([]models.ThemeTab, []RejectedRecord, error) {
	recs, err := r.client.List(ctx, store.Tabs, store.ListOptions{OrderBy: "title"})
	if err != nil {
		return nil, nil, translate("load tabs", err)
	}
	tabs, rejected := decodeAll[models.ThemeTab](recs)
	return tabs, rejected, nil
}

// Add creates a tab whose id is the slugged title plus a unique token.
func (r *StoreTabRepository) Add(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error) {
	tab.ID = TabID(tab.Title, r.node.Generate().String())
	return write("add tab", tab, func(rec store.Record) (store.Record, error) {
		return r.client.Create(ctx, store.Tabs, rec)
	})
}

// Update overwrites the title and description of an existing tab.
func (r *StoreTabRepository) Update(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error) {
	return write("update tab", tab, func(rec store.Record) (store.Record, error) {
		return r.client.Update(ctx, store.Tabs, tab.ID, rec)
	})
}

// Remove deletes a tab by its ID.
func (r *StoreTabRepository) Remove(ctx context.Context, id string) error {
	return translate("delete tab", r.client.Delete(ctx, store.Tabs, id))
}

// TabID builds a tab identifier: the lower-cased title with whitespace runs
// replaced by dashes, followed by token.
func TabID(title, token string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	if slug == "" {
		return token
	}
	return slug + "-" + token
}
