package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vitrine/internal/models"
	"vitrine/internal/repositories"
	"vitrine/internal/services"
	"vitrine/internal/store"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// spyClient wraps a store.Client, records every call and fails the
// collections listed in fail.
type spyClient struct {
	store.Client

	mu    sync.Mutex
	calls []string
	fail  map[string]error
	rows  map[string][]store.Record // canned List results
}

func newSpyClient() *spyClient {
	return &spyClient{Client: store.NewMemoryClient(), fail: map[string]error{}, rows: map[string][]store.Record{}}
}

func (c *spyClient) record(op, collection string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, op+" "+collection)
	return c.fail[collection]
}

func (c *spyClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *spyClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

func (c *spyClient) FailOn(collection string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail[collection] = err
}

func (c *spyClient) Create(ctx context.Context, collection string, rec store.Record) (store.Record, error) {
	if err := c.record("create", collection); err != nil {
		return nil, err
	}
	return c.Client.Create(ctx, collection, rec)
}

func (c *spyClient) Update(ctx context.Context, collection, id string, partial store.Record) (store.Record, error) {
	if err := c.record("update", collection); err != nil {
		return nil, err
	}
	return c.Client.Update(ctx, collection, id, partial)
}

func (c *spyClient) Upsert(ctx context.Context, collection string, rec store.Record) (store.Record, error) {
	if err := c.record("upsert", collection); err != nil {
		return nil, err
	}
	return c.Client.Upsert(ctx, collection, rec)
}

func (c *spyClient) Delete(ctx context.Context, collection, id string) error {
	if err := c.record("delete", collection); err != nil {
		return err
	}
	return c.Client.Delete(ctx, collection, id)
}

func (c *spyClient) List(ctx context.Context, collection string, opts store.ListOptions) ([]store.Record, error) {
	if err := c.record("list", collection); err != nil {
		return nil, err
	}
	c.mu.Lock()
	canned, ok := c.rows[collection]
	c.mu.Unlock()
	if ok {
		return canned, nil
	}
	return c.Client.List(ctx, collection, opts)
}

func (c *spyClient) GetSingleton(ctx context.Context, collection string) (store.Record, error) {
	if err := c.record("get", collection); err != nil {
		return nil, err
	}
	return c.Client.GetSingleton(ctx, collection)
}

var errBackend = errors.New("connection reset by peer")

func newRepos(t *testing.T, client store.Client) repositories.Set {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return repositories.NewStoreSet(client, node)
}

// seed writes rows straight into the store, bypassing the repositories.
func seed(t *testing.T, client store.Client, collection string, rows ...store.Record) {
	t.Helper()
	for _, row := range rows {
		_, err := client.Create(context.Background(), collection, row)
		require.NoError(t, err)
	}
}

func seedCatalog(t *testing.T, client store.Client) {
	t.Helper()
	for _, tab := range models.DefaultTabs[1:] {
		rec, err := store.Encode(tab)
		require.NoError(t, err)
		seed(t, client, store.Tabs, rec)
	}
	seed(t, client, store.Products,
		store.Record{"id": "p-1", "name": "Copo Térmico", "price": 119.9, "imageUrl": "https://img/copo.jpg", "tabId": "corporativo"},
		store.Record{"id": "p-2", "name": "Tábua", "price": 159.9, "imageUrl": "https://img/tabua.jpg", "tabId": "para-casa"},
	)
}

// newLoadedSynchronizer returns a Synchronizer over client after a
// successful first load.
func newLoadedSynchronizer(t *testing.T, client store.Client, publisher services.ChangePublisher) *services.Synchronizer {
	t.Helper()
	repos := newRepos(t, client)
	s := services.NewSynchronizer(services.NewLoader(repos, zap.NewNop()), repos, publisher, zap.NewNop())
	require.NoError(t, s.Reload(context.Background()))
	return s
}
