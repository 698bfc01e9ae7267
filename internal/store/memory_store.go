package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemoryClient is an in-memory implementation of Client.
type MemoryClient struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	order []string
	rows  map[string]Record
}

// NewMemoryClient creates a new, empty MemoryClient.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{collections: make(map[string]*memoryCollection)}
}

func (c *MemoryClient) collection(name string) *memoryCollection {
	col, ok := c.collections[name]
	if !ok {
		col = &memoryCollection{rows: make(map[string]Record)}
		c.collections[name] = col
	}
	return col
}

func (col *memoryCollection) insert(id string, rec Record) {
	col.order = append(col.order, id)
	col.rows[id] = rec
}

// Create adds a new record, assigning a UUID when it has no id.
func (c *MemoryClient) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec = rec.Clone()
	if rec == nil {
		rec = Record{}
	}
	id, ok := rec.ID()
	if !ok {
		id = uuid.New().String()
	}
	rec["id"] = id
	col := c.collection(collection)
	if _, exists := col.rows[id]; exists {
		return nil, wrap("create", collection, ErrConflict)
	}
	col.insert(id, rec)
	return rec.Clone(), nil
}

// Update merges partial into an existing record.
func (c *MemoryClient) Update(ctx context.Context, collection, id string, partial Record) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	col := c.collection(collection)
	rec, ok := col.rows[id]
	if !ok {
		return nil, wrap("update", collection, ErrNotFound)
	}
	for k, v := range partial {
		rec[k] = v
	}
	rec["id"] = id
	return rec.Clone(), nil
}

// Upsert inserts rec or replaces the record with the same id.
func (c *MemoryClient) Upsert(ctx context.Context, collection string, rec Record) (Record, error) {
	id, ok := rec.ID()
	if !ok {
		return nil, wrap("upsert", collection, errors.New("upsert requires an id"))
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rec = rec.Clone()
	rec["id"] = id
	col := c.collection(collection)
	if _, exists := col.rows[id]; exists {
		col.rows[id] = rec
	} else {
		col.insert(id, rec)
	}
	return rec.Clone(), nil
}

// Delete removes a record by id.
func (c *MemoryClient) Delete(ctx context.Context, collection, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	col := c.collection(collection)
	if _, ok := col.rows[id]; !ok {
		return wrap("delete", collection, ErrNotFound)
	}
	delete(col.rows, id)
	for i, v := range col.order {
		if v == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the records of a collection.
func (c *MemoryClient) List(ctx context.Context, collection string, opts ListOptions) ([]Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, ok := c.collections[collection]
	if !ok {
		return []Record{}, nil
	}
	recs := make([]Record, 0, len(col.order))
	for _, id := range col.order {
		recs = append(recs, col.rows[id].Clone())
	}
	sortRecords(recs, opts.OrderBy)
	return limitRecords(recs, opts.Limit), nil
}

// GetSingleton returns the first record of the collection, or nil.
func (c *MemoryClient) GetSingleton(ctx context.Context, collection string) (Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, ok := c.collections[collection]
	if !ok || len(col.order) == 0 {
		return nil, nil
	}
	return col.rows[col.order[0]].Clone(), nil
}
