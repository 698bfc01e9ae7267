// Package store defines the contract of the remote collection store every
// repository is built on, plus GORM and in-memory implementations.
package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Collection names used by the storefront.
const (
	Products     = "products"
	Tabs         = "tabs"
	Testimonials = "testimonials"
	Promotion    = "promotion"
	SiteContent  = "site_content"
	Theme        = "theme"
	Clients      = "clients"
)

// ErrNotFound is returned when an addressed row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a create targets an identifier already in use.
var ErrConflict = errors.New("duplicate key value violates unique constraint")

// Record is one row of a collection, keyed by field name.
type Record map[string]interface{}

// ID returns the record identifier and whether it is present and non-null.
func (r Record) ID() (string, bool) {
	v, ok := r["id"]
	if !ok || v == nil {
		return "", false
	}
	id := cast.ToString(v)
	return id, id != ""
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// ListOptions controls the ordering and size of a List call.
type ListOptions struct {
	OrderBy string // field to sort ascending by; insertion order when empty
	Limit   int    // no limit when zero
}

// Client is a handle to a remote collection store. Calls are not retried;
// a failure surfaces immediately to the caller.
type Client interface {
	Create(ctx context.Context, collection string, rec Record) (Record, error)
	Update(ctx context.Context, collection, id string, partial Record) (Record, error)
	Upsert(ctx context.Context, collection string, rec Record) (Record, error)
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string, opts ListOptions) ([]Record, error)
	// GetSingleton returns the first row of the collection, or nil when it
	// holds none.
	GetSingleton(ctx context.Context, collection string) (Record, error)
}

// Error carries the provider message of a failed store call.
type Error struct {
	Op         string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Collection: collection, Err: err}
}
