package repositories

import (
	"context"

	"vitrine/internal/models"
	"vitrine/internal/store"
)

// TestimonialRepository defines the interface for testimonial data access.
// ListRaw hands back undecoded rows so callers can tell malformed entries
// apart from valid ones.
type TestimonialRepository interface {
	ListRaw(ctx context.Context) ([]store.Record, error)
	Add(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error)
	Update(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error)
	Remove(ctx context.Context, id string) error
}

// StoreTestimonialRepository is a TestimonialRepository over a store.Client.
type StoreTestimonialRepository struct {
	client store.Client
}

// NewStoreTestimonialRepository creates a new instance of StoreTestimonialRepository.
func NewStoreTestimonialRepository(client store.Client) *StoreTestimonialRepository {
	return &StoreTestimonialRepository{client: client}
}

// ListRaw returns the stored testimonial rows in insertion order.
func (r *StoreTestimonialRepository) ListRaw(ctx context.Context) ([]store.Record, error) {
	recs, err := r.client.List(ctx, store.Testimonials, store.ListOptions{})
	if err != nil {
		return nil, translate("load testimonials", err)
	}
	return recs, nil
}

// Add creates a testimonial; the store assigns its identifier.
func (r *StoreTestimonialRepository) Add(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error) {
	testimonial.ID = ""
	return write("add testimonial", testimonial, func(rec store.Record) (store.Record, error) {
		return r.client.Create(ctx, store.Testimonials, rec)
	})
}

// Update overwrites an existing testimonial.
func (r *StoreTestimonialRepository) Update(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error) {
	return write("update testimonial", testimonial, func(rec store.Record) (store.Record, error) {
		return r.client.Update(ctx, store.Testimonials, testimonial.ID, rec)
	})
}

// Remove deletes a testimonial by its ID.
func (r *StoreTestimonialRepository) Remove(ctx context.Context, id string) error {
	return translate("delete testimonial", r.client.Delete(ctx, store.Testimonials, id))
}
