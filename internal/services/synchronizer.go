package services

import (
	"context"
	"sync"
	"time"

	"vitrine/internal/models"
	"vitrine/internal/repositories"

	"go.uber.org/zap"
)

// ChangePublisher announces committed mutations to other instances.
type ChangePublisher interface {
	PublishChange(event models.ChangeEvent) error
}

// Synchronizer holds the session snapshot and keeps it converged with the
// store. Every collection mutation splices the single record the store
// confirmed into the snapshot; singletons replace their slot wholesale.
// A failed call leaves the snapshot untouched.
//
// Mutations share writes from the store call until the splice. Reload takes
// it exclusively from the fetch until the swap, so the two never interleave.
type Synchronizer struct {
	loader    SnapshotLoader
	repos     repositories.Set
	publisher ChangePublisher // optional
	logger    *zap.Logger

	writes sync.RWMutex

	mu          sync.RWMutex
	snapshot    models.Snapshot
	diagnostics Diagnostics
	loaded      bool

	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

// NewSynchronizer creates a new Synchronizer. publisher may be nil.
func NewSynchronizer(loader SnapshotLoader, repos repositories.Set, publisher ChangePublisher, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		loader:    loader,
		repos:     repos,
		publisher: publisher,
		logger:    logger,
		inflight:  make(map[string]struct{}),
	}
}

// Reload replaces the snapshot with a fresh load. On failure the previous
// snapshot is kept.
func (s *Synchronizer) Reload(ctx context.Context) error {
	s.writes.Lock()
	defer s.writes.Unlock()

	result, err := s.loader.LoadAll(ctx)
	if err != nil {
		return err
	}
	snap := result.Snapshot
	diag := result.Diagnostics
	var dropped []RejectedRecord
	snap.Tabs, dropped = NormalizeTabs(snap.Tabs)
	for _, r := range dropped {
		s.logger.Warn("Excluded malformed tab", zap.String("reason", r.Reason), zap.Any("record", r.Record))
	}
	diag.RejectedTabs = append(copyRejected(diag.RejectedTabs), dropped...)

	s.mu.Lock()
	s.snapshot = snap
	s.diagnostics = diag
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("Storefront snapshot loaded",
		zap.Int("products", len(snap.Products)),
		zap.Int("tabs", len(snap.Tabs)),
		zap.Int("testimonials", len(snap.Testimonials)),
		zap.Int("rejected", diag.Rejected()))
	return nil
}

// Loaded reports whether a snapshot has been loaded at least once.
func (s *Synchronizer) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns a copy of the current snapshot.
func (s *Synchronizer) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Diagnostics returns the diagnostics of the last load.
func (s *Synchronizer) Diagnostics() Diagnostics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.diagnostics
	d.RawTestimonials = append(d.RawTestimonials[:0:0], d.RawTestimonials...)
	d.RejectedTestimonials = copyRejected(d.RejectedTestimonials)
	d.RejectedProducts = copyRejected(d.RejectedProducts)
	d.RejectedTabs = copyRejected(d.RejectedTabs)
	return d
}

// --- Products ---

// AddProduct creates a product and splices the stored result in.
func (s *Synchronizer) AddProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	defer s.hold()()
	created, err := s.repos.Products.Add(ctx, product)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Products = replaceByID(snap.Products, *created, productID)
	})
	s.announce("product", "created", created.ID)
	return created, nil
}

// UpdateProduct writes a product and replaces it in the snapshot.
func (s *Synchronizer) UpdateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	done, err := s.begin("product", product.ID)
	if err != nil {
		return nil, err
	}
	defer done()
	defer s.hold()()
	updated, err := s.repos.Products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Products = replaceByID(snap.Products, *updated, productID)
	})
	s.announce("product", "updated", updated.ID)
	return updated, nil
}

// DeleteProduct removes a product from the store and the snapshot.
func (s *Synchronizer) DeleteProduct(ctx context.Context, id string) error {
	done, err := s.begin("product", id)
	if err != nil {
		return err
	}
	defer done()
	defer s.hold()()
	if err := s.repos.Products.Remove(ctx, id); err != nil {
		return err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Products = removeByID(snap.Products, id, productID)
	})
	s.announce("product", "deleted", id)
	return nil
}

// --- Tabs ---

// AddTab creates a tab and splices the stored result in.
func (s *Synchronizer) AddTab(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	defer s.hold()()
	created, err := s.repos.Tabs.Add(ctx, tab)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Tabs = replaceByID(snap.Tabs, *created, tabID)
	})
	s.announce("tab", "created", created.ID)
	return created, nil
}

// UpdateTab writes a tab and replaces it in the snapshot.
func (s *Synchronizer) UpdateTab(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error) {
	done, err := s.begin("tab", tab.ID)
	if err != nil {
		return nil, err
	}
	defer done()
	defer s.hold()()
	updated, err := s.repos.Tabs.Update(ctx, tab)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Tabs = replaceByID(snap.Tabs, *updated, tabID)
	})
	s.announce("tab", "updated", updated.ID)
	return updated, nil
}

// DeleteTab removes a tab from the store and the snapshot.
func (s *Synchronizer) DeleteTab(ctx context.Context, id string) error {
	done, err := s.begin("tab", id)
	if err != nil {
		return err
	}
	defer done()
	defer s.hold()()
	if err := s.repos.Tabs.Remove(ctx, id); err != nil {
		return err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Tabs = removeByID(snap.Tabs, id, tabID)
	})
	s.announce("tab", "deleted", id)
	return nil
}

// --- Testimonials ---

// AddTestimonial creates a testimonial and splices the stored result in.
func (s *Synchronizer) AddTestimonial(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	defer s.hold()()
	created, err := s.repos.Testimonials.Add(ctx, testimonial)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Testimonials = replaceByID(snap.Testimonials, *created, testimonialID)
	})
	s.announce("testimonial", "created", created.ID)
	return created, nil
}

// UpdateTestimonial writes a testimonial and replaces it in the snapshot.
func (s *Synchronizer) UpdateTestimonial(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error) {
	done, err := s.begin("testimonial", testimonial.ID)
	if err != nil {
		return nil, err
	}
	defer done()
	defer s.hold()()
	updated, err := s.repos.Testimonials.Update(ctx, testimonial)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Testimonials = replaceByID(snap.Testimonials, *updated, testimonialID)
	})
	s.announce("testimonial", "updated", updated.ID)
	return updated, nil
}

// DeleteTestimonial removes a testimonial from the store and the snapshot.
func (s *Synchronizer) DeleteTestimonial(ctx context.Context, id string) error {
	done, err := s.begin("testimonial", id)
	if err != nil {
		return err
	}
	defer done()
	defer s.hold()()
	if err := s.repos.Testimonials.Remove(ctx, id); err != nil {
		return err
	}
	s.commit(func(snap *models.Snapshot) {
		snap.Testimonials = removeByID(snap.Testimonials, id, testimonialID)
	})
	s.announce("testimonial", "deleted", id)
	return nil
}

// --- Singletons ---

// SavePromotion upserts the promotion and replaces the snapshot slot.
func (s *Synchronizer) SavePromotion(ctx context.Context, promotion models.Promotion) (*models.Promotion, error) {
	done, err := s.begin("promotion", models.PromotionID)
	if err != nil {
		return nil, err
	}
	defer done()
	defer s.hold()()
	saved, err := s.repos.Promotion.Save(ctx, promotion)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) { snap.Promotion = *saved })
	s.announce("promotion", "saved", saved.ID)
	return saved, nil
}

// SaveSiteContent upserts the site content and replaces the snapshot slot.
func (s *Synchronizer) SaveSiteContent(ctx context.Context, content models.SiteContent) (*models.SiteContent, error) {
	done, err := s.begin("site_content", models.SiteContentID)
	if err != nil {
		return nil, err
	}
	defer done()
	defer s.hold()()
	saved, err := s.repos.SiteContent.Save(ctx, content)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) { snap.SiteContent = *saved })
	s.announce("site_content", "saved", saved.ID)
	return saved, nil
}

// SavePalette stores the current theme and replaces the snapshot slot.
func (s *Synchronizer) SavePalette(ctx context.Context, palette models.ColorPalette) (*models.ColorPalette, error) {
	done, err := s.begin("theme", models.ThemeID)
	if err != nil {
		return nil, err
	}
	defer done()
	defer s.hold()()
	saved, err := s.repos.Theme.Save(ctx, palette)
	if err != nil {
		return nil, err
	}
	s.commit(func(snap *models.Snapshot) { snap.CurrentPalette = *saved })
	s.announce("theme", "saved", models.ThemeID)
	return saved, nil
}

// ready rejects creates issued before the first load, which would
// otherwise be spliced into an empty snapshot.
func (s *Synchronizer) ready() error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	return nil
}

// begin marks entity/id as being written. The returned func releases it.
func (s *Synchronizer) begin(entity, id string) (func(), error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	key := entity + "/" + id
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return nil, ErrMutationInFlight
	}
	s.inflight[key] = struct{}{}
	return func() {
		s.inflightMu.Lock()
		delete(s.inflight, key)
		s.inflightMu.Unlock()
	}, nil
}

// hold blocks reloads until the returned func is called.
func (s *Synchronizer) hold() func() {
	s.writes.RLock()
	return s.writes.RUnlock
}

func (s *Synchronizer) commit(apply func(snap *models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.snapshot)
}

func (s *Synchronizer) announce(entity, action, id string) {
	if s.publisher == nil {
		return
	}
	event := models.ChangeEvent{Entity: entity, Action: action, ID: id, Timestamp: time.Now()}
	if err := s.publisher.PublishChange(event); err != nil {
		s.logger.Warn("Failed to publish change event", zap.String("entity", entity), zap.String("id", id), zap.Error(err))
	}
}

func productID(p models.Product) string         { return p.ID }
func tabID(t models.ThemeTab) string            { return t.ID }
func testimonialID(t models.Testimonial) string { return t.ID }

// replaceByID swaps the element with item's id for item, appending it when
// the snapshot did not hold it yet.
func replaceByID[T any](items []T, item T, id func(T) string) []T {
	out := make([]T, 0, len(items)+1)
	found := false
	for _, v := range items {
		if id(v) == id(item) {
			out = append(out, item)
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, item)
	}
	return out
}

func removeByID[T any](items []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if id(v) != target {
			out = append(out, v)
		}
	}
	return out
}
