package models

// Snapshot is the in-memory aggregate of every storefront collection and
// singleton held for the session.
type Snapshot struct {
	Products       []Product     `json:"products"`
	Tabs           []ThemeTab    `json:"tabs"`
	Testimonials   []Testimonial `json:"testimonials"`
	Promotion      Promotion     `json:"promotion"`
	SiteContent    SiteContent   `json:"siteContent"`
	CurrentPalette ColorPalette  `json:"currentPalette"`
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Products = append([]Product(nil), s.Products...)
	c.Tabs = append([]ThemeTab(nil), s.Tabs...)
	c.Testimonials = append([]Testimonial(nil), s.Testimonials...)
	return c
}

// TabByID looks a tab up in the snapshot.
func (s Snapshot) TabByID(id string) (ThemeTab, bool) {
	for _, t := range s.Tabs {
		if t.ID == id {
			return t, true
		}
	}
	return ThemeTab{}, false
}

// ProductsInTab returns the products assigned to the given tab.
func (s Snapshot) ProductsInTab(tabID string) []Product {
	var out []Product
	for _, p := range s.Products {
		if p.TabID == tabID {
			out = append(out, p)
		}
	}
	return out
}

// AdminTabs returns the tabs an admin may edit, i.e. all but home.
func (s Snapshot) AdminTabs() []ThemeTab {
	out := make([]ThemeTab, 0, len(s.Tabs))
	for _, t := range s.Tabs {
		if !t.IsHome() {
			out = append(out, t)
		}
	}
	return out
}
