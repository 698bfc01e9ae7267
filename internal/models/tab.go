package models

// HomeTabID is the reserved identifier of the storefront landing tab.
const HomeTabID = "home"

// ThemeTab is a storefront collection products are grouped under.
type ThemeTab struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title" validate:"required,max=80"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// IsHome reports whether the tab is the reserved landing tab.
func (t ThemeTab) IsHome() bool {
	return t.ID == HomeTabID
}
