package models

// ThemeID is the fixed identifier of the current theme singleton row.
const ThemeID = "current_theme"

// Colors is the five-color set a palette applies to the storefront.
type Colors struct {
	Primary     string `json:"primary" validate:"required,hexcolor"`
	Secondary   string `json:"secondary" validate:"required,hexcolor"`
	Accent      string `json:"accent" validate:"required,hexcolor"`
	Base100     string `json:"base-100" validate:"required,hexcolor"`
	BaseContent string `json:"base-content" validate:"required,hexcolor"`
}

// ColorPalette is a named color set.
type ColorPalette struct {
	Name   string `json:"name" validate:"required,max=80"`
	Colors Colors `json:"colors"`
}

// CSSVariables returns the custom properties the storefront stylesheet
// reads the active palette from.
func (p ColorPalette) CSSVariables() map[string]string {
	return map[string]string{
		"--color-primary":      p.Colors.Primary,
		"--color-secondary":    p.Colors.Secondary,
		"--color-accent":       p.Colors.Accent,
		"--color-base-100":     p.Colors.Base100,
		"--color-base-content": p.Colors.BaseContent,
	}
}
