package models

// ClientConfig is the branding of one white-label tenant.
type ClientConfig struct {
	Slug         string `json:"slug"`
	CompanyName  string `json:"companyName"`
	LogoURL      string `json:"logoUrl"`
	PrimaryColor string `json:"primaryColor"`
}
