package models

// SiteContentID is the fixed identifier of the site content singleton row.
const SiteContentID = "main_content"

// SiteContent holds the editable texts and contact details of the storefront.
type SiteContent struct {
	ID                    string `json:"id"`
	CompanyName           string `json:"companyName" validate:"required,max=120"`
	About                 string `json:"about"`
	FeaturedProductsTitle string `json:"featuredProductsTitle"`
	LogoURL               string `json:"logoUrl"`
	WhatsAppNumber        string `json:"whatsappNumber" validate:"omitempty,numeric,min=8,max=15"`
	WhatsAppMessage       string `json:"whatsappMessage"`
}
