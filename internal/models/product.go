package models

// Product represents a catalog item shown on the storefront.
type Product struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	ShowPrice   bool    `json:"showPrice"`
	ImageURL    string  `json:"imageUrl" validate:"required"`
	TabID       string  `json:"tabId" validate:"required"`
}

// ProductDraft is a partially filled product proposed by the autofill
// assistant. The admin reviews it before it becomes a Product.
type ProductDraft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}
