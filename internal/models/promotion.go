package models

// PromotionID is the fixed identifier of the promotion singleton row.
const PromotionID = "promo1"

// Promotion is the banner shown at the top of the landing tab.
type Promotion struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=160"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    string `json:"imageUrl"`
	Active      bool   `json:"active"`
}
