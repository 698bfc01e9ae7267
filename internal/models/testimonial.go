package models

// Testimonial is a customer quote displayed on the landing tab.
type Testimonial struct {
	ID       string `json:"id,omitempty"`
	Author   string `json:"author" validate:"required,max=120"`
	Text     string `json:"text" validate:"required,max=1000"`
	ImageURL string `json:"imageUrl"`
}
