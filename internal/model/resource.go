package model

type Resource struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Content     string `json:"-"`
	HTMLContent string `json:"html,omitempty"`
}
