package entity

type Category struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Slug        string `json:"slug,omitempty"`
}
