package entity

var (
	AttributeColors = []string{"Red", "Blue", "Black", "White", "Green"}
	AttributeSizes  = []string{"S", "M", "L", "XL", "XXL"}
)

// Attribute holds the variation axes of a variable product.
type Attribute struct {
	Base
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
	Sizes  []string `json:"sizes"`
}
