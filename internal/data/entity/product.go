package entity

import "github.com/shopspring/decimal"

type ProductType string

const (
	ProductSimple   ProductType = "simple"
	ProductVariable ProductType = "variable"
)

type Product struct {
	Base
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	OriginalPrice  decimal.Decimal  `json:"originalPrice"`
	Stock          int              `json:"stock"`
	Category       []string         `json:"category"`
	Images         []string         `json:"images"`
	Specifications []Specification  `json:"specifications,omitempty"`
	ShippingInfo   ShippingInfo     `json:"shippingInfo"`
	IsActive       bool             `json:"isActive"`
	Settings       ProductSettings  `json:"settings"`
	Store          *ProductStoreRef `json:"store,omitempty"`
	Ratings        Ratings          `json:"ratings"`
}

type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ShippingInfo struct {
	Weight        string     `json:"weight,omitempty"`
	ShippingClass string     `json:"shippingClass,omitempty"`
	Dimensions    Dimensions `json:"dimensions"`
}

type Dimensions struct {
	Length string `json:"length,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

type ProductSettings struct {
	IsActive bool `json:"isActive"`
}

type ProductStoreRef struct {
	ID        string `json:"_id,omitempty"`
	StoreName string `json:"storeName"`
}

type Ratings struct {
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

// ProductInput is the record sent on create and update. Images only ever
// hold media host URLs.
type ProductInput struct {
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	Stock          int             `json:"stock"`
	Category       []string        `json:"category"`
	Images         []string        `json:"images"`
	IsActive       bool            `json:"isActive"`
	ProductType    ProductType     `json:"productType,omitempty"`
	Attribute      string          `json:"attribute,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	ShippingInfo   *ShippingInfo   `json:"shippingInfo,omitempty"`
}

// Earnings is what the seller keeps against the original price.
func (p *ProductInput) Earnings() decimal.Decimal {
	if p.OriginalPrice.IsZero() {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}
