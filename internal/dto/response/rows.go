package response

import "marketplace-console/internal/data/entity"

type SellerRow struct {
	Seller  entity.Seller `json:"seller"`
	Actions []Action      `json:"actions"`
}

type StoreRow struct {
	Store   entity.Store `json:"store"`
	Actions []Action     `json:"actions"`
}

type OrderRow struct {
	Order     entity.Order `json:"order"`
	CanCancel bool         `json:"canCancel"`
	Actions   []Action     `json:"actions"`
}

type ProductRow struct {
	Product entity.Product `json:"product"`
	Active  bool           `json:"active"`
	Actions []Action       `json:"actions"`
}

type CategoryRow struct {
	Category entity.Category `json:"category"`
	Actions  []Action        `json:"actions"`
}

type AttributeRow struct {
	Attribute entity.Attribute `json:"attribute"`
	Actions   []Action         `json:"actions"`
}
