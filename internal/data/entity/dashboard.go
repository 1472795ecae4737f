package entity

import "github.com/shopspring/decimal"

type DashboardStats struct {
	Sellers  SellerStats  `json:"sellers"`
	Stores   StoreStats   `json:"stores"`
	Products ProductStats `json:"products"`
	Orders   OrderStats   `json:"orders"`
}

type SellerStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Active   int `json:"active"`
}

type StoreStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Active   int `json:"active"`
}

type ProductStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type OrderStats struct {
	Total     int             `json:"total"`
	Pending   int             `json:"pending"`
	Completed int             `json:"completed"`
	Revenue   decimal.Decimal `json:"revenue"`
}
