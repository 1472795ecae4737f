package entity

type Seller struct {
	Base
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone,omitempty"`
	IsSellerVerified bool        `json:"isSellerVerified"`
	IsActive         bool        `json:"isActive"`
	SellerInfo       *SellerInfo `json:"sellerInfo,omitempty"`
}
