package entity

import "github.com/shopspring/decimal"

type VerificationStatus string

const (
	StoreUnverified VerificationStatus = "unverified"
	StoreVerified   VerificationStatus = "verified"
	StorePending    VerificationStatus = "pending"
	StoreRejected   VerificationStatus = "rejected"
)

type Store struct {
	Base
	StoreName          string             `json:"storeName"`
	Description        string             `json:"description,omitempty"`
	Address            string             `json:"address,omitempty"`
	Contact            Contact            `json:"contact"`
	SocialMedia        SocialMedia        `json:"socialMedia"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerificationNotes  string             `json:"verificationNotes,omitempty"`
	IsActive           bool               `json:"isActive"`
	Settings           StoreSettings      `json:"settings"`
	Media              StoreMedia         `json:"media"`
	Metrics            StoreMetrics       `json:"metrics"`
	BusinessInfo       BusinessInfo       `json:"businessInfo"`
	Seller             *Seller            `json:"seller,omitempty"`
	Products           []Product          `json:"products,omitempty"`
	Orders             []Order            `json:"orders,omitempty"`
}

type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Whatsapp string `json:"whatsapp,omitempty"`
}

type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

type StoreSettings struct {
	IsActive bool `json:"isActive"`
}

type StoreMedia struct {
	Logo   Image `json:"logo"`
	Banner Image `json:"banner"`
}

type StoreMetrics struct {
	TotalProducts int             `json:"totalProducts"`
	AverageRating decimal.Decimal `json:"averageRating"`
}

type BusinessInfo struct {
	GST string `json:"gst,omitempty"`
	PAN string `json:"pan,omitempty"`
}

func (s *Store) Verified() bool {
	return s.VerificationStatus == StoreVerified
}

// Active treats either flag as active; older store documents only carry settings.isActive.
func (s *Store) Active() bool {
	return s.IsActive || s.Settings.IsActive
}
