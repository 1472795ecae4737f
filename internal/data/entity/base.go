package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// the marketplace API speaks numbers, not quoted decimals
	decimal.MarshalJSONWithoutQuotes = true
}

// Base carries the fields every marketplace document has. IDs are minted by
// the backend only.
type Base struct {
	ID        string    `json:"_id,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Image is a media host reference as stored by the backend.
type Image struct {
	PublicID string `json:"public_id,omitempty"`
	URL      string `json:"url,omitempty"`
}
