package entity

import "github.com/shopspring/decimal"

type ShippingType string

const (
	ShippingFree ShippingType = "free"
	ShippingFlat ShippingType = "flat"
)

// ShippingZone is a console-side draft. The marketplace API has no endpoint
// for zones yet, so these are never sent to the backend.
type ShippingZone struct {
	ID           string          `json:"id"`
	ZoneName     string          `json:"zoneName"`
	States       []string        `json:"states"`
	ShippingType ShippingType    `json:"shippingType"`
	Rate         decimal.Decimal `json:"rate"`
}

var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa",
	"Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala",
	"Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland",
	"Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh", "Dadra and Nagar Haveli and Daman and Diu",
	"Delhi", "Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}
