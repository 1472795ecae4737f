package request

import (
	"fmt"
	"net/url"
	"strings"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/utils"
)

type ShippingZoneForm struct {
	ID           string   `form:"id"`
	ZoneName     string   `form:"zoneName" validate:"required"`
	States       []string `form:"states" validate:"min=1,dive,required"`
	ShippingType string   `form:"shippingType" validate:"required,oneof=free flat"`
	Rate         string   `form:"rate" validate:"required_if=ShippingType flat"`
}

func BindShippingZone(v url.Values) ShippingZoneForm {
	return ShippingZoneForm{
		ID:           strings.TrimSpace(v.Get("id")),
		ZoneName:     strings.TrimSpace(v.Get("zoneName")),
		States:       utils.Compact(v["states"]),
		ShippingType: strings.TrimSpace(v.Get("shippingType")),
		Rate:         strings.TrimSpace(v.Get("rate")),
	}
}

func ShippingZoneFormFrom(z *entity.ShippingZone) ShippingZoneForm {
	f := ShippingZoneForm{
		ID:           z.ID,
		ZoneName:     z.ZoneName,
		States:       append([]string(nil), z.States...),
		ShippingType: string(z.ShippingType),
	}
	if z.ShippingType == entity.ShippingFlat {
		f.Rate = z.Rate.String()
	}
	return f
}

func (f *ShippingZoneForm) Validate() map[string]string {
	errs := utils.ValidateStruct(f)
	add := func(field, msg string) {
		if errs == nil {
			errs = map[string]string{}
		}
		if _, ok := errs[field]; !ok {
			errs[field] = msg
		}
	}
	for _, s := range f.States {
		if !knownState(s) {
			add("states", fmt.Sprintf("Unknown state %q", s))
			break
		}
	}
	if f.Rate != "" {
		if _, err := parseDecimal(f.Rate); err != nil {
			add("rate", "Must be a number")
		}
	}
	return errs
}

// Zone converts a valid form. Free zones always carry a zero rate.
func (f *ShippingZoneForm) Zone() (entity.ShippingZone, error) {
	z := entity.ShippingZone{
		ID:           f.ID,
		ZoneName:     f.ZoneName,
		States:       append([]string(nil), f.States...),
		ShippingType: entity.ShippingType(f.ShippingType),
	}
	if z.ShippingType == entity.ShippingFlat {
		rate, err := parseDecimal(f.Rate)
		if err != nil {
			return entity.ShippingZone{}, fmt.Errorf("rate: %w", err)
		}
		z.Rate = rate
	}
	return z, nil
}

func (f *ShippingZoneForm) HasState(state string) bool {
	for _, s := range f.States {
		if s == state {
			return true
		}
	}
	return false
}

func knownState(s string) bool {
	for _, st := range entity.IndianStates {
		if st == s {
			return true
		}
	}
	return false
}
