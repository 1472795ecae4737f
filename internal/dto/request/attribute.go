package request

import (
	"net/url"
	"strings"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/utils"
)

// AttributeForm is shown with one checkbox per allowed color and size.
type AttributeForm struct {
	Name   string   `json:"name" form:"name" validate:"required"`
	Colors []string `json:"colors" form:"colors" validate:"min=1,dive,oneof=Red Blue Black White Green"`
	Sizes  []string `json:"sizes" form:"sizes" validate:"min=1,dive,oneof=S M L XL XXL"`
}

func BindAttribute(v url.Values) AttributeForm {
	return AttributeForm{
		Name:   strings.TrimSpace(v.Get("name")),
		Colors: utils.Compact(v["colors"]),
		Sizes:  utils.Compact(v["sizes"]),
	}
}

func AttributeFormFrom(a *entity.Attribute) AttributeForm {
	return AttributeForm{
		Name:   a.Name,
		Colors: append([]string(nil), a.Colors...),
		Sizes:  append([]string(nil), a.Sizes...),
	}
}

func (f *AttributeForm) Validate() map[string]string {
	return utils.ValidateStruct(f)
}

// Has is used by the template to tick checkboxes.
func (f *AttributeForm) Has(value string) bool {
	for _, v := range f.Colors {
		if v == value {
			return true
		}
	}
	for _, v := range f.Sizes {
		if v == value {
			return true
		}
	}
	return false
}
