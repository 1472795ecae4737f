package request

import (
	"net/url"
	"strings"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/utils"
)

type CategoryForm struct {
	Name        string `json:"name" form:"name" validate:"required,max=80"`
	Description string `json:"description" form:"description" validate:"max=500"`
	Icon        string `json:"icon" form:"icon" validate:"max=200"`
}

func BindCategory(v url.Values) CategoryForm {
	return CategoryForm{
		Name:        strings.TrimSpace(v.Get("name")),
		Description: strings.TrimSpace(v.Get("description")),
		Icon:        strings.TrimSpace(v.Get("icon")),
	}
}

func CategoryFormFrom(c *entity.Category) CategoryForm {
	return CategoryForm{Name: c.Name, Description: c.Description, Icon: c.Icon}
}

func (f *CategoryForm) Validate() map[string]string {
	return utils.ValidateStruct(f)
}
