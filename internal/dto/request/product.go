package request

import (
	"fmt"
	"net/url"
	"strings"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/utils"
)

type SpecField struct {
	Key   string `form:"specKey" validate:"required"`
	Value string `form:"specValue" validate:"required"`
}

// ProductForm mirrors a product while it is being edited. Images holds
// URLs that are already on the media host; new files travel separately.
type ProductForm struct {
	Name           string      `form:"name" validate:"required"`
	Description    string      `form:"description"`
	Price          string      `form:"price" validate:"omitempty,numeric"`
	OriginalPrice  string      `form:"originalPrice" validate:"omitempty,numeric"`
	Stock          string      `form:"stock" validate:"omitempty,number"`
	Category       []string    `form:"category" validate:"min=1,dive,required"`
	Images         []string    `form:"images" validate:"dive,http_url"`
	ProductType    string      `form:"productType" validate:"omitempty,oneof=simple variable"`
	Attribute      string      `form:"attribute" validate:"required_if=ProductType variable"`
	IsActive       bool        `form:"isActive"`
	Specifications []SpecField `form:"specifications" validate:"dive"`

	Weight        string `form:"weight" validate:"omitempty,numeric"`
	ShippingClass string `form:"shippingClass"`
	Length        string `form:"length" validate:"omitempty,numeric"`
	Width         string `form:"width" validate:"omitempty,numeric"`
	Height        string `form:"height" validate:"omitempty,numeric"`

	// pending inputs for the add ops
	NewCategory  string `form:"-"`
	NewSpecKey   string `form:"-"`
	NewSpecValue string `form:"-"`
}

func BindProduct(v url.Values) ProductForm {
	f := ProductForm{
		Name:          strings.TrimSpace(v.Get("name")),
		Description:   strings.TrimSpace(v.Get("description")),
		Price:         strings.TrimSpace(v.Get("price")),
		OriginalPrice: strings.TrimSpace(v.Get("originalPrice")),
		Stock:         strings.TrimSpace(v.Get("stock")),
		Category:      utils.Compact(v["category"]),
		Images:        utils.Compact(v["images"]),
		ProductType:   strings.TrimSpace(v.Get("productType")),
		Attribute:     strings.TrimSpace(v.Get("attribute")),
		IsActive:      formBool(v.Get("isActive")),
		Weight:        strings.TrimSpace(v.Get("weight")),
		ShippingClass: strings.TrimSpace(v.Get("shippingClass")),
		Length:        strings.TrimSpace(v.Get("length")),
		Width:         strings.TrimSpace(v.Get("width")),
		Height:        strings.TrimSpace(v.Get("height")),
		NewCategory:   strings.TrimSpace(v.Get("newCategory")),
		NewSpecKey:    strings.TrimSpace(v.Get("newSpecKey")),
		NewSpecValue:  strings.TrimSpace(v.Get("newSpecValue")),
	}

	keys, values := v["specKey"], v["specValue"]
	for i := range keys {
		spec := SpecField{Key: strings.TrimSpace(keys[i])}
		if i < len(values) {
			spec.Value = strings.TrimSpace(values[i])
		}
		if spec.Key == "" && spec.Value == "" {
			continue
		}
		f.Specifications = append(f.Specifications, spec)
	}
	return f
}

// ProductFormFrom seeds an edit form from the stored product.
func ProductFormFrom(p *entity.Product) ProductForm {
	f := ProductForm{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.String(),
		OriginalPrice: p.OriginalPrice.String(),
		Stock:         fmt.Sprint(p.Stock),
		Category:      append([]string(nil), p.Category...),
		Images:        append([]string(nil), p.Images...),
		IsActive:      p.IsActive || p.Settings.IsActive,
		Weight:        p.ShippingInfo.Weight,
		ShippingClass: p.ShippingInfo.ShippingClass,
		Length:        p.ShippingInfo.Dimensions.Length,
		Width:         p.ShippingInfo.Dimensions.Width,
		Height:        p.ShippingInfo.Dimensions.Height,
	}
	for _, s := range p.Specifications {
		f.Specifications = append(f.Specifications, SpecField{Key: s.Key, Value: s.Value})
	}
	return f
}

// NewProductForm is the empty template of the add page.
func NewProductForm() ProductForm {
	return ProductForm{ProductType: string(entity.ProductSimple), IsActive: true}
}

// Apply runs a list op. It reports false for ops it does not know.
func (f *ProductForm) Apply(op Op) bool {
	switch op.Name {
	case "add-category":
		f.Category = appendUnique(f.Category, f.NewCategory)
		f.NewCategory = ""
	case "remove-category":
		f.Category = removeAt(f.Category, op.Index)
	case "add-spec":
		if f.NewSpecKey != "" && f.NewSpecValue != "" {
			f.Specifications = append(f.Specifications, SpecField{Key: f.NewSpecKey, Value: f.NewSpecValue})
			f.NewSpecKey, f.NewSpecValue = "", ""
		}
	case "remove-spec":
		f.Specifications = removeAt(f.Specifications, op.Index)
	case "remove-image":
		f.Images = removeAt(f.Images, op.Index)
	default:
		return false
	}
	return true
}

// Normalize folds pending inputs the user typed but did not add.
func (f *ProductForm) Normalize() {
	if f.NewCategory != "" {
		f.Category = appendUnique(f.Category, f.NewCategory)
		f.NewCategory = ""
	}
	if f.NewSpecKey != "" && f.NewSpecValue != "" {
		f.Specifications = append(f.Specifications, SpecField{Key: f.NewSpecKey, Value: f.NewSpecValue})
		f.NewSpecKey, f.NewSpecValue = "", ""
	}
	if f.ProductType != string(entity.ProductVariable) {
		f.Attribute = ""
	}
}

func (f *ProductForm) Validate() map[string]string {
	return utils.ValidateStruct(f)
}

// Input assembles the record for the backend. uploaded are the URLs returned
// by the media host for files picked in this submit.
func (f *ProductForm) Input(uploaded []string) (entity.ProductInput, error) {
	price, err := parseDecimal(f.Price)
	if err != nil {
		return entity.ProductInput{}, fmt.Errorf("price: %w", err)
	}
	original, err := parseDecimal(f.OriginalPrice)
	if err != nil {
		return entity.ProductInput{}, fmt.Errorf("originalPrice: %w", err)
	}
	stock, err := parseCount(f.Stock)
	if err != nil {
		return entity.ProductInput{}, fmt.Errorf("stock: %w", err)
	}

	images := make([]string, 0, len(f.Images)+len(uploaded))
	images = append(images, f.Images...)
	images = append(images, uploaded...)

	in := entity.ProductInput{
		Name:          f.Name,
		Description:   f.Description,
		Price:         price,
		OriginalPrice: original,
		Stock:         stock,
		Category:      append([]string(nil), f.Category...),
		Images:        images,
		IsActive:      f.IsActive,
		ProductType:   entity.ProductType(f.ProductType),
		Attribute:     f.Attribute,
	}
	for _, s := range f.Specifications {
		in.Specifications = append(in.Specifications, entity.Specification{Key: s.Key, Value: s.Value})
	}
	if f.Weight != "" || f.ShippingClass != "" || f.Length != "" || f.Width != "" || f.Height != "" {
		in.ShippingInfo = &entity.ShippingInfo{
			Weight:        f.Weight,
			ShippingClass: f.ShippingClass,
			Dimensions: entity.Dimensions{
				Length: f.Length,
				Width:  f.Width,
				Height: f.Height,
			},
		}
	}
	return in, nil
}

// Earnings is shown live on the add form.
func (f *ProductForm) Earnings() string {
	in, err := f.Input(nil)
	if err != nil || in.OriginalPrice.IsZero() {
		return ""
	}
	return in.Earnings().StringFixed(2)
}
