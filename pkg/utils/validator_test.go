package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tagForm struct {
	Name   string   `form:"name" validate:"required"`
	Images []string `form:"images" validate:"dive,http_url"`
	Sizes  []string `form:"sizes" validate:"min=1,dive,oneof=S M L"`
}

func TestValidateStructKeysByFormName(t *testing.T) {
	errs := ValidateStruct(tagForm{
		Images: []string{"https://cdn.example.com/a.png", "blob:http://localhost/1"},
		Sizes:  []string{"M", "XXL", "XXXL"},
	})

	assert.Equal(t, map[string]string{
		"name":   "This field is required",
		"images": "Must be a valid URL",
		"sizes":  "Must be one of: S, M, L",
	}, errs)

	assert.Nil(t, ValidateStruct(tagForm{Name: "Tee", Sizes: []string{"S"}}))
	assert.Equal(t, "At least one size is required", ValidateStruct(tagForm{Name: "Tee"})["sizes"])
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"sizes": "b", "images": "a"})
	assert.Equal(t, "images: a; sizes: b", got)
}
