package layout

import (
	"testing"

	"marketplace-console/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func active(items []NavItem) []string {
	var out []string
	for _, it := range items {
		if it.Active {
			out = append(out, it.Path)
		}
	}
	return out
}

func TestNavActiveLink(t *testing.T) {
	tests := []struct {
		name  string
		panel Panel
		path  string
		want  []string
	}{
		{"admin root exact", PanelAdmin, "/admin", []string{"/admin"}},
		{"admin root trailing slash", PanelAdmin, "/admin/", []string{"/admin"}},
		{"root does not prefix match", PanelAdmin, "/admin/sellers", []string{"/admin/sellers"}},
		{"sub path", PanelAdmin, "/admin/stores/s1", []string{"/admin/stores"}},
		{"vendor products does not catch add-product", PanelVendor, "/vendor/add-product", []string{"/vendor/add-product"}},
		{"vendor nested", PanelVendor, "/vendor/attributes/a1/edit", []string{"/vendor/attributes"}},
		{"edit product has no sidebar entry", PanelVendor, "/vendor/edit-product/p1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, active(tt.panel.Nav(tt.path)))
		})
	}
}

func TestPanelPaths(t *testing.T) {
	assert.Equal(t, "/admin/login", PanelAdmin.LoginPath())
	assert.Equal(t, "/vendor/logout", PanelVendor.LogoutPath())
	assert.Equal(t, entity.RoleSeller, PanelVendor.Role())
	assert.Len(t, PanelAdmin.Links(), 6)
	assert.Len(t, PanelVendor.Links(), 7)
}
