package layout

import (
	"strings"

	"marketplace-console/internal/data/entity"
)

type Panel string

const (
	PanelAdmin  Panel = "admin"
	PanelVendor Panel = "vendor"
)

func (p Panel) Root() string      { return "/" + string(p) }
func (p Panel) LoginPath() string { return p.Root() + "/login" }
func (p Panel) LogoutPath() string {
	return p.Root() + "/logout"
}

func (p Panel) Title() string {
	if p == PanelAdmin {
		return "Admin Panel"
	}
	return "Seller Dashboard"
}

// Role is the principal role a panel is open to.
func (p Panel) Role() entity.UserRole {
	if p == PanelAdmin {
		return entity.RoleAdmin
	}
	return entity.RoleSeller
}

type Link struct {
	Label string
	Path  string
	Icon  string
}

var adminLinks = []Link{
	{Label: "Dashboard", Path: "/admin", Icon: "dashboard"},
	{Label: "Sellers", Path: "/admin/sellers", Icon: "users"},
	{Label: "Stores", Path: "/admin/stores", Icon: "store"},
	{Label: "Orders", Path: "/admin/orders", Icon: "cart"},
	{Label: "Products", Path: "/admin/products", Icon: "box"},
	{Label: "Categories", Path: "/admin/categories", Icon: "tag"},
}

var vendorLinks = []Link{
	{Label: "Dashboard", Path: "/vendor", Icon: "dashboard"},
	{Label: "Products", Path: "/vendor/products", Icon: "box"},
	{Label: "Add Product", Path: "/vendor/add-product", Icon: "plus"},
	{Label: "Store Info", Path: "/vendor/store-info", Icon: "store"},
	{Label: "Orders", Path: "/vendor/orders", Icon: "cart"},
	{Label: "Shipping", Path: "/vendor/shipping", Icon: "truck"},
	{Label: "Attributes", Path: "/vendor/attributes", Icon: "sliders"},
}

func (p Panel) Links() []Link {
	if p == PanelAdmin {
		return adminLinks
	}
	return vendorLinks
}

// NavItem is a sidebar entry as rendered for one request.
type NavItem struct {
	Link
	Active bool
}

// Nav marks the link matching path. The panel root only matches exactly,
// every other link also matches its sub-paths.
func (p Panel) Nav(path string) []NavItem {
	links := p.Links()
	items := make([]NavItem, len(links))
	for i, l := range links {
		items[i] = NavItem{Link: l, Active: IsActive(l.Path, path, p.Root())}
	}
	return items
}

func IsActive(link, path, root string) bool {
	path = strings.TrimRight(path, "/")
	if path == "" {
		path = "/"
	}
	if link == root {
		return path == root
	}
	return path == link || strings.HasPrefix(path, link+"/")
}
