package entity

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleSeller UserRole = "seller"
)

type User struct {
	Base
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone,omitempty"`
	Role       UserRole    `json:"role"`
	SellerInfo *SellerInfo `json:"sellerInfo,omitempty"`
}

type SellerInfo struct {
	ShopName string `json:"shopName,omitempty"`
}

// DisplayName is used by the topbar.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
