package request

import (
	"net/url"
	"strings"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/utils"
)

type StoreInfoForm struct {
	StoreName   string `form:"storeName" validate:"required"`
	Description string `form:"description"`
	Address     string `form:"address"`
	Phone       string `form:"phone"`
	Email       string `form:"email" validate:"omitempty,email"`
	Whatsapp    string `form:"whatsapp"`
	Instagram   string `form:"instagram" validate:"omitempty,url"`
	Facebook    string `form:"facebook" validate:"omitempty,url"`
	Twitter     string `form:"twitter" validate:"omitempty,url"`

	// current media, kept when no new file is chosen
	Logo   entity.Image `form:"-"`
	Banner entity.Image `form:"-"`
}

func BindStoreInfo(v url.Values) StoreInfoForm {
	return StoreInfoForm{
		StoreName:   strings.TrimSpace(v.Get("storeName")),
		Description: strings.TrimSpace(v.Get("description")),
		Address:     strings.TrimSpace(v.Get("address")),
		Phone:       strings.TrimSpace(v.Get("phone")),
		Email:       strings.TrimSpace(v.Get("email")),
		Whatsapp:    strings.TrimSpace(v.Get("whatsapp")),
		Instagram:   strings.TrimSpace(v.Get("instagram")),
		Facebook:    strings.TrimSpace(v.Get("facebook")),
		Twitter:     strings.TrimSpace(v.Get("twitter")),
		Logo:        entity.Image{URL: v.Get("logoUrl"), PublicID: v.Get("logoId")},
		Banner:      entity.Image{URL: v.Get("bannerUrl"), PublicID: v.Get("bannerId")},
	}
}

func StoreInfoFormFrom(s *entity.Store) StoreInfoForm {
	return StoreInfoForm{
		StoreName:   s.StoreName,
		Description: s.Description,
		Address:     s.Address,
		Phone:       s.Contact.Phone,
		Email:       s.Contact.Email,
		Whatsapp:    s.Contact.Whatsapp,
		Instagram:   s.SocialMedia.Instagram,
		Facebook:    s.SocialMedia.Facebook,
		Twitter:     s.SocialMedia.Twitter,
		Logo:        s.Media.Logo,
		Banner:      s.Media.Banner,
	}
}

func (f *StoreInfoForm) Validate() map[string]string {
	return utils.ValidateStruct(f)
}

// StoreUpdate is the body of POST /api/store/update.
type StoreUpdate struct {
	StoreName   string             `json:"storeName"`
	Description string             `json:"description"`
	Address     string             `json:"address"`
	Contact     entity.Contact     `json:"contact"`
	SocialMedia entity.SocialMedia `json:"socialMedia"`
	Media       entity.StoreMedia  `json:"media"`
}

func (f *StoreInfoForm) Update() StoreUpdate {
	return StoreUpdate{
		StoreName:   f.StoreName,
		Description: f.Description,
		Address:     f.Address,
		Contact:     entity.Contact{Phone: f.Phone, Email: f.Email, Whatsapp: f.Whatsapp},
		SocialMedia: entity.SocialMedia{Instagram: f.Instagram, Facebook: f.Facebook, Twitter: f.Twitter},
		Media:       entity.StoreMedia{Logo: f.Logo, Banner: f.Banner},
	}
}
