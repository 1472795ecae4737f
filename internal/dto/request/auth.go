package request

import (
	"net/url"
	"strings"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func BindLogin(v url.Values) LoginRequest {
	return LoginRequest{
		Email:    strings.TrimSpace(v.Get("email")),
		Password: v.Get("password"),
	}
}
