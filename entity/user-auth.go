package entity

import (
	"GolfInbox/internal/lib/validate"
	"net/http"
)

// AdminUsername is reported for requests made with the configured key.
const AdminUsername = "admin"

type UserAuth struct {
	Username string `json:"username" validate:"required"`
	Token    string `json:"token" validate:"required,min=1"`
}

func (u *UserAuth) Bind(_ *http.Request) error {
	return validate.Struct(u)
}

func (u *UserAuth) IsAdmin() bool {
	return u.Username == AdminUsername
}

type ApiKeyRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64,ne=admin"`
}

func (k *ApiKeyRequest) Bind(_ *http.Request) error {
	return validate.Struct(k)
}
