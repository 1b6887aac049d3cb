package entity

// DirectoryUser is a staff member known to the backoffice.
type DirectoryUser struct {
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
}

// Name falls back to the email when no display name is set.
func (u DirectoryUser) Name() string {
	if u.DisplayName == nil || *u.DisplayName == "" {
		return u.Email
	}
	return *u.DisplayName
}
