package dto

type RegisterDTO struct {
	Handle    string `json:"handle"    validate:"required,alphanum,min=3,max=20"`
	Email     string `json:"email"     validate:"required,email"`
	FullName  string `json:"fullName"  validate:"required,max=80"`
	Password  string `json:"password"  validate:"required,strongpwd"`
	AvatarURL string `json:"avatarUrl" validate:"required,url"`
	CoverURL  string `json:"coverUrl"  validate:"omitempty,url"`
}

// LoginDTO accepts a handle or an email in Identifier.
type LoginDTO struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type ValidateDTO struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strongpwd"`
}

// UpdateAccountDTO needs at least one field; the service enforces that.
type UpdateAccountDTO struct {
	FullName string `json:"fullName" validate:"omitempty,max=80"`
	Email    string `json:"email"    validate:"omitempty,email"`
}
