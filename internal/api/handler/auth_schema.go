package handler

type registerRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=3"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
	Display  string `form:"display"  json:"display"  validate:"required"`
	Role     string `form:"role"     json:"role"     validate:"required,oneof=SUPER ADMIN LEGACY_ADMIN SERVICE STAFF"`
	WardID   string `form:"wardId"   json:"wardId"   validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type resetPasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"password" validate:"required,min=6"`
}

type messageResponse struct {
	Message string `json:"message"`
}
