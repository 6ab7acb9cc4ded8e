package handler

type updateUserRequest struct {
	Display *string `form:"display" json:"display"`
	Role    *string `form:"role"    json:"role"    validate:"omitempty,oneof=SUPER ADMIN LEGACY_ADMIN SERVICE STAFF"`
	WardID  *string `form:"wardId"  json:"wardId"`
}
