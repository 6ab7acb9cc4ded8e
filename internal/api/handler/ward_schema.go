package handler

type createWardRequest struct {
	Name       string `json:"wardName" validate:"required"`
	Type       string `json:"type"`
	HospitalID string `json:"hosId"    validate:"required"`
}

type updateWardRequest struct {
	Name *string `json:"wardName"`
	Type *string `json:"type"`
}
