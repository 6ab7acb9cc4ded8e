package domain

import "time"

// Hospital is the read-only summary embedded on ward records. Hospital
// management itself lives outside this service.
type Hospital struct {
	ID   string `json:"hosId"`
	Name string `json:"hosName"`
	Pic  string `json:"hosPic,omitempty"`
}

// Ward belongs to exactly one hospital and groups zero or more users.
type Ward struct {
	ID         string    `json:"id"`
	Name       string    `json:"wardName"`
	Type       string    `json:"type,omitempty"`
	HospitalID string    `json:"hosId"`
	Hospital   *Hospital `json:"hospital,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
