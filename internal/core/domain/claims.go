package domain

// Claims is the payload carried by both access and refresh tokens. It is
// derived from a user at login time and never persisted; a refresh re-signs
// the decoded claims without consulting the store.
type Claims struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	HospitalID string `json:"hosId"`
	WardID     string `json:"wardId"`
}
