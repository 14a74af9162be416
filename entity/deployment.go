package entity

import "time"

// Deployment mirrors the deployment service's deploy object, reduced to the
// fields the admin dashboard shows.
type Deployment struct {
	Id        string    `json:"id"`
	State     string    `json:"state"`
	Branch    string    `json:"branch,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
