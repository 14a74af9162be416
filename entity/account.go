package entity

import "time"

// Account is a row from the identity backend's users table, read through
// the replica connection for the admin dashboard. Provisioned accounts show
// up here once the identity provider has accepted them.
type Account struct {
	Id           string     `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}
