package entity

import "time"

// Role controls access to the admin surface.
type Role string

const (
	RoleUser  Role = "user"  // can authenticate, no admin endpoints
	RoleAdmin Role = "admin" // full dashboard access
)

// User represents both an API user (Token-based auth) and a Telegram alert
// subscriber. Telegram fields are populated by ops when a chat is linked.
type User struct {
	Username        string    `json:"username" bson:"username" validate:"required"`
	Name            string    `json:"name" bson:"name" validate:"omitempty"`
	Email           string    `json:"email" bson:"email" validate:"omitempty"`
	Token           string    `json:"token" bson:"token" validate:"required,min=1"`
	Role            Role      `json:"role" bson:"role"`
	TelegramId      int64     `json:"telegram_id" bson:"telegram_id"`
	TelegramEnabled bool      `json:"telegram_enabled" bson:"telegram_enabled"`
	LogLevel        int       `json:"log_level" bson:"log_level"`
	RegisteredAt    time.Time `json:"registered_at" bson:"registered_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
