package commander

import (
	"time"
)

type Role string

const (
	RoleCommander Role = "commander"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) Role {
	if s == "admin" {
		return RoleAdmin
	}
	return RoleCommander
}

// Commander is an account that can own campaigns and drive the simulation
// mutation surface.
type Commander struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
