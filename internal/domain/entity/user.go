package entity

import (
	"time"
)

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`

	JoinedAt  time.Time `json:"joined_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
