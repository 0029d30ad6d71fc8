package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash holds a PHC-format Argon2id hash and is never serialized
// outward; handlers return PublicUser instead.
type User struct {
	ID           string
	Email        string
	Name         string
	AvatarURL    string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Public strips everything a client must not see, most importantly the
// password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
