package dto

import "time"

// AdminCredentialsRequest payload for signup and login.
type AdminCredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminResponse exposes the public admin fields.
type AdminResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse is returned on successful login.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
