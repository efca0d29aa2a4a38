package domain

import "time"

// Admin is the credential record for dashboard operators.
// PasswordHash never leaves the process.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
