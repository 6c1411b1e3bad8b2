package models

import "time"

// User is the persisted account record. PasswordHash is the sole credential
// artifact stored and never leaves the service layer.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}
