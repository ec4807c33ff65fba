package models

import "time"

// User is a stored account. PasswordHash never leaves the service layer.
type User struct {
	ID           int64
	Firstname    string
	Lastname     string
	Fullname     string
	Username     string
	PasswordHash string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
