package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is returned by sign-up and sign-in.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	UserID string
	Email  string
}
