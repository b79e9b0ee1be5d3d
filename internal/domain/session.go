package domain

import "time"

// Session is an authenticated user session held by the auth slice.
type Session struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Token       string    `json:"token"`
	IssuedAt    time.Time `json:"issuedAt"`
}

// Credentials are the sign-in input.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"-" validate:"required,min=8"`
}
