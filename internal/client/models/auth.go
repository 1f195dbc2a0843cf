package models

import "time"

// AuthResult is returned by the login and register endpoints.
type AuthResult struct {
	Token    string
	Username string
	Role     string
}

// RegisterRequest carries the optional email verification proof alongside
// credentials.
type RegisterRequest struct {
	Username       string
	Password       string
	Email          string
	EmailCode      string
	EmailRequestID string
}

type EmailCodeSent struct {
	RequestID         string
	ResendAvailableAt *time.Time
	ExpiresAt         *time.Time
	SendStatus        string
}

type EmailCodeVerified struct {
	Verified          bool
	ExpiresAt         *time.Time
	AttemptsRemaining *int
}

type EmailSendStatus struct {
	Status    string
	LastError string
}
