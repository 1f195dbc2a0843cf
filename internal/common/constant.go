// Package common holds the header names, sentinel errors and byte helpers
// shared by the gateway, the services and the CLI.
package common

const (
	AuthorizationHeader = "Authorization"
	ContentTypeHeader   = "Content-Type"
	RequestIDHeader     = "X-Request-Id"

	BearerPrefix    = "Bearer "
	JSONContentType = "application/json"
)

// Role tags returned by the backend on login.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
