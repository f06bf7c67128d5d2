// Package common contains shared constants, sentinel errors and small helpers
// used by the panel, the console and the API client.
package common

// Outbound header names.
const (
	AuthorizationHeader = "Authorization"
	UserEmailHeader     = "X-User-Email"
	APIKeyHeader        = "apikey"
	BearerPrefix        = "Bearer "
)

// Roles as the backend spells them.
const (
	RoleUser       = "USUARIO"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPERADMIN"
)
