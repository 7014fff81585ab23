// Package account holds API users and verifies their credentials.
package account

import "errors"

// Roles known to the API.
const (
	RoleAdmin = "Administrador"
	RoleUser  = "Usuario"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when the username is already taken.
	ErrUserExists = errors.New("user already exists")
)

// User is an account allowed to request tokens.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
}
