package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Admin is the single operator account of the service.
type Admin struct {
	Username string `json:"username"`
}
