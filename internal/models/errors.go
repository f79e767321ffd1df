package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateEmail   = errors.New("user already exists with this email")
	ErrUserNotFound     = errors.New("user not found")
	ErrPropertyNotFound = errors.New("property not found or unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrNoImages         = errors.New("no images provided")
)

// ValidationError names the fields of a create/update payload that
// failed store-level validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for fields: %s", strings.Join(e.Fields, ", "))
}
