package entity

import "errors"

var (
	// ErrDuplicateEmail reports a submission insert that collided with the
	// unique email index. Handlers map it to 409.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidMode reports a site mode value outside the known set.
	ErrInvalidMode = errors.New("invalid site mode")

	// ErrAccountExists is returned by the provisioner when the identity
	// backend already holds an account for the email. Callers treat it as
	// success.
	ErrAccountExists = errors.New("account already exists")
)
