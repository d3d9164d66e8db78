package bank

import "errors"

var (
	// ErrDuplicateUser is returned when a CPF is already registered.
	ErrDuplicateUser = errors.New("a user with this cpf already exists")
	// ErrUnknownUser is returned when an operation names an unregistered CPF.
	ErrUnknownUser = errors.New("user not found")
	// ErrAccountNotFound is returned when an account number is not known.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAuthenticationFailed is returned for an unknown CPF or a wrong password alike.
	ErrAuthenticationFailed = errors.New("invalid credentials")
	// ErrInvalidDocument is returned when a stored document cannot be restored.
	ErrInvalidDocument = errors.New("invalid document")
)
