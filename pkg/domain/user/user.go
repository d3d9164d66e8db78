package user

import (
	"errors"
	"slices"
)

var (
	// ErrCPFRequired is returned when a user is created without a CPF.
	ErrCPFRequired = errors.New("cpf cannot be empty")
	// ErrPasswordHashRequired is returned when a user is created without a password hash.
	ErrPasswordHashRequired = errors.New("password hash cannot be empty")
)

// User is a registered person. CPF is the primary key; Accounts lists the
// numbers of the accounts the user owns, in creation order. The account
// objects themselves live in the bank.
type User struct {
	CPF          string
	Name         string
	PasswordHash string
	Accounts     []string
}

// New creates a User from an already hashed password.
func New(cpf, name, passwordHash string) (*User, error) {
	if cpf == "" {
		return nil, ErrCPFRequired
	}
	if passwordHash == "" {
		return nil, ErrPasswordHashRequired
	}
	return &User{
		CPF:          cpf,
		Name:         name,
		PasswordHash: passwordHash,
	}, nil
}

// NewFromData creates a User from raw data (used for document hydration).
func NewFromData(cpf, name, passwordHash string, accounts []string) *User {
	return &User{
		CPF:          cpf,
		Name:         name,
		PasswordHash: passwordHash,
		Accounts:     slices.Clone(accounts),
	}
}

// AddAccount appends an account number to the user's list.
func (u *User) AddAccount(number string) {
	u.Accounts = append(u.Accounts, number)
}

// Owns reports whether number is one of the user's accounts.
func (u *User) Owns(number string) bool {
	return slices.Contains(u.Accounts, number)
}
