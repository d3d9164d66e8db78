// Package bank is the in-memory repository of users and accounts. It
// creates and links them, authenticates users and converts the whole state
// to and from the persisted document.
package bank

import (
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/amirasaad/bankcli/pkg/domain/account"
	"github.com/amirasaad/bankcli/pkg/domain/user"
	"github.com/amirasaad/bankcli/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// firstAccountNumber is the base new account numbers count up from.
const firstAccountNumber = 100000

// PasswordHasher hashes passwords one way and checks a password against a
// stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// AccountDefaults are applied to new accounts and to stored accounts that
// leave a field out.
type AccountDefaults struct {
	Agency             string
	DailyWithdrawLimit int
	PerWithdrawLimit   decimal.Decimal
}

// StandardDefaults returns agency "0001", 3 withdrawals a day and 500.00
// per withdrawal.
func StandardDefaults() AccountDefaults {
	return AccountDefaults{
		Agency:             account.DefaultAgency,
		DailyWithdrawLimit: account.DefaultDailyWithdrawLimit,
		PerWithdrawLimit:   account.DefaultPerWithdrawLimit,
	}
}

// Option configures a Bank.
type Option func(*Bank)

// WithClock sets the time source handed to every account.
func WithClock(now account.Clock) Option {
	return func(b *Bank) {
		if now != nil {
			b.now = now
		}
	}
}

// WithHasher sets the password hasher.
func WithHasher(h PasswordHasher) Option {
	return func(b *Bank) {
		if h != nil {
			b.hasher = h
		}
	}
}

// WithAccountDefaults sets the defaults for agency and withdrawal limits.
func WithAccountDefaults(d AccountDefaults) Option {
	return func(b *Bank) {
		b.defaults = d
	}
}

// Bank owns every User and Account for the lifetime of the process.
// It is not safe for concurrent use; one operator drives one session.
type Bank struct {
	users    map[string]*user.User
	accounts map[string]*account.Account

	hasher   PasswordHasher
	decoy    string
	now      account.Clock
	defaults AccountDefaults
	logger   *slog.Logger
}

// New creates an empty Bank.
func New(logger *slog.Logger, opts ...Option) *Bank {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bank{
		users:    make(map[string]*user.User),
		accounts: make(map[string]*account.Account),
		hasher:   utils.BcryptHasher{Cost: bcrypt.DefaultCost},
		now:      time.Now,
		defaults: StandardDefaults(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateUser registers a user. The password is hashed before it is stored
// and is not kept anywhere else.
func (b *Bank) CreateUser(cpf, name, password string) (*user.User, error) {
	if _, ok := b.users[cpf]; ok {
		b.logger.Warn("user already registered", "cpf", cpf)
		return nil, ErrDuplicateUser
	}
	hash, err := b.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u, err := user.New(cpf, name, hash)
	if err != nil {
		return nil, err
	}
	b.users[cpf] = u
	b.logger.Debug("user created", "cpf", cpf)
	return u, nil
}

// Authenticate returns the user when password matches. Unknown users and
// wrong passwords fail with the same error.
func (b *Bank) Authenticate(cpf, password string) (*user.User, error) {
	u, ok := b.users[cpf]
	if !ok {
		// Unknown CPFs pay for a hash check too, so both failures take as long.
		b.hasher.Verify(b.decoyHash(), password)
		b.logger.Warn("authentication failed", "cpf", cpf)
		return nil, ErrAuthenticationFailed
	}
	if !b.hasher.Verify(u.PasswordHash, password) {
		b.logger.Warn("authentication failed", "cpf", cpf)
		return nil, ErrAuthenticationFailed
	}
	b.logger.Debug("user authenticated", "cpf", cpf)
	return u, nil
}

// decoyHash returns a hash made by the configured hasher, created on first use.
func (b *Bank) decoyHash() string {
	if b.decoy == "" {
		if h, err := b.hasher.Hash("unknown user"); err == nil {
			b.decoy = h
		}
	}
	return b.decoy
}

// CreateAccount opens an account for a registered user and appends its
// number to the user's account list.
func (b *Bank) CreateAccount(ownerCPF string) (*account.Account, error) {
	u, ok := b.users[ownerCPF]
	if !ok {
		return nil, ErrUnknownUser
	}
	acc, err := account.New().
		WithNumber(b.nextAccountNumber()).
		WithAgency(b.defaults.Agency).
		WithOwner(ownerCPF).
		WithDailyWithdrawLimit(b.defaults.DailyWithdrawLimit).
		WithPerWithdrawLimit(b.defaults.PerWithdrawLimit).
		WithClock(b.now).
		Build()
	if err != nil {
		return nil, err
	}
	b.accounts[acc.Number] = acc
	u.AddAccount(acc.Number)
	b.logger.Debug("account created", "cpf", ownerCPF, "number", acc.Number)
	return acc, nil
}

// GetAccount looks an account up by number.
func (b *Bank) GetAccount(number string) (*account.Account, error) {
	acc, ok := b.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

// GetUser looks a user up by CPF.
func (b *Bank) GetUser(cpf string) (*user.User, error) {
	u, ok := b.users[cpf]
	if !ok {
		return nil, ErrUnknownUser
	}
	return u, nil
}

// Accounts returns the accounts of a user in the order they were opened.
func (b *Bank) Accounts(cpf string) ([]*account.Account, error) {
	u, ok := b.users[cpf]
	if !ok {
		return nil, ErrUnknownUser
	}
	out := make([]*account.Account, 0, len(u.Accounts))
	for _, n := range u.Accounts {
		acc, err := b.GetAccount(n)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

// AccountNumbers returns every account number, sorted.
func (b *Bank) AccountNumbers() []string {
	out := make([]string, 0, len(b.accounts))
	for n := range b.accounts {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// nextAccountNumber derives the number from the account count. Accounts are
// never deleted, so the count only grows; a number already taken by a
// hand-edited document is skipped.
func (b *Bank) nextAccountNumber() string {
	n := firstAccountNumber + len(b.accounts) + 1
	for {
		number := strconv.Itoa(n)
		if _, taken := b.accounts[number]; !taken {
			return number
		}
		n++
	}
}
