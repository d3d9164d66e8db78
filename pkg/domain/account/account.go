package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a deposit or withdrawal amount is not positive.
	ErrInvalidAmount = errors.New("transaction amount must be positive")

	// ErrTooManyDecimals is returned when an amount carries fractions of a cent.
	ErrTooManyDecimals = errors.New("amount must not have more than 2 decimal places")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPerOperationLimitExceeded is returned when a single withdrawal exceeds the per-operation limit.
	ErrPerOperationLimitExceeded = errors.New("withdrawal exceeds per-operation limit")

	// ErrDailyLimitExceeded is returned when the daily number of withdrawals has been reached.
	ErrDailyLimitExceeded = errors.New("daily withdrawal limit reached")

	// ErrBalanceMismatch is returned when a hydrated balance disagrees with its transaction log.
	ErrBalanceMismatch = errors.New("balance does not match transaction log")

	// ErrNumberRequired is returned when an account is built without a number.
	ErrNumberRequired = errors.New("account number is required")

	// ErrOwnerRequired is returned when an account is built without an owner.
	ErrOwnerRequired = errors.New("owner cpf is required")

	// ErrInvalidLimits is returned when the configured withdrawal limits are not usable.
	ErrInvalidLimits = errors.New("invalid withdrawal limits")
)

const (
	// DefaultAgency is the branch code given to accounts that do not specify one.
	DefaultAgency = "0001"
	// DefaultDailyWithdrawLimit is the number of withdrawals allowed per calendar day.
	DefaultDailyWithdrawLimit = 3
)

// amountPlaces is the number of decimal places a transaction amount may carry.
const amountPlaces = 2

// DefaultPerWithdrawLimit is the largest amount a single withdrawal may take.
var DefaultPerWithdrawLimit = decimal.NewFromInt(500)

// balanceTolerance absorbs float rounding noise carried by older documents.
var balanceTolerance = decimal.New(5, -3)

// Clock returns the current time. Accounts use it for transaction
// timestamps and to decide what "today" is.
type Clock func() time.Time

// Account is the per-account ledger: an append-only transaction log and a
// cached balance that always equals the sum of the log.
//
// Invariants:
//   - balance == sum(transactions[].Amount) after every mutation.
//   - No withdrawal takes more than PerWithdrawLimit.
//   - At most DailyWithdrawLimit withdrawals are dated on any calendar day.
//   - A withdrawal never makes the balance negative.
type Account struct {
	Number             string
	Agency             string
	OwnerCPF           string
	DailyWithdrawLimit int
	PerWithdrawLimit   decimal.Decimal

	balance      decimal.Decimal
	transactions []Transaction
	now          Clock
}

// Builder provides a fluent API for constructing Account instances, both
// fresh ones and ones hydrated from a stored document.
type Builder struct {
	number             string
	agency             string
	ownerCPF           string
	dailyWithdrawLimit int
	perWithdrawLimit   decimal.Decimal
	balance            *decimal.Decimal
	transactions       []Transaction
	now                Clock
}

// New creates a new Builder with the standard defaults for agency and limits.
func New() *Builder {
	return &Builder{
		agency:             DefaultAgency,
		dailyWithdrawLimit: DefaultDailyWithdrawLimit,
		perWithdrawLimit:   DefaultPerWithdrawLimit,
		now:                time.Now,
	}
}

// WithNumber sets the account number. This is a mandatory field.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithAgency sets the agency. An empty value keeps the default.
func (b *Builder) WithAgency(agency string) *Builder {
	if agency != "" {
		b.agency = agency
	}
	return b
}

// WithOwner sets the owner's CPF. This is a mandatory field.
func (b *Builder) WithOwner(cpf string) *Builder {
	b.ownerCPF = cpf
	return b
}

// WithDailyWithdrawLimit sets how many withdrawals are allowed per day.
func (b *Builder) WithDailyWithdrawLimit(limit int) *Builder {
	b.dailyWithdrawLimit = limit
	return b
}

// WithPerWithdrawLimit sets the largest amount a single withdrawal may take.
func (b *Builder) WithPerWithdrawLimit(limit decimal.Decimal) *Builder {
	b.perWithdrawLimit = limit
	return b
}

// WithBalance sets the stored balance to check against the transaction log.
// This should only be used when hydrating an account from a data store.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = &balance
	return b
}

// WithTransactions sets the transaction log. This should only be used when
// hydrating an account from a data store or for test setup.
func (b *Builder) WithTransactions(txs []Transaction) *Builder {
	b.transactions = append([]Transaction(nil), txs...)
	return b
}

// WithClock sets the time source used for timestamps and the daily limit.
func (b *Builder) WithClock(now Clock) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// Build validates the collected fields and returns the Account. The balance
// is always recomputed from the transaction log; a stored balance set with
// WithBalance must agree with it.
func (b *Builder) Build() (*Account, error) {
	if b.number == "" {
		return nil, ErrNumberRequired
	}
	if b.ownerCPF == "" {
		return nil, ErrOwnerRequired
	}
	if b.dailyWithdrawLimit < 0 || !b.perWithdrawLimit.IsPositive() {
		return nil, ErrInvalidLimits
	}
	sum := decimal.Zero
	for _, tx := range b.transactions {
		sum = sum.Add(tx.Amount)
	}
	if b.balance != nil && b.balance.Sub(sum).Abs().GreaterThan(balanceTolerance) {
		return nil, ErrBalanceMismatch
	}
	return &Account{
		Number:             b.number,
		Agency:             b.agency,
		OwnerCPF:           b.ownerCPF,
		DailyWithdrawLimit: b.dailyWithdrawLimit,
		PerWithdrawLimit:   b.perWithdrawLimit,
		balance:            sum,
		transactions:       b.transactions,
		now:                b.now,
	}, nil
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Transactions returns a copy of the transaction log in insertion order.
func (a *Account) Transactions() []Transaction {
	return append([]Transaction(nil), a.transactions...)
}

// Deposit adds amount to the balance and records a deposit.
func (a *Account) Deposit(amount decimal.Decimal, note string) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	a.record(newTransaction(KindDeposit, amount, a.now(), note))
	return nil
}

// Withdraw takes amount from the balance and records a withdrawal with a
// negative amount. Checks run in a fixed order and the first failure is
// returned:
//   - amount must be positive with at most 2 decimal places
//   - amount must not exceed the balance
//   - amount must not exceed PerWithdrawLimit
//   - fewer than DailyWithdrawLimit withdrawals may exist today
func (a *Account) Withdraw(amount decimal.Decimal, note string) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	if amount.GreaterThan(a.PerWithdrawLimit) {
		return ErrPerOperationLimitExceeded
	}
	if a.WithdrawalsToday() >= a.DailyWithdrawLimit {
		return ErrDailyLimitExceeded
	}
	a.record(newTransaction(KindWithdrawal, amount.Neg(), a.now(), note))
	return nil
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(amountPlaces)) {
		return ErrTooManyDecimals
	}
	return nil
}

// WithdrawalsToday counts the withdrawals dated on the clock's current day.
func (a *Account) WithdrawalsToday() int {
	today := dateOf(a.now())
	n := 0
	for _, tx := range a.transactions {
		if tx.Kind == KindWithdrawal && dateOf(tx.Timestamp).Equal(today) {
			n++
		}
	}
	return n
}

// Statement returns the transactions whose calendar date falls within
// [from, to], both inclusive, and the net of their amounts. A zero bound is
// open. The net covers the window only; it is not the account balance.
func (a *Account) Statement(from, to time.Time) ([]Transaction, decimal.Decimal) {
	var (
		out []Transaction
		net = decimal.Zero
	)
	for _, tx := range a.transactions {
		d := dateOf(tx.Timestamp)
		if !from.IsZero() && d.Before(dateOf(from)) {
			continue
		}
		if !to.IsZero() && d.After(dateOf(to)) {
			continue
		}
		out = append(out, tx)
		net = net.Add(tx.Amount)
	}
	return out, net
}

func (a *Account) record(tx Transaction) {
	a.balance = a.balance.Add(tx.Amount)
	a.transactions = append(a.transactions, tx)
}

// dateOf truncates t to its calendar date in t's own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
