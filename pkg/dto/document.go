package dto

import "github.com/shopspring/decimal"

// Amounts are written as plain JSON numbers and read back without passing
// through float64.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// TimestampLayout is the local ISO-8601 form transactions are stored with.
// It carries no zone; readers interpret it in the local time zone.
const TimestampLayout = "2006-01-02T15:04:05.999999999"

// Document is the persisted shape of the whole bank: every user keyed by
// CPF and every account keyed by number.
type Document struct {
	Users    map[string]UserRecord    `json:"users" validate:"dive"`
	Accounts map[string]AccountRecord `json:"accounts" validate:"dive"`
}

// UserRecord is the stored form of a user.
type UserRecord struct {
	CPF          string   `json:"cpf" validate:"required"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"password_hash" validate:"required"`
	Accounts     []string `json:"accounts" validate:"dive,required"`
}

// AccountRecord is the stored form of an account. The limit fields are
// optional; older documents do not carry them.
type AccountRecord struct {
	Number                string              `json:"number" validate:"required"`
	Agency                string              `json:"agency"`
	OwnerCPF              string              `json:"owner_cpf" validate:"required"`
	Balance               decimal.Decimal     `json:"balance"`
	Transactions          []TransactionRecord `json:"transactions" validate:"dive"`
	DailyWithdrawLimit    *int                `json:"daily_withdraw_limit,omitempty" validate:"omitempty,gte=0"`
	PerWithdrawLimitValue *decimal.Decimal    `json:"per_withdraw_limit_value,omitempty"`
}

// TransactionRecord is the stored form of a transaction. Amount is signed.
type TransactionRecord struct {
	ID        string          `json:"id,omitempty" validate:"omitempty,uuid"`
	Kind      string          `json:"kind" validate:"required,oneof=DEPOSITO SAQUE"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp string          `json:"timestamp" validate:"required"`
	Note      string          `json:"note"`
}

// NewDocument returns an empty document with initialized maps.
func NewDocument() *Document {
	return &Document{
		Users:    map[string]UserRecord{},
		Accounts: map[string]AccountRecord{},
	}
}
