package repository

import "github.com/shopspring/decimal"

// User represents a user record in the database.
type User struct {
	CPF          string `gorm:"primaryKey;size:32"`
	Name         string `gorm:"size:255"`
	PasswordHash string `gorm:"not null"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Account represents an account record in the database. OwnerPosition is
// the account's index in its owner's account list, -1 when the owner does
// not list it. The limit columns are NULL when the document left them out.
// Amounts are stored as decimal strings.
type Account struct {
	Number                string          `gorm:"primaryKey;size:32"`
	Agency                string          `gorm:"size:16;not null"`
	OwnerCPF              string          `gorm:"size:32;not null;index"`
	OwnerPosition         int             `gorm:"not null"`
	Balance               decimal.Decimal `gorm:"type:varchar(64);not null"`
	DailyWithdrawLimit    *int
	PerWithdrawLimitValue *decimal.Decimal `gorm:"type:varchar(64)"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction represents a persisted ledger entry. Position keeps the
// insertion order within the account.
type Transaction struct {
	ID            string          `gorm:"primaryKey;size:36"`
	AccountNumber string          `gorm:"size:32;not null;index"`
	Position      int             `gorm:"not null"`
	Kind          string          `gorm:"size:16;not null"`
	Amount        decimal.Decimal `gorm:"type:varchar(64);not null"`
	Timestamp     string          `gorm:"size:40;not null"`
	Note          string
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
