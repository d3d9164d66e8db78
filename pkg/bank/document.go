package bank

import (
	"fmt"
	"time"

	"github.com/amirasaad/bankcli/pkg/domain/account"
	"github.com/amirasaad/bankcli/pkg/domain/user"
	"github.com/amirasaad/bankcli/pkg/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Snapshot converts the whole state into a document.
func (b *Bank) Snapshot() *dto.Document {
	doc := dto.NewDocument()
	for cpf, u := range b.users {
		doc.Users[cpf] = dto.UserRecord{
			CPF:          u.CPF,
			Name:         u.Name,
			PasswordHash: u.PasswordHash,
			Accounts:     append([]string{}, u.Accounts...),
		}
	}
	for number, acc := range b.accounts {
		doc.Accounts[number] = accountRecord(acc)
	}
	return doc
}

func accountRecord(acc *account.Account) dto.AccountRecord {
	txs := acc.Transactions()
	records := make([]dto.TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		records = append(records, dto.TransactionRecord{
			ID:        tx.ID.String(),
			Kind:      string(tx.Kind),
			Amount:    tx.Amount,
			Timestamp: FormatTimestamp(tx.Timestamp),
			Note:      tx.Note,
		})
	}
	limit := acc.DailyWithdrawLimit
	perWithdraw := acc.PerWithdrawLimit
	return dto.AccountRecord{
		Number:                acc.Number,
		Agency:                acc.Agency,
		OwnerCPF:              acc.OwnerCPF,
		Balance:               acc.Balance(),
		Transactions:          records,
		DailyWithdrawLimit:    &limit,
		PerWithdrawLimitValue: &perWithdraw,
	}
}

// Restore replaces the whole state with the content of doc. Every record is
// validated and missing optional fields take the configured defaults. On
// error the bank keeps its previous state.
func (b *Bank) Restore(doc *dto.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	users := make(map[string]*user.User, len(doc.Users))
	for key, rec := range doc.Users {
		if key != rec.CPF {
			return fmt.Errorf("%w: user key %q holds cpf %q", ErrInvalidDocument, key, rec.CPF)
		}
		users[key] = user.NewFromData(rec.CPF, rec.Name, rec.PasswordHash, rec.Accounts)
	}

	accounts := make(map[string]*account.Account, len(doc.Accounts))
	for key, rec := range doc.Accounts {
		if key != rec.Number {
			return fmt.Errorf("%w: account key %q holds number %q", ErrInvalidDocument, key, rec.Number)
		}
		if _, ok := users[rec.OwnerCPF]; !ok {
			return fmt.Errorf("%w: account %s: %w", ErrInvalidDocument, key, ErrUnknownUser)
		}
		acc, err := b.buildAccount(rec)
		if err != nil {
			return fmt.Errorf("%w: account %s: %w", ErrInvalidDocument, key, err)
		}
		accounts[key] = acc
	}

	for cpf, u := range users {
		for _, n := range u.Accounts {
			acc, ok := accounts[n]
			if !ok {
				return fmt.Errorf("%w: user %s: account %s: %w", ErrInvalidDocument, cpf, n, ErrAccountNotFound)
			}
			if acc.OwnerCPF != cpf {
				return fmt.Errorf("%w: user %s lists account %s owned by %s", ErrInvalidDocument, cpf, n, acc.OwnerCPF)
			}
		}
	}

	b.users = users
	b.accounts = accounts
	b.logger.Info("bank state restored", "users", len(users), "accounts", len(accounts))
	return nil
}

func (b *Bank) buildAccount(rec dto.AccountRecord) (*account.Account, error) {
	txs := make([]account.Transaction, 0, len(rec.Transactions))
	for i, t := range rec.Transactions {
		tx, err := transactionFromRecord(t)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}

	builder := account.New().
		WithNumber(rec.Number).
		WithAgency(b.defaults.Agency).
		WithAgency(rec.Agency).
		WithOwner(rec.OwnerCPF).
		WithDailyWithdrawLimit(b.defaults.DailyWithdrawLimit).
		WithPerWithdrawLimit(b.defaults.PerWithdrawLimit).
		WithBalance(rec.Balance).
		WithTransactions(txs).
		WithClock(b.now)
	if rec.DailyWithdrawLimit != nil {
		builder.WithDailyWithdrawLimit(*rec.DailyWithdrawLimit)
	}
	if rec.PerWithdrawLimitValue != nil {
		builder.WithPerWithdrawLimit(*rec.PerWithdrawLimitValue)
	}
	return builder.Build()
}

func transactionFromRecord(rec dto.TransactionRecord) (account.Transaction, error) {
	kind := account.Kind(rec.Kind)
	amount := rec.Amount
	switch {
	case kind == account.KindDeposit && !amount.IsPositive():
		return account.Transaction{}, fmt.Errorf("deposit amount %s: %w", amount, account.ErrInvalidAmount)
	case kind == account.KindWithdrawal && !amount.IsNegative():
		return account.Transaction{}, fmt.Errorf("withdrawal amount %s: %w", amount, account.ErrInvalidAmount)
	}
	at, err := ParseTimestamp(rec.Timestamp)
	if err != nil {
		return account.Transaction{}, err
	}
	id := uuid.Nil
	if rec.ID != "" {
		if id, err = uuid.Parse(rec.ID); err != nil {
			return account.Transaction{}, err
		}
	}
	return account.NewTransactionFromData(id, kind, amount, at, rec.Note), nil
}

// FormatTimestamp renders t as local ISO-8601 without a zone.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(dto.TimestampLayout)
}

// ParseTimestamp reads a stored timestamp. Zone-less values are local time;
// RFC 3339 values with an offset are accepted as well.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(time.Local), nil
	}
	t, err := time.ParseInLocation(dto.TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return t, nil
}
