package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tells deposits and withdrawals apart. The values are the ones
// written to the persisted document.
type Kind string

const (
	KindDeposit    Kind = "DEPOSITO"
	KindWithdrawal Kind = "SAQUE"
)

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is an immutable ledger entry. Amount is signed: deposits are
// positive, withdrawals negative.
type Transaction struct {
	ID        uuid.UUID
	Kind      Kind
	Amount    decimal.Decimal
	Timestamp time.Time
	Note      string
}

func newTransaction(kind Kind, amount decimal.Decimal, at time.Time, note string) Transaction {
	return Transaction{
		ID:        uuid.New(),
		Kind:      kind,
		Amount:    amount,
		Timestamp: at,
		Note:      note,
	}
}

// NewTransactionFromData creates a Transaction from raw data (used for
// document hydration or test fixtures). A nil id is replaced by a fresh one.
func NewTransactionFromData(
	id uuid.UUID,
	kind Kind,
	amount decimal.Decimal,
	at time.Time,
	note string,
) Transaction {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Transaction{
		ID:        id,
		Kind:      kind,
		Amount:    amount,
		Timestamp: at,
		Note:      note,
	}
}
