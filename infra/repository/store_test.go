package repository

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/bankcli/pkg/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertSameDocument compares documents by their encoding. Equal decimals can
// differ in their internal representation.
func assertSameDocument(t *testing.T, want, got *dto.Document) {
	t.Helper()
	wantRaw, err := json.Marshal(want)
	require.NoError(t, err)
	gotRaw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, string(wantRaw), string(gotRaw))
}

// sampleDocument has two users, three accounts and one account without
// stored limits. Slices are non-nil so every store can reproduce it exactly.
func sampleDocument() *dto.Document {
	doc := dto.NewDocument()
	doc.Users["11122233344"] = dto.UserRecord{
		CPF:          "11122233344",
		Name:         "Mariana Conceição",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Accounts:     []string{"100003", "100001"},
	}
	doc.Users["55566677788"] = dto.UserRecord{
		CPF:          "55566677788",
		Name:         "João",
		PasswordHash: "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090",
		Accounts:     []string{"100002"},
	}
	doc.Accounts["100001"] = dto.AccountRecord{
		Number:   "100001",
		Agency:   "0001",
		OwnerCPF: "11122233344",
		Balance:  dec("1200.06"),
		Transactions: []dto.TransactionRecord{
			{
				ID:        "2f1b7c9e-2d1a-4c55-9a47-1f7e7b8d6a01",
				Kind:      "DEPOSITO",
				Amount:    dec("1234.56"),
				Timestamp: "2025-08-20T09:00:00.123456789",
				Note:      "salário <março>",
			},
			{
				ID:        "2f1b7c9e-2d1a-4c55-9a47-1f7e7b8d6a02",
				Kind:      "SAQUE",
				Amount:    dec("-34.5"),
				Timestamp: "2025-08-20T10:30:00",
				Note:      "",
			},
		},
		DailyWithdrawLimit:    ptr(3),
		PerWithdrawLimitValue: ptr(dec("500")),
	}
	doc.Accounts["100002"] = dto.AccountRecord{
		Number:                "100002",
		Agency:                "0001",
		OwnerCPF:              "55566677788",
		Balance:               decimal.Zero,
		Transactions:          []dto.TransactionRecord{},
		DailyWithdrawLimit:    ptr(5),
		PerWithdrawLimitValue: ptr(dec("800")),
	}
	doc.Accounts["100003"] = dto.AccountRecord{
		Number:   "100003",
		Agency:   "0042",
		OwnerCPF: "11122233344",
		Balance:  dec("10"),
		Transactions: []dto.TransactionRecord{
			{
				ID:        "2f1b7c9e-2d1a-4c55-9a47-1f7e7b8d6a03",
				Kind:      "DEPOSITO",
				Amount:    dec("10"),
				Timestamp: "2025-08-21T08:00:00",
				Note:      "pix",
			},
		},
	}
	return doc
}
