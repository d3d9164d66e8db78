package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/bankcli/internal/cli"
	"github.com/amirasaad/bankcli/pkg/bank"
	"github.com/amirasaad/bankcli/pkg/dto"
	"github.com/amirasaad/bankcli/pkg/utils"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	color.NoColor = true
	os.Exit(m.Run())
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Load(ctx context.Context) (*dto.Document, error) {
	args := m.Called(ctx)
	doc, _ := args.Get(0).(*dto.Document)
	return doc, args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, doc *dto.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type harness struct {
	bank  *bank.Bank
	store *mockStore
	clock *fakeClock
	dir   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 8, 20, 9, 0, 0, 0, time.Local)}
	return &harness{
		bank: bank.New(slog.Default(),
			bank.WithHasher(utils.BcryptHasher{Cost: bcrypt.MinCost}),
			bank.WithClock(clock.Now),
		),
		store: &mockStore{},
		clock: clock,
		dir:   t.TempDir(),
	}
}

func (h *harness) expectSave() *mock.Call {
	return h.store.On("Save", mock.Anything, mock.AnythingOfType("*dto.Document")).Return(nil)
}

func (h *harness) run(t *testing.T, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	s := cli.New(h.bank, h.store, slog.Default(), strings.NewReader(input), &out, cli.WithExportDir(h.dir))
	err := s.Run(context.Background())
	return out.String(), err
}

func lines(in ...string) string {
	return strings.Join(in, "\n") + "\n"
}

const (
	registerMari = "1\n11122233344\nMari\nabc123\n"
	loginMari    = "2\n11122233344\nabc123\n"
)

func savedDocument(t *testing.T, store *mockStore) *dto.Document {
	t.Helper()
	var doc *dto.Document
	for _, call := range store.Calls {
		if call.Method == "Save" {
			doc = call.Arguments.Get(1).(*dto.Document)
		}
	}
	require.NotNil(t, doc, "nothing was saved")
	return doc
}

func TestRun_Scenario(t *testing.T) {
	h := newHarness(t)
	h.expectSave().Once()

	out, err := h.run(t, registerMari+loginMari+lines(
		"3",
		"5", "200,00", "salário",
		"6", "500,01", "",
		"6", "50", "",
		"6", "50.00", "",
		"6", "50", "",
		"6", "50", "",
		"0",
	))
	require.NoError(t, err)

	assert.Contains(t, out, "BANK LEDGER")
	assert.Contains(t, out, "User created.")
	assert.Contains(t, out, "Logged in.")
	assert.Contains(t, out, "Account created: agency 0001, number 100001.")
	assert.Contains(t, out, "Deposit of R$ 200,00 done.")
	assert.Contains(t, out, "Insufficient funds.")
	assert.Equal(t, 3, strings.Count(out, "Withdrawal of R$ 50,00 done."))
	assert.Contains(t, out, "Daily withdrawal limit reached (3 per day).")
	assert.Contains(t, out, "Goodbye!")

	doc := savedDocument(t, h.store)
	assert.True(t, doc.Accounts["100001"].Balance.Equal(decimal.NewFromInt(50)))
	assert.Len(t, doc.Accounts["100001"].Transactions, 4)
	h.store.AssertExpectations(t)
}

func TestRun_PerOperationLimitShowsLimit(t *testing.T) {
	h := newHarness(t)
	h.expectSave()

	out, err := h.run(t, registerMari+loginMari+lines("3", "5", "1.234,56", "", "6", "600", "", "0"))
	require.NoError(t, err)
	assert.Contains(t, out, "Withdrawal exceeds the per-operation limit of R$ 500,00.")
	assert.Contains(t, out, "balance R$ 1.234,56")
}

func TestRun_InvalidInput(t *testing.T) {
	h := newHarness(t)
	h.expectSave()

	out, err := h.run(t, registerMari+loginMari+lines("3", "x", "5", "abc", "5", "-10", "", "0"))
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid option.")
	assert.Equal(t, 2, strings.Count(out, "Invalid amount."))
}

func TestRun_RejectsFractionsOfACent(t *testing.T) {
	h := newHarness(t)
	h.expectSave()

	out, err := h.run(t, registerMari+loginMari+lines("3", "5", "10,005", "0"))
	require.NoError(t, err)
	assert.Contains(t, out, "Amounts take at most 2 decimal places.")
	assert.Contains(t, out, "balance R$ 0,00")
}

func TestRun_Preconditions(t *testing.T) {
	h := newHarness(t)
	h.expectSave()

	out, err := h.run(t, lines("3", "4", "5", "6", "7", "8", "0"))
	require.NoError(t, err)
	assert.Contains(t, out, "Log in first.")
	assert.Contains(t, out, "Log in and create an account first.")
	assert.Equal(t, 4, strings.Count(out, "Select an account first."))
}

func TestRun_AuthenticationAndDuplicates(t *testing.T) {
	h := newHarness(t)
	h.expectSave()

	out, err := h.run(t, registerMari+lines("1", "11122233344", "Other", "zzz", "2", "11122233344", "wrong", "2", "999", "abc123", "0"))
	require.NoError(t, err)
	assert.Contains(t, out, "A user with this CPF already exists.")
	assert.Equal(t, 2, strings.Count(out, "Invalid CPF or password."))
	assert.NotContains(t, out, "User: ")
}

func TestRun_LoginSelectsFirstAccount(t *testing.T) {
	h := newHarness(t)
	h.expectSave()
	_, err := h.bank.CreateUser("11122233344", "Mari", "abc123")
	require.NoError(t, err)
	_, err = h.bank.CreateAccount("11122233344")
	require.NoError(t, err)
	_, err = h.bank.CreateAccount("11122233344")
	require.NoError(t, err)

	out, err := h.run(t, loginMari+"0\n")
	require.NoError(t, err)
	assert.Contains(t, out, "User: Mari (CPF 11122233344)")
	assert.Contains(t, out, "Current account: agency 0001 • no. 100001 • balance R$ 0,00")
}

func TestRun_SelectAccount(t *testing.T) {
	h := newHarness(t)
	h.expectSave()
	_, err := h.bank.CreateUser("11122233344", "Mari", "abc123")
	require.NoError(t, err)
	_, err = h.bank.CreateUser("2", "Joao", "pw")
	require.NoError(t, err)
	_, err = h.bank.CreateAccount("11122233344")
	require.NoError(t, err)
	_, err = h.bank.CreateAccount("2")
	require.NoError(t, err)
	second, err := h.bank.CreateAccount("11122233344")
	require.NoError(t, err)
	require.NoError(t, second.Deposit(decimal.NewFromInt(10), ""))

	out, err := h.run(t, loginMari+lines("4", "100002", "4", "100003", "0"))
	require.NoError(t, err)
	assert.Contains(t, out, "- 100001 (balance R$ 0,00)")
	assert.Contains(t, out, "- 100003 (balance R$ 10,00)")
	assert.Contains(t, out, "Account not found.")
	assert.Contains(t, out, "Account 100003 selected.")
	assert.Contains(t, out, "no. 100003 • balance R$ 10,00")
}

func TestRun_StatementWindow(t *testing.T) {
	h := newHarness(t)
	h.expectSave()
	_, err := h.bank.CreateUser("11122233344", "Mari", "abc123")
	require.NoError(t, err)
	acc, err := h.bank.CreateAccount("11122233344")
	require.NoError(t, err)
	require.NoError(t, acc.Deposit(decimal.NewFromInt(100), "first"))
	h.clock.t = time.Date(2025, 8, 22, 14, 30, 0, 0, time.Local)
	require.NoError(t, acc.Deposit(decimal.NewFromInt(40), "second"))
	require.NoError(t, acc.Withdraw(decimal.NewFromInt(15), "cash"))

	out, err := h.run(t, loginMari+lines("7", "21/08/2025", "", "7", "", "", "7", "2025-08-21", "0"))
	require.NoError(t, err)

	assert.Contains(t, out, "22/08/2025 14:30  DEPOSITO           R$ 40,00  second")
	assert.Contains(t, out, "22/08/2025 14:30  SAQUE             R$ -15,00  cash")
	assert.Contains(t, out, "Period net: R$ 25,00")
	assert.Contains(t, out, "Period net: R$ 125,00")
	assert.Equal(t, 2, strings.Count(out, "Current balance: R$ 125,00"))
	assert.Contains(t, out, "Invalid date, use dd/mm/yyyy.")
	assert.Equal(t, 1, strings.Count(out, "20/08/2025 09:00  DEPOSITO"))
}

func TestRun_ExportStatement(t *testing.T) {
	h := newHarness(t)
	h.expectSave()

	out, err := h.run(t, registerMari+loginMari+lines("3", "5", "1234,5", "pix", "6", "34,50", "", "8", "0"))
	require.NoError(t, err)

	path := filepath.Join(h.dir, "extrato_100001.txt")
	assert.Contains(t, out, "Statement exported: "+path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"STATEMENT",
		strings.Repeat("=", 60),
		"20/08/2025 09:00  DEPOSITO        R$ 1.234,50  pix",
		"20/08/2025 09:00  SAQUE             R$ -34,50  ",
		strings.Repeat("-", 60),
		"Current balance: R$ 1.200,00",
		"",
	}, "\n"), string(raw))
}

func TestRun_ExplicitSave(t *testing.T) {
	h := newHarness(t)
	h.expectSave().Twice()

	out, err := h.run(t, registerMari+"9\n0\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Data saved.")
	assert.Contains(t, savedDocument(t, h.store).Users, "11122233344")
	h.store.AssertExpectations(t)
}

func TestRun_SaveFailure(t *testing.T) {
	h := newHarness(t)
	h.store.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	out, err := h.run(t, "9\n0\n")
	assert.ErrorContains(t, err, "disk full")
	assert.Contains(t, out, "Error: save: disk full")
	assert.Contains(t, out, "Could not save data")
	assert.NotContains(t, out, "Goodbye!")
}

func TestRun_EndOfInputSaves(t *testing.T) {
	for name, input := range map[string]string{
		"at the menu":           registerMari,
		"inside an operation":   "1\n11122233344\n",
		"without final newline": "1\n11122233344\nMari\nabc123",
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.expectSave().Once()

			out, err := h.run(t, input)
			require.NoError(t, err)
			assert.Contains(t, out, "Goodbye!")
			h.store.AssertExpectations(t)
		})
	}
}

func TestRun_InterruptSaves(t *testing.T) {
	h := newHarness(t)
	h.expectSave().Once()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	s := cli.New(h.bank, h.store, slog.Default(), pr, &out)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	_, err := io.WriteString(pw, registerMari)
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
	h.store.AssertExpectations(t)
}
