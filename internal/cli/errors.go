package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/bankcli/pkg/bank"
	"github.com/amirasaad/bankcli/pkg/domain/account"
	"github.com/amirasaad/bankcli/pkg/domain/user"
	"github.com/amirasaad/bankcli/pkg/money"
)

var (
	errLoginRequired   = errors.New("log in first")
	errNoAccounts      = errors.New("log in and create an account first")
	errAccountRequired = errors.New("select an account first")
	errInvalidDate     = errors.New("invalid date, use dd/mm/yyyy")
)

// precondition reports errors that only mean the operator picked an option
// too early.
func precondition(err error) bool {
	return errors.Is(err, errLoginRequired) ||
		errors.Is(err, errNoAccounts) ||
		errors.Is(err, errAccountRequired)
}

// describe maps domain errors to the message shown to the operator.
func (s *Session) describe(err error) string {
	switch {
	case errors.Is(err, account.ErrInvalidAmount), errors.Is(err, money.ErrInvalidAmount):
		return "Invalid amount."
	case errors.Is(err, account.ErrTooManyDecimals), errors.Is(err, money.ErrTooManyDecimals):
		return "Amounts take at most 2 decimal places."
	case errors.Is(err, account.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, account.ErrPerOperationLimitExceeded):
		return fmt.Sprintf("Withdrawal exceeds the per-operation limit of %s.",
			money.Format(s.account.PerWithdrawLimit))
	case errors.Is(err, account.ErrDailyLimitExceeded):
		return fmt.Sprintf("Daily withdrawal limit reached (%d per day).", s.account.DailyWithdrawLimit)
	case errors.Is(err, bank.ErrDuplicateUser):
		return "A user with this CPF already exists."
	case errors.Is(err, bank.ErrAuthenticationFailed):
		return "Invalid CPF or password."
	case errors.Is(err, bank.ErrAccountNotFound):
		return "Account not found."
	case errors.Is(err, bank.ErrUnknownUser):
		return "User not found."
	case errors.Is(err, user.ErrCPFRequired):
		return "CPF is required."
	case errors.Is(err, errInvalidDate):
		return "Invalid date, use dd/mm/yyyy."
	default:
		return "Error: " + err.Error()
	}
}

func (s *Session) report(op string, err error) {
	if precondition(err) {
		s.warnf("%s.", capitalize(err.Error()))
		return
	}
	s.logger.Warn("operation rejected", "op", op, "error", err)
	s.failf("%s", s.describe(err))
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
