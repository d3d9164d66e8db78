package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amirasaad/bankcli/pkg/bank"
	"github.com/amirasaad/bankcli/pkg/money"
)

func (s *Session) createUser(ctx context.Context) error {
	cpf, err := s.prompt(ctx, "CPF (digits only): ")
	if err != nil {
		return err
	}
	name, err := s.prompt(ctx, "Name: ")
	if err != nil {
		return err
	}
	password, err := s.promptSecret(ctx, "Choose a password: ")
	if err != nil {
		return err
	}
	if _, err := s.bank.CreateUser(cpf, name, password); err != nil {
		return err
	}
	s.okf("User created.")
	return nil
}

// login authenticates and selects the user's first account, if any.
func (s *Session) login(ctx context.Context) error {
	cpf, err := s.prompt(ctx, "CPF: ")
	if err != nil {
		return err
	}
	password, err := s.promptSecret(ctx, "Password: ")
	if err != nil {
		return err
	}
	u, err := s.bank.Authenticate(cpf, password)
	if err != nil {
		return err
	}
	s.user = u
	s.account = nil
	if len(u.Accounts) > 0 {
		if s.account, err = s.bank.GetAccount(u.Accounts[0]); err != nil {
			return err
		}
	}
	s.okf("Logged in.")
	return nil
}

func (s *Session) createAccount(context.Context) error {
	if s.user == nil {
		return errLoginRequired
	}
	acc, err := s.bank.CreateAccount(s.user.CPF)
	if err != nil {
		return err
	}
	s.account = acc
	s.okf("Account created: agency %s, number %s.", acc.Agency, acc.Number)
	return nil
}

// selectAccount lists the user's accounts and switches to one of them.
// Accounts of other users are reported as not found.
func (s *Session) selectAccount(ctx context.Context) error {
	if s.user == nil || len(s.user.Accounts) == 0 {
		return errNoAccounts
	}
	accounts, err := s.bank.Accounts(s.user.CPF)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Your accounts:")
	for _, acc := range accounts {
		fmt.Fprintf(s.out, "- %s (balance %s)\n", acc.Number, money.Format(acc.Balance()))
	}
	number, err := s.prompt(ctx, "Account number: ")
	if err != nil {
		return err
	}
	if !s.user.Owns(number) {
		return bank.ErrAccountNotFound
	}
	acc, err := s.bank.GetAccount(number)
	if err != nil {
		return err
	}
	s.account = acc
	s.okf("Account %s selected.", acc.Number)
	return nil
}

func (s *Session) deposit(ctx context.Context) error {
	if s.account == nil {
		return errAccountRequired
	}
	amount, err := s.promptAmount(ctx, "Deposit amount: ")
	if err != nil {
		return err
	}
	note, err := s.prompt(ctx, "Note (optional): ")
	if err != nil {
		return err
	}
	if err := s.account.Deposit(amount, note); err != nil {
		return err
	}
	s.logger.Debug("deposit recorded", "account", s.account.Number, "amount", amount)
	s.okf("Deposit of %s done.", money.Format(amount))
	return nil
}

func (s *Session) withdraw(ctx context.Context) error {
	if s.account == nil {
		return errAccountRequired
	}
	amount, err := s.promptAmount(ctx, "Withdrawal amount: ")
	if err != nil {
		return err
	}
	note, err := s.prompt(ctx, "Note (optional): ")
	if err != nil {
		return err
	}
	if err := s.account.Withdraw(amount, note); err != nil {
		return err
	}
	s.logger.Debug("withdrawal recorded", "account", s.account.Number, "amount", amount)
	s.okf("Withdrawal of %s done.", money.Format(amount))
	return nil
}

// printStatement shows the transactions inside an optional date window,
// the net of that window and the account balance.
func (s *Session) printStatement(ctx context.Context) error {
	if s.account == nil {
		return errAccountRequired
	}
	from, err := s.promptDate(ctx, "From (dd/mm/yyyy, blank for the beginning): ")
	if err != nil {
		return err
	}
	to, err := s.promptDate(ctx, "To (dd/mm/yyyy, blank for the end): ")
	if err != nil {
		return err
	}
	txs, net := s.account.Statement(from, to)

	fmt.Fprintln(s.out, "\nSTATEMENT")
	fmt.Fprintln(s.out, strings.Repeat("-", width))
	if len(txs) == 0 {
		fmt.Fprintln(s.out, "No transactions in this period.")
	}
	for _, tx := range txs {
		fmt.Fprintln(s.out, statementLine(tx))
	}
	fmt.Fprintln(s.out, strings.Repeat("-", width))
	fmt.Fprintf(s.out, "Period net: %s\n", money.Format(net))
	fmt.Fprintf(s.out, "Current balance: %s\n", money.Format(s.account.Balance()))
	return nil
}

// exportStatement writes the full log to extrato_<number>.txt in the export
// directory, replacing an earlier export of the same account.
func (s *Session) exportStatement(context.Context) error {
	if s.account == nil {
		return errAccountRequired
	}
	path := filepath.Join(s.exportDir, fmt.Sprintf("extrato_%s.txt", s.account.Number))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export statement: %w", err)
	}
	if err := writeStatement(f, s.account); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("export statement: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export statement: %w", err)
	}
	s.logger.Debug("statement exported", "account", s.account.Number, "path", path)
	s.okf("Statement exported: %s", path)
	return nil
}

func (s *Session) save(ctx context.Context) error {
	start := time.Now()
	if err := s.store.Save(ctx, s.bank.Snapshot()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.logger.Debug("data saved", "took", time.Since(start))
	s.okf("Data saved.")
	return nil
}
