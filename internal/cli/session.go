// Package cli is the interactive menu a single operator drives: it reads
// choices from an input stream, calls the bank and the selected account,
// and saves the bank through the configured store.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/bankcli/pkg/bank"
	"github.com/amirasaad/bankcli/pkg/domain/account"
	"github.com/amirasaad/bankcli/pkg/domain/user"
	"github.com/amirasaad/bankcli/pkg/repository"
	"golang.org/x/term"
)

// Option configures a Session.
type Option func(*Session)

// WithExportDir sets the directory statements are exported to.
func WithExportDir(dir string) Option {
	return func(s *Session) {
		if dir != "" {
			s.exportDir = dir
		}
	}
}

// Session holds the menu state: who is logged in and which account is
// selected. It lives for one run of the program.
type Session struct {
	bank      *bank.Bank
	store     repository.SnapshotStore
	logger    *slog.Logger
	in        *bufio.Reader
	out       io.Writer
	exportDir string

	// termFd is the input's file descriptor when it is a terminal, -1
	// otherwise. Passwords are read without echo only on a terminal.
	termFd    int
	termState *term.State

	user    *user.User
	account *account.Account
	actions map[string]action
}

type action struct {
	label string
	run   func(ctx context.Context) error
}

// New creates a session reading from in and writing to out.
func New(
	b *bank.Bank,
	store repository.SnapshotStore,
	logger *slog.Logger,
	in io.Reader,
	out io.Writer,
	opts ...Option,
) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		bank:      b,
		store:     store,
		logger:    logger,
		in:        bufio.NewReader(in),
		out:       out,
		exportDir: ".",
		termFd:    -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s.termFd = int(f.Fd())
		s.termState, _ = term.GetState(s.termFd)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.actions = map[string]action{
		"1": {"Create user", s.createUser},
		"2": {"Log in", s.login},
		"3": {"Create account", s.createAccount},
		"4": {"Select account", s.selectAccount},
		"5": {"Deposit", s.deposit},
		"6": {"Withdraw", s.withdraw},
		"7": {"Print statement", s.printStatement},
		"8": {"Export statement (.txt)", s.exportStatement},
		"9": {"Save", s.save},
	}
	return s
}

// Run shows the menu until the operator exits, input ends or ctx is
// canceled. Each of those saves the bank before returning; the returned
// error is the save error, if any.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.renderMenu()
		choice, err := s.prompt(ctx, "\nChoose: ")
		if err != nil {
			return s.finish(ctx, err)
		}
		if choice == "0" {
			return s.finish(ctx, nil)
		}
		a, ok := s.actions[choice]
		if !ok {
			s.warnf("Invalid option.")
			continue
		}
		if err := a.run(ctx); err != nil {
			if endOfInput(err) {
				return s.finish(ctx, err)
			}
			s.report(a.label, err)
		}
	}
}

func (s *Session) finish(ctx context.Context, cause error) error {
	if errors.Is(cause, context.Canceled) && s.termState != nil {
		_ = term.Restore(s.termFd, s.termState)
	}
	if cause != nil {
		fmt.Fprintln(s.out)
		s.logger.Info("session ended", "reason", cause)
	}
	// The store must still be reachable after an interrupt.
	if err := s.store.Save(context.WithoutCancel(ctx), s.bank.Snapshot()); err != nil {
		s.failf("Could not save data: %v", err)
		return fmt.Errorf("save on exit: %w", err)
	}
	fmt.Fprintln(s.out, "Goodbye!")
	return nil
}

func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}
