package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankcli/pkg/money"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const dateLayout = "02/01/2006"

type readResult struct {
	line string
	err  error
}

// prompt prints label and returns the next input line, trimmed. A blocked
// read is abandoned when ctx is canceled.
func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	line, err := s.read(ctx, label, false)
	return strings.TrimSpace(line), err
}

// promptSecret reads a password. On a terminal the input is not echoed.
func (s *Session) promptSecret(ctx context.Context, label string) (string, error) {
	return s.read(ctx, label, true)
}

func (s *Session) read(ctx context.Context, label string, secret bool) (string, error) {
	fmt.Fprint(s.out, label)
	done := make(chan readResult, 1)
	go func() {
		line, err := s.readLine(secret)
		done <- readResult{line, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.line, r.err
	}
}

func (s *Session) readLine(secret bool) (string, error) {
	if secret && s.termFd >= 0 {
		b, err := term.ReadPassword(s.termFd)
		fmt.Fprintln(s.out)
		return string(b), err
	}
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) promptAmount(ctx context.Context, label string) (decimal.Decimal, error) {
	raw, err := s.prompt(ctx, label)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Parse(raw)
}

// promptDate reads a dd/mm/yyyy date. A blank answer returns the zero
// time, which leaves that side of a statement window open.
func (s *Session) promptDate(ctx context.Context, label string) (time.Time, error) {
	raw, err := s.prompt(ctx, label)
	if err != nil || raw == "" {
		return time.Time{}, err
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, raw)
	}
	return d, nil
}
