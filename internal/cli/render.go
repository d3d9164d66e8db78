package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/amirasaad/bankcli/pkg/domain/account"
	"github.com/amirasaad/bankcli/pkg/money"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

const (
	width           = 60
	timestampLayout = "02/01/2006 15:04"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Width(width).
			Align(lipgloss.Center).
			Border(lipgloss.DoubleBorder(), true, false)
	infoStyle = lipgloss.NewStyle().Faint(true)

	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
)

func (s *Session) renderMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, titleStyle.Render("BANK LEDGER"))
	if s.user != nil {
		fmt.Fprintln(s.out, infoStyle.Render(fmt.Sprintf("User: %s (CPF %s)", s.user.Name, s.user.CPF)))
	}
	if s.account != nil {
		fmt.Fprintln(s.out, infoStyle.Render(fmt.Sprintf("Current account: agency %s • no. %s • balance %s",
			s.account.Agency, s.account.Number, money.Format(s.account.Balance()))))
	}
	fmt.Fprintln(s.out, strings.Repeat("-", width))
	for _, key := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"} {
		fmt.Fprintf(s.out, "%s) %s\n", key, s.actions[key].label)
	}
	fmt.Fprintln(s.out, "0) Exit")
}

func (s *Session) okf(format string, args ...any) {
	okColor.Fprintf(s.out, "✔ "+format+"\n", args...) //nolint:errcheck
}

func (s *Session) warnf(format string, args ...any) {
	warnColor.Fprintf(s.out, "⚠ "+format+"\n", args...) //nolint:errcheck
}

func (s *Session) failf(format string, args ...any) {
	failColor.Fprintf(s.out, "✖ "+format+"\n", args...) //nolint:errcheck
}

// statementLine renders one transaction as
// "dd/mm/yyyy HH:MM  KIND        AMOUNT  note" with the kind padded to 10
// and the amount right-aligned in 15 columns.
func statementLine(tx account.Transaction) string {
	return fmt.Sprintf("%s  %-10s  %15s  %s",
		tx.Timestamp.Format(timestampLayout),
		tx.Kind,
		money.Format(tx.Amount),
		tx.Note,
	)
}

// writeStatement writes the full log of acc followed by its balance.
func writeStatement(w io.Writer, acc *account.Account) error {
	var b strings.Builder
	b.WriteString("STATEMENT\n")
	b.WriteString(strings.Repeat("=", width) + "\n")
	for _, tx := range acc.Transactions() {
		b.WriteString(statementLine(tx) + "\n")
	}
	b.WriteString(strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&b, "Current balance: %s\n", money.Format(acc.Balance()))
	_, err := io.WriteString(w, b.String())
	return err
}
