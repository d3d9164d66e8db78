package initializer

import (
	"io"
	"log/slog"

	"github.com/amirasaad/bankcli/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	debugColor = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#B39DDB"}
	infoColor  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnColor  = lipgloss.AdaptiveColor{Light: "#C77800", Dark: "#FFB74D"}
	errorColor = lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF6B6B"}
)

// levelBadges are the level markers shown by the text formatter.
var levelBadges = map[log.Level]struct {
	badge string
	color lipgloss.AdaptiveColor
}{
	log.DebugLevel: {"DBG", debugColor},
	log.InfoLevel:  {"INF", infoColor},
	log.WarnLevel:  {"WRN", warnColor},
	log.ErrorLevel: {"ERR", errorColor},
}

// highlightedKeys are the attributes the ledger logs most often.
var highlightedKeys = map[string]lipgloss.AdaptiveColor{
	"error":   errorColor,
	"cpf":     infoColor,
	"account": infoColor,
	"store":   debugColor,
	"path":    debugColor,
}

func loggerStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, b := range levelBadges {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(b.badge).
			Bold(true).
			Padding(0, 1).
			Foreground(b.color)
	}
	for key, color := range highlightedKeys {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// setupLogger builds the process logger. It writes to w, which is stderr in
// the CLI so log lines never mix with the menu on stdout.
func setupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level <= int(log.DebugLevel),
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(loggerStyles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
