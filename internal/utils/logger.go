package utils

import (
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Log 全局 logger，Init 之前也可以直接用
var Log = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.DateTime,
})

// Init sets the level ("debug", "info", "warn", "error") and installs the
// level badges.
func Init(level string) error {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return err
		}
	}
	Log.SetLevel(lvl)
	Log.SetStyles(Styles())
	return nil
}

func badge(text, bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(text).
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).Bold(true)
}

func Styles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = badge("DEBUG", "#3C3C3CFF", "#DDDDDDFF")
	styles.Levels[log.InfoLevel] = badge("INFO🃏", "#90EE9080", "#006400FF")
	styles.Levels[log.WarnLevel] = badge("WARN", "#FFA500FF", "#000000FF")
	styles.Levels[log.ErrorLevel] = badge("ERROR🔥", "#FF0000FF", "#00FFFF00")
	styles.Levels[log.FatalLevel] = badge("FATAL⚡️", "#000000FF", "#00FFFF00")
	styles.Keys["session"] = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	styles.Keys["player"] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	return styles
}
