// Package output provides terminal output utilities for exergate.
//
// This package includes:
//   - Table rendering for the daemon status, locked apps, session history and settings
//   - Progress bars and spinners for long-running operations
//   - Human-readable formatting for durations and dates
//
// All table rendering functions use ASCII characters and ANSI color codes for terminal output.
// Progress indicators are thread-safe and can be used from multiple goroutines.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"exergate/internal/store"
	"exergate/internal/timer"
)

// ANSI color codes for state display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// Status summarizes the engine for the status command.
type Status struct {
	DaemonRunning bool
	BankSeconds   int
	LockedApps    int
	SessionApp    string
	SessionPhase  timer.Phase
	BonusClaimed  bool
	BonusEnabled  bool
}

// RenderStatus renders the status summary.
func RenderStatus(status Status) string {
	var sb strings.Builder

	if status.DaemonRunning {
		sb.WriteString(fmt.Sprintf("Daemon:      %s\n", colorize(colorGreen, "running")))
	} else {
		sb.WriteString(fmt.Sprintf("Daemon:      %s\n", colorize(colorRed, "stopped")))
	}

	sb.WriteString(fmt.Sprintf("Time bank:   %s\n", timer.FormatClock(status.BankSeconds)))
	sb.WriteString(fmt.Sprintf("Locked apps: %d\n", status.LockedApps))

	switch status.SessionPhase {
	case timer.PhaseRunning:
		sb.WriteString(fmt.Sprintf("Session:     %s (%s)\n", status.SessionApp, colorize(colorYellow, "timing")))
	case timer.PhasePaused:
		sb.WriteString(fmt.Sprintf("Session:     %s (%s)\n", status.SessionApp, colorize(colorGray, "paused")))
	case timer.PhaseExpired:
		sb.WriteString(fmt.Sprintf("Session:     %s (%s)\n", status.SessionApp, colorize(colorRed, "expired")))
	default:
		sb.WriteString("Session:     none\n")
	}

	if !status.BonusEnabled {
		sb.WriteString("Daily bonus: disabled\n")
	} else if status.BonusClaimed {
		sb.WriteString("Daily bonus: claimed today\n")
	} else {
		sb.WriteString("Daily bonus: available\n")
	}

	return sb.String()
}

// RenderLockedAppsTable renders the locked-app set.
func RenderLockedAppsTable(apps []string) string {
	if len(apps) == 0 {
		return "No locked apps. Lock one with: exergate apps lock <app>\n"
	}

	sorted := make([]string, len(apps))
	copy(sorted, apps)
	sort.Strings(sorted)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-40s\n", "Locked App"))
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")
	for _, app := range sorted {
		sb.WriteString(fmt.Sprintf("%-40s\n", truncate(app, 40)))
	}
	return sb.String()
}

// RenderSessionTable renders countdown session history, newest first.
func RenderSessionTable(sessions []*store.Session) string {
	if len(sessions) == 0 {
		return "No sessions recorded yet.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %-14s %-8s %s\n",
		"App", "Started", "Used", "Ended"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")

	for _, session := range sessions {
		ended := session.EndReason
		if ended == "" {
			ended = "open"
		}
		sb.WriteString(fmt.Sprintf("%-28s %-14s %-8s %s\n",
			truncate(session.App, 28),
			formatRelativeTime(session.StartedAt),
			timer.FormatClock(session.SecondsUsed),
			formatEndReason(ended)))
	}
	return sb.String()
}

// RenderSettingsTable renders the persisted engine settings.
func RenderSettingsTable(settings map[string]string) string {
	if len(settings) == 0 {
		return "No settings stored.\n"
	}

	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-24s %s\n", "Setting", "Value"))
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")
	for _, key := range keys {
		sb.WriteString(fmt.Sprintf("%-24s %s\n", key, settings[key]))
	}
	return sb.String()
}

// formatEndReason returns the colored display label for a session outcome.
func formatEndReason(reason string) string {
	switch reason {
	case store.EndReasonExpired:
		return colorize(colorRed, "expired")
	case store.EndReasonStopped:
		return colorize(colorGreen, "stopped")
	case store.EndReasonError:
		return colorize(colorYellow, "error")
	case "open":
		return colorize(colorYellow, "open")
	default:
		return reason
	}
}

// formatRelativeTime renders t relative to now ("3 hours ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
