package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Questboard theme (CLI + TUI).

const (
	IconBoss     = "🐲"
	IconQuest    = "🗺️"
	IconTraining = "🏋️"
	IconSparkle  = "✨"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconTrash    = "🗑️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconScroll   = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CategoryIcon maps a task category to its list marker.
func CategoryIcon(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "boss":
		return IconBoss
	case "quest":
		return IconQuest
	case "training":
		return IconTraining
	default:
		return IconScroll
	}
}

// CategoryText renders a category label in its board colour.
func CategoryText(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "boss":
		return Bad.Render("boss")
	case "quest":
		return H2.Render("quest")
	case "training":
		return Good.Render("training")
	default:
		return Muted.Render(category)
	}
}

// XP formats an XP amount the same way everywhere.
func XP(n int) string {
	return Gold.Render(fmt.Sprintf("%d XP", n))
}
