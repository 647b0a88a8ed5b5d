package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"questboard/internal/engine"
	"questboard/internal/storage"
	"questboard/internal/ui"
)

// trophyRows caps the achievements panel.
const trophyRows = 5

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	tasks        []storage.Task
	achievements []storage.Achievement
	stats        *engine.Stats

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	tasks        []storage.Task
	achievements []storage.Achievement
	stats        *engine.Stats
	err          error
}

type completedMsg struct {
	title string
	res   *engine.CompleteResult
	err   error
}

type deletedMsg struct {
	title string
	err   error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.ListTasks(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		achievements, err := m.svc.ListAchievements(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		st, err := m.svc.Stats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{tasks: tasks, achievements: achievements, stats: st}
	}
}

func (m boardModel) completeCmd(t storage.Task) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, t.ID)
		return completedMsg{title: t.Title, res: res, err: err}
	}
}

func (m boardModel) deleteCmd(t storage.Task) tea.Cmd {
	return func() tea.Msg {
		err := m.svc.DeleteTask(m.ctx, t.ID)
		return deletedMsg{title: t.Title, err: err}
	}
}

func (m boardModel) current() (storage.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return storage.Task{}, false
	}
	return m.tasks[m.selected], true
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.tasks = msg.tasks
		m.achievements = msg.achievements
		m.stats = msg.stats
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		if m.lastLog == "" || strings.HasSuffix(m.lastLog, "…") {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		}
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if a := msg.res.Achievement; a != nil {
			m.lastLog = fmt.Sprintf("%s %s defeated! %s %s (+%d XP)", ui.IconTrophy, msg.title, a.Icon, a.Title, a.XPEarned)
		} else {
			m.lastLog = fmt.Sprintf("%s Completed %s.", ui.IconDone, msg.title)
		}
		return m, m.loadCmd()
	case deletedMsg:
		if msg.err != nil {
			m.lastLog = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("%s Deleted %s.", ui.IconTrash, msg.title)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			t, ok := m.current()
			if !ok {
				m.lastLog = "No quest selected."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", t.Title)
			return m, m.completeCmd(t)
		case "x":
			t, ok := m.current()
			if !ok {
				m.lastLog = "No quest selected."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Deleting %s…", t.Title)
			return m, m.deleteCmd(t)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.stats == nil {
		return "Questboard | loading…"
	}
	level, into, span := engine.LevelProgress(m.stats.TotalXP)
	return fmt.Sprintf("Questboard | Level %d | XP %d %s", level, m.stats.TotalXP, progressBar(into, span, 30))
}

func (m boardModel) renderSidebar() string {
	if m.stats == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Open"}
	lines = append(lines, fmt.Sprintf("- %s boss: %d", ui.IconBoss, m.stats.BossFights))
	lines = append(lines, fmt.Sprintf("- %s quest: %d", ui.IconQuest, m.stats.Quests))
	lines = append(lines, fmt.Sprintf("- %s training: %d", ui.IconTraining, m.stats.Training))
	lines = append(lines, fmt.Sprintf("- %s trophies: %d", ui.IconTrophy, m.stats.Achievements))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- x: delete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Quest Log"}
	if len(m.tasks) == 0 {
		out = append(out, "(empty)")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		out = append(out, fmt.Sprintf("%s%s %s (%d XP)", cursor, ui.CategoryIcon(string(t.Category)), t.Title, t.XPReward))
	}

	out = append(out, "", "Trophies")
	if len(m.achievements) == 0 {
		out = append(out, "(none yet)")
	}
	for i, a := range m.achievements {
		if i == trophyRows {
			out = append(out, fmt.Sprintf("  … and %d more", len(m.achievements)-trophyRows))
			break
		}
		out = append(out, fmt.Sprintf("  %s %s (+%d XP)", a.Icon, a.Title, a.XPEarned))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
