package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/theme"
)

// renderColumn draws one board column with its task cards.
func (m Model) renderColumn(col model.Column, width int, active bool) string {
	tasks := m.store.TasksInColumn(col.ID)

	title := fmt.Sprintf("%s (%d)", col.Title, len(tasks))
	titleStyle := lipgloss.NewStyle().Bold(true)
	if active {
		titleStyle = titleStyle.Foreground(theme.ColorBlue)
	}

	lines := []string{titleStyle.Render(truncate(title, width-2))}
	for i, task := range tasks {
		selected := active && i == m.rowIdx[col.ID]
		lines = append(lines, m.renderCard(task, width-2, selected))
	}

	body := strings.Join(lines, "\n")

	style := theme.ColumnStyle.Width(width)
	if active {
		style = style.BorderForeground(theme.ColorBlue)
	}
	return style.Render(body)
}

// renderCard draws a single task card line block.
func (m Model) renderCard(task model.Task, width int, selected bool) string {
	badge := theme.StatusStyle(task.Status).Render(statusLabel(task.Status))

	var extras []string
	if task.TimerRunning {
		extras = append(extras, theme.TimerStyle.Render("⏱ "+formatElapsed(task.ElapsedMillis(m.now()))))
	} else if task.TimeSpent > 0 {
		extras = append(extras, formatElapsed(task.TimeSpent))
	}
	if task.ApprovalRequested {
		extras = append(extras, theme.ApprovalStyle(model.ApprovalPending).Render("review"))
	} else if task.ApprovalStatus == model.ApprovalRejected {
		extras = append(extras, theme.ApprovalStyle(model.ApprovalRejected).Render("changes"))
	}
	if !task.DueDate.IsZero() && m.now().After(task.DueDate) && task.Status != model.StatusDone {
		extras = append(extras, theme.AlertStyle.Render("overdue"))
	}

	title := task.Title
	if task.Emoji != "" {
		title = task.Emoji + " " + title
	}

	line := badge + " " + truncate(title, width-lipgloss.Width(badge)-3)
	if len(extras) > 0 {
		line += "\n  " + strings.Join(extras, "  ")
	}

	if selected {
		return theme.SelectedCardStyle.Render(line)
	}
	return theme.CardStyle.Render(line)
}

// statusLabel is the short badge text for a status.
func statusLabel(s model.TaskStatus) string {
	switch s {
	case model.StatusIdeas:
		return "IDEA"
	case model.StatusTodo:
		return "TODO"
	case model.StatusInProgress:
		return "WIP"
	case model.StatusWaiting:
		return "WAIT"
	case model.StatusDone:
		return "DONE"
	case model.StatusCancelled:
		return "CANC"
	default:
		return "?"
	}
}

// formatElapsed renders milliseconds as h:mm.
func formatElapsed(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%d:%02dh", h, m)
}

// truncate shortens s to fit max columns.
func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
