package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/theme"
)

// renderDetail draws the full read view for the task open in the detail
// panel.
func (m Model) renderDetail() string {
	task, ok := m.store.Task(m.detailTaskID)
	if !ok {
		return theme.HelpStyle.Render("Task no longer exists.")
	}

	var sb strings.Builder

	title := task.Title
	if task.Emoji != "" {
		title = task.Emoji + " " + title
	}
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n")
	sb.WriteString(theme.StatusStyle(task.Status).Render(string(task.Status)))
	if task.ApprovalStatus != model.ApprovalNone {
		sb.WriteString(" " + theme.ApprovalStyle(task.ApprovalStatus).Render(string(task.ApprovalStatus)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.detailField("Assignee", m.userName(task.AssigneeID)))
	sb.WriteString(m.detailField("Created by", m.userName(task.CreatorID)))
	if !task.DueDate.IsZero() {
		sb.WriteString(m.detailField("Due", task.DueDate.Format("Mon, Jan 2 2006")))
	}
	if task.EstimatedHours > 0 {
		sb.WriteString(m.detailField("Estimate",
			fmt.Sprintf("%.1fh planned, %.1fh spent", task.EstimatedHours, task.SpentHours())))
	} else if task.TimeSpent > 0 {
		sb.WriteString(m.detailField("Time spent", fmt.Sprintf("%.1fh", task.SpentHours())))
	}
	if task.TimerRunning {
		elapsed := time.Duration(task.ElapsedMillis(time.Now())) * time.Millisecond
		sb.WriteString(m.detailField("Timer",
			theme.TimerStyle.Render(fmt.Sprintf("running, %s total", elapsed.Round(time.Second)))))
	}
	if len(task.TagIDs) > 0 {
		sb.WriteString(m.detailField("Tags", m.tagNames(task.TagIDs)))
	}
	if task.ApprovalFeedback != "" {
		sb.WriteString(m.detailField("Review feedback", task.ApprovalFeedback))
	}

	if task.Description != "" {
		sb.WriteString("\n" + task.Description + "\n")
	}
	if task.Caption != "" {
		sb.WriteString("\n" + theme.HelpStyle.Render("Caption: "+task.Caption) + "\n")
	}

	if len(task.Subtasks) > 0 {
		sb.WriteString("\nChecklist\n")
		for _, st := range task.Subtasks {
			mark := "○"
			if st.Completed {
				mark = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", mark, st.Title))
		}
	}

	if len(task.Comments) > 0 {
		sb.WriteString("\nComments\n")
		for _, c := range task.Comments {
			sb.WriteString(fmt.Sprintf("  %s (%s): %s\n",
				m.userName(c.UserID), c.CreatedAt.Format("Jan 2 15:04"), c.Text))
		}
	}

	if len(task.History) > 0 {
		sb.WriteString("\nHistory\n")
		for _, h := range task.History {
			sb.WriteString("  " + theme.HelpStyle.Render(
				fmt.Sprintf("%s · %s", h.CreatedAt.Format("Jan 2 15:04"), h.Action)) + "\n")
		}
	}

	if m.aiSuggestion != "" {
		sb.WriteString("\n" + theme.HeaderStyle.Render("AI suggestion") + "\n")
		sb.WriteString(m.aiSuggestion + "\n")
	}

	return theme.DetailPanelStyle.
		Width(m.layout.ContentWidth() - 4).
		Render(sb.String())
}

func (m Model) detailField(label, value string) string {
	return fmt.Sprintf("%s %s\n",
		lipgloss.NewStyle().Bold(true).Render(label+":"), value)
}

// userName resolves a user id for display, tolerating dangling refs.
func (m Model) userName(id string) string {
	for _, u := range m.store.Users() {
		if u.ID == id {
			return u.Name
		}
	}
	if id == "" {
		return "Unassigned"
	}
	return "Unknown"
}

func (m Model) tagNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if tag, ok := m.store.Tag(id); ok {
			names = append(names, tag.Name)
		}
	}
	return strings.Join(names, ", ")
}
