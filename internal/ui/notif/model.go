// Package notif renders the current user's notification feed,
// newest first.
package notif

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/mktboard/internal/keys"
	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
	"github.com/lfreitas/mktboard/internal/theme"
)

// Model is the notification feed view component.
type Model struct {
	store  *state.Store
	keys   *keys.KeyMap
	cursor int
	width  int
	height int
}

// New creates a new notification feed model.
func New(s *state.Store, k *keys.KeyMap, width, height int) Model {
	return Model{store: s, keys: k, width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the notification feed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	feed := m.currentFeed()
	m.clampCursor(len(feed))

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(feed)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.MarkRead):
		if m.cursor < len(feed) {
			// Already-read entries are a no-op.
			_ = m.store.MarkNotificationRead(feed[m.cursor].ID)
		}
	}

	return m, nil
}

func (m Model) currentFeed() []model.Notification {
	current, ok := m.store.CurrentUser()
	if !ok {
		return nil
	}
	return m.store.NotificationsFor(current.ID)
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the notification feed.
func (m Model) View() string {
	feed := m.currentFeed()
	if len(feed) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No notifications.")
	}

	m.clampCursor(len(feed))

	var sb strings.Builder
	sb.WriteString(theme.HeaderStyle.Render("Notifications") + "\n\n")

	for i, n := range feed {
		marker := "●"
		if n.Read {
			marker = " "
		}

		line := theme.NotificationStyle(n.Type).Render(marker) + " " + n.Message
		line += "  " + theme.HelpStyle.Render(n.CreatedAt.Format("Jan 02 15:04"))
		if n.Read {
			line = theme.HelpStyle.Render(n.Message + "  " + n.CreatedAt.Format("Jan 02 15:04"))
			line = "  " + line
		}

		if i == m.cursor {
			sb.WriteString(theme.SelectedCardStyle.Render(line))
		} else {
			sb.WriteString(theme.CardStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + theme.HelpStyle.Render("enter mark read"))
	return sb.String()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
