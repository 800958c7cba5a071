// Package approvals renders the review inbox: every task whose approval
// flag is raised, split into pending, approved, and rejected tabs. Pending
// tasks can be approved or sent back; decided tasks stay listed until
// dismissed.
package approvals

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/mktboard/internal/keys"
	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
	"github.com/lfreitas/mktboard/internal/theme"
)

// tabOrder is the cycle the tab key walks through.
var tabOrder = []model.ApprovalStatus{
	model.ApprovalPending,
	model.ApprovalApproved,
	model.ApprovalRejected,
}

// DecisionMsg carries one-line feedback about a review decision.
type DecisionMsg struct {
	Text string
}

// formBindings holds the reject form value on the heap so huh's Value()
// pointer stays valid across Bubble Tea model copies.
type formBindings struct {
	reason string
}

// Model is the approvals inbox view component.
type Model struct {
	store    *state.Store
	keys     *keys.KeyMap
	tab      model.ApprovalStatus
	cursor   int
	form     *huh.Form
	fb       *formBindings
	rejectID string
	width    int
	height   int
}

// New creates a new approvals model.
func New(s *state.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  s,
		keys:   k,
		tab:    model.ApprovalPending,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the approvals view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() == "tab" {
		m.tab = nextTab(m.tab)
		m.cursor = 0
		return m, nil
	}

	queue := m.store.ApprovalQueue(m.tab)
	m.clampCursor(len(queue))

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(queue)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Approve):
		if m.tab != model.ApprovalPending {
			return m, nil
		}
		if task, ok := m.selected(queue); ok {
			if err := m.store.Approve(task.ID); err != nil {
				return m, decision("Approve failed: " + err.Error())
			}
			return m, decision("Approved: " + task.Title)
		}

	case key.Matches(keyMsg, m.keys.Reject):
		if m.tab != model.ApprovalPending {
			return m, nil
		}
		if task, ok := m.selected(queue); ok {
			m.rejectID = task.ID
			m.fb.reason = ""
			m.form = m.buildRejectForm(task.Title)
			return m, m.form.Init()
		}

	case key.Matches(keyMsg, m.keys.Dismiss):
		if task, ok := m.selected(queue); ok {
			if err := m.store.Dismiss(task.ID); err != nil {
				return m, decision("Dismiss failed: " + err.Error())
			}
			return m, decision("Dismissed from inbox: " + task.Title)
		}
	}

	return m, nil
}

func nextTab(t model.ApprovalStatus) model.ApprovalStatus {
	for i, s := range tabOrder {
		if s == t {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return model.ApprovalPending
}

// updateForm drives the reject-reason form until submit or abort.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		id := m.rejectID
		reason := m.fb.reason
		m.form = nil
		m.rejectID = ""

		if err := m.store.Reject(id, reason); err != nil {
			return m, decision("Request changes failed: " + err.Error())
		}
		return m, decision("Changes requested")
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.rejectID = ""
		return m, nil
	}

	return m, cmd
}

func (m *Model) buildRejectForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Request changes on " + title).
				Placeholder("What needs to change?").
				Value(&m.fb.reason).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a reason is required")
					}
					return nil
				}),
		),
	).WithWidth(m.formWidth())
}

func (m Model) selected(queue []model.Task) (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(queue) {
		return model.Task{}, false
	}
	return queue[m.cursor], true
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the approvals inbox.
func (m Model) View() string {
	if m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	var sb strings.Builder
	sb.WriteString(theme.HeaderStyle.Render("Approval inbox") + "\n")
	sb.WriteString(m.renderTabs() + "\n\n")

	queue := m.store.ApprovalQueue(m.tab)
	if len(queue) == 0 {
		sb.WriteString(theme.HelpStyle.Render(emptyText(m.tab)) + "\n")
		sb.WriteString("\n" + theme.HelpStyle.Render(m.hints()))
		return sb.String()
	}

	m.clampCursor(len(queue))

	for i, task := range queue {
		badge := theme.ApprovalStyle(task.ApprovalStatus).Render(badgeLabel(task.ApprovalStatus))
		line := fmt.Sprintf("%s %s", badge, task.Title)
		if m.tab == model.ApprovalRejected && task.ApprovalFeedback != "" {
			line += "  " + theme.HelpStyle.Render(truncate(task.ApprovalFeedback, 40))
		} else if task.Caption != "" {
			line += "  " + theme.HelpStyle.Render(truncate(task.Caption, 40))
		}

		if i == m.cursor {
			sb.WriteString(theme.SelectedCardStyle.Render(line))
		} else {
			sb.WriteString(theme.CardStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + theme.HelpStyle.Render(m.hints()))
	return sb.String()
}

func (m Model) renderTabs() string {
	labels := []string{"Pending", "Approved", "Changes requested"}
	parts := make([]string, len(tabOrder))
	for i, status := range tabOrder {
		label := fmt.Sprintf("%s (%d)", labels[i], len(m.store.ApprovalQueue(status)))
		if status == m.tab {
			parts[i] = theme.SelectedCardStyle.Render(label)
		} else {
			parts[i] = theme.HelpStyle.Render(label)
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) hints() string {
	if m.tab == model.ApprovalPending {
		return "tab switch · a approve · r request changes · x dismiss"
	}
	return "tab switch · x dismiss"
}

func emptyText(tab model.ApprovalStatus) string {
	switch tab {
	case model.ApprovalApproved:
		return "No approved tasks waiting to be cleared."
	case model.ApprovalRejected:
		return "No change requests waiting to be cleared."
	default:
		return "Nothing waiting for review."
	}
}

func badgeLabel(status model.ApprovalStatus) string {
	switch status {
	case model.ApprovalApproved:
		return "approved"
	case model.ApprovalRejected:
		return "changes"
	default:
		return "pending"
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func decision(text string) tea.Cmd {
	return func() tea.Msg { return DecisionMsg{Text: text} }
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
