package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/mktboard/internal/model"
)

// loginPrompt holds the login form and its heap-allocated bindings so
// huh's Value() pointers survive Bubble Tea model copies.
type loginPrompt struct {
	form     *huh.Form
	email    string
	password string
	failed   bool
}

func newLoginPrompt() *loginPrompt {
	p := &loginPrompt{}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@agency.io").
				Value(&p.email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&p.password),
		),
	)
	return p
}

// updateLogin drives the login form and activates the session on a
// successful credential match.
func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	mdl, cmd := m.login.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.login.form = f
	}

	if m.login.form.State == huh.StateCompleted {
		user, ok := m.store.Login(m.login.email, m.login.password)
		if !ok {
			failed := newLoginPrompt()
			failed.failed = true
			m.login = failed
			return m, m.login.form.Init()
		}

		m.statusMessage = "Welcome back, " + user.Name
		m.login = nil
		m.currentView = ViewBoard
		return m, nil
	}
	if m.login.form.State == huh.StateAborted {
		m.sweeper.Stop()
		return m, tea.Quit
	}

	return m, cmd
}

// loginView renders the login screen.
func (m Model) loginView() string {
	if m.login == nil {
		return ""
	}

	var sb strings.Builder
	if m.login.failed {
		sb.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")).
			Render("Invalid email or password.") + "\n\n")
	}
	sb.WriteString(m.login.form.View())

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// promptKind distinguishes the small single-purpose action prompts.
type promptKind int

const (
	promptComment promptKind = iota
	promptDelegate
)

// actionPrompt is a one-field form attached to a task: add a comment or
// pick a new assignee.
type actionPrompt struct {
	form       *huh.Form
	kind       promptKind
	taskID     string
	text       string
	assigneeID string
}

func newCommentPrompt(taskID string) *actionPrompt {
	p := &actionPrompt{kind: promptComment, taskID: taskID}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Comment").
				Placeholder("Use @Name to mention someone...").
				Value(&p.text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("comment cannot be empty")
					}
					return nil
				}),
		),
	)
	return p
}

func newDelegatePrompt(taskID string, users []model.User) *actionPrompt {
	p := &actionPrompt{kind: promptDelegate, taskID: taskID}

	opts := make([]huh.Option[string], 0, len(users))
	for _, u := range users {
		opts = append(opts, huh.NewOption(u.Name, u.ID))
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Delegate to").
				Options(opts...).
				Value(&p.assigneeID),
		),
	)
	return p
}

// updatePrompt drives the active action prompt to completion.
func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.prompt == nil {
		m.currentView = m.previousView
		return m, nil
	}

	mdl, cmd := m.prompt.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.prompt.form = f
	}

	if m.prompt.form.State == huh.StateCompleted {
		p := m.prompt
		m.prompt = nil
		m.currentView = m.previousView

		switch p.kind {
		case promptComment:
			if err := m.store.AddComment(p.taskID, p.text); err != nil {
				m.statusMessage = "Comment failed: " + err.Error()
			} else {
				m.statusMessage = "Comment added"
			}
		case promptDelegate:
			if err := m.store.DelegateTask(p.taskID, p.assigneeID); err != nil {
				m.statusMessage = "Delegate failed: " + err.Error()
			} else {
				m.statusMessage = "Task delegated"
			}
		}
		return m, nil
	}
	if m.prompt.form.State == huh.StateAborted {
		m.prompt = nil
		m.currentView = m.previousView
		return m, nil
	}

	return m, cmd
}

// promptView renders the active action prompt.
func (m Model) promptView() string {
	if m.prompt == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(m.prompt.form.View())
}
