// Package app is the root Bubble Tea model: it routes between the board,
// approvals, notifications, and traffic views, owns the login session,
// and wires the background timer sweeper into the UI loop.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	aiservice "github.com/lfreitas/mktboard/internal/ai"
	"github.com/lfreitas/mktboard/internal/intake"
	"github.com/lfreitas/mktboard/internal/keys"
	"github.com/lfreitas/mktboard/internal/state"
	"github.com/lfreitas/mktboard/internal/sweep"
	"github.com/lfreitas/mktboard/internal/ui"
	approvalsview "github.com/lfreitas/mktboard/internal/ui/approvals"
	boardview "github.com/lfreitas/mktboard/internal/ui/board"
	helpview "github.com/lfreitas/mktboard/internal/ui/help"
	notifview "github.com/lfreitas/mktboard/internal/ui/notif"
	"github.com/lfreitas/mktboard/internal/ui/taskform"
	trafficview "github.com/lfreitas/mktboard/internal/ui/traffic"
)

// tickMsg drives the once-a-second re-render that keeps running timer
// readouts live.
type tickMsg time.Time

// intakeDoneMsg reports the outcome of a mailbox import run.
type intakeDoneMsg struct {
	created int
	err     error
}

// aiResultMsg carries an AI suggestion for the detail panel.
type aiResultMsg struct {
	text string
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewBoard
	ViewApprovals
	ViewNotifications
	ViewTraffic
	ViewDetail
	ViewTaskForm
	ViewPrompt
	ViewHelp
)

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *state.Store
	keys         *keys.KeyMap
	assistant    *aiservice.Assistant
	importer     *intake.Importer
	sweeper      *sweep.Sweeper

	boardView     boardview.Model
	approvalsView approvalsview.Model
	notifView     notifview.Model
	trafficView   trafficview.Model
	formView      taskform.Model
	helpView      helpview.Model

	login  *loginPrompt
	prompt *actionPrompt

	detailTaskID  string
	aiSuggestion  string
	statusMessage string
	ready         bool
}

// New creates the root application model. assistant and importer may be
// nil when the corresponding integration is not configured.
func New(
	s *state.Store,
	assistant *aiservice.Assistant,
	importer *intake.Importer,
	sweeper *sweep.Sweeper,
) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:   ViewLogin,
		store:         s,
		keys:          k,
		assistant:     assistant,
		importer:      importer,
		sweeper:       sweeper,
		boardView:     boardview.New(s, k, 80, 24),
		approvalsView: approvalsview.New(s, k, 80, 24),
		notifView:     notifview.New(s, k, 80, 24),
		trafficView:   trafficview.New(s, 80, 24),
		formView:      taskform.New(80, 24),
		helpView:      helpview.New(k, 80, 24),
		login:         newLoginPrompt(),
	}
}

// Init starts the sweeper subscription, the render tick, and the login
// form.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.login.form.Init(),
		m.sweeper.Start(),
		tick(),
	)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.boardView.SetSize(w, h)
		m.approvalsView.SetSize(w, h)
		m.notifView.SetSize(w, h)
		m.trafficView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		return m.updateActiveView(msg)

	case tickMsg:
		return m, tick()

	case sweep.ResultMsg:
		m.statusMessage = "Timer auto-stopped on " +
			pluralTasks(len(msg.StoppedTaskIDs))
		return m, m.sweeper.WaitForNextResult()

	case intakeDoneMsg:
		if msg.err != nil {
			m.statusMessage = "Mail import failed: " + msg.err.Error()
		} else {
			m.statusMessage = "Imported " + pluralTasks(msg.created) + " from mail"
		}
		return m, nil

	case aiResultMsg:
		m.aiSuggestion = msg.text
		return m, nil

	case boardview.SelectedTaskMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detailTaskID = msg.TaskID
		m.aiSuggestion = ""
		return m, nil

	case boardview.NewTaskRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewTaskForm
		m.formView.SetOptions(m.store.Columns(), m.store.Users(), m.store.Tags())
		return m, m.formView.StartCreate(msg.ColumnID)

	case boardview.EditTaskRequestMsg:
		task, ok := m.store.Task(msg.TaskID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewTaskForm
		m.formView.SetOptions(m.store.Columns(), m.store.Users(), m.store.Tags())
		return m, m.formView.StartEdit(task)

	case boardview.CommentRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewPrompt
		m.prompt = newCommentPrompt(msg.TaskID)
		return m, m.prompt.form.Init()

	case boardview.DelegateRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewPrompt
		m.prompt = newDelegatePrompt(msg.TaskID, m.store.Users())
		return m, m.prompt.form.Init()

	case boardview.ActionMsg:
		m.statusMessage = msg.Text
		return m, nil

	case approvalsview.DecisionMsg:
		m.statusMessage = msg.Text
		return m, nil

	case taskform.TaskCreatedMsg:
		m.currentView = m.previousView
		task := msg.Task
		if current, ok := m.store.CurrentUser(); ok {
			task.CreatorID = current.ID
		}
		m.store.AddTask(task)
		m.statusMessage = "Created: " + task.Title
		return m, nil

	case taskform.TaskUpdatedMsg:
		m.currentView = m.previousView
		if err := m.store.UpdateTask(msg.Task); err != nil {
			m.statusMessage = "Update failed: " + err.Error()
		} else {
			m.statusMessage = "Updated: " + msg.Task.Title
		}
		return m, nil

	case taskform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if handled, model, cmd := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that apply regardless of the focused
// view. Form-like views keep full key ownership.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.sweeper.Stop()
		return true, m, tea.Quit
	}

	switch m.currentView {
	case ViewLogin, ViewTaskForm, ViewPrompt:
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewBoard {
			m.sweeper.Stop()
			return true, m, tea.Quit
		}

	case "esc":
		if m.currentView == ViewDetail || m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return true, m, nil

	case "1":
		m.currentView = ViewBoard
		return true, m, nil

	case "2":
		m.currentView = ViewApprovals
		return true, m, nil

	case "3":
		m.currentView = ViewNotifications
		return true, m, nil

	case "4":
		m.currentView = ViewTraffic
		m.trafficView.Refresh()
		return true, m, nil

	case "i":
		if m.importer == nil {
			m.statusMessage = "Mail intake is not configured"
			return true, m, nil
		}
		m.statusMessage = "Importing mail requests..."
		return true, m, m.runIntake()

	case "g":
		if m.currentView == ViewDetail {
			return true, m, m.suggestForDetail()
		}

	case "c":
		if m.currentView == ViewDetail {
			m.prompt = newCommentPrompt(m.detailTaskID)
			m.previousView = m.currentView
			m.currentView = ViewPrompt
			return true, m, m.prompt.form.Init()
		}
	}

	return false, m, nil
}

// runIntake drains the mailbox importer off the UI goroutine.
func (m Model) runIntake() tea.Cmd {
	imp := m.importer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		created, err := imp.Run(ctx)
		return intakeDoneMsg{created: created, err: err}
	}
}

// suggestForDetail asks the assistant for marketing angles on the task
// currently open in the detail view.
func (m Model) suggestForDetail() tea.Cmd {
	if m.assistant == nil {
		return func() tea.Msg { return aiResultMsg{text: aiservice.FallbackKeyMissing} }
	}

	task, ok := m.store.Task(m.detailTaskID)
	if !ok {
		return nil
	}

	assistant := m.assistant
	input := task.Description
	if input == "" {
		input = task.Title
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return aiResultMsg{text: assistant.GenerateTaskIdeas(ctx, input)}
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		return m.updateLogin(msg)
	case ViewBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case ViewApprovals:
		m.approvalsView, cmd = m.approvalsView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	case ViewTraffic:
		m.trafficView, cmd = m.trafficView.Update(msg)
	case ViewTaskForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewPrompt:
		return m.updatePrompt(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := m.store.SystemLogo()
	if title == "" {
		title = "Marketing Board"
	}

	userName := ""
	unread := 0
	if current, ok := m.store.CurrentUser(); ok {
		userName = current.Name
		unread = m.store.UnreadCount(current.ID)
	}

	header := m.layout.RenderHeader(title, userName, m.store.Mood(), unread)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView()
	case ViewBoard:
		return m.boardView.View()
	case ViewApprovals:
		return m.approvalsView.View()
	case ViewNotifications:
		return m.notifView.View()
	case ViewTraffic:
		return m.trafficView.View()
	case ViewDetail:
		return m.renderDetail()
	case ViewTaskForm:
		return m.formView.View()
	case ViewPrompt:
		return m.promptView()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar. A recent
// action message takes precedence over the hints.
func (m Model) keyHints() string {
	if m.statusMessage != "" {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewLogin:
		return "enter submit"
	case ViewApprovals:
		return "tab switch tab | a approve | r request changes | x dismiss | 1 board | q quit"
	case ViewNotifications:
		return "enter mark read | 1 board | q quit"
	case ViewTraffic:
		return "tab switch view | 1 board | q quit"
	case ViewDetail:
		return "esc back | c comment | g AI ideas"
	case ViewTaskForm, ViewPrompt:
		return "enter submit | esc cancel"
	case ViewHelp:
		return "? close help"
	default:
		return "n new | e edit | m move | t timer | s review | i mail | ? help | q quit"
	}
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
