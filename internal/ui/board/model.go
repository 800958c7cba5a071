// Package board renders the kanban view: one bordered column per board
// column, task cards inside, with a cursor that moves across both axes.
package board

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/mktboard/internal/keys"
	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
)

// SelectedTaskMsg is sent when a user opens a task's detail view.
type SelectedTaskMsg struct {
	TaskID string
}

// NewTaskRequestMsg asks the app to open the task form in create mode.
type NewTaskRequestMsg struct {
	ColumnID string
}

// EditTaskRequestMsg asks the app to open the task form for a task.
type EditTaskRequestMsg struct {
	TaskID string
}

// CommentRequestMsg asks the app to open the comment prompt for a task.
type CommentRequestMsg struct {
	TaskID string
}

// DelegateRequestMsg asks the app to open the assignee picker for a task.
type DelegateRequestMsg struct {
	TaskID string
}

// ActionMsg carries one-line feedback for the status bar.
type ActionMsg struct {
	Text string
}

// statusByColumn maps the fixed board columns to the status a task takes
// when dropped there. Tasks moved into user-created columns keep their
// current status.
var statusByColumn = map[string]model.TaskStatus{
	state.ColumnIdeas:      model.StatusIdeas,
	state.ColumnTodo:       model.StatusTodo,
	state.ColumnInProgress: model.StatusInProgress,
	state.ColumnWaiting:    model.StatusWaiting,
	state.ColumnDone:       model.StatusDone,
	state.ColumnCancelled:  model.StatusCancelled,
}

// Model is the kanban board view component.
type Model struct {
	store  *state.Store
	keys   *keys.KeyMap
	now    func() time.Time
	colIdx int
	rowIdx map[string]int
	width  int
	height int
}

// New creates a new board model.
func New(s *state.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  s,
		keys:   k,
		now:    time.Now,
		rowIdx: make(map[string]int),
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	columns := m.store.Columns()
	if len(columns) == 0 {
		return m, nil
	}
	m.clampCursor(columns)
	col := columns[m.colIdx]
	tasks := m.store.TasksInColumn(col.ID)

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		if m.colIdx > 0 {
			m.colIdx--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Right):
		if m.colIdx < len(columns)-1 {
			m.colIdx++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		if m.rowIdx[col.ID] > 0 {
			m.rowIdx[col.ID]--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.rowIdx[col.ID] < len(tasks)-1 {
			m.rowIdx[col.ID]++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		if task, ok := m.selected(tasks, col.ID); ok {
			return m, func() tea.Msg { return SelectedTaskMsg{TaskID: task.ID} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.NewTask):
		return m, func() tea.Msg { return NewTaskRequestMsg{ColumnID: col.ID} }

	case key.Matches(keyMsg, m.keys.Edit):
		if task, ok := m.selected(tasks, col.ID); ok {
			return m, func() tea.Msg { return EditTaskRequestMsg{TaskID: task.ID} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Comment):
		if task, ok := m.selected(tasks, col.ID); ok {
			return m, func() tea.Msg { return CommentRequestMsg{TaskID: task.ID} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Delegate):
		if task, ok := m.selected(tasks, col.ID); ok {
			return m, func() tea.Msg { return DelegateRequestMsg{TaskID: task.ID} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Delete):
		if task, ok := m.selected(tasks, col.ID); ok {
			if err := m.store.DeleteTask(task.ID); err != nil {
				return m, feedback("Delete failed: " + err.Error())
			}
			return m, feedback("Deleted: " + task.Title)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.MoveTask):
		return m.moveSelected(columns, tasks, col.ID)

	case key.Matches(keyMsg, m.keys.SendReview):
		if task, ok := m.selected(tasks, col.ID); ok {
			if err := m.store.RequestApproval(task.ID); err != nil {
				return m, feedback("Approval request failed: " + err.Error())
			}
			return m, feedback("Sent for approval: " + task.Title)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Timer):
		return m.toggleTimer(tasks, col.ID)
	}

	return m, nil
}

// moveSelected pushes the selected task one column to the right,
// wrapping to the first column at the end.
func (m Model) moveSelected(
	columns []model.Column, tasks []model.Task, colID string,
) (Model, tea.Cmd) {
	task, ok := m.selected(tasks, colID)
	if !ok {
		return m, nil
	}

	next := columns[(m.colIdx+1)%len(columns)]
	status := task.Status
	if mapped, ok := statusByColumn[next.ID]; ok {
		status = mapped
	}

	if err := m.store.MoveTask(task.ID, next.ID, status); err != nil {
		return m, feedback("Move failed: " + err.Error())
	}
	return m, feedback("Moved to " + next.Title)
}

// toggleTimer manually starts or stops the open session on the selected
// task without changing its status.
func (m Model) toggleTimer(tasks []model.Task, colID string) (Model, tea.Cmd) {
	task, ok := m.selected(tasks, colID)
	if !ok {
		return m, nil
	}

	now := m.now()
	if task.TimerRunning {
		if task.LastTimerStart != nil {
			task.TimeSpent += now.Sub(*task.LastTimerStart).Milliseconds()
		}
		task.TimerRunning = false
		task.LastTimerStart = nil
	} else {
		task.TimerRunning = true
		task.LastTimerStart = &now
	}

	if err := m.store.UpdateTask(task); err != nil {
		return m, feedback("Timer toggle failed: " + err.Error())
	}
	if task.TimerRunning {
		return m, feedback("Timer started: " + task.Title)
	}
	return m, feedback("Timer stopped: " + task.Title)
}

// selected returns the task under the cursor, if any.
func (m Model) selected(tasks []model.Task, colID string) (model.Task, bool) {
	idx := m.rowIdx[colID]
	if idx < 0 || idx >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[idx], true
}

// clampCursor keeps the cursor inside the current board shape after
// tasks or columns changed underneath it.
func (m *Model) clampCursor(columns []model.Column) {
	if m.colIdx >= len(columns) {
		m.colIdx = len(columns) - 1
	}
	if m.colIdx < 0 {
		m.colIdx = 0
	}
	for _, col := range columns {
		n := len(m.store.TasksInColumn(col.ID))
		if m.rowIdx[col.ID] >= n {
			m.rowIdx[col.ID] = n - 1
		}
		if m.rowIdx[col.ID] < 0 {
			m.rowIdx[col.ID] = 0
		}
	}
}

// View renders the board.
func (m Model) View() string {
	columns := m.store.Columns()
	if len(columns) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No columns yet.")
	}

	m.clampCursor(columns)

	colWidth := m.width/len(columns) - 2
	if colWidth < 16 {
		colWidth = 16
	}

	rendered := make([]string, 0, len(columns))
	for i, col := range columns {
		rendered = append(rendered, m.renderColumn(col, colWidth, i == m.colIdx))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func feedback(text string) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Text: text} }
}
