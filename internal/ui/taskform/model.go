package taskform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/theme"
)

// TaskCreatedMsg is dispatched when a new task is submitted via the form.
type TaskCreatedMsg struct {
	Task model.Task
}

// TaskUpdatedMsg is dispatched when an existing task is updated via the form.
type TaskUpdatedMsg struct {
	Task model.Task
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title          string
	description    string
	caption        string
	status         model.TaskStatus
	columnID       string
	assigneeID     string
	dueDate        string
	estimatedHours string
	origin         model.TaskOrigin
	tagIDs         []string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	original model.Task
	columns  []model.Column
	users    []model.User
	tags     []model.Tag
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{status: model.StatusTodo},
		width:  width,
		height: height,
	}
}

// SetOptions sets the available columns, users, and tags for the selectors.
func (m *Model) SetOptions(columns []model.Column, users []model.User, tags []model.Tag) {
	m.columns = columns
	m.users = users
	m.tags = tags
}

// StartCreate initializes the form for creating a new task in a column.
func (m *Model) StartCreate(columnID string) tea.Cmd {
	m.editMode = false
	m.original = model.Task{}
	*m.fb = formBindings{
		status:   model.StatusTodo,
		columnID: columnID,
		origin:   model.OriginOther,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.original = task
	*m.fb = formBindings{
		title:       task.Title,
		description: task.Description,
		caption:     task.Caption,
		status:      task.Status,
		columnID:    task.ColumnID,
		assigneeID:  task.AssigneeID,
		origin:      task.Origin,
		tagIDs:      append([]string(nil), task.TagIDs...),
	}
	if !task.DueDate.IsZero() {
		m.fb.dueDate = task.DueDate.Format("2006-01-02")
	}
	if task.EstimatedHours > 0 {
		m.fb.estimatedHours = strconv.FormatFloat(task.EstimatedHours, 'f', -1, 64)
	}
	if m.fb.origin == "" {
		m.fb.origin = model.OriginOther
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Active reports whether a form is currently open.
func (m Model) Active() bool {
	return m.form != nil
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.form = nil
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What is the deliverable?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewText().
			Title("Caption").
			Placeholder("Social copy (optional)...").
			Value(&m.fb.caption),
		huh.NewSelect[model.TaskStatus]().
			Title("Status").
			Options(
				huh.NewOption("Ideas", model.StatusIdeas),
				huh.NewOption("To Do", model.StatusTodo),
				huh.NewOption("In Progress", model.StatusInProgress),
				huh.NewOption("Waiting", model.StatusWaiting),
				huh.NewOption("Done", model.StatusDone),
				huh.NewOption("Cancelled", model.StatusCancelled),
			).
			Value(&m.fb.status),
		m.columnField(),
		m.assigneeField(),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Estimated Hours").
			Placeholder("e.g. 4.5 (optional)").
			Value(&m.fb.estimatedHours).
			Validate(validateOptionalHours),
		huh.NewSelect[model.TaskOrigin]().
			Title("Origin").
			Options(
				huh.NewOption("Paid Traffic", model.OriginPaidTraffic),
				huh.NewOption("Instagram/Facebook", model.OriginInstagram),
				huh.NewOption("TikTok", model.OriginTikTok),
				huh.NewOption("YouTube", model.OriginYouTube),
				huh.NewOption("Banner", model.OriginBanner),
				huh.NewOption("Flyer", model.OriginFlyer),
				huh.NewOption("Offline Media", model.OriginOfflineMedia),
				huh.NewOption("Other", model.OriginOther),
			).
			Value(&m.fb.origin),
	}
	if tagField := m.tagField(); tagField != nil {
		fields = append(fields, tagField)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) columnField() huh.Field {
	opts := make([]huh.Option[string], 0, len(m.columns))
	for _, c := range m.columns {
		opts = append(opts, huh.NewOption(c.Title, c.ID))
	}
	return huh.NewSelect[string]().
		Title("Column").
		Options(opts...).
		Value(&m.fb.columnID)
}

func (m *Model) assigneeField() huh.Field {
	opts := []huh.Option[string]{
		huh.NewOption("Unassigned", ""),
	}
	for _, u := range m.users {
		opts = append(opts, huh.NewOption(u.Name, u.ID))
	}
	return huh.NewSelect[string]().
		Title("Assignee").
		Options(opts...).
		Value(&m.fb.assigneeID)
}

func (m *Model) tagField() huh.Field {
	if len(m.tags) == 0 {
		return nil
	}
	opts := make([]huh.Option[string], len(m.tags))
	for i, t := range m.tags {
		opts[i] = huh.NewOption(t.Name, t.ID)
	}
	return huh.NewMultiSelect[string]().
		Title("Tags").
		Options(opts...).
		Value(&m.fb.tagIDs)
}

func (m Model) handleSubmit() tea.Cmd {
	task := m.original
	task.Title = m.fb.title
	task.Description = m.fb.description
	task.Caption = m.fb.caption
	task.Status = m.fb.status
	task.ColumnID = m.fb.columnID
	task.AssigneeID = m.fb.assigneeID
	task.Origin = m.fb.origin
	task.TagIDs = m.fb.tagIDs

	task.DueDate = time.Time{}
	if m.fb.dueDate != "" {
		if t, err := time.Parse("2006-01-02", m.fb.dueDate); err == nil {
			task.DueDate = t
		}
	}

	task.EstimatedHours = 0
	if m.fb.estimatedHours != "" {
		if h, err := strconv.ParseFloat(m.fb.estimatedHours, 64); err == nil {
			task.EstimatedHours = h
		}
	}

	if m.editMode {
		return func() tea.Msg { return TaskUpdatedMsg{Task: task} }
	}
	return func() tea.Msg { return TaskCreatedMsg{Task: task} }
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

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalHours(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || h < 0 {
		return fmt.Errorf("hours must be a non-negative number")
	}
	return nil
}
