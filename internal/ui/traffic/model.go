// Package traffic renders the paid-traffic spreadsheet as a table with
// two tabs: operational metrics and planning. User-defined custom
// columns are appended after the fixed ones.
package traffic

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
	"github.com/lfreitas/mktboard/internal/theme"
)

// tab selects which half of the spreadsheet is shown.
type tab int

const (
	tabOperational tab = iota
	tabPlanning
)

// Model is the traffic spreadsheet view component.
type Model struct {
	store  *state.Store
	table  table.Model
	tab    tab
	width  int
	height int
}

// New creates a new traffic model.
func New(s *state.Store, width, height int) Model {
	m := Model{
		store:  s,
		width:  width,
		height: height,
	}
	m.table = m.buildTable()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the traffic view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "tab" {
		if m.tab == tabOperational {
			m.tab = tabPlanning
		} else {
			m.tab = tabOperational
		}
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Refresh rebuilds the table from the store. Call after campaign or
// custom column mutations.
func (m *Model) Refresh() {
	cursor := m.table.Cursor()
	m.table = m.buildTable()
	m.table.SetCursor(cursor)
}

// buildTable assembles columns and rows for the active tab.
func (m Model) buildTable() table.Model {
	var cols []table.Column
	var rows []table.Row

	campaigns := m.store.Campaigns()

	switch m.tab {
	case tabOperational:
		custom := m.store.CustomColumns(model.ColumnKindOperational)
		cols = []table.Column{
			{Title: "Platform", Width: 10},
			{Title: "Campaign", Width: 24},
			{Title: "On", Width: 3},
			{Title: "Budget/mo", Width: 10},
			{Title: "Spent", Width: 9},
			{Title: "CPC", Width: 6},
			{Title: "Conv", Width: 5},
			{Title: "ROI", Width: 6},
		}
		for _, c := range custom {
			cols = append(cols, table.Column{Title: c.Title, Width: 12})
		}

		for _, c := range campaigns {
			active := " "
			if c.Active {
				active = "✓"
			}
			row := table.Row{
				string(c.Platform),
				c.Name,
				active,
				fmt.Sprintf("%.0f", c.BudgetMonth),
				fmt.Sprintf("%.2f", c.Spent),
				fmt.Sprintf("%.2f", c.CPC),
				fmt.Sprintf("%d", c.Conversions),
				fmt.Sprintf("%.1fx", c.ROI),
			}
			for _, cc := range custom {
				row = append(row, c.CustomValues[cc.ID])
			}
			rows = append(rows, row)
		}

	case tabPlanning:
		custom := m.store.CustomColumns(model.ColumnKindPlanning)
		cols = []table.Column{
			{Title: "Campaign", Width: 24},
			{Title: "Objective", Width: 18},
			{Title: "Start", Width: 10},
			{Title: "End", Width: 10},
			{Title: "Leads", Width: 11},
			{Title: "Sales", Width: 11},
		}
		for _, c := range custom {
			cols = append(cols, table.Column{Title: c.Title, Width: 12})
		}

		for _, c := range campaigns {
			end := "-"
			if c.EndDate != nil {
				end = c.EndDate.Format("2006-01-02")
			}
			row := table.Row{
				c.Name,
				c.Objective,
				c.StartDate.Format("2006-01-02"),
				end,
				fmt.Sprintf("%d/%d", c.LeadsResult, c.LeadsTarget),
				fmt.Sprintf("%d/%d", c.SalesResult, c.SalesTarget),
			}
			for _, cc := range custom {
				row = append(row, c.PlanningValues[cc.ID])
			}
			rows = append(rows, row)
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(theme.ColorWhite).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Bold(true).
		Foreground(theme.ColorBlue)
	t.SetStyles(styles)

	return t
}

// View renders the traffic spreadsheet.
func (m Model) View() string {
	opTab := "Operational"
	planTab := "Planning"
	switch m.tab {
	case tabOperational:
		opTab = theme.HeaderStyle.Render(opTab)
		planTab = theme.HelpStyle.Render(planTab)
	case tabPlanning:
		opTab = theme.HelpStyle.Render(opTab)
		planTab = theme.HeaderStyle.Render(planTab)
	}

	var sb strings.Builder
	sb.WriteString(opTab + "  " + planTab + "\n\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n" + theme.HelpStyle.Render("tab switch view"))
	return sb.String()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(m.tableHeight())
}

func (m Model) tableHeight() int {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}
