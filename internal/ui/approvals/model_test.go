package approvals

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfreitas/mktboard/internal/keys"
	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
)

func newReviewStore(t *testing.T) (*state.Store, string) {
	t.Helper()

	s := state.New()
	s.Restore(state.Snapshot{
		Users: []model.User{
			{ID: "u1", Name: "Ana", Email: "ana@agency.io", Password: "123", Role: model.RoleAdmin},
		},
		Columns: []model.Column{{ID: state.ColumnDone, Title: "Done", Order: 1}},
	})
	s.SetCurrentUser("u1")

	id := s.AddTask(model.Task{
		Title:    "Spring campaign banner",
		Status:   model.StatusInProgress,
		ColumnID: state.ColumnDone,
	})
	require.NoError(t, s.RequestApproval(id))
	return s, id
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTabKeyCyclesReviewTabs(t *testing.T) {
	s, _ := newReviewStore(t)
	m := New(s, keys.DefaultKeyMap(), 80, 24)

	assert.Equal(t, model.ApprovalPending, m.tab)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.ApprovalApproved, m.tab)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.ApprovalRejected, m.tab)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.ApprovalPending, m.tab)
}

func TestApprovedTaskCanBeDismissedFromItsTab(t *testing.T) {
	s, id := newReviewStore(t)
	m := New(s, keys.DefaultKeyMap(), 80, 24)

	m, _ = m.Update(keyRune('a'))
	task, ok := s.Task(id)
	require.True(t, ok)
	assert.Equal(t, model.ApprovalApproved, task.ApprovalStatus)
	assert.True(t, task.ApprovalRequested)

	// Decided tasks leave the pending tab but stay listed on their own.
	assert.Empty(t, s.ApprovalQueue(model.ApprovalPending))
	require.Len(t, s.ApprovalQueue(model.ApprovalApproved), 1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(keyRune('x'))

	task, ok = s.Task(id)
	require.True(t, ok)
	assert.False(t, task.ApprovalRequested)
	assert.Equal(t, model.ApprovalApproved, task.ApprovalStatus, "dismissal keeps the decision for history")
	assert.Empty(t, s.ApprovalQueue(model.ApprovalApproved))
}

func TestDecidedTabsIgnoreDecisionKeys(t *testing.T) {
	s, id := newReviewStore(t)
	m := New(s, keys.DefaultKeyMap(), 80, 24)

	m, _ = m.Update(keyRune('a'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	// 'a' and 'r' only act on the pending tab.
	m, _ = m.Update(keyRune('a'))
	m, cmd := m.Update(keyRune('r'))
	assert.Nil(t, m.form)
	assert.Nil(t, cmd)

	task, ok := s.Task(id)
	require.True(t, ok)
	assert.True(t, task.ApprovalRequested)
	assert.Equal(t, model.ApprovalApproved, task.ApprovalStatus)
}

func TestRejectedTaskAppearsOnChangesTab(t *testing.T) {
	s, id := newReviewStore(t)
	require.NoError(t, s.Reject(id, "Swap the hero image"))

	m := New(s, keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.ApprovalRejected, m.tab)

	view := m.View()
	assert.Contains(t, view, "Spring campaign banner")
	assert.Contains(t, view, "Swap the hero image")

	m, _ = m.Update(keyRune('x'))
	assert.Empty(t, s.ApprovalQueue(model.ApprovalRejected))
}
