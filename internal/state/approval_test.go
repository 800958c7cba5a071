package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfreitas/mktboard/internal/model"
)

func TestRequestApproval(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo})

	require.NoError(t, s.RequestApproval(task.ID))

	got, _ := s.Task(task.ID)
	assert.True(t, got.ApprovalRequested)
	assert.Equal(t, model.ApprovalPending, got.ApprovalStatus)
	assert.Equal(t, model.StatusWaiting, got.Status)
}

func TestRequestApprovalStopsRunningTimer(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	start := now.Add(-30 * time.Minute)
	task := seedTask(s, model.Task{
		Title: "banner", Status: model.StatusInProgress,
		TimerRunning: true, LastTimerStart: &start,
	})

	require.NoError(t, s.RequestApproval(task.ID))

	got, _ := s.Task(task.ID)
	assert.False(t, got.TimerRunning)
	assert.Nil(t, got.LastTimerStart)
	assert.EqualValues(t, 30*60*1000, got.TimeSpent)
}

func TestApprove(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusWaiting,
		ApprovalRequested: true, ApprovalStatus: model.ApprovalPending})
	s.SetCurrentUser("u2")

	require.NoError(t, s.Approve(task.ID))

	got, _ := s.Task(task.ID)
	assert.Equal(t, model.ApprovalApproved, got.ApprovalStatus)
	assert.Equal(t, model.StatusDone, got.Status)
	require.Len(t, got.History, 1)
	assert.Equal(t, "Approved", got.History[0].Action)
	assert.Equal(t, "u2", got.History[0].UserID)

	notifs := s.NotificationsFor("u1")
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifySuccess, notifs[0].Type)
}

func TestReject(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusWaiting,
		ApprovalRequested: true, ApprovalStatus: model.ApprovalPending})
	s.SetCurrentUser("u2")

	require.NoError(t, s.Reject(task.ID, "logo is off-brand"))

	got, _ := s.Task(task.ID)
	assert.Equal(t, model.ApprovalRejected, got.ApprovalStatus)
	assert.Equal(t, model.StatusInProgress, got.Status)
	assert.Equal(t, "logo is off-brand", got.ApprovalFeedback)
	require.Len(t, got.Comments, 1)
	assert.Contains(t, got.Comments[0].Text, "logo is off-brand")
	assert.Equal(t, "u2", got.Comments[0].UserID)
	require.Len(t, got.History, 1)

	// Re-opening to InProgress restarts the timer via the start rule.
	assert.True(t, got.TimerRunning)
	require.NotNil(t, got.LastTimerStart)
}

func TestRejectEmptyReason(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusWaiting})

	assert.ErrorIs(t, s.Reject(task.ID, "   "), ErrEmptyReason)

	got, _ := s.Task(task.ID)
	assert.Empty(t, got.Comments)
}

func TestDismissKeepsDecision(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusDone,
		ApprovalRequested: true, ApprovalStatus: model.ApprovalApproved})

	require.NoError(t, s.Dismiss(task.ID))

	got, _ := s.Task(task.ID)
	assert.False(t, got.ApprovalRequested)
	assert.Equal(t, model.ApprovalApproved, got.ApprovalStatus)
	assert.Empty(t, s.ApprovalQueue(model.ApprovalApproved))
}

func TestApprovalQueue(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &now)
	seedTask(s, model.Task{ID: "a", Status: model.StatusWaiting,
		ApprovalRequested: true, ApprovalStatus: model.ApprovalPending})
	seedTask(s, model.Task{ID: "b", Status: model.StatusDone,
		ApprovalRequested: true, ApprovalStatus: model.ApprovalApproved})
	seedTask(s, model.Task{ID: "c", Status: model.StatusTodo})

	pending := s.ApprovalQueue(model.ApprovalPending)
	require.Len(t, pending, 1)
	assert.Equal(t, "a", pending[0].ID)
}
