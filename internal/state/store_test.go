package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfreitas/mktboard/internal/model"
)

func TestAddTaskNotifiesAssignee(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)

	id := s.AddTask(model.Task{Title: "new landing page", AssigneeID: "u1", Status: model.StatusTodo})
	require.NotEmpty(t, id)

	notifs := s.NotificationsFor("u1")
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifyInfo, notifs[0].Type)
	assert.Contains(t, notifs[0].Message, "new landing page")
}

func TestDeleteTaskRemovesFromListings(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo, ColumnID: "c1"})

	require.NoError(t, s.DeleteTask(task.ID))

	_, ok := s.Task(task.ID)
	assert.False(t, ok)
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.TasksInColumn("c1"))

	assert.ErrorIs(t, s.DeleteTask(task.ID), ErrTaskNotFound)
}

func TestDelegateTask(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo, AssigneeID: "u1"})
	s.SetCurrentUser("u2")

	require.NoError(t, s.DelegateTask(task.ID, "u2"))

	got, _ := s.Task(task.ID)
	assert.Equal(t, "u2", got.AssigneeID)
	require.Len(t, got.History, 1)
	assert.Equal(t, "Delegated from Ana to Carlos", got.History[0].Action)

	notifs := s.NotificationsFor("u2")
	require.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Message, "banner")
}

func TestMoveTaskSetsStatusExplicitly(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo, ColumnID: "c_todo"})

	require.NoError(t, s.MoveTask(task.ID, "c_prog", model.StatusInProgress))

	got, _ := s.Task(task.ID)
	assert.Equal(t, "c_prog", got.ColumnID)
	assert.Equal(t, model.StatusInProgress, got.Status)
	assert.True(t, got.TimerRunning)
}

func TestNotificationsNewestFirst(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)

	s.AddTask(model.Task{ID: "a", Title: "first", AssigneeID: "u1"})
	now = now.Add(time.Minute)
	s.AddTask(model.Task{ID: "b", Title: "second", AssigneeID: "u1"})

	notifs := s.Notifications()
	require.Len(t, notifs, 2)
	assert.Contains(t, notifs[0].Message, "second")
	assert.Contains(t, notifs[1].Message, "first")
}

func TestMarkNotificationRead(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &now)
	s.AddTask(model.Task{Title: "x", AssigneeID: "u1"})

	n := s.NotificationsFor("u1")[0]
	assert.Equal(t, 1, s.UnreadCount("u1"))

	require.NoError(t, s.MarkNotificationRead(n.ID))
	assert.Equal(t, 0, s.UnreadCount("u1"))

	assert.ErrorIs(t, s.MarkNotificationRead("missing"), ErrNotFound)
}

func TestBroadcastReachesEveryUser(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &now)

	s.Broadcast("office closed friday")

	for _, id := range []string{"u1", "u2"} {
		notifs := s.NotificationsFor(id)
		require.Len(t, notifs, 1)
		assert.Contains(t, notifs[0].Message, "office closed friday")
	}
}

func TestLogin(t *testing.T) {
	s := New()
	s.Restore(Seed())

	u, ok := s.Login("ADMIN@marketing.com", "admin")
	require.True(t, ok)
	assert.Equal(t, "u2", u.ID)

	cur, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Carlos Admin", cur.Name)

	_, ok = s.Login("admin@marketing.com", "wrong")
	assert.False(t, ok)

	s.Logout()
	_, ok = s.CurrentUser()
	assert.False(t, ok)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := New()
	s.Restore(Seed())
	s.SetCurrentUser("u2")
	require.NoError(t, s.AddComment("t1", "kickoff note"))

	snap := s.Snapshot()

	restored := New()
	restored.Restore(snap)

	assert.Equal(t, len(s.Tasks()), len(restored.Tasks()))
	got, ok := restored.Task("t1")
	require.True(t, ok)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "kickoff note", got.Comments[0].Text)
	assert.Equal(t, s.Mood(), restored.Mood())
}

func TestColumnsSortedByOrder(t *testing.T) {
	s := New()
	s.Restore(Snapshot{Columns: []model.Column{
		{ID: "b", Title: "B", Order: 1},
		{ID: "a", Title: "A", Order: 0},
	}})

	cols := s.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "a", cols[0].ID)

	col := s.AddColumn("C", "green")
	assert.Equal(t, 2, col.Order)
}

func TestCustomColumnRegistry(t *testing.T) {
	s := New()

	op := s.AddCustomColumn(model.ColumnKindOperational, "Priority")
	s.AddCustomColumn(model.ColumnKindPlanning, "Q4 focus")

	require.Len(t, s.CustomColumns(model.ColumnKindOperational), 1)
	require.Len(t, s.CustomColumns(model.ColumnKindPlanning), 1)

	require.NoError(t, s.RenameCustomColumn(op.ID, "Urgency"))
	assert.Equal(t, "Urgency", s.CustomColumns(model.ColumnKindOperational)[0].Title)

	assert.ErrorIs(t, s.RenameCustomColumn("missing", "x"), ErrNotFound)
}

func TestNotesLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)

	n := s.AddNote("draft the newsletter")
	now = now.Add(time.Minute)
	require.NoError(t, s.EditNote(n.ID, "draft and schedule the newsletter"))

	notes := s.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "draft and schedule the newsletter", notes[0].Text)
	assert.Equal(t, now, notes[0].UpdatedAt)

	require.NoError(t, s.DeleteNote(n.ID))
	assert.Empty(t, s.Notes())
}
