package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfreitas/mktboard/internal/model"
)

// newTestStore returns a store with a controllable clock and a minimal
// team: one admin (u2) and one regular user (u1) acting as the session.
func newTestStore(t *testing.T, now *time.Time) *Store {
	t.Helper()

	s := New()
	s.now = func() time.Time { return *now }
	s.Restore(Snapshot{
		Users: []model.User{
			{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: model.RoleUser},
			{ID: "u2", Name: "Carlos", Email: "carlos@example.com", Role: model.RoleAdmin},
		},
	})
	s.SetCurrentUser("u1")
	return s
}

func seedTask(s *Store, task model.Task) model.Task {
	if task.ID == "" {
		task.ID = "t1"
	}
	if task.AssigneeID == "" {
		task.AssigneeID = "u1"
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
	return task
}

func alertsFor(s *Store, userID string) []model.Notification {
	var out []model.Notification
	for _, n := range s.NotificationsFor(userID) {
		if n.Type == model.NotifyAlert {
			out = append(out, n)
		}
	}
	return out
}

func TestUpdateTaskStartsTimerOnEnteringInProgress(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo})

	// The caller supplies stale timer fields; the store must override them.
	task.Status = model.StatusInProgress
	task.TimerRunning = false
	stale := now.Add(-time.Hour)
	task.LastTimerStart = &stale

	require.NoError(t, s.UpdateTask(task))

	got, ok := s.Task(task.ID)
	require.True(t, ok)
	assert.True(t, got.TimerRunning)
	require.NotNil(t, got.LastTimerStart)
	assert.Equal(t, now, *got.LastTimerStart)
	assert.EqualValues(t, 0, got.TimeSpent)
}

func TestUpdateTaskStopsTimerAndAccumulates(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo})

	task.Status = model.StatusInProgress
	require.NoError(t, s.UpdateTask(task))

	// One hour later the task leaves InProgress.
	now = now.Add(time.Hour)
	task, _ = s.Task(task.ID)
	task.Status = model.StatusWaiting
	require.NoError(t, s.UpdateTask(task))

	got, _ := s.Task(task.ID)
	assert.False(t, got.TimerRunning)
	assert.Nil(t, got.LastTimerStart)
	assert.EqualValues(t, 3600000, got.TimeSpent)
}

func TestUpdateTaskTimeSpentNeverDecreases(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo, TimeSpent: 5000})

	task.Status = model.StatusInProgress
	require.NoError(t, s.UpdateTask(task))

	now = now.Add(30 * time.Minute)
	task, _ = s.Task(task.ID)
	task.Status = model.StatusDone
	require.NoError(t, s.UpdateTask(task))

	got, _ := s.Task(task.ID)
	assert.EqualValues(t, 5000+30*60*1000, got.TimeSpent)
}

func TestUpdateTaskOverrunAlert(t *testing.T) {
	t.Run("exactly at estimate does not alert", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		s := newTestStore(t, &now)
		task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo, EstimatedHours: 1})

		task.Status = model.StatusInProgress
		require.NoError(t, s.UpdateTask(task))

		now = now.Add(time.Hour) // timeSpent lands at exactly 1.0h
		task, _ = s.Task(task.ID)
		task.Status = model.StatusWaiting
		require.NoError(t, s.UpdateTask(task))

		assert.Empty(t, alertsFor(s, "u2"))
	})

	t.Run("one millisecond over the estimate alerts once", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		s := newTestStore(t, &now)
		task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo, EstimatedHours: 1})

		task.Status = model.StatusInProgress
		require.NoError(t, s.UpdateTask(task))

		now = now.Add(time.Hour + time.Millisecond)
		task, _ = s.Task(task.ID)
		task.Status = model.StatusWaiting
		require.NoError(t, s.UpdateTask(task))

		alerts := alertsFor(s, "u2")
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0].Message, "banner")
		assert.Contains(t, alerts[0].Message, "Ana")
	})

	t.Run("no estimate never alerts", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		s := newTestStore(t, &now)
		task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo, EstimatedHours: 0})

		task.Status = model.StatusInProgress
		require.NoError(t, s.UpdateTask(task))

		now = now.Add(48 * time.Hour)
		task, _ = s.Task(task.ID)
		task.Status = model.StatusDone
		require.NoError(t, s.UpdateTask(task))

		assert.Empty(t, alertsFor(s, "u2"))
	})
}

func TestUpdateTaskTimerFieldsPassThrough(t *testing.T) {
	// Neither rule applies on a Todo -> Waiting move: the store keeps
	// whatever the caller supplied, it is not a validated state machine.
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo, TimeSpent: 1234})

	task.Status = model.StatusWaiting
	task.TimeSpent = 9999
	require.NoError(t, s.UpdateTask(task))

	got, _ := s.Task(task.ID)
	assert.EqualValues(t, 9999, got.TimeSpent)
	assert.False(t, got.TimerRunning)
}

func TestUpdateTaskUnknownID(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &now)

	err := s.UpdateTask(model.Task{ID: "missing", Status: model.StatusTodo})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTimerInvariantHoldsAfterEveryTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)
	task := seedTask(s, model.Task{Title: "banner", Status: model.StatusIdeas})

	statuses := []model.TaskStatus{
		model.StatusTodo, model.StatusInProgress, model.StatusWaiting,
		model.StatusInProgress, model.StatusDone, model.StatusCancelled,
	}
	for _, st := range statuses {
		now = now.Add(10 * time.Minute)
		cur, _ := s.Task(task.ID)
		cur.Status = st
		require.NoError(t, s.UpdateTask(cur))

		got, _ := s.Task(task.ID)
		if got.TimerRunning {
			assert.NotNil(t, got.LastTimerStart, "status %s", st)
		} else {
			assert.Nil(t, got.LastTimerStart, "status %s", st)
		}
	}
}

func TestMentionNotification(t *testing.T) {
	t.Run("fresh @ comment by someone else notifies the actor", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		s := newTestStore(t, &now)
		task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo})

		task.Comments = append(task.Comments, model.Comment{
			ID: "cm1", UserID: "u3", Text: "@ana please review", CreatedAt: now,
		})
		require.NoError(t, s.UpdateTask(task))

		notifs := s.NotificationsFor("u1")
		require.Len(t, notifs, 1)
		assert.Contains(t, notifs[0].Message, "banner")
	})

	t.Run("stale comment timestamp is ignored", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		s := newTestStore(t, &now)
		task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo})

		task.Comments = append(task.Comments, model.Comment{
			ID: "cm1", UserID: "u3", Text: "@ana old news", CreatedAt: now.Add(-5 * time.Second),
		})
		require.NoError(t, s.UpdateTask(task))

		assert.Empty(t, s.NotificationsFor("u1"))
	})

	t.Run("own comment does not notify", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		s := newTestStore(t, &now)
		task := seedTask(s, model.Task{Title: "banner", Status: model.StatusTodo})

		require.NoError(t, s.AddComment(task.ID, "@carlos ping"))

		assert.Empty(t, s.NotificationsFor("u1"))
	})
}

func TestSweepTimersEnforcesCeiling(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)

	start := now.Add(-13 * time.Hour)
	seedTask(s, model.Task{
		ID: "over", Title: "long one", Status: model.StatusInProgress,
		EstimatedHours: 1, TimerRunning: true, LastTimerStart: &start,
	})
	shortStart := now.Add(-time.Hour)
	seedTask(s, model.Task{
		ID: "under", Title: "short one", Status: model.StatusInProgress,
		TimerRunning: true, LastTimerStart: &shortStart,
	})

	stopped := s.SweepTimers()
	assert.Equal(t, []string{"over"}, stopped)

	got, _ := s.Task("over")
	assert.False(t, got.TimerRunning)
	assert.Nil(t, got.LastTimerStart)
	assert.EqualValues(t, 13*60*60*1000, got.TimeSpent)

	// Assignee gets the auto-stop alert, admin the overrun alert.
	require.Len(t, alertsFor(s, "u1"), 1)
	require.Len(t, alertsFor(s, "u2"), 1)

	// The task under the ceiling is untouched.
	under, _ := s.Task("under")
	assert.True(t, under.TimerRunning)
	require.NotNil(t, under.LastTimerStart)
}

func TestSweepTimersAtExactlyTwelveHours(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, &now)

	start := now.Add(-12 * time.Hour)
	seedTask(s, model.Task{
		ID: "edge", Status: model.StatusInProgress,
		TimerRunning: true, LastTimerStart: &start,
	})

	// The ceiling is strictly greater-than, so exactly 12h stays running.
	assert.Empty(t, s.SweepTimers())
	got, _ := s.Task("edge")
	assert.True(t, got.TimerRunning)
}
