package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lfreitas/mktboard/internal/model"
)

// mentionWindow is how close to "now" a trailing comment's timestamp must
// be for it to count as freshly appended by the current action. This is a
// best-effort detector, not a precise mention parser.
const mentionWindow = time.Second

// AddTask appends a task to the collection and notifies the assignee.
// A missing id is filled in; no further validation happens here, the
// calling surface is expected to enforce required fields.
func (s *Store) AddTask(task model.Task) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}
	if task.ApprovalStatus == "" {
		task.ApprovalStatus = model.ApprovalNone
	}

	s.tasks = append(s.tasks, task)
	s.notifyLocked(task.AssigneeID, fmt.Sprintf("New task assigned: %s", task.Title), model.NotifyInfo)

	log.Debug().Str("task_id", task.ID).Str("assignee", task.AssigneeID).Msg("task created")
	return task.ID
}

// UpdateTask is the central mutation entry point. It takes the complete
// desired new state of a task, applies the timer transition rules against
// the previously stored version, replaces the record, and emits any
// derived notifications. Returns ErrTaskNotFound for an unknown id.
func (s *Store) UpdateTask(updated model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateTaskLocked(updated)
}

func (s *Store) updateTaskLocked(updated model.Task) error {
	idx := s.taskIndexLocked(updated.ID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	old := s.tasks[idx]
	next := updated
	now := s.now()

	// Entering InProgress starts a fresh timer session no matter what
	// timer fields the caller supplied.
	if next.Status == model.StatusInProgress && old.Status != model.StatusInProgress {
		start := now
		next.TimerRunning = true
		next.LastTimerStart = &start
	}

	// Leaving InProgress with a running timer folds the open session into
	// the accumulated total and may raise an overrun alert.
	if next.Status != model.StatusInProgress && old.Status == model.StatusInProgress && old.TimerRunning {
		var session int64
		if old.LastTimerStart != nil {
			session = now.Sub(*old.LastTimerStart).Milliseconds()
		}
		next.TimeSpent = old.TimeSpent + session
		next.TimerRunning = false
		next.LastTimerStart = nil

		if next.EstimatedHours > 0 && next.SpentHours() > next.EstimatedHours {
			s.alertAdminOverrunLocked(next)
		}
	}
	// Every other status combination leaves the timer fields exactly as
	// supplied; callers are trusted to carry them over.

	s.tasks[idx] = next

	// A comment appended within the last second that carries an "@" marker
	// surfaces as a mention notification to the current actor.
	if len(next.Comments) > len(old.Comments) {
		last := next.Comments[len(next.Comments)-1]
		fresh := now.Sub(last.CreatedAt) < mentionWindow
		if fresh && strings.Contains(last.Text, "@") && last.UserID != s.currentUserID {
			s.notifyLocked(s.currentUserID, fmt.Sprintf("New mention in: %s", next.Title), model.NotifyInfo)
		}
	}

	return nil
}

// alertAdminOverrunLocked notifies the designated admin that a task has
// gone over its estimate. Dropped when no admin user exists.
func (s *Store) alertAdminOverrunLocked(t model.Task) {
	adminID := s.adminIDLocked()
	if adminID == "" {
		return
	}
	s.notifyLocked(adminID, fmt.Sprintf(
		"ALERT: %s exceeded the estimated time (%.1fh) on task %q.",
		s.userNameLocked(t.AssigneeID), t.EstimatedHours, t.Title,
	), model.NotifyAlert)
}

// DeleteTask removes a task unconditionally. Notifications and comments
// referencing it are left in place; they become inert, not invalid.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndexLocked(id)
	if idx < 0 {
		return ErrTaskNotFound
	}

	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	log.Debug().Str("task_id", id).Msg("task deleted")
	return nil
}

// DelegateTask reassigns a task to a new user, records the handover in the
// task history, and notifies the new assignee. The mutation routes through
// updateTaskLocked so the timer rules still apply if the status changed
// in the same action.
func (s *Store) DelegateTask(taskID, newAssigneeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndexLocked(taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	task := s.tasks[idx]
	oldAssignee := task.AssigneeID

	task.AssigneeID = newAssigneeID
	task.History = append(task.History, model.HistoryEntry{
		ID: uuid.New().String(),
		Action: fmt.Sprintf("Delegated from %s to %s",
			s.userNameLocked(oldAssignee), s.userNameLocked(newAssigneeID)),
		UserID:    s.currentUserID,
		CreatedAt: s.now(),
	})

	if err := s.updateTaskLocked(task); err != nil {
		return err
	}

	s.notifyLocked(newAssigneeID, fmt.Sprintf("Task delegated to you: %s", task.Title), model.NotifyInfo)
	return nil
}

// MoveTask places a task in another board column and sets its status
// explicitly in the same mutation. Column membership and status stay
// independent attributes; nothing is inferred from column titles.
func (s *Store) MoveTask(taskID, columnID string, status model.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndexLocked(taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	task := s.tasks[idx]
	task.ColumnID = columnID
	task.Status = status
	return s.updateTaskLocked(task)
}

// AddComment appends a comment authored by the current actor and routes
// the change through the central mutation path.
func (s *Store) AddComment(taskID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndexLocked(taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	task := s.tasks[idx]
	task.Comments = append(task.Comments, model.Comment{
		ID:        uuid.New().String(),
		UserID:    s.currentUserID,
		Text:      text,
		CreatedAt: s.now(),
	})
	return s.updateTaskLocked(task)
}
