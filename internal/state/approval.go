package state

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lfreitas/mktboard/internal/model"
)

// RequestApproval puts a task into the review inbox: approval pending and
// status forced to Waiting. Routing through the central mutation path means
// a running timer stops as part of the same transition.
func (s *Store) RequestApproval(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndexLocked(taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	task := s.tasks[idx]
	task.ApprovalRequested = true
	task.ApprovalStatus = model.ApprovalPending
	task.Status = model.StatusWaiting
	return s.updateTaskLocked(task)
}

// Approve marks a pending task approved and done, recording the decision
// in the task history and letting the assignee know.
func (s *Store) Approve(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndexLocked(taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	task := s.tasks[idx]
	task.ApprovalStatus = model.ApprovalApproved
	task.Status = model.StatusDone
	task.History = append(task.History, model.HistoryEntry{
		ID:        uuid.New().String(),
		Action:    "Approved",
		UserID:    s.currentUserID,
		CreatedAt: s.now(),
	})

	if err := s.updateTaskLocked(task); err != nil {
		return err
	}

	s.notifyLocked(task.AssigneeID, fmt.Sprintf("Task approved: %s", task.Title), model.NotifySuccess)
	return nil
}

// Reject sends a pending task back to work. The reason is mandatory, lands
// as a comment on the task authored by the current actor, and the status
// returning to InProgress means the next transition restarts the timer.
func (s *Store) Reject(taskID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyReason
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndexLocked(taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	task := s.tasks[idx]
	task.ApprovalStatus = model.ApprovalRejected
	task.ApprovalFeedback = reason
	task.Status = model.StatusInProgress
	task.Comments = append(task.Comments, model.Comment{
		ID:        uuid.New().String(),
		UserID:    s.currentUserID,
		Text:      fmt.Sprintf("Change request: %s", reason),
		CreatedAt: s.now(),
	})
	task.History = append(task.History, model.HistoryEntry{
		ID:        uuid.New().String(),
		Action:    "Requested changes",
		UserID:    s.currentUserID,
		CreatedAt: s.now(),
	})
	return s.updateTaskLocked(task)
}

// Dismiss removes a decided task from the review queues. The approval
// status is kept as the last decision for historical display.
func (s *Store) Dismiss(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndexLocked(taskID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	task := s.tasks[idx]
	task.ApprovalRequested = false
	return s.updateTaskLocked(task)
}

// ApprovalQueue returns the tasks in the review inbox with the given
// decision state.
func (s *Store) ApprovalQueue(status model.ApprovalStatus) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Task
	for _, t := range s.tasks {
		if t.ApprovalRequested && t.ApprovalStatus == status {
			out = append(out, t)
		}
	}
	return out
}
