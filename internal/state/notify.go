package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lfreitas/mktboard/internal/model"
)

// notifyLocked prepends a notification for the given user. Notifications
// are emitted only as side effects of mutations, never returned; consumers
// observe them by reading the list.
func (s *Store) notifyLocked(userID, message string, typ model.NotificationType) {
	n := model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Type:      typ,
		CreatedAt: s.now(),
	}
	s.notifications = append([]model.Notification{n}, s.notifications...)
}

// Notifications returns the full list, newest first.
func (s *Store) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// NotificationsFor returns the notifications addressed to one user,
// newest first.
func (s *Store) NotificationsFor(userID string) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount returns how many notifications for the user are unread.
func (s *Store) UnreadCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count
}

// MarkNotificationRead flags a single notification as seen.
func (s *Store) MarkNotificationRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

// Broadcast sends an announcement to every user.
func (s *Store) Broadcast(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		s.notifyLocked(u.ID, fmt.Sprintf("ANNOUNCEMENT: %s", message), model.NotifyInfo)
	}
}
