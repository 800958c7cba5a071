// Package state holds the in-memory application state for the marketing
// board and is the sole authority over task transitions, timer bookkeeping,
// the approval workflow, and notification emission. UI surfaces only call
// its operations and read snapshots; they never mutate fields directly.
package state

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lfreitas/mktboard/internal/model"
)

// Sentinel errors returned by mutating operations. The original behavior
// for an unknown id was a silent no-op; surfacing it keeps bugs visible
// and callers that want the old semantics can ignore ErrTaskNotFound.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotFound     = errors.New("not found")
	ErrEmptyReason  = errors.New("rejection reason must not be empty")
)

// Store is the single-writer container for all board collections. One
// mutex guards every mutation so updates apply atomically per task even
// when the sweeper and a user action race.
type Store struct {
	mu sync.Mutex

	// now is the clock used for all timer math; injectable in tests.
	now func() time.Time

	users         []model.User
	tasks         []model.Task
	columns       []model.Column
	notifications []model.Notification
	tags          []model.Tag
	campaigns     []model.TrafficCampaign
	customColumns []model.CustomColumn
	notes         []model.Note
	meetings      []model.Meeting

	currentUserID string
	mood          string
	systemLogo    string
}

// New creates an empty store. Call Restore with Seed() or a persisted
// snapshot to populate it.
func New() *Store {
	return &Store{now: time.Now}
}

// CurrentUser returns the acting user, if a session is active.
func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.userByIDLocked(s.currentUserID)
}

// Login matches email (case-insensitive) and password against the user
// list and activates the session on success.
func (s *Store) Login(email, password string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) && u.Password == password {
			s.currentUserID = u.ID
			if u.Mood != "" {
				s.mood = u.Mood
			}
			return u, true
		}
	}
	return model.User{}, false
}

// Logout clears the active session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentUserID = ""
}

// SetCurrentUser activates a session for the given user id without a
// credential check. The store trusts whatever id it is handed.
func (s *Store) SetCurrentUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentUserID = id
}

// Tasks returns a copy of the task collection.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns the stored version of a task by id.
func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.taskIndexLocked(id); idx >= 0 {
		return s.tasks[idx], true
	}
	return model.Task{}, false
}

// TasksInColumn returns the tasks displayed in the given board column.
func (s *Store) TasksInColumn(columnID string) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Task
	for _, t := range s.tasks {
		if t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	return out
}

// Users returns a copy of the user collection.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// Columns returns the board columns sorted by display order.
func (s *Store) Columns() []model.Column {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Column, len(s.columns))
	copy(out, s.columns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Tags returns a copy of the global tag registry.
func (s *Store) Tags() []model.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Mood returns the current user's mood indicator.
func (s *Store) Mood() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mood
}

// SystemLogo returns the configured logo reference, if any.
func (s *Store) SystemLogo() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.systemLogo
}

// SetSystemLogo replaces the logo reference.
func (s *Store) SetSystemLogo(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.systemLogo = url
}

// taskIndexLocked returns the index of the task with the given id, or -1.
func (s *Store) taskIndexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// userByIDLocked looks up a user by id.
func (s *Store) userByIDLocked(id string) (model.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// userNameLocked resolves a user id to a display name. Dangling references
// are tolerated and rendered as "Unknown".
func (s *Store) userNameLocked(id string) string {
	if u, ok := s.userByIDLocked(id); ok {
		return u.Name
	}
	return "Unknown"
}

// adminIDLocked returns the id of the designated admin: the first user
// holding the admin role. Empty when no admin exists, in which case
// admin-directed alerts are dropped.
func (s *Store) adminIDLocked() string {
	for _, u := range s.users {
		if u.IsAdmin() {
			return u.ID
		}
	}
	return ""
}
