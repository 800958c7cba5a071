package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lfreitas/mktboard/internal/model"
)

// AddColumn appends a board column at the end of the display order.
func (s *Store) AddColumn(title, color string) model.Column {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := model.Column{
		ID:    uuid.New().String(),
		Title: title,
		Color: color,
		Order: len(s.columns),
	}
	s.columns = append(s.columns, col)
	return col
}

// CreateTag registers a tag in the global registry.
func (s *Store) CreateTag(name, color string) model.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag := model.Tag{ID: uuid.New().String(), Name: name, Color: color}
	s.tags = append(s.tags, tag)
	return tag
}

// Tag resolves a tag id. Dangling references from tasks resolve to false
// and render as empty.
func (s *Store) Tag(id string) (model.Tag, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tags {
		if t.ID == id {
			return t, true
		}
	}
	return model.Tag{}, false
}

// Campaigns returns a copy of the traffic campaign collection.
func (s *Store) Campaigns() []model.TrafficCampaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.TrafficCampaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

// AddCampaign appends a campaign row to the traffic spreadsheet.
func (s *Store) AddCampaign(c model.TrafficCampaign) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CustomValues == nil {
		c.CustomValues = map[string]string{}
	}
	if c.PlanningValues == nil {
		c.PlanningValues = map[string]string{}
	}
	s.campaigns = append(s.campaigns, c)
	return c.ID
}

// UpdateCampaign replaces a campaign row wholesale.
func (s *Store) UpdateCampaign(c model.TrafficCampaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.campaigns {
		if s.campaigns[i].ID == c.ID {
			s.campaigns[i] = c
			return nil
		}
	}
	return fmt.Errorf("campaign %s: %w", c.ID, ErrNotFound)
}

// CustomColumns returns the user-defined spreadsheet columns of one kind.
func (s *Store) CustomColumns(kind model.CustomColumnKind) []model.CustomColumn {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.CustomColumn
	for _, c := range s.customColumns {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// AddCustomColumn registers a user-defined spreadsheet column.
func (s *Store) AddCustomColumn(kind model.CustomColumnKind, title string) model.CustomColumn {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := model.CustomColumn{ID: uuid.New().String(), Title: title, Kind: kind}
	s.customColumns = append(s.customColumns, col)
	return col
}

// RenameCustomColumn changes a column's display title. Campaign values
// keep their column-id key, so renames never lose data.
func (s *Store) RenameCustomColumn(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customColumns {
		if s.customColumns[i].ID == id {
			s.customColumns[i].Title = title
			return nil
		}
	}
	return fmt.Errorf("custom column %s: %w", id, ErrNotFound)
}

// Notes returns a copy of the scratchpad notes, newest first.
func (s *Store) Notes() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// AddNote prepends a scratchpad note.
func (s *Store) AddNote(text string) model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := model.Note{ID: uuid.New().String(), Text: text, UpdatedAt: s.now()}
	s.notes = append([]model.Note{n}, s.notes...)
	return n
}

// EditNote replaces a note's text and refreshes its timestamp.
func (s *Store) EditNote(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Text = text
			s.notes[i].UpdatedAt = s.now()
			return nil
		}
	}
	return fmt.Errorf("note %s: %w", id, ErrNotFound)
}

// DeleteNote removes a note.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("note %s: %w", id, ErrNotFound)
}

// Meetings returns a copy of the agenda.
func (s *Store) Meetings() []model.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Meeting, len(s.meetings))
	copy(out, s.meetings)
	return out
}

// AddMeeting appends an agenda entry.
func (s *Store) AddMeeting(m model.Meeting) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	s.meetings = append(s.meetings, m)
	return m.ID
}

// AddUser registers a team member.
func (s *Store) AddUser(u model.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	s.users = append(s.users, u)
	return u.ID
}

// UpdateUser replaces a user record wholesale.
func (s *Store) UpdateUser(u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
}

// DeleteUser removes a team member. Tasks referencing the id keep their
// dangling reference and render the assignee as unknown.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// SetMood updates the mood indicator for the current user.
func (s *Store) SetMood(mood string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mood = mood
	for i := range s.users {
		if s.users[i].ID == s.currentUserID {
			s.users[i].Mood = mood
		}
	}
}
