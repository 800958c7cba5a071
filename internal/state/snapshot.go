package state

import "github.com/lfreitas/mktboard/internal/model"

// Snapshot is a full copy of the store's collections, used to persist a
// session and to restore one at startup. The store itself stays unaware
// of where snapshots go; the persistence boundary lives outside.
type Snapshot struct {
	Users         []model.User
	Tasks         []model.Task
	Columns       []model.Column
	Notifications []model.Notification
	Tags          []model.Tag
	Campaigns     []model.TrafficCampaign
	CustomColumns []model.CustomColumn
	Notes         []model.Note
	Meetings      []model.Meeting

	Mood       string
	SystemLogo string
}

// Snapshot copies the current state of every collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Users:         append([]model.User(nil), s.users...),
		Tasks:         append([]model.Task(nil), s.tasks...),
		Columns:       append([]model.Column(nil), s.columns...),
		Notifications: append([]model.Notification(nil), s.notifications...),
		Tags:          append([]model.Tag(nil), s.tags...),
		Campaigns:     append([]model.TrafficCampaign(nil), s.campaigns...),
		CustomColumns: append([]model.CustomColumn(nil), s.customColumns...),
		Notes:         append([]model.Note(nil), s.notes...),
		Meetings:      append([]model.Meeting(nil), s.meetings...),
		Mood:          s.mood,
		SystemLogo:    s.systemLogo,
	}
}

// Restore replaces the store's collections with the snapshot's contents.
// The active session is left untouched.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append([]model.User(nil), snap.Users...)
	s.tasks = append([]model.Task(nil), snap.Tasks...)
	s.columns = append([]model.Column(nil), snap.Columns...)
	s.notifications = append([]model.Notification(nil), snap.Notifications...)
	s.tags = append([]model.Tag(nil), snap.Tags...)
	s.campaigns = append([]model.TrafficCampaign(nil), snap.Campaigns...)
	s.customColumns = append([]model.CustomColumn(nil), snap.CustomColumns...)
	s.notes = append([]model.Note(nil), snap.Notes...)
	s.meetings = append([]model.Meeting(nil), snap.Meetings...)
	s.mood = snap.Mood
	s.systemLogo = snap.SystemLogo
}
