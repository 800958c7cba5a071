package model

import "time"

// Note is a free-form scratchpad entry on the dashboard.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meeting is a scheduled appointment shown on the dashboard agenda.
type Meeting struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}
