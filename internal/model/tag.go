package model

// Tag is a label in the global registry shared across tasks. Tags are
// created on demand and never deleted.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
