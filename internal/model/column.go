package model

// Column is a kanban board column. Order controls display sort only;
// a task's status is never derived from the column title.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Order int    `json:"order"`
}
