package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down  key.Binding
	Up    key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// View switching
	ViewBoard         key.Binding
	ViewApprovals     key.Binding
	ViewNotifications key.Binding
	ViewTraffic       key.Binding

	// Help toggle
	Help key.Binding

	// Mailbox intake
	Intake key.Binding

	// AI helpers
	AI key.Binding

	// Task actions
	NewTask    key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Comment    key.Binding
	Timer      key.Binding
	MoveTask   key.Binding
	Delegate   key.Binding
	SendReview key.Binding

	// Approval decisions
	Approve key.Binding
	Reject  key.Binding
	Dismiss key.Binding

	// Notifications
	MarkRead key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next column"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ViewBoard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "board"),
		),
		ViewApprovals: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "approvals"),
		),
		ViewNotifications: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "notifications"),
		),
		ViewTraffic: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "traffic"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Intake: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import mail requests"),
		),
		AI: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "AI suggestions"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Timer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "start/stop timer"),
		),
		MoveTask: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move task"),
		),
		Delegate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delegate"),
		),
		SendReview: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "send for approval"),
		),
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "request changes"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "mark read"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Left, k.Right,
		k.Select, k.Back, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back, k.Quit},
		{k.ViewBoard, k.ViewApprovals, k.ViewNotifications, k.ViewTraffic, k.Help},
		{k.NewTask, k.Edit, k.Delete, k.Comment, k.Timer},
		{k.MoveTask, k.Delegate, k.SendReview, k.Approve, k.Reject},
		{k.Intake, k.AI, k.MarkRead},
	}
}
