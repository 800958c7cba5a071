package model

import "time"

// TaskStatus is the lifecycle stage of a task on the board.
type TaskStatus string

const (
	StatusIdeas      TaskStatus = "ideas"
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusWaiting    TaskStatus = "waiting"
	StatusDone       TaskStatus = "done"
	StatusCancelled  TaskStatus = "cancelled"
)

// ApprovalStatus tracks where a task sits in the review workflow.
type ApprovalStatus string

const (
	ApprovalNone     ApprovalStatus = "none"
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// TaskOrigin classifies where a piece of marketing work came from.
type TaskOrigin string

const (
	OriginPaidTraffic  TaskOrigin = "paid_traffic"
	OriginInstagram    TaskOrigin = "instagram_facebook"
	OriginTikTok       TaskOrigin = "tiktok"
	OriginYouTube      TaskOrigin = "youtube"
	OriginBanner       TaskOrigin = "banner"
	OriginFlyer        TaskOrigin = "flyer"
	OriginOfflineMedia TaskOrigin = "offline_media"
	OriginOther        TaskOrigin = "other"
)

// SocialPlatform identifies the network a piece of content targets.
type SocialPlatform string

const (
	PlatformInstagram SocialPlatform = "Instagram"
	PlatformFacebook  SocialPlatform = "Facebook"
	PlatformLinkedIn  SocialPlatform = "LinkedIn"
	PlatformYouTube   SocialPlatform = "YouTube"
	PlatformTwitter   SocialPlatform = "Twitter"
	PlatformWhatsApp  SocialPlatform = "WhatsApp"
	PlatformTikTok    SocialPlatform = "TikTok"
)

// Comment is a single entry in a task's discussion thread. Comments are
// append-only; they are never edited or removed once added.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is one line of a task's append-only audit trail.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Subtask is a flat checklist entry within a task. No nesting.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is the central unit of marketing work tracked through the board.
type Task struct {
	// ID is the internal unique identifier, immutable once created.
	ID string `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Caption is the social copy attached to a content task.
	Caption string `json:"caption,omitempty"`

	// Status is the lifecycle stage. It is set explicitly by the operation
	// that moves a task, never inferred from the column it sits in.
	Status TaskStatus `json:"status"`

	// ColumnID is the board column the task is displayed in. Column
	// membership and status are independently meaningful attributes.
	ColumnID string `json:"column_id"`

	// AssigneeID and CreatorID reference User.ID. Dangling references are
	// tolerated and rendered as unknown.
	AssigneeID string `json:"assignee_id"`
	CreatorID  string `json:"creator_id"`

	CreatedAt   time.Time  `json:"created_at"`
	DueDate     time.Time  `json:"due_date"`
	PostDate    *time.Time `json:"post_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Origin         TaskOrigin     `json:"origin,omitempty"`
	SocialPlatform SocialPlatform `json:"social_platform,omitempty"`

	// TagIDs references the global tag registry by id.
	TagIDs []string `json:"tag_ids,omitempty"`

	Emoji       string   `json:"emoji,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
	Link        string   `json:"link,omitempty"`

	Comments []Comment      `json:"comments"`
	History  []HistoryEntry `json:"history"`

	// ApprovalRequested marks the task as sitting in the review inbox.
	// ApprovalStatus survives a dismissal so history review stays possible.
	ApprovalRequested bool           `json:"approval_requested"`
	ApprovalStatus    ApprovalStatus `json:"approval_status"`
	ApprovalFeedback  string         `json:"approval_feedback,omitempty"`

	Subtasks []Subtask `json:"subtasks"`

	// EstimatedHours is the planned effort in hours. Zero means no estimate,
	// and no overrun alert ever fires for the task.
	EstimatedHours float64 `json:"estimated_hours"`

	// TimeSpent is cumulative completed-session time in milliseconds,
	// exclusive of the currently running session. It never decreases.
	TimeSpent int64 `json:"time_spent"`

	// TimerRunning and LastTimerStart describe the open timer session.
	// LastTimerStart is non-nil if and only if TimerRunning is true.
	TimerRunning   bool       `json:"timer_running"`
	LastTimerStart *time.Time `json:"last_timer_start,omitempty"`
}

// ElapsedMillis returns the task's total tracked time in milliseconds at
// the given instant, including the open session when the timer is running.
func (t Task) ElapsedMillis(now time.Time) int64 {
	total := t.TimeSpent
	if t.TimerRunning && t.LastTimerStart != nil {
		total += now.Sub(*t.LastTimerStart).Milliseconds()
	}
	return total
}

// SpentHours converts accumulated TimeSpent to fractional hours.
func (t Task) SpentHours() float64 {
	return float64(t.TimeSpent) / float64(time.Hour/time.Millisecond)
}

// HasTag reports whether the task references the given tag id.
func (t Task) HasTag(tagID string) bool {
	for _, id := range t.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}
