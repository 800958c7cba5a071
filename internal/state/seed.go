package state

import (
	"time"

	"github.com/lfreitas/mktboard/internal/model"
)

// Board column ids used by the seed data.
const (
	ColumnTodo       = "c_todo"
	ColumnInProgress = "c_prog"
	ColumnWaiting    = "c_wait"
	ColumnDone       = "c_done"
	ColumnCancelled  = "c_canc"
	ColumnIdeas      = "c_ideas"
)

// Seed returns the demo dataset a fresh session starts from when no
// persisted snapshot exists.
func Seed() Snapshot {
	now := time.Now()
	day := 24 * time.Hour

	postDate := now.Add(2 * day)
	timerStart := now.Add(-100 * time.Second)

	return Snapshot{
		Users: []model.User{
			{ID: "u1", Name: "Ana Silva", Email: "ana@marketing.com", Password: "123", Role: model.RoleUser, Avatar: "https://picsum.photos/id/64/100/100", Mood: "😄"},
			{ID: "u2", Name: "Carlos Admin", Email: "admin@marketing.com", Password: "admin", Role: model.RoleAdmin, Avatar: "https://picsum.photos/id/65/100/100", Mood: "😌"},
			{ID: "u3", Name: "Beatriz Design", Email: "bia@marketing.com", Password: "123", Role: model.RoleUser, Avatar: "https://picsum.photos/id/66/100/100", Mood: "🤩"},
		},
		Columns: []model.Column{
			{ID: ColumnTodo, Title: "To Do 📝", Color: "yellow", Order: 0},
			{ID: ColumnInProgress, Title: "In Progress 🚀", Color: "blue", Order: 1},
			{ID: ColumnWaiting, Title: "Waiting ⏳", Color: "magenta", Order: 2},
			{ID: ColumnDone, Title: "Done ✅", Color: "green", Order: 3},
			{ID: ColumnCancelled, Title: "Cancelled ❌", Color: "gray", Order: 4},
			{ID: ColumnIdeas, Title: "Ideas 💡", Color: "pink", Order: 5},
		},
		Tags: []model.Tag{
			{ID: "tag1", Name: "Social", Color: "pink"},
			{ID: "tag2", Name: "Website", Color: "blue"},
			{ID: "tag3", Name: "Urgent", Color: "red"},
		},
		Tasks: []model.Task{
			{
				ID:             "t1",
				Title:          "Mother's Day Instagram post",
				Description:    "Carousel with 5 gift ideas.",
				Status:         model.StatusTodo,
				ColumnID:       ColumnTodo,
				AssigneeID:     "u1",
				CreatorID:      "u2",
				CreatedAt:      now.Add(-day),
				DueDate:        now.Add(day),
				PostDate:       &postDate,
				Origin:         model.OriginInstagram,
				SocialPlatform: model.PlatformInstagram,
				TagIDs:         []string{"tag1"},
				Emoji:          "🌸",
				ApprovalStatus: model.ApprovalNone,
				Subtasks: []model.Subtask{
					{ID: "st1", Title: "Research trends", Completed: true},
					{ID: "st2", Title: "Write copy", Completed: false},
				},
				EstimatedHours: 2,
			},
			{
				ID:                "t2",
				Title:             "Promo banner for the website",
				Description:       "Main banner, desktop and mobile.",
				Status:            model.StatusInProgress,
				ColumnID:          ColumnInProgress,
				AssigneeID:        "u1",
				CreatorID:         "u2",
				CreatedAt:         now.Add(-2 * day),
				DueDate:           now.Add(-time.Hour), // overdue
				Origin:            model.OriginBanner,
				TagIDs:            []string{"tag2"},
				Emoji:             "💻",
				ImageURL:          "https://picsum.photos/400/200",
				Attachments:       []string{"https://picsum.photos/400/200"},
				ApprovalRequested: true,
				ApprovalStatus:    model.ApprovalPending,
				EstimatedHours:    4,
				TimeSpent:         3600000, // one hour
				TimerRunning:      true,
				LastTimerStart:    &timerStart,
			},
			{
				ID:             "t3",
				Title:          "Black Friday campaign",
				Description:    "Initial theme brainstorm.",
				Status:         model.StatusIdeas,
				ColumnID:       ColumnIdeas,
				AssigneeID:     "u1",
				CreatorID:      "u1",
				CreatedAt:      now,
				DueDate:        now.Add(10 * day),
				Origin:         model.OriginOther,
				SocialPlatform: model.PlatformLinkedIn,
				Emoji:          "💡",
				ApprovalStatus: model.ApprovalNone,
			},
		},
		Campaigns: []model.TrafficCampaign{
			{
				ID: "tc1", Platform: model.PlatformFacebook, Name: "Summer sale - cold audience",
				Active: true, BudgetMonth: 1500, BudgetDaily: 50, Spent: 450,
				CPC: 0.85, Conversions: 22, ROI: 3.5,
				CreativeURL: "https://picsum.photos/id/48/400/400",
				Caption:     "Summer discounts up to 50%!",
				Objective:   "Conversion", StartDate: now.Add(-5 * day),
				LeadsTarget: 100, SalesTarget: 50, LeadsResult: 110, SalesResult: 42,
				CustomValues:   map[string]string{"col1": "High priority"},
				PlanningValues: map[string]string{},
			},
			{
				ID: "tc2", Platform: model.PlatformInstagram, Name: "Remarketing - abandoned cart",
				Active: true, BudgetMonth: 800, BudgetDaily: 25, Spent: 120,
				CPC: 1.20, Conversions: 15, ROI: 5.2,
				CreativeURL: "https://picsum.photos/id/30/400/400",
				Caption:     "You forgot something special...",
				Objective:   "Traffic", StartDate: now.Add(-2 * day),
				LeadsTarget: 50, SalesTarget: 20, LeadsResult: 25, SalesResult: 8,
				CustomValues:   map[string]string{"col1": "Medium"},
				PlanningValues: map[string]string{},
			},
			{
				ID: "tc3", Platform: model.PlatformYouTube, Name: "Branding - institutional",
				Active: false, BudgetMonth: 3000, BudgetDaily: 100, Spent: 2800,
				CPC: 0.15, Conversions: 5, ROI: 1.1,
				CreativeURL: "https://picsum.photos/id/20/400/400",
				Caption:     "Get to know our story.",
				Objective:   "Reach", StartDate: now.Add(-20 * day),
				LeadsTarget: 500, LeadsResult: 620,
				CustomValues:   map[string]string{"col1": "Low"},
				PlanningValues: map[string]string{},
			},
		},
		CustomColumns: []model.CustomColumn{
			{ID: "col1", Title: "Priority", Kind: model.ColumnKindOperational},
		},
		Notes: []model.Note{
			{ID: "n1", Text: "Idea: viral video about coffee ☕", UpdatedAt: now},
		},
		Meetings: []model.Meeting{
			{ID: "m1", Title: "Client X briefing", Date: now.Add(4 * time.Hour)},
			{ID: "m2", Title: "Weekly review", Date: now.Add(28 * time.Hour)},
		},
		Mood: "😄",
	}
}
