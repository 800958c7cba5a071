package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
	"github.com/lfreitas/mktboard/internal/store"
	"github.com/lfreitas/mktboard/tests/testutil"
)

func mustOpen(t *testing.T, path string) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	return s
}

func TestLoadSnapshotEmptyDatabase(t *testing.T) {
	s := testutil.NewTestStore(t)

	snap, err := s.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * 24 * time.Hour)

	snap := state.Snapshot{
		Users: []model.User{
			{ID: "u1", Name: "Ana Silva", Email: "ana@agency.io", Password: "123", Role: model.RoleUser, Mood: "🔥"},
			{ID: "u2", Name: "Carlos Admin", Email: "carlos@agency.io", Password: "123", Role: model.RoleAdmin},
		},
		Columns: []model.Column{
			{ID: "c_todo", Title: "To Do", Color: "#3b82f6", Order: 1},
			{ID: "c_doing", Title: "Doing", Color: "#f59e0b", Order: 2},
		},
		Tags: []model.Tag{{ID: "tag1", Name: "urgent", Color: "#ef4444"}},
		Tasks: []model.Task{
			{
				ID:          "t1",
				Title:       "March reels batch",
				Description: "Cut 6 reels from the shoot",
				Status:      model.StatusInProgress,
				ColumnID:    "c_doing",
				AssigneeID:  "u1",
				CreatorID:   "u2",
				CreatedAt:   start,
				DueDate:     start.Add(72 * time.Hour),
				Origin:      model.OriginInstagram,
				TagIDs:      []string{"tag1"},
				Comments: []model.Comment{
					{ID: "cm1", UserID: "u2", Text: "@Ana priority this week", CreatedAt: start.Add(time.Hour)},
				},
				History: []model.HistoryEntry{
					{ID: "h1", Action: "Created", UserID: "u2", CreatedAt: start},
				},
				Subtasks:          []model.Subtask{{ID: "st1", Title: "Pick takes", Completed: true}},
				ApprovalRequested: true,
				ApprovalStatus:    model.ApprovalPending,
				EstimatedHours:    8,
				TimeSpent:         5400000,
				TimerRunning:      true,
				LastTimerStart:    &start,
			},
		},
		Notifications: []model.Notification{
			{ID: "n2", UserID: "u1", Message: "second", Type: model.NotifyAlert, CreatedAt: start.Add(time.Minute)},
			{ID: "n1", UserID: "u1", Message: "first", Read: true, Type: model.NotifyInfo, CreatedAt: start},
		},
		Campaigns: []model.TrafficCampaign{
			{
				ID:           "tc1",
				Platform:     model.PlatformInstagram,
				Name:         "Lead gen March",
				Active:       true,
				BudgetMonth:  3000,
				BudgetDaily:  100,
				Spent:        740.50,
				CPC:          1.35,
				Conversions:  42,
				ROI:          2.1,
				StartDate:    start,
				EndDate:      &end,
				LeadsTarget:  200,
				CustomValues: map[string]string{"col1": "retarget"},
				PlanningValues: map[string]string{
					"col2": "Q2 push",
				},
			},
		},
		CustomColumns: []model.CustomColumn{
			{ID: "col1", Title: "Audience", Kind: model.ColumnKindOperational},
			{ID: "col2", Title: "Phase", Kind: model.ColumnKindPlanning},
		},
		Notes:      []model.Note{{ID: "note1", Text: "call the printer", UpdatedAt: start}},
		Meetings:   []model.Meeting{{ID: "m1", Title: "Weekly sync", Date: start.Add(24 * time.Hour)}},
		Mood:       "🚀",
		SystemLogo: "MKT",
	}

	require.NoError(t, s.SaveSnapshot(ctx, snap))

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Len(t, got.Users, 2)
	require.Equal(t, model.RoleAdmin, got.Users[1].Role)

	require.Equal(t, snap.Columns, got.Columns)
	require.Equal(t, snap.Tags, got.Tags)
	require.Equal(t, snap.CustomColumns, got.CustomColumns)
	require.Equal(t, "🚀", got.Mood)
	require.Equal(t, "MKT", got.SystemLogo)

	require.Len(t, got.Tasks, 1)
	task := got.Tasks[0]
	require.Equal(t, "March reels batch", task.Title)
	require.Equal(t, model.StatusInProgress, task.Status)
	require.Equal(t, []string{"tag1"}, task.TagIDs)
	require.Len(t, task.Comments, 1)
	require.Equal(t, "@Ana priority this week", task.Comments[0].Text)
	require.Len(t, task.History, 1)
	require.Len(t, task.Subtasks, 1)
	require.True(t, task.Subtasks[0].Completed)
	require.True(t, task.ApprovalRequested)
	require.Equal(t, model.ApprovalPending, task.ApprovalStatus)
	require.Equal(t, int64(5400000), task.TimeSpent)
	require.True(t, task.TimerRunning)
	require.NotNil(t, task.LastTimerStart)
	require.True(t, task.LastTimerStart.Equal(start))
	require.True(t, task.CreatedAt.Equal(start))
	require.Nil(t, task.CompletedAt)

	// Notification order is preserved, not recomputed from timestamps.
	require.Len(t, got.Notifications, 2)
	require.Equal(t, "n2", got.Notifications[0].ID)
	require.Equal(t, "n1", got.Notifications[1].ID)
	require.True(t, got.Notifications[1].Read)

	require.Len(t, got.Campaigns, 1)
	campaign := got.Campaigns[0]
	require.Equal(t, "Lead gen March", campaign.Name)
	require.Equal(t, 740.50, campaign.Spent)
	require.Equal(t, map[string]string{"col1": "retarget"}, campaign.CustomValues)
	require.NotNil(t, campaign.EndDate)
	require.True(t, campaign.EndDate.Equal(end))
}

func TestSaveSnapshotReplacesPreviousSession(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	first := state.Snapshot{
		Users: []model.User{{ID: "u1", Name: "Ana", Email: "ana@agency.io"}},
		Tasks: []model.Task{
			{ID: "t1", Title: "old", Status: model.StatusTodo, CreatedAt: now, DueDate: now},
			{ID: "t2", Title: "older", Status: model.StatusTodo, CreatedAt: now, DueDate: now},
		},
	}
	require.NoError(t, s.SaveSnapshot(ctx, first))

	second := state.Snapshot{
		Users: []model.User{{ID: "u1", Name: "Ana", Email: "ana@agency.io"}},
		Tasks: []model.Task{
			{ID: "t3", Title: "new", Status: model.StatusDone, CreatedAt: now, DueDate: now},
		},
	}
	require.NoError(t, s.SaveSnapshot(ctx, second))

	got, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Tasks, 1)
	require.Equal(t, "t3", got.Tasks[0].ID)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/board.db"

	s1 := mustOpen(t, path)
	require.NoError(t, s1.Close())

	// Reopening must not reapply migration v1.
	s2 := mustOpen(t, path)
	require.NoError(t, s2.Close())
}
