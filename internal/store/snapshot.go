package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
)

// snapshotTables is every table replaced wholesale by SaveSnapshot.
var snapshotTables = []string{
	"users", "columns", "tags", "tasks", "notifications",
	"campaigns", "custom_columns", "notes", "meetings", "app_meta",
}

// SaveSnapshot replaces the persisted session with the given snapshot in
// a single transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap state.Snapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range snapshotTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertUsers(ctx, tx, snap.Users); err != nil {
		return err
	}
	if err := insertColumns(ctx, tx, snap.Columns); err != nil {
		return err
	}
	if err := insertTags(ctx, tx, snap.Tags); err != nil {
		return err
	}
	if err := insertTasks(ctx, tx, snap.Tasks); err != nil {
		return err
	}
	if err := insertNotifications(ctx, tx, snap.Notifications); err != nil {
		return err
	}
	if err := insertCampaigns(ctx, tx, snap.Campaigns); err != nil {
		return err
	}
	if err := insertCustomColumns(ctx, tx, snap.CustomColumns); err != nil {
		return err
	}
	if err := insertNotes(ctx, tx, snap.Notes); err != nil {
		return err
	}
	if err := insertMeetings(ctx, tx, snap.Meetings); err != nil {
		return err
	}

	meta := map[string]string{"mood": snap.Mood, "system_logo": snap.SystemLogo}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO app_meta (key, value) VALUES (?, ?)", k, v,
		); err != nil {
			return fmt.Errorf("saving app_meta %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the persisted session. It returns nil when the
// database holds no session, so callers fall back to seed data.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*state.Snapshot, error) {
	snap := &state.Snapshot{}
	var err error

	if snap.Users, err = s.loadUsers(ctx); err != nil {
		return nil, err
	}
	if snap.Tasks, err = s.loadTasks(ctx); err != nil {
		return nil, err
	}
	if len(snap.Users) == 0 && len(snap.Tasks) == 0 {
		return nil, nil
	}

	if snap.Columns, err = s.loadColumns(ctx); err != nil {
		return nil, err
	}
	if snap.Tags, err = s.loadTags(ctx); err != nil {
		return nil, err
	}
	if snap.Notifications, err = s.loadNotifications(ctx); err != nil {
		return nil, err
	}
	if snap.Campaigns, err = s.loadCampaigns(ctx); err != nil {
		return nil, err
	}
	if snap.CustomColumns, err = s.loadCustomColumns(ctx); err != nil {
		return nil, err
	}
	if snap.Notes, err = s.loadNotes(ctx); err != nil {
		return nil, err
	}
	if snap.Meetings, err = s.loadMeetings(ctx); err != nil {
		return nil, err
	}

	meta := map[string]string{}
	rows, err := s.db.QueryxContext(ctx, "SELECT key, value FROM app_meta")
	if err != nil {
		return nil, fmt.Errorf("querying app_meta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning app_meta row: %w", err)
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	snap.Mood = meta["mood"]
	snap.SystemLogo = meta["system_logo"]

	return snap, nil
}

func insertUsers(ctx context.Context, tx *sqlx.Tx, users []model.User) error {
	const query = `
		INSERT INTO users (id, name, email, password, role, avatar, mood)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, u := range users {
		if _, err := tx.ExecContext(ctx, query,
			u.ID, u.Name, u.Email, u.Password, string(u.Role), u.Avatar, u.Mood,
		); err != nil {
			return fmt.Errorf("inserting user %s: %w", u.ID, err)
		}
	}
	return nil
}

func insertColumns(ctx context.Context, tx *sqlx.Tx, columns []model.Column) error {
	const query = `
		INSERT INTO columns (id, title, color, sort_order)
		VALUES (?, ?, ?, ?)`
	for _, c := range columns {
		if _, err := tx.ExecContext(ctx, query, c.ID, c.Title, c.Color, c.Order); err != nil {
			return fmt.Errorf("inserting column %s: %w", c.ID, err)
		}
	}
	return nil
}

func insertTags(ctx context.Context, tx *sqlx.Tx, tags []model.Tag) error {
	const query = `INSERT INTO tags (id, name, color) VALUES (?, ?, ?)`
	for _, t := range tags {
		if _, err := tx.ExecContext(ctx, query, t.ID, t.Name, t.Color); err != nil {
			return fmt.Errorf("inserting tag %s: %w", t.ID, err)
		}
	}
	return nil
}

func insertTasks(ctx context.Context, tx *sqlx.Tx, tasks []model.Task) error {
	const query = `
		INSERT INTO tasks (
			id, title, description, caption, status, column_id,
			assignee_id, creator_id, created_at, due_date, post_date,
			completed_at, origin, social_platform, tag_ids, emoji,
			image_url, attachments, link, comments, history,
			approval_requested, approval_status, approval_feedback,
			subtasks, estimated_hours, time_spent, timer_running,
			last_timer_start
		) VALUES (
			?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?,
			?, ?, ?, ?,
			?
		)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing task insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		tagIDs, err := json.Marshal(t.TagIDs)
		if err != nil {
			return fmt.Errorf("marshaling tag_ids for task %s: %w", t.ID, err)
		}
		attachments, err := json.Marshal(t.Attachments)
		if err != nil {
			return fmt.Errorf("marshaling attachments for task %s: %w", t.ID, err)
		}
		comments, err := json.Marshal(t.Comments)
		if err != nil {
			return fmt.Errorf("marshaling comments for task %s: %w", t.ID, err)
		}
		history, err := json.Marshal(t.History)
		if err != nil {
			return fmt.Errorf("marshaling history for task %s: %w", t.ID, err)
		}
		subtasks, err := json.Marshal(t.Subtasks)
		if err != nil {
			return fmt.Errorf("marshaling subtasks for task %s: %w", t.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			t.ID, t.Title, t.Description, t.Caption, string(t.Status), t.ColumnID,
			t.AssigneeID, t.CreatorID, t.CreatedAt.UTC(), t.DueDate.UTC(), nullableTime(t.PostDate),
			nullableTime(t.CompletedAt), string(t.Origin), string(t.SocialPlatform), string(tagIDs), t.Emoji,
			t.ImageURL, string(attachments), t.Link, string(comments), string(history),
			boolToInt(t.ApprovalRequested), string(t.ApprovalStatus), t.ApprovalFeedback,
			string(subtasks), t.EstimatedHours, t.TimeSpent, boolToInt(t.TimerRunning),
			nullableTime(t.LastTimerStart),
		)
		if err != nil {
			return fmt.Errorf("inserting task %s: %w", t.ID, err)
		}
	}
	return nil
}

func insertNotifications(ctx context.Context, tx *sqlx.Tx, notifications []model.Notification) error {
	const query = `
		INSERT INTO notifications (id, user_id, message, read, type, created_at, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, n := range notifications {
		if _, err := tx.ExecContext(ctx, query,
			n.ID, n.UserID, n.Message, boolToInt(n.Read), string(n.Type), n.CreatedAt.UTC(), i,
		); err != nil {
			return fmt.Errorf("inserting notification %s: %w", n.ID, err)
		}
	}
	return nil
}

func insertCampaigns(ctx context.Context, tx *sqlx.Tx, campaigns []model.TrafficCampaign) error {
	const query = `
		INSERT INTO campaigns (
			id, platform, name, active, budget_month, budget_daily,
			spent, cpc, conversions, roi, creative_url, caption,
			objective, start_date, end_date, leads_target, sales_target,
			leads_result, sales_result, custom_values, planning_values
		) VALUES (
			?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?,
			?, ?, ?, ?
		)`
	for _, c := range campaigns {
		customValues, err := json.Marshal(c.CustomValues)
		if err != nil {
			return fmt.Errorf("marshaling custom_values for campaign %s: %w", c.ID, err)
		}
		planningValues, err := json.Marshal(c.PlanningValues)
		if err != nil {
			return fmt.Errorf("marshaling planning_values for campaign %s: %w", c.ID, err)
		}

		if _, err := tx.ExecContext(ctx, query,
			c.ID, string(c.Platform), c.Name, boolToInt(c.Active), c.BudgetMonth, c.BudgetDaily,
			c.Spent, c.CPC, c.Conversions, c.ROI, c.CreativeURL, c.Caption,
			c.Objective, c.StartDate.UTC(), nullableTime(c.EndDate), c.LeadsTarget, c.SalesTarget,
			c.LeadsResult, c.SalesResult, string(customValues), string(planningValues),
		); err != nil {
			return fmt.Errorf("inserting campaign %s: %w", c.ID, err)
		}
	}
	return nil
}

func insertCustomColumns(ctx context.Context, tx *sqlx.Tx, columns []model.CustomColumn) error {
	const query = `INSERT INTO custom_columns (id, title, kind) VALUES (?, ?, ?)`
	for _, c := range columns {
		if _, err := tx.ExecContext(ctx, query, c.ID, c.Title, string(c.Kind)); err != nil {
			return fmt.Errorf("inserting custom column %s: %w", c.ID, err)
		}
	}
	return nil
}

func insertNotes(ctx context.Context, tx *sqlx.Tx, notes []model.Note) error {
	const query = `INSERT INTO notes (id, text, updated_at, sort_order) VALUES (?, ?, ?, ?)`
	for i, n := range notes {
		if _, err := tx.ExecContext(ctx, query, n.ID, n.Text, n.UpdatedAt.UTC(), i); err != nil {
			return fmt.Errorf("inserting note %s: %w", n.ID, err)
		}
	}
	return nil
}

func insertMeetings(ctx context.Context, tx *sqlx.Tx, meetings []model.Meeting) error {
	const query = `INSERT INTO meetings (id, title, date) VALUES (?, ?, ?)`
	for _, m := range meetings {
		if _, err := tx.ExecContext(ctx, query, m.ID, m.Title, m.Date.UTC()); err != nil {
			return fmt.Errorf("inserting meeting %s: %w", m.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, email, password, role, avatar, mood FROM users")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.Avatar, &u.Mood); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		u.Role = model.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) loadColumns(ctx context.Context) ([]model.Column, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, title, color, sort_order FROM columns ORDER BY sort_order")
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var columns []model.Column
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.ID, &c.Title, &c.Color, &c.Order); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (s *SQLiteStore) loadTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT id, name, color FROM tags")
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *SQLiteStore) loadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, title, description, caption, status, column_id,
			assignee_id, creator_id, created_at, due_date, post_date,
			completed_at, origin, social_platform, tag_ids, emoji,
			image_url, attachments, link, comments, history,
			approval_requested, approval_status, approval_feedback,
			subtasks, estimated_hours, time_spent, timer_running,
			last_timer_start
		FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task              model.Task
		status            string
		origin            string
		platform          string
		tagIDs            string
		attachments       string
		comments          string
		history           string
		subtasks          string
		approvalRequested int
		approvalStatus    string
		timerRunning      int
		postDate          sql.NullTime
		completedAt       sql.NullTime
		lastTimerStart    sql.NullTime
	)

	err := rows.Scan(
		&task.ID, &task.Title, &task.Description, &task.Caption, &status, &task.ColumnID,
		&task.AssigneeID, &task.CreatorID, &task.CreatedAt, &task.DueDate, &postDate,
		&completedAt, &origin, &platform, &tagIDs, &task.Emoji,
		&task.ImageURL, &attachments, &task.Link, &comments, &history,
		&approvalRequested, &approvalStatus, &task.ApprovalFeedback,
		&subtasks, &task.EstimatedHours, &task.TimeSpent, &timerRunning,
		&lastTimerStart,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.Status = model.TaskStatus(status)
	task.Origin = model.TaskOrigin(origin)
	task.SocialPlatform = model.SocialPlatform(platform)
	task.ApprovalRequested = approvalRequested != 0
	task.ApprovalStatus = model.ApprovalStatus(approvalStatus)
	task.TimerRunning = timerRunning != 0
	task.PostDate = timePtr(postDate)
	task.CompletedAt = timePtr(completedAt)
	task.LastTimerStart = timePtr(lastTimerStart)

	if err := json.Unmarshal([]byte(tagIDs), &task.TagIDs); err != nil {
		return model.Task{}, fmt.Errorf("unmarshaling tag_ids: %w", err)
	}
	if err := json.Unmarshal([]byte(attachments), &task.Attachments); err != nil {
		return model.Task{}, fmt.Errorf("unmarshaling attachments: %w", err)
	}
	if err := json.Unmarshal([]byte(comments), &task.Comments); err != nil {
		return model.Task{}, fmt.Errorf("unmarshaling comments: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &task.History); err != nil {
		return model.Task{}, fmt.Errorf("unmarshaling history: %w", err)
	}
	if err := json.Unmarshal([]byte(subtasks), &task.Subtasks); err != nil {
		return model.Task{}, fmt.Errorf("unmarshaling subtasks: %w", err)
	}

	return task, nil
}

func (s *SQLiteStore) loadNotifications(ctx context.Context) ([]model.Notification, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, user_id, message, read, type, created_at
		FROM notifications ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		var readInt int
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &readInt, &typ, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		n.Read = readInt != 0
		n.Type = model.NotificationType(typ)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *SQLiteStore) loadCampaigns(ctx context.Context) ([]model.TrafficCampaign, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, platform, name, active, budget_month, budget_daily,
			spent, cpc, conversions, roi, creative_url, caption,
			objective, start_date, end_date, leads_target, sales_target,
			leads_result, sales_result, custom_values, planning_values
		FROM campaigns`)
	if err != nil {
		return nil, fmt.Errorf("querying campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.TrafficCampaign
	for rows.Next() {
		var (
			c              model.TrafficCampaign
			platform       string
			active         int
			endDate        sql.NullTime
			customValues   string
			planningValues string
		)
		err := rows.Scan(
			&c.ID, &platform, &c.Name, &active, &c.BudgetMonth, &c.BudgetDaily,
			&c.Spent, &c.CPC, &c.Conversions, &c.ROI, &c.CreativeURL, &c.Caption,
			&c.Objective, &c.StartDate, &endDate, &c.LeadsTarget, &c.SalesTarget,
			&c.LeadsResult, &c.SalesResult, &customValues, &planningValues,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning campaign row: %w", err)
		}

		c.Platform = model.SocialPlatform(platform)
		c.Active = active != 0
		c.EndDate = timePtr(endDate)

		if err := json.Unmarshal([]byte(customValues), &c.CustomValues); err != nil {
			return nil, fmt.Errorf("unmarshaling custom_values: %w", err)
		}
		if err := json.Unmarshal([]byte(planningValues), &c.PlanningValues); err != nil {
			return nil, fmt.Errorf("unmarshaling planning_values: %w", err)
		}

		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (s *SQLiteStore) loadCustomColumns(ctx context.Context) ([]model.CustomColumn, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT id, title, kind FROM custom_columns")
	if err != nil {
		return nil, fmt.Errorf("querying custom columns: %w", err)
	}
	defer rows.Close()

	var columns []model.CustomColumn
	for rows.Next() {
		var c model.CustomColumn
		var kind string
		if err := rows.Scan(&c.ID, &c.Title, &kind); err != nil {
			return nil, fmt.Errorf("scanning custom column row: %w", err)
		}
		c.Kind = model.CustomColumnKind(kind)
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (s *SQLiteStore) loadNotes(ctx context.Context) ([]model.Note, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, text, updated_at FROM notes ORDER BY sort_order")
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *SQLiteStore) loadMeetings(ctx context.Context) ([]model.Meeting, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT id, title, date FROM meetings ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("querying meetings: %w", err)
	}
	defer rows.Close()

	var meetings []model.Meeting
	for rows.Next() {
		var m model.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.Date); err != nil {
			return nil, fmt.Errorf("scanning meeting row: %w", err)
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
