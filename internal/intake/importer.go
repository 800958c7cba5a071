package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
)

// Mailbox is the message feed the importer drains. *IMAPClient
// implements it.
type Mailbox interface {
	FetchUnseen(ctx context.Context, limit int) ([]Message, error)
	MarkSeen(ctx context.Context, uid uint32) error
}

// Importer drains unseen mailbox messages into draft tasks.
type Importer struct {
	store   *state.Store
	mailbox Mailbox
	limit   int
}

// NewImporter creates an importer. limit caps messages per run; zero or
// negative means 20.
func NewImporter(s *state.Store, mailbox Mailbox, limit int) *Importer {
	if limit <= 0 {
		limit = 20
	}
	return &Importer{store: s, mailbox: mailbox, limit: limit}
}

// Run fetches unseen messages and creates one Ideas draft per message,
// marking each imported message seen. It returns how many tasks were
// created.
func (i *Importer) Run(ctx context.Context) (int, error) {
	messages, err := i.mailbox.FetchUnseen(ctx, i.limit)
	if err != nil {
		return 0, fmt.Errorf("fetching inbox: %w", err)
	}

	created := 0
	for _, msg := range messages {
		task := draftFromMessage(msg)
		if current, ok := i.store.CurrentUser(); ok {
			task.CreatorID = current.ID
			task.AssigneeID = current.ID
		}

		id := i.store.AddTask(task)
		created++
		log.Info().
			Str("task_id", id).
			Str("subject", msg.Subject).
			Msg("imported mail request")

		if err := i.mailbox.MarkSeen(ctx, msg.UID); err != nil {
			// The task exists; the message will just be fetched again.
			log.Warn().Err(err).Uint32("uid", msg.UID).Msg("marking message seen")
		}
	}

	return created, nil
}

// draftFromMessage maps one inbox message to an Ideas-column draft.
func draftFromMessage(msg Message) model.Task {
	title := strings.TrimSpace(msg.Subject)
	if title == "" {
		title = "(no subject)"
	}

	var desc strings.Builder
	if msg.From != "" {
		fmt.Fprintf(&desc, "Request from %s\n\n", msg.From)
	}
	desc.WriteString(strings.TrimSpace(msg.Body))

	task := model.Task{
		Title:       title,
		Description: desc.String(),
		Status:      model.StatusIdeas,
		ColumnID:    state.ColumnIdeas,
		Origin:      model.OriginOther,
	}
	if !msg.Date.IsZero() {
		task.CreatedAt = msg.Date
	}
	return task
}
