package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
)

type fakeMailbox struct {
	messages []Message
	fetchErr error
	seen     []uint32
	seenErr  error
}

func (f *fakeMailbox) FetchUnseen(_ context.Context, limit int) ([]Message, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if limit > 0 && len(f.messages) > limit {
		return f.messages[:limit], nil
	}
	return f.messages, nil
}

func (f *fakeMailbox) MarkSeen(_ context.Context, uid uint32) error {
	if f.seenErr != nil {
		return f.seenErr
	}
	f.seen = append(f.seen, uid)
	return nil
}

func newImportStore() *state.Store {
	s := state.New()
	s.Restore(state.Snapshot{
		Users: []model.User{
			{ID: "u1", Name: "Ana", Email: "ana@agency.io", Password: "123", Role: model.RoleUser},
		},
		Columns: []model.Column{{ID: state.ColumnIdeas, Title: "Ideas", Order: 1}},
	})
	s.SetCurrentUser("u1")
	return s
}

func TestImporterCreatesIdeasDrafts(t *testing.T) {
	s := newImportStore()
	sent := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	mailbox := &fakeMailbox{messages: []Message{
		{UID: 7, Subject: "Banner for the winter sale", From: "Rita Client", Date: sent, Body: "We need a banner by Friday."},
		{UID: 8, Subject: "  ", From: "noreply@shop.io", Body: "see attachment"},
	}}

	created, err := NewImporter(s, mailbox, 0).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, []uint32{7, 8}, mailbox.seen)

	tasks := s.Tasks()
	require.Len(t, tasks, 2)

	first := tasks[0]
	assert.Equal(t, "Banner for the winter sale", first.Title)
	assert.Equal(t, model.StatusIdeas, first.Status)
	assert.Equal(t, state.ColumnIdeas, first.ColumnID)
	assert.Equal(t, model.OriginOther, first.Origin)
	assert.Equal(t, "u1", first.CreatorID)
	assert.Equal(t, "u1", first.AssigneeID)
	assert.Contains(t, first.Description, "Request from Rita Client")
	assert.Contains(t, first.Description, "We need a banner by Friday.")
	assert.True(t, first.CreatedAt.Equal(sent))
	assert.NotEmpty(t, first.ID)

	assert.Equal(t, "(no subject)", tasks[1].Title)
}

func TestImporterFetchError(t *testing.T) {
	s := newImportStore()
	mailbox := &fakeMailbox{fetchErr: errors.New("dial tcp: connection refused")}

	created, err := NewImporter(s, mailbox, 10).Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, created)
	assert.Empty(t, s.Tasks())
}

func TestImporterKeepsTaskWhenMarkSeenFails(t *testing.T) {
	s := newImportStore()
	mailbox := &fakeMailbox{
		messages: []Message{{UID: 3, Subject: "Reel idea", Body: "trend audio"}},
		seenErr:  errors.New("connection dropped"),
	}

	created, err := NewImporter(s, mailbox, 10).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.Len(t, s.Tasks(), 1)
}
