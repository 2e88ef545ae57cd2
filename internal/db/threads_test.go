package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraigk/florin/internal/models"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func newTestUser(t *testing.T, database *Database, email string) int64 {
	t.Helper()
	user, err := database.CreateUser(context.Background(), email, "hash")
	require.NoError(t, err)
	return user.ID
}

func TestThreadRoundTrip(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "round@trip.test")

	created, err := database.CreateThread(ctx, owner, "Quarterly Review", nil)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	msgs := created.Messages
	for i := 0; i < 4; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		msgs = append(msgs, models.Message{
			Role:      role,
			Content:   "message number " + string(rune('0'+i)),
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
		})
	}
	require.NoError(t, database.ReplaceMessages(ctx, created.ID, msgs))

	loaded, err := database.GetThread(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 4)
	for i, msg := range loaded.Messages {
		assert.Equal(t, msgs[i].Role, msg.Role)
		assert.Equal(t, msgs[i].Content, msg.Content)
		assert.True(t, msgs[i].Timestamp.Equal(msg.Timestamp),
			"timestamp %d: want %v, got %v", i, msgs[i].Timestamp, msg.Timestamp)
	}
}

func TestCreateThread_InitialMessage(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "initial@msg.test")

	initial := &models.Message{
		Role:      models.RoleUser,
		Content:   "hello there",
		Timestamp: time.Now().UTC(),
	}
	created, err := database.CreateThread(ctx, owner, "", initial)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultThreadTitle, created.Title)

	loaded, err := database.GetThread(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)
	assert.Equal(t, "hello there", loaded.Messages[0].Content)
}

func TestListThreads_OrderedByUpdate(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "order@test.test")

	first, err := database.CreateThread(ctx, owner, "first", nil)
	require.NoError(t, err)
	second, err := database.CreateThread(ctx, owner, "second", nil)
	require.NoError(t, err)

	// Touching the older thread moves it to the front.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, database.ReplaceMessages(ctx, first.ID, []models.Message{
		{Role: models.RoleUser, Content: "bump", Timestamp: time.Now().UTC()},
	}))

	threads, err := database.ListThreads(ctx, owner)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, first.ID, threads[0].ID)
	assert.Equal(t, second.ID, threads[1].ID)
}

func TestListThreads_ScopedToOwner(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	alice := newTestUser(t, database, "alice@test.test")
	bob := newTestUser(t, database, "bob@test.test")

	_, err := database.CreateThread(ctx, alice, "alice thread", nil)
	require.NoError(t, err)

	threads, err := database.ListThreads(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, threads)

	_, err = database.ListThreads(ctx, 0)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestGetThread_WrongOwner(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	alice := newTestUser(t, database, "alice2@test.test")
	bob := newTestUser(t, database, "bob2@test.test")

	created, err := database.CreateThread(ctx, alice, "private", nil)
	require.NoError(t, err)

	_, err = database.GetThread(ctx, bob, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceMessages_UnknownThread(t *testing.T) {
	database := newTestDB(t)
	err := database.ReplaceMessages(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameThread(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "rename@test.test")

	created, err := database.CreateThread(ctx, owner, "before", nil)
	require.NoError(t, err)
	require.NoError(t, database.RenameThread(ctx, created.ID, "after"))

	loaded, err := database.GetThread(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", loaded.Title)

	assert.ErrorIs(t, database.RenameThread(ctx, "missing", "x"), ErrNotFound)
}

func TestDeleteThread_LastThreadGuard(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "guard@test.test")

	only, err := database.CreateThread(ctx, owner, "only", nil)
	require.NoError(t, err)

	// Deleting the sole remaining thread is a silent no-op.
	require.NoError(t, database.DeleteThread(ctx, owner, only.ID))

	threads, err := database.ListThreads(ctx, owner)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, only.ID, threads[0].ID)
}

func TestDeleteThread(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	owner := newTestUser(t, database, "delete@test.test")

	keep, err := database.CreateThread(ctx, owner, "keep", nil)
	require.NoError(t, err)
	drop, err := database.CreateThread(ctx, owner, "drop", nil)
	require.NoError(t, err)

	require.NoError(t, database.DeleteThread(ctx, owner, drop.ID))

	threads, err := database.ListThreads(ctx, owner)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, keep.ID, threads[0].ID)

	// Unknown ids still surface once more than one thread remains.
	_, err = database.CreateThread(ctx, owner, "second", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, database.DeleteThread(ctx, owner, "missing"), ErrNotFound)
}
