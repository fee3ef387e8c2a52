package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/db"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/tests/testutils"
)

func setupTodoService(t *testing.T) (*TodoService, db.UserRepository) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	t.Cleanup(cleanup)

	users := factory.NewUserRepository()
	return NewTodoService(factory.NewTodoRepository(), users), users
}

func TestCreate(t *testing.T) {
	s, users := setupTodoService(t)
	ctx := context.Background()
	owner := testutils.CreateTestUser(t, users, "alice", "alice@example.com", "s3cret")

	created, err := s.Create(ctx, owner.ID, "buy milk", models.TodoStatusPending)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner.ID, created.Owner)

	found, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", found.Description)
}

func TestCreate_Validation(t *testing.T) {
	s, users := setupTodoService(t)
	ctx := context.Background()
	owner := testutils.CreateTestUser(t, users, "alice", "alice@example.com", "s3cret")

	_, err := s.Create(ctx, "no-such-owner", "task", models.TodoStatusPending)
	assert.ErrorIs(t, err, ErrOwnerNotFound)

	_, err = s.Create(ctx, owner.ID, "", models.TodoStatusPending)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = s.Create(ctx, owner.ID, "task", "done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetAllByOwner(t *testing.T) {
	s, users := setupTodoService(t)
	ctx := context.Background()
	alice := testutils.CreateTestUser(t, users, "alice", "alice@example.com", "s3cret")
	bob := testutils.CreateTestUser(t, users, "bob", "bob@example.com", "s3cret")

	_, err := s.Create(ctx, alice.ID, "alice task", models.TodoStatusPending)
	require.NoError(t, err)
	_, err = s.Create(ctx, bob.ID, "bob task", models.TodoStatusPending)
	require.NoError(t, err)

	todos, err := s.GetAllByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "alice task", todos[0].Description)

	_, err = s.GetAllByOwner(ctx, "no-such-owner")
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestUpdate(t *testing.T) {
	s, users := setupTodoService(t)
	ctx := context.Background()
	owner := testutils.CreateTestUser(t, users, "alice", "alice@example.com", "s3cret")

	created, err := s.Create(ctx, owner.ID, "buy milk", models.TodoStatusPending)
	require.NoError(t, err)

	created.Status = models.TodoStatusCompleted
	updated, err := s.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, models.TodoStatusCompleted, updated.Status)

	_, err = s.Update(ctx, &models.Todo{
		ID:          "no-such-todo",
		Description: "x",
		Status:      models.TodoStatusPending,
		Owner:       owner.ID,
	})
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestDelete(t *testing.T) {
	s, users := setupTodoService(t)
	ctx := context.Background()
	owner := testutils.CreateTestUser(t, users, "alice", "alice@example.com", "s3cret")

	created, err := s.Create(ctx, owner.ID, "buy milk", models.TodoStatusPending)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, created.ID), db.ErrNotFound)
}
