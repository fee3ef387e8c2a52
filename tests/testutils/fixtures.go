package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/db"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
)

// CreateTestUser persists a user with a bcrypt-hashed password and returns it.
func CreateTestUser(t *testing.T, users db.UserRepository, username, email, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := users.Create(context.Background(), &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	})
	require.NoError(t, err)
	return user
}

// CreateTestTodo persists a todo for the given owner and returns it.
func CreateTestTodo(t *testing.T, todos db.TodoRepository, ownerID, description string, status models.TodoStatus) *models.Todo {
	todo, err := todos.Create(context.Background(), &models.Todo{
		Description: description,
		Status:      status,
		Owner:       ownerID,
	})
	require.NoError(t, err)
	return todo
}
