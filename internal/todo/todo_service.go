package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/db"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
)

var (
	ErrOwnerNotFound = errors.New("owner not found")
	ErrMissingFields = errors.New("description and status are required")
	ErrInvalidStatus = errors.New("invalid status value")
)

// TodoService implements the CRUD operations on todo items. Owner references
// are validated against the user store at creation time only.
type TodoService struct {
	todos db.TodoRepository
	users db.UserRepository
}

func NewTodoService(todos db.TodoRepository, users db.UserRepository) *TodoService {
	return &TodoService{todos: todos, users: users}
}

func (s *TodoService) GetAll(ctx context.Context) ([]*models.Todo, error) {
	return s.todos.FindAll(ctx)
}

func (s *TodoService) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	return s.todos.FindByID(ctx, id)
}

// GetAllByOwner returns the todos belonging to an existing user.
func (s *TodoService) GetAllByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	if err := s.checkOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.todos.FindByOwner(ctx, ownerID)
}

// Create validates and persists a single todo for an existing owner.
func (s *TodoService) Create(ctx context.Context, ownerID, description string, status models.TodoStatus) (*models.Todo, error) {
	if err := s.checkOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if description == "" || status == "" {
		return nil, ErrMissingFields
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return s.todos.Create(ctx, &models.Todo{
		Description: description,
		Status:      status,
		Owner:       ownerID,
	})
}

// Update replaces the stored record with the given one. Returns
// db.ErrNotFound when no todo with that id exists.
func (s *TodoService) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.Description == "" || todo.Status == "" {
		return nil, ErrMissingFields
	}
	if !todo.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return s.todos.Update(ctx, todo)
}

func (s *TodoService) Delete(ctx context.Context, id string) error {
	return s.todos.DeleteByID(ctx, id)
}

func (s *TodoService) checkOwner(ctx context.Context, ownerID string) error {
	_, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrOwnerNotFound
		}
		return fmt.Errorf("error finding owner: %w", err)
	}
	return nil
}
