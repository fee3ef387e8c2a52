package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// SQLiteUserRepository implements the UserRepository interface for SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new user
func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = GenerateID()
	}

	query := `INSERT INTO users (id, username, email, password) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

func (r *SQLiteUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, username, email, password FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// FindByUsername finds a user by username
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, email, password FROM users WHERE username = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// FindByUsernameOrEmail finds a user matching either the username or the email
func (r *SQLiteUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	query := `SELECT id, username, email, password FROM users WHERE username = ? OR email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username, email))
}

// SQLiteTodoRepository implements the TodoRepository interface for SQLite
type SQLiteTodoRepository struct {
	db *sql.DB
}

// NewSQLiteTodoRepository creates a new SQLiteTodoRepository
func NewSQLiteTodoRepository(db *sql.DB) *SQLiteTodoRepository {
	return &SQLiteTodoRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteTodoRepository) Close() error {
	return r.db.Close()
}

// Create inserts a single todo
func (r *SQLiteTodoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == "" {
		todo.ID = GenerateID()
	}

	query := `INSERT INTO todos (id, description, status, owner) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, todo.ID, todo.Description, todo.Status, todo.Owner)
	if err != nil {
		return nil, fmt.Errorf("error inserting todo: %w", err)
	}

	return todo, nil
}

// CreateMany inserts a batch of todos inside a single transaction so the
// batch is atomic from the store's perspective.
func (r *SQLiteTodoRepository) CreateMany(ctx context.Context, todos []*models.Todo) ([]*models.Todo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO todos (id, description, status, owner) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, todo := range todos {
		if todo.ID == "" {
			todo.ID = GenerateID()
		}
		if _, err := stmt.ExecContext(ctx, todo.ID, todo.Description, todo.Status, todo.Owner); err != nil {
			return nil, fmt.Errorf("error inserting todo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing todos: %w", err)
	}

	return todos, nil
}

// FindByID finds a todo by ID
func (r *SQLiteTodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	query := `SELECT id, description, status, owner FROM todos WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var todo models.Todo
	err := row.Scan(&todo.ID, &todo.Description, &todo.Status, &todo.Owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning todo: %w", err)
	}

	return &todo, nil
}

func (r *SQLiteTodoRepository) find(ctx context.Context, query string, args ...interface{}) ([]*models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying todos: %w", err)
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Description, &todo.Status, &todo.Owner); err != nil {
			return nil, fmt.Errorf("error scanning todo: %w", err)
		}
		todos = append(todos, &todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// FindAll finds all todos
func (r *SQLiteTodoRepository) FindAll(ctx context.Context) ([]*models.Todo, error) {
	return r.find(ctx, `SELECT id, description, status, owner FROM todos ORDER BY id`)
}

// FindByOwner finds all todos belonging to an owner
func (r *SQLiteTodoRepository) FindByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	return r.find(ctx, `SELECT id, description, status, owner FROM todos WHERE owner = ? ORDER BY id`, ownerID)
}

// FindByStatus finds all todos with the given status
func (r *SQLiteTodoRepository) FindByStatus(ctx context.Context, status models.TodoStatus) ([]*models.Todo, error) {
	return r.find(ctx, `SELECT id, description, status, owner FROM todos WHERE status = ? ORDER BY id`, string(status))
}

// CountByStatus counts todos with the given status
func (r *SQLiteTodoRepository) CountByStatus(ctx context.Context, status models.TodoStatus) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM todos WHERE status = ?`
	if err := r.db.QueryRowContext(ctx, query, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting todos: %w", err)
	}
	return count, nil
}

// Update replaces the full todo record by ID
func (r *SQLiteTodoRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `UPDATE todos SET description = ?, status = ?, owner = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, todo.Description, todo.Status, todo.Owner, todo.ID)
	if err != nil {
		return nil, fmt.Errorf("error updating todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error checking update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return todo, nil
}

// DeleteByID deletes a todo by ID
func (r *SQLiteTodoRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
