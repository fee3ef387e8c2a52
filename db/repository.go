package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// UserRepository defines the interface for user operations
type UserRepository interface {
	Repository
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
}

// TodoRepository defines the interface for todo operations
type TodoRepository interface {
	Repository
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	CreateMany(ctx context.Context, todos []*models.Todo) ([]*models.Todo, error)
	FindByID(ctx context.Context, id string) (*models.Todo, error)
	FindAll(ctx context.Context) ([]*models.Todo, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error)
	FindByStatus(ctx context.Context, status models.TodoStatus) ([]*models.Todo, error)
	CountByStatus(ctx context.Context, status models.TodoStatus) (int64, error)
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	DeleteByID(ctx context.Context, id string) error
}

// RepositoryFactory creates repositories based on the database type
type RepositoryFactory struct {
	SQLiteDB    *sql.DB
	MongoClient *mongo.Client
	DBName      string
}

// NewRepositoryFactory creates a new repository factory. Exactly one of
// sqliteDB and mongoClient is expected to be non-nil; SQLite wins when both
// are set.
func NewRepositoryFactory(sqliteDB *sql.DB, mongoClient *mongo.Client, dbName string) *RepositoryFactory {
	return &RepositoryFactory{
		SQLiteDB:    sqliteDB,
		MongoClient: mongoClient,
		DBName:      dbName,
	}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteUserRepository(f.SQLiteDB)
	}
	return NewMongoUserRepository(f.MongoClient, f.DBName, "users")
}

// NewTodoRepository creates a new todo repository
func (f *RepositoryFactory) NewTodoRepository() TodoRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteTodoRepository(f.SQLiteDB)
	}
	return NewMongoTodoRepository(f.MongoClient, f.DBName, "todos")
}

// GenerateID generates a unique ID for a record
func GenerateID() string {
	return uuid.New().String()
}
