package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
)

// MongoUserRepository implements the UserRepository interface for MongoDB
type MongoUserRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(client *mongo.Client, database, collection string) *MongoUserRepository {
	return &MongoUserRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoUserRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// Create inserts a new user. Duplicate usernames or emails surface as
// ErrDuplicate via the unique indexes.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.client.Database(r.database).Collection(r.collection).
		InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

// FindByID finds a user by ID
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	return &user, nil
}

// FindByUsername finds a user by username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	return &user, nil
}

// FindByUsernameOrEmail finds a user matching either the username or the
// email, used for the duplicate-registration check.
func (r *MongoUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}

	var user models.User
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	return &user, nil
}

// MongoTodoRepository implements the TodoRepository interface for MongoDB
type MongoTodoRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoTodoRepository creates a new MongoTodoRepository
func NewMongoTodoRepository(client *mongo.Client, database, collection string) *MongoTodoRepository {
	return &MongoTodoRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

// Close closes the MongoDB connection
func (r *MongoTodoRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// Create inserts a single todo
func (r *MongoTodoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == "" {
		todo.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.client.Database(r.database).Collection(r.collection).
		InsertOne(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("error inserting todo: %w", err)
	}

	return todo, nil
}

// CreateMany inserts a batch of todos in one store operation
func (r *MongoTodoRepository) CreateMany(ctx context.Context, todos []*models.Todo) ([]*models.Todo, error) {
	docs := make([]interface{}, 0, len(todos))
	for _, todo := range todos {
		if todo.ID == "" {
			todo.ID = primitive.NewObjectID().Hex()
		}
		docs = append(docs, todo)
	}

	_, err := r.client.Database(r.database).Collection(r.collection).
		InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("error inserting todos: %w", err)
	}

	return todos, nil
}

// FindByID finds a todo by ID
func (r *MongoTodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	var todo models.Todo
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding todo: %w", err)
	}

	return &todo, nil
}

// FindAll finds all todos
func (r *MongoTodoRepository) FindAll(ctx context.Context) ([]*models.Todo, error) {
	return r.find(ctx, bson.M{})
}

// FindByOwner finds all todos belonging to an owner
func (r *MongoTodoRepository) FindByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	return r.find(ctx, bson.M{"owner": ownerID})
}

// FindByStatus finds all todos with the given status
func (r *MongoTodoRepository) FindByStatus(ctx context.Context, status models.TodoStatus) ([]*models.Todo, error) {
	return r.find(ctx, bson.M{"status": status})
}

// CountByStatus counts todos with the given status
func (r *MongoTodoRepository) CountByStatus(ctx context.Context, status models.TodoStatus) (int64, error) {
	count, err := r.client.Database(r.database).Collection(r.collection).
		CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("error counting todos: %w", err)
	}
	return count, nil
}

func (r *MongoTodoRepository) find(ctx context.Context, filter bson.M) ([]*models.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.client.Database(r.database).Collection(r.collection).
		Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []*models.Todo{}
	if err = cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("error decoding todos: %w", err)
	}

	return todos, nil
}

// Update replaces the full todo record by ID
func (r *MongoTodoRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	result, err := r.client.Database(r.database).Collection(r.collection).
		ReplaceOne(ctx, bson.M{"_id": todo.ID}, todo)
	if err != nil {
		return nil, fmt.Errorf("error updating todo: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return todo, nil
}

// DeleteByID deletes a todo by ID
func (r *MongoTodoRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.client.Database(r.database).Collection(r.collection).
		DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting todo: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
