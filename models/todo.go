package models

type TodoStatus string

const (
	TodoStatusPending   TodoStatus = "pending"
	TodoStatusCompleted TodoStatus = "completed"
)

// DefaultTodoStatus is applied when a CSV row or create request omits status.
const DefaultTodoStatus = TodoStatusPending

// IsValid reports whether s is one of the allowed status values.
func (s TodoStatus) IsValid() bool {
	return s == TodoStatusPending || s == TodoStatusCompleted
}

// Todo is a single todo item. Owner is a lookup key referencing the user the
// item belongs to; deleting the user does not cascade to their todos.
type Todo struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Description string     `bson:"description" json:"description"`
	Status      TodoStatus `bson:"status" json:"status"`
	Owner       string     `bson:"owner" json:"owner"`
}
