package csvexchange

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/db"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
)

var (
	ErrOwnerNotFound  = errors.New("owner not found")
	ErrNoValidTodos   = errors.New("no valid todos found")
	ErrMalformedCSV   = errors.New("csv parsing error")
	ErrStatusRequired = errors.New("status parameter is required")
	ErrInvalidStatus  = errors.New("invalid status parameter")
)

// ImportResult reports what a CSV import inserted.
type ImportResult struct {
	InsertedCount int            `json:"insertedCount"`
	Inserted      []*models.Todo `json:"data"`
}

// CSVService streams todo records between CSV files and the todo store.
type CSVService struct {
	todos db.TodoRepository
	users db.UserRepository
}

func NewCSVService(todos db.TodoRepository, users db.UserRepository) *CSVService {
	return &CSVService{todos: todos, users: users}
}

// Import reads CSV rows from r one at a time and batch-inserts the valid ones
// for the given owner. Rows without a description are dropped, not retried.
// A malformed stream aborts the whole import without inserting anything, so a
// file either contributes all of its valid rows or none. Re-importing the
// same file inserts duplicates; there is no dedup.
func (s *CSVService) Import(ctx context.Context, ownerID string, r io.Reader) (*ImportResult, error) {
	_, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("error finding owner: %w", err)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoValidTodos
		}
		return nil, ErrMalformedCSV
	}

	descIdx, statusIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "description":
			descIdx = i
		case "status":
			statusIdx = i
		}
	}
	if descIdx == -1 {
		return nil, ErrNoValidTodos
	}

	var candidates []*models.Todo
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Abort without inserting rows accumulated from the broken stream
			return nil, ErrMalformedCSV
		}
		rowNum++

		description := ""
		if descIdx < len(row) {
			description = strings.TrimSpace(row[descIdx])
		}
		if description == "" {
			log.Printf("CSV import: dropping row %d, missing description", rowNum)
			continue
		}

		status := models.DefaultTodoStatus
		if statusIdx != -1 && statusIdx < len(row) {
			if candidate := models.TodoStatus(strings.TrimSpace(row[statusIdx])); candidate.IsValid() {
				status = candidate
			}
		}

		candidates = append(candidates, &models.Todo{
			Description: description,
			Status:      status,
			Owner:       ownerID,
		})
	}

	if len(candidates) == 0 {
		return nil, ErrNoValidTodos
	}

	inserted, err := s.todos.CreateMany(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("error inserting todos: %w", err)
	}

	return &ImportResult{
		InsertedCount: len(inserted),
		Inserted:      inserted,
	}, nil
}

// Export writes the owner's todos to w as CSV with a fixed column order of
// description, status, owner. Returns db.ErrNotFound when the owner has no
// todos.
func (s *CSVService) Export(ctx context.Context, ownerID string, w io.Writer) (int, error) {
	todos, err := s.todos.FindByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("error finding todos: %w", err)
	}
	if len(todos) == 0 {
		return 0, db.ErrNotFound
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"description", "status", "owner"}); err != nil {
		return 0, fmt.Errorf("error writing csv header: %w", err)
	}
	for _, todo := range todos {
		if err := writer.Write([]string{todo.Description, string(todo.Status), todo.Owner}); err != nil {
			return 0, fmt.Errorf("error writing csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("error flushing csv: %w", err)
	}

	return len(todos), nil
}

// FilterByStatus returns the todos matching the status plus a total count.
// The page and the count come from two store queries; without pagination they
// are always equal, which is a known inefficiency rather than a contract.
func (s *CSVService) FilterByStatus(ctx context.Context, status string) ([]*models.Todo, int64, error) {
	if status == "" {
		return nil, 0, ErrStatusRequired
	}

	todoStatus := models.TodoStatus(status)
	if !todoStatus.IsValid() {
		return nil, 0, ErrInvalidStatus
	}

	todos, err := s.todos.FindByStatus(ctx, todoStatus)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding todos: %w", err)
	}

	total, err := s.todos.CountByStatus(ctx, todoStatus)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting todos: %w", err)
	}

	return todos, total, nil
}
