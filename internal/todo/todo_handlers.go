package todo

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/db"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
)

type TodoRequest struct {
	Description string            `json:"description"`
	Status      models.TodoStatus `json:"status"`
	Owner       string            `json:"owner"`
}

type TodoHandlers struct {
	Service *TodoService
}

func NewTodoHandlers(service *TodoService) *TodoHandlers {
	return &TodoHandlers{Service: service}
}

func (h *TodoHandlers) GetAll(w http.ResponseWriter, r *http.Request) {
	todos, err := h.Service.GetAll(r.Context())
	if err != nil {
		log.Printf("Error listing todos: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	todo, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("Error finding todo: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// GetAllByOwner lists the todos belonging to the user in the path.
func (h *TodoHandlers) GetAllByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["id"]

	todos, err := h.Service.GetAllByOwner(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			writeError(w, http.StatusBadRequest, "Owner not found")
			return
		}
		log.Printf("Error listing todos for owner: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// Create inserts a new todo owned by the user id in the path.
func (h *TodoHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["id"]

	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := h.Service.Create(r.Context(), ownerID, req.Description, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrOwnerNotFound):
			writeError(w, http.StatusBadRequest, "Owner not found")
		case errors.Is(err, ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Description and status are required")
		case errors.Is(err, ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status value")
		default:
			log.Printf("Error creating todo: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    created,
	})
}

// Update replaces a todo by id. When the body omits the owner, the stored
// owner is kept.
func (h *TodoHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Owner == "" {
		existing, err := h.Service.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Todo not found")
				return
			}
			log.Printf("Error finding todo: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		req.Owner = existing.Owner
	}

	updated, err := h.Service.Update(r.Context(), &models.Todo{
		ID:          id,
		Description: req.Description,
		Status:      req.Status,
		Owner:       req.Owner,
	})
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			writeError(w, http.StatusNotFound, "Todo not found")
		case errors.Is(err, ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Description and status are required")
		case errors.Is(err, ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status value")
		default:
			log.Printf("Error updating todo: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *TodoHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("Error deleting todo: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Todo deleted successfully",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
