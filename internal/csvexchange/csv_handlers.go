package csvexchange

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/db"
)

// maxUploadSize caps how much of a multipart upload is buffered in memory;
// larger files spill to disk.
const maxUploadSize = 10 << 20

type CSVHandlers struct {
	Service *CSVService
}

func NewCSVHandlers(service *CSVService) *CSVHandlers {
	return &CSVHandlers{Service: service}
}

// Upload ingests a multipart CSV file and creates todos for the owner in the
// path. The file is streamed into the import pipeline, not read into memory
// wholesale.
func (h *CSVHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["id"]
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "Owner not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	result, err := h.Service.Import(r.Context(), ownerID, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrOwnerNotFound):
			writeError(w, http.StatusBadRequest, "Owner not found")
		case errors.Is(err, ErrNoValidTodos):
			writeError(w, http.StatusBadRequest, "No valid todos found")
		case errors.Is(err, ErrMalformedCSV):
			writeError(w, http.StatusBadRequest, "CSV parsing error")
		default:
			log.Printf("Error importing todos: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to upload todos")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       "Todos uploaded successfully",
		"insertedCount": result.InsertedCount,
		"data":          result.Inserted,
	})
}

// Download serializes the owner's todos to a temporary CSV file and streams
// it back. The temp file is removed on every exit path, including failed
// sends, so no orphaned artifacts accumulate.
func (h *CSVHandlers) Download(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["id"]
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "Owner ID not provided")
		return
	}

	tmp, err := os.CreateTemp("", "todos-*.csv")
	if err != nil {
		log.Printf("Error creating temp file: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to download todo list CSV")
		return
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			log.Printf("Error removing temp file %s: %v", tmp.Name(), err)
		}
	}()

	count, err := h.Service.Export(r.Context(), ownerID, tmp)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No todos found for the specified owner")
			return
		}
		log.Printf("Error exporting todos: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to download todo list CSV")
		return
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		log.Printf("Error rewinding temp file: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to download todo list CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="todos.csv"`)
	if _, err := io.Copy(w, tmp); err != nil {
		// Response already underway; nothing useful to send the client
		log.Printf("Error streaming CSV of %d todos: %v", count, err)
	}
}

// FilterByStatus returns the todos matching the required status query
// parameter, plus a total count.
func (h *CSVHandlers) FilterByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	todos, total, err := h.Service.FilterByStatus(r.Context(), status)
	if err != nil {
		switch {
		case errors.Is(err, ErrStatusRequired):
			writeError(w, http.StatusBadRequest, "Status parameter is required")
		case errors.Is(err, ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Invalid status parameter")
		default:
			log.Printf("Error filtering todos: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    todos,
		"total":   total,
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
