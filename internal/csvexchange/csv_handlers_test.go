package csvexchange

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/models"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/tests/testutils"
)

func setupCSVServer(t *testing.T) (*testutils.TestServer, *CSVService, string) {
	service, _, users := setupCSVService(t)
	owner := testutils.CreateTestUser(t, users, "alice", "alice@example.com", "s3cret")
	handlers := NewCSVHandlers(service)

	r := mux.NewRouter()
	r.HandleFunc("/api/todo/filter", handlers.FilterByStatus).Methods("GET")
	r.HandleFunc("/api/todo/upload/{id}", handlers.Upload).Methods("POST")
	r.HandleFunc("/api/todo/download/{id}", handlers.Download).Methods("GET")

	ts := testutils.NewTestServer(t, r)
	t.Cleanup(ts.Close)
	return ts, service, owner.ID
}

func uploadCSV(t *testing.T, ts *testutils.TestServer, ownerID, content string) *http.Response {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "todos.csv")
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", ts.URL+"/api/todo/upload/"+ownerID, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func countTempCSVFiles(t *testing.T) int {
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "todos-*.csv"))
	require.NoError(t, err)
	return len(matches)
}

func TestUploadHandler(t *testing.T) {
	ts, _, ownerID := setupCSVServer(t)

	resp := uploadCSV(t, ts, ownerID, "description,status\nA,pending\n,completed\nB,completed\n")
	var result map[string]interface{}
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &result)
	assert.Equal(t, float64(2), result["insertedCount"])
}

func TestUploadHandler_NoFile(t *testing.T) {
	ts, _, ownerID := setupCSVServer(t)

	resp := ts.POST("/api/todo/upload/"+ownerID, "", nil)
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "No file uploaded")
}

func TestUploadHandler_UnknownOwner(t *testing.T) {
	ts, _, _ := setupCSVServer(t)

	resp := uploadCSV(t, ts, "no-such-owner", "description\nA\n")
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "Owner not found")
}

func TestUploadHandler_NoValidRows(t *testing.T) {
	ts, _, ownerID := setupCSVServer(t)

	resp := uploadCSV(t, ts, ownerID, "description,status\n,pending\n")
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "No valid todos found")
}

func TestUploadHandler_MalformedCSV(t *testing.T) {
	ts, _, ownerID := setupCSVServer(t)

	resp := uploadCSV(t, ts, ownerID, "description,status\nbad\"row,pending\n")
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "CSV parsing error")
}

func TestDownloadHandler(t *testing.T) {
	ts, service, ownerID := setupCSVServer(t)

	testutils.CreateTestTodo(t, service.todos, ownerID, "buy milk", models.TodoStatusPending)
	testutils.CreateTestTodo(t, service.todos, ownerID, "walk dog", models.TodoStatusCompleted)

	tempFilesBefore := countTempCSVFiles(t)

	resp := ts.GET("/api/todo/download/"+ownerID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "todos.csv")

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "description,status,owner", lines[0])

	// The temporary export artifact is gone once the response completes
	assert.Equal(t, tempFilesBefore, countTempCSVFiles(t))
}

func TestDownloadHandler_NoTodos(t *testing.T) {
	ts, _, ownerID := setupCSVServer(t)

	resp := ts.GET("/api/todo/download/"+ownerID, "")
	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "No todos found")
}

func TestFilterHandler(t *testing.T) {
	ts, service, ownerID := setupCSVServer(t)

	testutils.CreateTestTodo(t, service.todos, ownerID, "one", models.TodoStatusPending)
	testutils.CreateTestTodo(t, service.todos, ownerID, "two", models.TodoStatusCompleted)

	resp := ts.GET("/api/todo/filter?status=pending", "")
	var result map[string]interface{}
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &result)
	assert.Equal(t, float64(1), result["total"])

	resp = ts.GET("/api/todo/filter?status=bogus", "")
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid status parameter")

	resp = ts.GET("/api/todo/filter", "")
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "Status parameter is required")
}
