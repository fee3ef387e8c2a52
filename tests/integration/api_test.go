package integration

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/auth"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/csvexchange"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/todo"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/web"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/middleware"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/tests/testutils"
)

func setupAPI(t *testing.T) *testutils.TestServer {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	t.Cleanup(cleanup)

	cfg := testutils.GetTestConfig()
	userRepo := factory.NewUserRepository()
	todoRepo := factory.NewTodoRepository()

	authService := auth.NewService(userRepo, cfg.JwtKey)
	todoService := todo.NewTodoService(todoRepo, userRepo)
	csvService := csvexchange.NewCSVService(todoRepo, userRepo)

	router := web.NewRouter(
		auth.NewAuthHandlers(authService),
		todo.NewTodoHandlers(todoService),
		csvexchange.NewCSVHandlers(csvService),
		middleware.NewMiddleware(authService),
	)

	ts := testutils.NewTestServer(t, router.Handler(cfg))
	t.Cleanup(ts.Close)
	return ts
}

// registerAndLogin creates an account through the API and returns the user id
// and a bearer token.
func registerAndLogin(t *testing.T, ts *testutils.TestServer, username, email string) (string, string) {
	resp := ts.POST("/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "s3cret",
	})
	testutils.AssertJSONResponse(t, resp, http.StatusCreated, nil)

	resp = ts.POST("/api/auth/login", "", map[string]string{
		"username": username,
		"password": "s3cret",
	})
	var loggedIn struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &loggedIn)
	require.NotEmpty(t, loggedIn.Token)
	require.NotEmpty(t, loggedIn.User.ID)

	return loggedIn.User.ID, loggedIn.Token
}

func TestAPI_TodoLifecycle(t *testing.T) {
	ts := setupAPI(t)
	userID, token := registerAndLogin(t, ts, "alice", "alice@example.com")

	// Create
	resp := ts.POST("/api/todos/"+userID, token, map[string]string{
		"description": "buy milk",
		"status":      "pending",
	})
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	testutils.AssertJSONResponse(t, resp, http.StatusCreated, &created)
	require.NotEmpty(t, created.Data.ID)

	// Read back by id, no auth required
	resp = ts.GET("/api/todos/"+created.Data.ID, "")
	var fetched struct {
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &fetched)
	assert.Equal(t, "buy milk", fetched.Description)

	// Update
	resp = ts.PUT("/api/todos/"+created.Data.ID, token, map[string]string{
		"description": "buy milk",
		"status":      "completed",
	})
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &fetched)
	assert.Equal(t, "completed", fetched.Status)

	// List by owner
	resp = ts.GET("/api/todos/user/"+userID, token)
	var todos []map[string]interface{}
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &todos)
	assert.Len(t, todos, 1)

	// Delete
	resp = ts.DELETE("/api/todos/"+created.Data.ID, token)
	testutils.AssertJSONResponse(t, resp, http.StatusOK, nil)

	resp = ts.GET("/api/todos/"+created.Data.ID, "")
	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "Todo not found")
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	ts := setupAPI(t)
	userID, _ := registerAndLogin(t, ts, "alice", "alice@example.com")

	// No token
	resp := ts.POST("/api/todos/"+userID, "", map[string]string{
		"description": "x",
		"status":      "pending",
	})
	testutils.AssertErrorResponse(t, resp, http.StatusUnauthorized, "No token provided")

	// Garbage token
	resp = ts.GET("/api/todos/user/"+userID, "garbage")
	testutils.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
}

func TestAPI_CSVRoundtrip(t *testing.T) {
	ts := setupAPI(t)
	userID, token := registerAndLogin(t, ts, "alice", "alice@example.com")

	// Upload a file with one droppable row
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "todos.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, "description,status\nA,pending\n,completed\nB,completed\n")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", ts.URL+"/api/todo/upload/"+userID, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var uploaded map[string]interface{}
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &uploaded)
	assert.Equal(t, float64(2), uploaded["insertedCount"])

	// Download it back
	resp = ts.GET("/api/todo/download/"+userID, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	csvBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(csvBody), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "description,status,owner", lines[0])

	// Filter by status
	resp = ts.GET("/api/todo/filter?status=completed", "")
	var filtered map[string]interface{}
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &filtered)
	assert.Equal(t, float64(1), filtered["total"])
}
