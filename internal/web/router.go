package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/auth"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/config"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/csvexchange"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/todo"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/middleware"
)

type Router struct {
	Auth  *auth.AuthHandlers
	Todos *todo.TodoHandlers
	CSV   *csvexchange.CSVHandlers
	MW    *middleware.Middleware
}

func NewRouter(authHandlers *auth.AuthHandlers, todoHandlers *todo.TodoHandlers, csvHandlers *csvexchange.CSVHandlers, mw *middleware.Middleware) *Router {
	return &Router{
		Auth:  authHandlers,
		Todos: todoHandlers,
		CSV:   csvHandlers,
		MW:    mw,
	}
}

// SetupRoutes builds the route table. Mutating and owner-scoped routes go
// through the bearer-token gate; reads and auth endpoints stay public.
func (rt *Router) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	// Authentication
	r.HandleFunc("/api/auth/register", rt.Auth.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", rt.Auth.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", rt.Auth.Logout).Methods("GET")

	// CSV exchange and filtering
	r.HandleFunc("/api/todo/filter", rt.CSV.FilterByStatus).Methods("GET")
	r.HandleFunc("/api/todo/upload/{id}", rt.MW.AuthMiddleware(rt.CSV.Upload)).Methods("POST")
	r.HandleFunc("/api/todo/download/{id}", rt.MW.AuthMiddleware(rt.CSV.Download)).Methods("GET")

	// Todo CRUD; the user listing is registered before the id routes so
	// "user" is not captured as a todo id.
	r.HandleFunc("/api/todos/user/{id}", rt.MW.AuthMiddleware(rt.Todos.GetAllByOwner)).Methods("GET")
	r.HandleFunc("/api/todos", rt.Todos.GetAll).Methods("GET")
	r.HandleFunc("/api/todos/{id}", rt.Todos.GetByID).Methods("GET")
	r.HandleFunc("/api/todos/{id}", rt.MW.AuthMiddleware(rt.Todos.Create)).Methods("POST")
	r.HandleFunc("/api/todos/{id}", rt.MW.AuthMiddleware(rt.Todos.Update)).Methods("PUT")
	r.HandleFunc("/api/todos/{id}", rt.MW.AuthMiddleware(rt.Todos.Delete)).Methods("DELETE")

	return r
}

// Handler wraps the route table with request logging and CORS.
func (rt *Router) Handler(cfg *config.Config) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return middleware.LoggingMiddleware(c.Handler(rt.SetupRoutes()))
}
