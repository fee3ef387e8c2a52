package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/db"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/auth"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/config"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/csvexchange"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/todo"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/web"
	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/middleware"
)

var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var mongoClient *mongo.Client
	var sqliteDB *sql.DB

	switch cfg.DatabaseType {
	case config.MongoDB:
		infoLogger.Println("Using MongoDB database")
		mongoClient, err = db.ConnectToMongo(ctx, cfg.MongoURI)
		if err != nil {
			errorLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := db.EnsureIndexes(ctx, mongoClient, cfg.DatabaseName); err != nil {
			errorLogger.Fatalf("Failed to create indexes: %v", err)
		}
	case config.SQLite:
		infoLogger.Println("Using SQLite database")
		sqliteDB, err = db.ConnectToSQLite(cfg.SQLitePath)
		if err != nil {
			errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
		}
		if err := db.InitializeSchema(sqliteDB); err != nil {
			errorLogger.Fatalf("Failed to initialize database schema: %v", err)
		}
	}

	repoFactory := db.NewRepositoryFactory(sqliteDB, mongoClient, cfg.DatabaseName)
	userRepo := repoFactory.NewUserRepository()
	todoRepo := repoFactory.NewTodoRepository()
	defer userRepo.Close()

	authService := auth.NewService(userRepo, cfg.JwtKey)
	todoService := todo.NewTodoService(todoRepo, userRepo)
	csvService := csvexchange.NewCSVService(todoRepo, userRepo)

	mw := middleware.NewMiddleware(authService)
	router := web.NewRouter(
		auth.NewAuthHandlers(authService),
		todo.NewTodoHandlers(todoService),
		csvexchange.NewCSVHandlers(csvService),
		mw,
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Handler(cfg),
	}

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		errorLogger.Fatalf("Server Shutdown error: %v", err)
	}
	infoLogger.Println("Server stopped")
}
