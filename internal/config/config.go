package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type DatabaseType string

const (
	MongoDB DatabaseType = "mongodb"
	SQLite  DatabaseType = "sqlite"
)

type Config struct {
	JwtKey        []byte
	Port          string
	AllowedOrigin string
	DatabaseType  DatabaseType
	// MongoDB config
	MongoURI string
	// SQLite config
	SQLitePath string
	// Common configs
	DatabaseName string
}

// LoadConfig reads configuration from a .env file (when present) and the
// process environment. The JWT secret and store connection are injected into
// constructors from here instead of being read globally.
func LoadConfig() (*Config, error) {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "todolist"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = string(MongoDB)
	}

	config := &Config{
		JwtKey:        []byte(jwtSecret),
		Port:          port,
		AllowedOrigin: allowedOrigin,
		DatabaseType:  DatabaseType(dbType),
		DatabaseName:  databaseName,
	}

	switch config.DatabaseType {
	case MongoDB:
		mongoURI := os.Getenv("MONGODB_URI")
		if mongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is not set")
		}
		config.MongoURI = mongoURI
	case SQLite:
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
		}
		config.SQLitePath = sqlitePath
	default:
		return nil, fmt.Errorf("unsupported DATABASE_TYPE: %s", dbType)
	}

	return config, nil
}
