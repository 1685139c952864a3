package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DatabasePath is the SQLite database file.
	DatabasePath string
	// FileStorePath is the directory holding uploaded file blobs.
	FileStorePath string
	// MasterSecret signs bearer tokens.
	MasterSecret string
	// NotifyURL is the base URL of the standalone email service. Empty
	// disables outbound notifications.
	NotifyURL string
	Debug     bool
	// AllowedOrigins is applied to both CORS and websocket upgrades.
	AllowedOrigins []string
}

// Overrides optionally overrides values from environment variables.
//
// A nil pointer means "use the environment/default value".
type Overrides struct {
	Addr          *string
	DatabasePath  *string
	FileStorePath *string
	MasterSecret  *string
	NotifyURL     *string
	Debug         *bool
}

// Load loads server configuration from environment variables and applies any
// explicit overrides.
func Load(overrides Overrides) (*Config, error) {
	port := 4000
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	addr := fmt.Sprintf(":%d", port)
	if overrides.Addr != nil {
		addr = *overrides.Addr
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./parley.db"
	}
	if overrides.DatabasePath != nil {
		dbPath = *overrides.DatabasePath
	}

	filePath := os.Getenv("FILE_STORE_PATH")
	if filePath == "" {
		filePath = "./parley-files"
	}
	if overrides.FileStorePath != nil {
		filePath = *overrides.FileStorePath
	}

	masterSecret := os.Getenv("PARLEY_MASTER_SECRET")
	if overrides.MasterSecret != nil {
		masterSecret = *overrides.MasterSecret
	}
	if masterSecret == "" {
		return nil, fmt.Errorf("PARLEY_MASTER_SECRET environment variable is required")
	}

	notifyURL := os.Getenv("NOTIFY_URL")
	if overrides.NotifyURL != nil {
		notifyURL = *overrides.NotifyURL
	}

	debug := false
	if debugStr := os.Getenv("DEBUG"); debugStr == "true" || debugStr == "1" {
		debug = true
	}
	if overrides.Debug != nil {
		debug = *overrides.Debug
	}

	return &Config{
		Addr:           addr,
		DatabasePath:   dbPath,
		FileStorePath:  filePath,
		MasterSecret:   masterSecret,
		NotifyURL:      notifyURL,
		Debug:          debug,
		AllowedOrigins: []string{"*"},
	}, nil
}
