package main

import "os"

const (
	defaultPort   = "8080"
	defaultDBPath = "employees.db"
)

// Config is the runtime configuration of the server.
type Config struct {
	// Port is the TCP port to listen on. Env: PORT.
	Port string
	// DBPath is the SQLite file, created on first run. Env: EMPLOYEES_DB.
	DBPath string
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// configFromEnv reads the environment, falling back to the defaults.
// Command line flags are layered on top by the caller.
func configFromEnv() Config {
	cfg := Config{
		Port:   defaultPort,
		DBPath: defaultDBPath,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if path := os.Getenv("EMPLOYEES_DB"); path != "" {
		cfg.DBPath = path
	}

	return cfg
}
