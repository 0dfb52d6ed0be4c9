package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string // "" disables the gRPC health server

	Env string // "dev" | "prod"

	// Code tables
	Backend     string // "sqlite" | "postgres" | "memory"
	DBPath      string // e.g. "./data/farecard.db"
	PostgresURL string

	// Locale is a BCP 47 tag; "ja" selects the primary name columns.
	Locale string

	LogLevel string
	LogJSON  bool

	LookupTimeout time.Duration
	ProbeInterval time.Duration // 0 disables the code table probe
}

func FromEnv() Config {
	env := strings.ToLower(getenvDefault("FARECARD_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	backend := strings.ToLower(getenvDefault("FARECARD_BACKEND", "sqlite"))
	switch backend {
	case "sqlite", "postgres", "memory":
	default:
		backend = "sqlite"
	}

	return Config{
		HTTPAddr: getenvDefault("FARECARD_HTTP_ADDR", ":8080"),
		GRPCAddr: getenvDefault("FARECARD_GRPC_ADDR", ":9090"),
		Env:      env,

		Backend:     backend,
		DBPath:      getenvDefault("FARECARD_DB_PATH", "./data/farecard.db"),
		PostgresURL: os.Getenv("FARECARD_POSTGRES_URL"),

		Locale: getenvDefault("FARECARD_LOCALE", "en"),

		LogLevel: getenvDefault("FARECARD_LOG_LEVEL", "info"),
		LogJSON:  getenvBool("FARECARD_LOG_JSON"),

		LookupTimeout: time.Duration(getenvInt("FARECARD_LOOKUP_TIMEOUT_MS", 2000)) * time.Millisecond,
		ProbeInterval: time.Duration(getenvInt("FARECARD_PROBE_INTERVAL_SECONDS", 30)) * time.Second,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return strings.EqualFold(v, "true") || v == "1"
}
