package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// LedgerBackend selects where completed transactions go: "memory" for
	// local runs and tests, "sheets" for the shared spreadsheet.
	LedgerBackend string
	SheetID       string
	SheetName     string
	CredsFile     string

	// CatalogFile optionally replaces the built-in menu definition.
	CatalogFile string
}

func Load() Config {
	// Missing .env is fine; deployed environments set real env vars.
	_ = godotenv.Load()

	return Config{
		AppEnv:        getEnv("APP_ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		LedgerBackend: getEnv("LEDGER_BACKEND", "memory"),
		SheetID:       getEnv("SHEET_ID", ""),
		SheetName:     getEnv("SHEET_NAME", "売上データ"),
		CredsFile:     getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		CatalogFile:   getEnv("CATALOG_FILE", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
