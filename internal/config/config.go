package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	CacheDir  string
	OutputDir string

	OutputSuffix  string
	PDFHeaderSkip int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		CacheDir:  getEnv("CACHE_DIR", filepath.Join(cwd, ".cache")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "output")),

		OutputSuffix:  getEnv("OUTPUT_SUFFIX", "_normalized"),
		PDFHeaderSkip: getEnvInt("PDF_HEADER_SKIP", 120),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
