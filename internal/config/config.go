package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	envOnce   sync.Once
	envLoaded string
	envErr    error
)

// LoadEnv loads variables from a .env file in the working directory or its
// parent, once per process. It returns the file used ("" when none exists).
// Variables already set in the environment are not overridden.
func LoadEnv() (string, error) {
	envOnce.Do(func() {
		envLoaded, envErr = loadEnvFrom(".env", filepath.Join("..", ".env"))
	})
	return envLoaded, envErr
}

func loadEnvFrom(candidates ...string) (string, error) {
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		if err := godotenv.Load(candidate); err != nil {
			return "", err
		}
		return candidate, nil
	}
	return "", nil
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
