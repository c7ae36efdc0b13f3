package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the local key=value file read at startup.
const DefaultEnvFile = ".env"

// Environ is the process environment as seen by the application.
type Environ interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	Unsetenv(key string) error
	Environ() []string
}

// OSEnv is the real process environment.
type OSEnv struct{}

func (OSEnv) Getenv(key string) string { return os.Getenv(key) }
func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnv) Setenv(key, value string) error { return os.Setenv(key, value) }
func (OSEnv) Unsetenv(key string) error { return os.Unsetenv(key) }
func (OSEnv) Environ() []string { return os.Environ() }

// LoadDotenv copies key=value pairs from the given files (default .env) into
// the process environment. Variables that are already set keep their value.
// Missing files are skipped; a file that cannot be parsed is an error.
func LoadDotenv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{DefaultEnvFile}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
