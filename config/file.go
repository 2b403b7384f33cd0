package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadFile decodes the YAML file at path into dst. Unknown keys are
// rejected. An empty file leaves dst unchanged.
func LoadFile(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// LoadDotenv sets process environment variables from the given dotenv
// files. Variables already present in the environment are not overridden.
// Without paths it reads ".env" and ignores its absence.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		err := godotenv.Load()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("config: .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("config: dotenv: %w", err)
	}
	return nil
}
