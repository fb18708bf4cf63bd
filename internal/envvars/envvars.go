// Package envvars resolves environment variable references in service
// definitions and loads `.env` files when a service opts in.
package envvars

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/prismabundle/internal/ctxlog"
)

// DotenvFile is the file loaded from the service directory.
const DotenvFile = ".env"

// envRef matches ${env:NAME} and ${env:NAME, default}.
var envRef = regexp.MustCompile(`\$\{env:([A-Za-z_][A-Za-z0-9_]*)\s*(?:,\s*([^}]*?))?\s*\}`)

// LoadDotenv reads dir/.env and sets every variable that is not already
// present in the process environment. A missing file is not an error.
func LoadDotenv(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	path := filepath.Join(dir, DotenvFile)

	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No .env file found.", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	applied := 0
	for key, value := range vars {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		applied++
	}
	logger.Debug("Loaded .env file.", "path", path, "defined", len(vars), "applied", applied)
	return nil
}

// Expand replaces every ${env:NAME} reference in s. A reference to an unset
// variable without a default is an error.
func Expand(s string) (string, error) {
	var missing []string
	out := envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		if v, ok := os.LookupEnv(m[1]); ok {
			return v
		}
		if m[2] != "" {
			return unquote(m[2])
		}
		missing = append(missing, m[1])
		return ref
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("environment variable %s is not set", strings.Join(missing, ", "))
	}
	return out, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
