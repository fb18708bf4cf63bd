// Package prismaschema locates the Prisma schema file of a project the same
// way the Prisma CLI does.
package prismaschema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/prismabundle/internal/ctxlog"
	"github.com/tidwall/gjson"
)

// FileName is the name the schema is stored under inside an archive.
const FileName = "schema.prisma"

// ErrSchemaNotFound is returned when no schema file exists in any of the
// searched locations.
var ErrSchemaNotFound = errors.New("prisma schema not found")

// Resolve returns the path of the schema file for the project in root. The
// locations are tried in order: the `prisma.schema` field of package.json,
// root/schema.prisma and root/prisma/schema.prisma.
func Resolve(ctx context.Context, root string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	candidates, err := candidatePaths(root)
	if err != nil {
		return "", err
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("Schema candidate does not exist.", "path", candidate)
				continue
			}
			return "", fmt.Errorf("stat schema candidate %s: %w", candidate, err)
		}
		if info.IsDir() {
			logger.Debug("Schema candidate is a directory, skipping.", "path", candidate)
			continue
		}
		logger.Debug("Prisma schema resolved.", "path", candidate)
		return candidate, nil
	}

	return "", fmt.Errorf("%w (searched %s)", ErrSchemaNotFound, strings.Join(candidates, ", "))
}

func candidatePaths(root string) ([]string, error) {
	var candidates []string

	fromPackage, err := packageJSONSchema(root)
	if err != nil {
		return nil, err
	}
	if fromPackage != "" {
		candidates = append(candidates, fromPackage)
	}

	return append(candidates,
		filepath.Join(root, FileName),
		filepath.Join(root, "prisma", FileName),
	), nil
}

// packageJSONSchema reads `prisma.schema` from root/package.json. A missing
// package.json or field yields "".
func packageJSONSchema(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading package.json: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("package.json in %s is not valid JSON", root)
	}

	schema := gjson.GetBytes(data, "prisma.schema")
	if !schema.Exists() || schema.String() == "" {
		return "", nil
	}
	p := filepath.FromSlash(schema.String())
	if filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(root, p), nil
}
