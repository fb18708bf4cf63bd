package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes files below root. Keys are slash-separated relative
// paths; intermediate directories are created.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
}

// EngineFiles is a representative node_modules layout holding one binary
// of every engine family.
var EngineFiles = map[string]string{
	"node_modules/.prisma/client/libquery_engine-rhel-openssl-1.0.x.so.node": "query-rhel",
	"node_modules/@prisma/engines/migration-engine-rhel-openssl-1.0.x":      "migration-rhel",
	"node_modules/@prisma/engines/prisma-fmt-rhel-openssl-1.0.x":            "fmt-rhel",
	"node_modules/@prisma/engines/introspection-engine-rhel-openssl-1.0.x":  "introspection-rhel",
	"node_modules/@prisma/client/index.js":                                  "module.exports = {}",
}

// EngineBaseNames are the base names of the binaries in EngineFiles, sorted
// by their full path.
var EngineBaseNames = []string{
	"libquery_engine-rhel-openssl-1.0.x.so.node",
	"introspection-engine-rhel-openssl-1.0.x",
	"migration-engine-rhel-openssl-1.0.x",
	"prisma-fmt-rhel-openssl-1.0.x",
}
