package prismaschema

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestResolve(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "root schema",
			files: map[string]string{"schema.prisma": "model A {}"},
			want:  "schema.prisma",
		},
		{
			name:  "prisma directory",
			files: map[string]string{"prisma/schema.prisma": "model A {}"},
			want:  "prisma/schema.prisma",
		},
		{
			name: "root wins over prisma directory",
			files: map[string]string{
				"schema.prisma":        "root",
				"prisma/schema.prisma": "nested",
			},
			want: "schema.prisma",
		},
		{
			name: "package.json field wins",
			files: map[string]string{
				"package.json":         `{"name":"svc","prisma":{"schema":"db/custom.prisma"}}`,
				"db/custom.prisma":     "custom",
				"prisma/schema.prisma": "nested",
			},
			want: "db/custom.prisma",
		},
		{
			name: "package.json without field falls through",
			files: map[string]string{
				"package.json":         `{"name":"svc"}`,
				"prisma/schema.prisma": "nested",
			},
			want: "prisma/schema.prisma",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			root := t.TempDir()
			for rel, content := range tc.files {
				write(t, root, rel, content)
			}

			// --- Act ---
			got, err := Resolve(context.Background(), root)

			// --- Assert ---
			require.NoError(t, err)
			require.Equal(t, filepath.Join(root, filepath.FromSlash(tc.want)), got)
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	_, err := Resolve(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestResolve_InvalidPackageJSON(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, root, "package.json", "{not json")

	_, err := Resolve(context.Background(), root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not valid JSON")
}
