package archive_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/specialistvlad/prismabundle/internal/archive"
	"github.com/specialistvlad/prismabundle/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupArchive(t *testing.T) (dir, zipPath string) {
	t.Helper()
	dir = t.TempDir()
	zipPath = filepath.Join(dir, ".serverless", "a.zip")
	testutil.WriteZip(t, zipPath,
		testutil.ZipEntry{Name: "src/a/index.js", Content: "exports.handler = () => {}"},
		testutil.ZipEntry{Name: "package.json", Content: `{"name":"a"}`},
	)
	testutil.WriteFiles(t, dir, map[string]string{
		"schema.prisma": "datasource db { provider = \"postgresql\" }",
		"engine-one":    "ENGINE-1",
		"engine-two":    "ENGINE-2",
	})
	return dir, zipPath
}

func TestAppend_AddsEntriesAndKeepsOriginals(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir, zipPath := setupArchive(t)
	before := testutil.RawEntries(t, zipPath)
	entries := []archive.Entry{
		{Name: "src/a/schema.prisma", SourcePath: filepath.Join(dir, "schema.prisma")},
		{Name: "src/a/engine-one", SourcePath: filepath.Join(dir, "engine-one")},
		{Name: "src/a/engine-two", SourcePath: filepath.Join(dir, "engine-two")},
	}

	// --- Act ---
	stats, err := archive.Append(context.Background(), zipPath, entries, archive.Options{})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Existing)
	assert.Equal(t, 3, stats.Added)
	assert.Positive(t, stats.Size)

	got := testutil.ReadZip(t, zipPath)
	require.Equal(t, []string{
		"src/a/index.js",
		"package.json",
		"src/a/schema.prisma",
		"src/a/engine-one",
		"src/a/engine-two",
	}, testutil.EntryNames(got))
	assert.Equal(t, "datasource db { provider = \"postgresql\" }", got[2].Content)
	assert.Equal(t, "ENGINE-2", got[4].Content)

	after := testutil.RawEntries(t, zipPath)
	require.Equal(t, before, after[:len(before)], "original entries must be byte-identical")

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(zipPath), ".a.zip.*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestAppend_RepeatAddsDuplicates(t *testing.T) {
	t.Parallel()

	dir, zipPath := setupArchive(t)
	entries := []archive.Entry{
		{Name: "src/a/schema.prisma", SourcePath: filepath.Join(dir, "schema.prisma")},
		{Name: "src/a/engine-one", SourcePath: filepath.Join(dir, "engine-one")},
	}

	_, err := archive.Append(context.Background(), zipPath, entries, archive.Options{})
	require.NoError(t, err)
	_, err = archive.Append(context.Background(), zipPath, entries, archive.Options{})
	require.NoError(t, err)

	names, err := archive.List(zipPath)
	require.NoError(t, err)
	require.Len(t, names, 2+2*len(entries))
}

func TestAppend_ReplaceExisting(t *testing.T) {
	t.Parallel()

	dir, zipPath := setupArchive(t)
	entries := []archive.Entry{
		{Name: "src/a/schema.prisma", SourcePath: filepath.Join(dir, "schema.prisma")},
		{Name: "src/a/engine-one", SourcePath: filepath.Join(dir, "engine-one")},
	}
	opts := archive.Options{ReplaceExisting: true}

	_, err := archive.Append(context.Background(), zipPath, entries, opts)
	require.NoError(t, err)
	stats, err := archive.Append(context.Background(), zipPath, entries, opts)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Replaced)
	names, err := archive.List(zipPath)
	require.NoError(t, err)
	require.Equal(t, []string{"src/a/index.js", "package.json", "src/a/schema.prisma", "src/a/engine-one"}, names)
}

func TestAppend_MissingArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := archive.Append(context.Background(), filepath.Join(dir, "missing.zip"), nil, archive.Options{})
	require.ErrorIs(t, err, archive.ErrArchiveNotFound)
}

func TestAppend_UnreadableSourceLeavesArchiveUntouched(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir, zipPath := setupArchive(t)
	original, err := os.ReadFile(zipPath)
	require.NoError(t, err)

	// --- Act ---
	_, err = archive.Append(context.Background(), zipPath, []archive.Entry{
		{Name: "src/a/schema.prisma", SourcePath: filepath.Join(dir, "does-not-exist")},
	}, archive.Options{})

	// --- Assert ---
	require.Error(t, err)
	current, readErr := os.ReadFile(zipPath)
	require.NoError(t, readErr)
	require.Equal(t, original, current)
}

func TestAppend_KeepsArchiveComment(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "a.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	_, err = w.Create("src/a/index.js")
	require.NoError(t, err)
	require.NoError(t, w.SetComment("built-by-packager"))
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	testutil.WriteFiles(t, dir, map[string]string{"schema.prisma": "model User { id Int @id }"})

	// --- Act ---
	_, err = archive.Append(context.Background(), zipPath, []archive.Entry{
		{Name: "src/a/schema.prisma", SourcePath: filepath.Join(dir, "schema.prisma")},
	}, archive.Options{})

	// --- Assert ---
	require.NoError(t, err)
	r, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "built-by-packager", r.Comment)
	assert.Len(t, r.File, 2)
}
