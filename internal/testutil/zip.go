package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// ZipEntry is a single decoded archive entry.
type ZipEntry struct {
	Name    string
	Content string
}

// WriteZip creates a zip archive at path containing entries in order.
func WriteZip(t *testing.T, path string, entries ...ZipEntry) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		dst, err := w.Create(e.Name)
		require.NoError(t, err)
		_, err = io.WriteString(dst, e.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

// ReadZip returns every entry of the archive at path in stored order.
func ReadZip(t *testing.T, path string) []ZipEntry {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	entries := make([]ZipEntry, 0, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		entries = append(entries, ZipEntry{Name: f.Name, Content: string(data)})
	}
	return entries
}

// RawEntry is an entry name with its stored, still compressed bytes.
type RawEntry struct {
	Name string
	Data []byte
}

// RawEntries returns the stored bytes of every entry in order, to check
// that copied entries are untouched.
func RawEntries(t *testing.T, path string) []RawEntry {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	raw := make([]RawEntry, 0, len(r.File))
	for _, f := range r.File {
		rc, err := f.OpenRaw()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		raw = append(raw, RawEntry{Name: f.Name, Data: data})
	}
	return raw
}

// EntryNames returns the names of entries in order.
func EntryNames(entries []ZipEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

// RawEntriesOf builds a throwaway archive from entries and returns its raw
// entries. Archive writes are deterministic, so the result matches any
// archive WriteZip produced from the same entries.
func RawEntriesOf(t *testing.T, entries ...ZipEntry) []RawEntry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reference.zip")
	WriteZip(t, path, entries...)
	return RawEntries(t, path)
}
