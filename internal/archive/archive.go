// Package archive appends files to an existing zip artifact. Existing
// entries are copied without recompression so their bytes stay identical.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zip"
	"github.com/specialistvlad/prismabundle/internal/ctxlog"
)

// ErrArchiveNotFound is returned when the artifact to augment does not exist.
var ErrArchiveNotFound = errors.New("archive not found")

// Entry is a file to add to an archive.
type Entry struct {
	// Name is the slash-separated path inside the archive.
	Name string
	// SourcePath is the file on disk whose bytes become the entry content.
	SourcePath string
}

// Options control how entries are appended.
type Options struct {
	// ReplaceExisting drops existing entries whose name equals a new entry.
	ReplaceExisting bool
}

// Stats describes the outcome of an Append call.
type Stats struct {
	Existing int   // entries present before the call
	Added    int   // entries appended
	Replaced int   // existing entries dropped because of ReplaceExisting
	Size     int64 // archive size after the rewrite
}

// Append adds entries to the zip archive at path and rewrites it in place.
// The archive is written to a temporary file next to path and renamed over
// the original, so a failure leaves the original untouched.
func Append(ctx context.Context, path string, entries []Entry, opts Options) (Stats, error) {
	logger := ctxlog.FromContext(ctx)
	var stats Stats

	reader, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("%w: %s", ErrArchiveNotFound, path)
		}
		return stats, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer reader.Close()
	stats.Existing = len(reader.File)

	info, err := os.Stat(path)
	if err != nil {
		return stats, fmt.Errorf("stat archive %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return stats, fmt.Errorf("failed to create temporary archive: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	replaced := make(map[string]struct{})
	if opts.ReplaceExisting {
		for _, e := range entries {
			replaced[e.Name] = struct{}{}
		}
	}

	w := zip.NewWriter(tmp)
	if err := w.SetComment(reader.Comment); err != nil {
		return stats, fmt.Errorf("failed to keep archive comment: %w", err)
	}
	for _, f := range reader.File {
		if _, drop := replaced[f.Name]; drop {
			logger.Debug("Dropping existing archive entry.", "entry", f.Name)
			stats.Replaced++
			continue
		}
		if err := w.Copy(f); err != nil {
			return stats, fmt.Errorf("failed to copy entry %s: %w", f.Name, err)
		}
	}

	for _, e := range entries {
		if err := addFile(w, e); err != nil {
			return stats, err
		}
		logger.Debug("Added archive entry.", "entry", e.Name, "source", e.SourcePath)
		stats.Added++
	}

	if err := w.Close(); err != nil {
		return stats, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return stats, fmt.Errorf("failed to set archive mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return stats, fmt.Errorf("failed to close temporary archive: %w", err)
	}
	// The reader must be closed before the rename on platforms that lock open files.
	reader.Close()
	if err := os.Rename(tmpName, path); err != nil {
		return stats, fmt.Errorf("failed to replace archive %s: %w", path, err)
	}
	committed = true

	if final, err := os.Stat(path); err == nil {
		stats.Size = final.Size()
	}
	logger.Info("Archive rewritten.",
		"path", path,
		"existing", stats.Existing,
		"added", stats.Added,
		"replaced", stats.Replaced,
		"size", humanize.Bytes(uint64(stats.Size)),
	)
	return stats, nil
}

func addFile(w *zip.Writer, e Entry) error {
	src, err := os.Open(e.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", e.SourcePath, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", e.SourcePath, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", e.SourcePath, err)
	}
	header.Name = e.Name
	header.Method = zip.Deflate

	dst, err := w.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create entry %s: %w", e.Name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", e.Name, err)
	}
	return nil
}

// List returns the entry names of the archive at path in stored order.
func List(path string) ([]string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, path)
		}
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	return names, nil
}
