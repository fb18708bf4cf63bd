package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/prismabundle/internal/app"
	"github.com/specialistvlad/prismabundle/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessOptions tune a packaging run.
type HarnessOptions struct {
	// ConfigFile selects the service definition; discovered when empty.
	ConfigFile string
	// PackageDir overrides the archive directory.
	PackageDir string
	// Archives are written before the run, keyed by slash path relative to
	// the service directory.
	Archives map[string][]ZipEntry
	// Modules replace the core modules when set.
	Modules []registry.Module
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	LogOutput string
	Err       error
	App       *app.App
}

// Path joins a slash path onto the service directory.
func (r *HarnessResult) Path(rel string) string {
	return filepath.Join(r.Dir, filepath.FromSlash(rel))
}

// RunPackaging provides a standardized harness for running integration tests
// using a default background context.
func RunPackaging(t *testing.T, files map[string]string, opts HarnessOptions) *HarnessResult {
	t.Helper()
	return RunPackagingWithContext(context.Background(), t, files, opts)
}

// RunPackagingWithContext writes a service directory, builds the app and
// runs one packaging pass.
func RunPackagingWithContext(ctx context.Context, t *testing.T, files map[string]string, opts HarnessOptions) *HarnessResult {
	t.Helper()

	// 1. Lay out the service directory.
	dir := t.TempDir()
	WriteFiles(t, dir, files)
	for rel, entries := range opts.Archives {
		WriteZip(t, filepath.Join(dir, filepath.FromSlash(rel)), entries...)
	}

	// 2. Configure the app against it.
	appConfig, err := app.NewConfig(app.Config{
		ServicePath: dir,
		ConfigFile:  opts.ConfigFile,
		PackageDir:  opts.PackageDir,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{Dir: dir}

	// 3. Build and run.
	testApp, err := app.NewApp(logBuffer, appConfig, opts.Modules...)
	if err == nil {
		result.App = testApp
		err = testApp.Run(ctx)
	}
	result.Err = err
	result.LogOutput = logBuffer.String()

	if os.Getenv("PRISMABUNDLE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
