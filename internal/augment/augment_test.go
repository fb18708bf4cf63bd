package augment_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/prismabundle/internal/archive"
	"github.com/specialistvlad/prismabundle/internal/augment"
	"github.com/specialistvlad/prismabundle/internal/config"
	"github.com/specialistvlad/prismabundle/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	root       string
	schemaPath string
	svc        *config.Service
	settings   config.Settings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	testutil.WriteFiles(t, root, testutil.EngineFiles)
	testutil.WriteFiles(t, root, map[string]string{"prisma/schema.prisma": "model User { id Int @id }"})

	svc := &config.Service{
		Name:     "svc",
		Provider: config.Provider{Runtime: "nodejs18.x"},
		Package:  config.Package{Individually: true},
		Functions: []config.Function{
			&config.HandlerFunction{Name: "a", Handler: "src/a/index.handler"},
			&config.ImageFunction{Name: "b", Image: "b:latest"},
			&config.HandlerFunction{Name: "root", Handler: "index.handler"},
		},
	}
	settings, err := config.ResolveSettings(svc, root)
	require.NoError(t, err)

	return &fixture{
		root:       root,
		schemaPath: filepath.Join(root, "prisma", "schema.prisma"),
		svc:        svc,
		settings:   settings,
	}
}

func (f *fixture) writeArtifact(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(f.root, ".serverless", name+".zip")
	testutil.WriteZip(t, p,
		testutil.ZipEntry{Name: "src/a/index.js", Content: "handler"},
		testutil.ZipEntry{Name: "src/a/index.js.map", Content: "map"},
		testutil.ZipEntry{Name: "package.json", Content: "{}"},
	)
	return p
}

func TestAugment_EmbedsSchemaAndEngines(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)
	zipPath := f.writeArtifact(t, "a")
	before := testutil.RawEntries(t, zipPath)
	a := augment.New(f.svc, f.settings, "")

	// --- Act ---
	err := a.Augment(context.Background(), "a", f.schemaPath)

	// --- Assert ---
	require.NoError(t, err)
	entries := testutil.ReadZip(t, zipPath)
	require.Len(t, entries, len(before)+1+len(testutil.EngineBaseNames))

	want := []string{"src/a/index.js", "src/a/index.js.map", "package.json", "src/a/schema.prisma"}
	for _, base := range testutil.EngineBaseNames {
		want = append(want, "src/a/"+base)
	}
	require.Equal(t, want, testutil.EntryNames(entries))
	assert.Equal(t, "model User { id Int @id }", entries[3].Content)
	assert.Equal(t, before, testutil.RawEntries(t, zipPath)[:len(before)])
}

func TestAugment_IsNotIdempotentByDefault(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	zipPath := f.writeArtifact(t, "a")
	a := augment.New(f.svc, f.settings, "")

	require.NoError(t, a.Augment(context.Background(), "a", f.schemaPath))
	require.NoError(t, a.Augment(context.Background(), "a", f.schemaPath))

	names, err := archive.List(zipPath)
	require.NoError(t, err)
	require.Len(t, names, 3+2*(1+len(testutil.EngineBaseNames)))
}

func TestAugment_ReplaceExistingIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.settings.ReplaceExisting = true
	zipPath := f.writeArtifact(t, "a")
	a := augment.New(f.svc, f.settings, "")

	require.NoError(t, a.Augment(context.Background(), "a", f.schemaPath))
	require.NoError(t, a.Augment(context.Background(), "a", f.schemaPath))

	names, err := archive.List(zipPath)
	require.NoError(t, err)
	require.Len(t, names, 3+1+len(testutil.EngineBaseNames))
}

func TestAugment_ImageFunctionIsNoop(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	a := augment.New(f.svc, f.settings, "")

	// No artifact exists for b; a no-op must not try to open one.
	require.NoError(t, a.Augment(context.Background(), "b", f.schemaPath))
}

func TestAugment_HandlerWithoutDirectory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	zipPath := f.writeArtifact(t, "root")
	a := augment.New(f.svc, f.settings, "")

	require.NoError(t, a.Augment(context.Background(), "root", f.schemaPath))

	names, err := archive.List(zipPath)
	require.NoError(t, err)
	require.Contains(t, names, "schema.prisma")
}

func TestAugment_ServiceUnitUsesFirstHandler(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	zipPath := f.writeArtifact(t, config.ServiceUnit)
	a := augment.New(f.svc, f.settings, "")

	require.NoError(t, a.Augment(context.Background(), config.ServiceUnit, f.schemaPath))

	names, err := archive.List(zipPath)
	require.NoError(t, err)
	require.Contains(t, names, "src/a/schema.prisma")
}

func TestAugment_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing archive", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		err := augment.New(f.svc, f.settings, "").Augment(context.Background(), "a", f.schemaPath)
		require.ErrorIs(t, err, archive.ErrArchiveNotFound)
	})

	t.Run("unknown function", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		err := augment.New(f.svc, f.settings, "").Augment(context.Background(), "nope", f.schemaPath)
		require.ErrorIs(t, err, config.ErrUnknownFunction)
	})

	t.Run("unreadable schema", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.writeArtifact(t, "a")
		err := augment.New(f.svc, f.settings, "").Augment(context.Background(), "a", filepath.Join(f.root, "gone.prisma"))
		require.Error(t, err)
	})
}

func TestAugment_PackageDirOverride(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	custom := filepath.Join(f.root, "artifacts")
	a := augment.New(f.svc, f.settings, custom)
	require.Equal(t, filepath.Join(custom, "a.zip"), a.ArchivePath("a"))

	testutil.WriteZip(t, a.ArchivePath("a"), testutil.ZipEntry{Name: "src/a/index.js", Content: "x"})
	require.NoError(t, a.Augment(context.Background(), "a", f.schemaPath))
}

func TestAugment_DotRelativeHandlerIsNormalized(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	f := newFixture(t)
	f.svc.Functions = append(f.svc.Functions, &config.HandlerFunction{Name: "dot", Handler: "./src/a/index.handler"})
	zipPath := f.writeArtifact(t, "dot")
	a := augment.New(f.svc, f.settings, "")

	// --- Act ---
	err := a.Augment(context.Background(), "dot", f.schemaPath)

	// --- Assert ---
	require.NoError(t, err)
	names, err := archive.List(zipPath)
	require.NoError(t, err)
	assert.Contains(t, names, "src/a/schema.prisma")
	assert.NotContains(t, names, "./src/a/schema.prisma")
}
