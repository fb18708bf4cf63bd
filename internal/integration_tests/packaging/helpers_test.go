package integration_tests

import (
	"github.com/specialistvlad/prismabundle/internal/testutil"
)

const schemaContent = `datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

model User {
  id Int @id
}
`

// bundledFiles are the bundler's output for one function: handler, source
// map and a package manifest.
func bundledFiles(dir string) []testutil.ZipEntry {
	return []testutil.ZipEntry{
		{Name: dir + "/index.js", Content: "exports.handler = async () => ({ statusCode: 200 })"},
		{Name: dir + "/index.js.map", Content: `{"version":3}`},
		{Name: "package.json", Content: `{"name":"bundle"}`},
	}
}

// serviceFiles merges a service definition with the schema and engines.
func serviceFiles(definitionName, definition string) map[string]string {
	files := map[string]string{
		definitionName:         definition,
		"prisma/schema.prisma": schemaContent,
	}
	for k, v := range testutil.EngineFiles {
		files[k] = v
	}
	return files
}
