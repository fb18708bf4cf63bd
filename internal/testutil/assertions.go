package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertEmbedded checks that the archive at zipPath ends with the schema
// followed by every engine of EngineFiles, all placed under prefix, and
// that the entries it held before are byte-identical.
func AssertEmbedded(t *testing.T, zipPath, prefix string, before []RawEntry) {
	t.Helper()

	after := RawEntries(t, zipPath)
	require.Len(t, after, len(before)+1+len(EngineBaseNames), "unexpected entry count in %s", zipPath)
	require.Equal(t, before, after[:len(before)], "original entries of %s changed", zipPath)

	want := []string{join(prefix, "schema.prisma")}
	for _, base := range EngineBaseNames {
		want = append(want, join(prefix, base))
	}
	var got []string
	for _, e := range after[len(before):] {
		got = append(got, e.Name)
	}
	require.Equal(t, want, got, "appended entries of %s", zipPath)
}

// AssertUntouched checks that the archive still holds exactly before.
func AssertUntouched(t *testing.T, zipPath string, before []RawEntry) {
	t.Helper()
	require.Equal(t, before, RawEntries(t, zipPath), "archive %s was modified", zipPath)
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
