package support

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "include")

	got, err := Install(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	data, err := os.ReadFile(filepath.Join(dir, HeaderName))
	require.NoError(t, err)
	assert.Equal(t, Header, data)

	// A second install is a no-op.
	_, err = Install(dir)
	require.NoError(t, err)
}

func TestHeaderDeclaresRuntimeSurface(t *testing.T) {
	h := string(Header)
	for _, want := range []string{
		"struct Keyword_Arguments",
		"append(std::string const& key, Value value)",
		"operator\"\"_str",
		"struct None {} None;",
		"namespace list",
		"struct List",
		"void append(T value)",
		"void compy_main();",
	} {
		assert.Contains(t, h, want)
	}
}
