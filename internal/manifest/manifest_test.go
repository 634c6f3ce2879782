package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWriteVersionUpdatesBothDocuments(t *testing.T) {
	dir := t.TempDir()
	pkg := writeFile(t, dir, "package.json", `{"name":"ff-welcome","version":"1.2.3","scripts":{"build":"vite build"}}`)
	mod := writeFile(t, dir, "module.json", `{"id":"ff-welcome","title":"Welcome","version":"1.2.3","compatibility":{"minimum":"12"}}`)

	set, err := LoadSet(pkg, mod)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", set.Version())

	require.NoError(t, set.WriteVersion("1.3.0"))

	for _, path := range []string{pkg, mod} {
		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "1.3.0", doc.Version(), path)
	}
}

func TestSavePreservesKeyOrderAndIndents(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "module.json", `{"id":"x","version":"0.0.1","authors":[{"name":"a"}],"esmodules":["index.js"]}`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, doc.SetVersion("0.0.2"))
	require.NoError(t, doc.Save())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, "\n  \"version\": \"0.0.2\"")
	assert.Contains(t, out, "\"esmodules\": [\n    \"index.js\"\n  ]")
	assert.Less(t, strings.Index(out, `"id"`), strings.Index(out, `"version"`))
	assert.Less(t, strings.Index(out, `"version"`), strings.Index(out, `"authors"`))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	for name, content := range map[string]string{
		"broken.json":    `{"version": `,
		"noversion.json": `{"name":"x"}`,
		"numeric.json":   `{"version": 1}`,
		"array.json":     `["1.0.0"]`,
	} {
		_, err := Load(writeFile(t, dir, name, content))
		assert.Error(t, err, name)
	}
}

func TestLoadSetFailsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	pkg := writeFile(t, dir, "package.json", `{"version":"1.0.0"}`)

	_, err := LoadSet(pkg, filepath.Join(dir, "module.json"))
	require.Error(t, err)

	raw, err := os.ReadFile(pkg)
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1.0.0"}`, string(raw))
}
