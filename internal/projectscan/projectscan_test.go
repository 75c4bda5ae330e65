package projectscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanProjectFindsTypeScriptFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "index.ts"), "export {}")
	writeFile(t, filepath.Join(root, "src", "widget.tsx"), "export {}")
	writeFile(t, filepath.Join(root, "README.md"), "# hi")
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.ts"), "export {}")

	s := NewScanner(root)
	var found []string
	require.NoError(t, s.ScanProject(root, func(path string) {
		rel, _ := filepath.Rel(root, path)
		found = append(found, rel)
	}))

	require.ElementsMatch(t, []string{
		filepath.Join("src", "index.ts"),
		filepath.Join("src", "widget.tsx"),
	}, found)
}

func TestScanProjectHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "generated/\n")
	writeFile(t, filepath.Join(root, "src", "index.ts"), "export {}")
	writeFile(t, filepath.Join(root, "generated", "codegen.ts"), "export {}")

	s := NewScanner(root)
	var found []string
	require.NoError(t, s.ScanProject(root, func(path string) {
		rel, _ := filepath.Rel(root, path)
		found = append(found, rel)
	}))

	require.ElementsMatch(t, []string{filepath.Join("src", "index.ts")}, found)
}

func TestScanProjectExcludesDeclarationFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "types.d.ts"), "export {}")
	writeFile(t, filepath.Join(root, "index.ts"), "export {}")

	s := NewScanner(root)
	var found []string
	require.NoError(t, s.ScanProject(root, func(path string) {
		rel, _ := filepath.Rel(root, path)
		found = append(found, rel)
	}))

	require.ElementsMatch(t, []string{"index.ts"}, found)
}
