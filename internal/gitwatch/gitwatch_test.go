package gitwatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/src/base.ts b/src/base.ts
index 1111111..2222222 100644
--- a/src/base.ts
+++ b/src/base.ts
@@ -3,0 +4,2 @@
+export interface Extra {}
diff --git a/README.md b/README.md
index 3333333..4444444 100644
--- a/README.md
+++ b/README.md
@@ -1,1 +1,1 @@
-old
+new
diff --git a/src/widget.tsx b/src/widget.tsx
index 5555555..6666666 100644
--- a/src/widget.tsx
+++ b/src/widget.tsx
@@ -10 +10,3 @@
+export function Widget() {}
`

func TestParseDiffFiltersNonTypeScriptFiles(t *testing.T) {
	changes, err := parseDiff([]byte(sampleDiff))
	require.NoError(t, err)

	var paths []string
	for _, c := range changes {
		paths = append(paths, c.Path)
	}
	require.ElementsMatch(t, []string{"src/base.ts", "src/widget.tsx"}, paths)
}

func TestParseDiffCollectsChangedLines(t *testing.T) {
	changes, err := parseDiff([]byte(sampleDiff))
	require.NoError(t, err)

	for _, c := range changes {
		if c.Path == "src/base.ts" {
			require.Equal(t, []int{4, 5}, c.ChangedLines)
		}
	}
}

func TestIsTypeScriptPath(t *testing.T) {
	require.True(t, isTypeScriptPath("a/b.ts"))
	require.True(t, isTypeScriptPath("a/b.tsx"))
	require.False(t, isTypeScriptPath("a/b.go"))
	require.False(t, isTypeScriptPath("README.md"))
}
