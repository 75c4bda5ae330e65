package impact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeImpactDirectAndIndirect(t *testing.T) {
	// base <- mid <- top (top imports mid, mid imports base)
	g := NewGraph()
	g.AddEdge("top.ts", "mid.ts")
	g.AddEdge("mid.ts", "base.ts")

	report := NewAnalyzer(g).AnalyzeImpact([]string{"base.ts"})

	require.ElementsMatch(t, []string{"mid.ts"}, report.DirectlyAffected)
	require.ElementsMatch(t, []string{"top.ts"}, report.IndirectlyAffected)
}

func TestAnalyzeImpactExcludesChangedFilesThemselves(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a.ts", "b.ts")
	g.AddEdge("b.ts", "a.ts") // mutual import cycle

	report := NewAnalyzer(g).AnalyzeImpact([]string{"a.ts", "b.ts"})

	require.Empty(t, report.DirectlyAffected)
	require.Empty(t, report.IndirectlyAffected)
}

func TestAnalyzeImpactNoDependentsIsEmpty(t *testing.T) {
	g := NewGraph()
	g.AddEdge("leaf.ts", "base.ts")

	report := NewAnalyzer(g).AnalyzeImpact([]string{"unrelated.ts"})
	require.Empty(t, report.DirectlyAffected)
	require.Empty(t, report.IndirectlyAffected)
}
