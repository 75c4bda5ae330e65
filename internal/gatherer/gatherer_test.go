package gatherer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tsdocgraph/internal/tsast"
)

func parse(t *testing.T, src string) *tsast.AST {
	t.Helper()
	p := tsast.NewParser()
	ast, err := p.Parse(context.Background(), "/virtual/index.ts", []byte(src))
	require.NoError(t, err)
	return ast
}

func TestGatherSourceExport(t *testing.T) {
	ast := parse(t, `export interface Base { value: number; }`)
	result := Gather(ast)
	require.Len(t, result.Source, 1)
	require.Equal(t, "Base", result.Source[0].PublicName)
}

func TestGatherExternalReExport(t *testing.T) {
	ast := parse(t, `export { Base } from "./base";`)
	result := Gather(ast)
	require.Len(t, result.External, 1)
	require.Equal(t, "Base", result.External[0].ExportName)
	require.Equal(t, "Base", result.External[0].SourceName)
	require.Equal(t, "./base", result.External[0].SourceFile)
}

func TestGatherRenamedReExport(t *testing.T) {
	ast := parse(t, `export { Base as Foo } from "./base";`)
	result := Gather(ast)
	require.Len(t, result.External, 1)
	require.Equal(t, "Foo", result.External[0].ExportName)
	require.Equal(t, "Base", result.External[0].SourceName)
}

func TestGatherWildcardReExport(t *testing.T) {
	ast := parse(t, `export * from "./base";`)
	result := Gather(ast)
	require.Len(t, result.Wildcard, 1)
	require.Equal(t, "./base", result.Wildcard[0].SourceFile)
}

func TestGatherDefaultExportIsNoOp(t *testing.T) {
	ast := parse(t, `export default function foo() {}`)
	result := Gather(ast)
	require.Empty(t, result.Source)
	require.Empty(t, result.External)
	require.Empty(t, result.Wildcard)
}
