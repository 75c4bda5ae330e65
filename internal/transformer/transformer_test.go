package transformer

import (
	stdcontext "context"
	"testing"

	"github.com/stretchr/testify/require"

	"tsdocgraph/internal/gatherer"
	"tsdocgraph/internal/node"
	"tsdocgraph/internal/tsast"
)

func parseAndGather(t *testing.T, src string) (*tsast.AST, *gatherer.Result) {
	t.Helper()
	p := tsast.NewParser()
	ast, err := p.Parse(stdcontext.Background(), "/virtual/index.ts", []byte(src))
	require.NoError(t, err)
	return ast, gatherer.Gather(ast)
}

func TestTransformInterfaceWithProperty(t *testing.T) {
	ast, result := parseAndGather(t, `export interface Base { value: number; }`)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/index.ts", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindInterface, n.Kind)
	require.Equal(t, "Base", n.Name)
	require.Equal(t, 1, n.Properties.Len())
	entry, ok := n.Properties.Get("value")
	require.True(t, ok)
	require.Equal(t, node.KindNumber, entry.Property.ValueNode.Kind)
}

func TestTransformTypeAliasLiteralUnion(t *testing.T) {
	ast, result := parseAndGather(t, `export type Status = "on" | "off";`)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/index.ts", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindAlias, n.Kind)
	require.Equal(t, node.KindUnion, n.ValueNode.Kind)
	require.Len(t, n.ValueNode.Elements, 2)
	require.Equal(t, "on", n.ValueNode.Elements[0].LiteralValue)
}

func TestTransformEnumWithExplicitValues(t *testing.T) {
	ast, result := parseAndGather(t, `export enum Color { Red = "red", Blue = "blue" }`)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/index.ts", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindEnum, n.Kind)
	require.Len(t, n.Members, 2)
	require.Equal(t, "Red", n.Members[0].Name)
	require.Equal(t, "red", n.Members[0].Value)
}

func TestTransformFunctionDeclaration(t *testing.T) {
	ast, result := parseAndGather(t, `export function add(a: number, b: number): number { return a + b; }`)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/index.ts", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindFunction, n.Kind)
	require.Len(t, n.Parameters, 2)
	require.Equal(t, node.KindNumber, n.Return.Kind)
}

func TestTransformComponentFromJSXReturn(t *testing.T) {
	p := tsast.NewParser()
	ast, err := p.Parse(stdcontext.Background(), "/virtual/widget.tsx", []byte(`export function Widget(props: { label: string }) { return <div>{props.label}</div>; }`))
	require.NoError(t, err)
	result := gatherer.Gather(ast)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/widget.tsx", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindComponent, n.Kind)
	require.Equal(t, "Widget", n.Name)
}

func TestTransformConciseArrowComponent(t *testing.T) {
	p := tsast.NewParser()
	ast, err := p.Parse(stdcontext.Background(), "/virtual/widget.tsx", []byte(`export const Widget = (props: { label: string }) => <div>{props.label}</div>;`))
	require.NoError(t, err)
	result := gatherer.Gather(ast)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/widget.tsx", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindComponent, n.Kind)
}

func TestTransformObjectLiteralVariable(t *testing.T) {
	ast, result := parseAndGather(t, `export const config = { retries: 3 };`)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/index.ts", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindInterface, n.Kind)
	entry, ok := n.Properties.Get("retries")
	require.True(t, ok)
	require.Equal(t, node.KindAny, entry.Property.ValueNode.Kind)
}

func TestTransformExtendsResolvesUnexportedLocalInterface(t *testing.T) {
	ast, result := parseAndGather(t, `interface A { a: string; }
interface B extends A { b: string; }
export interface C extends B { c: string; }`)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/index.ts", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindInterface, n.Kind)
	require.Len(t, n.Extends, 1)
	require.Equal(t, node.KindInterface, n.Extends[0].Kind)
	require.Equal(t, "B", n.Extends[0].Name)
	require.Equal(t, node.KindInterface, n.Extends[0].Extends[0].Kind)
	require.Equal(t, "A", n.Extends[0].Extends[0].Name)
}

func TestTransformOmitResolvesUnexportedLocalObjectAlias(t *testing.T) {
	ast, result := parseAndGather(t, `type Base = { a: string; bar: string; };
export type Narrow = Omit<Base, 'bar'>;`)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/index.ts", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindAlias, n.Kind)
	require.Equal(t, node.KindApplication, n.ValueNode.Kind)
	require.Equal(t, "Omit", n.ValueNode.Base.Name)
}

func TestTransformDependencyRecordedOnReferenceUse(t *testing.T) {
	ast, result := parseAndGather(t, `import { Foo } from "./foo";
export type Alias = Foo;`)
	require.Len(t, result.Source, 1)

	tr := New("/virtual/index.ts", ast)
	n := tr.Transform(result.Source[0].Node)
	require.Equal(t, node.KindReference, n.ValueNode.Kind)
	require.Equal(t, "./foo", n.ValueNode.Specifier)

	out := tr.Output()
	require.Len(t, out.Dependencies, 1)
	require.Equal(t, "./foo", out.Dependencies[0].Specifier)
}
