package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tsdocgraph/internal/linker"
	"tsdocgraph/internal/node"
)

func TestValidateAssetAcceptsWellFormedAsset(t *testing.T) {
	asset := linker.NewAsset("/proj/index.ts")
	asset.Exports["Foo"] = &node.Node{Kind: node.KindInterface, Name: "Foo"}
	asset.Symbols["Foo"] = "Foo"

	require.NoError(t, ValidateAsset(asset))
}

func TestValidateAssetRejectsMissingFields(t *testing.T) {
	malformed := map[string]any{
		"exports": map[string]any{},
	}
	require.Error(t, ValidateAsset(malformed))
}

func TestValidateAssetRejectsNodeWithoutKind(t *testing.T) {
	malformed := map[string]any{
		"id":      "/proj/index.ts",
		"exports": map[string]any{"Foo": map[string]any{"name": "Foo"}},
		"links":   map[string]any{},
		"symbols": map[string]any{},
	}
	require.Error(t, ValidateAsset(malformed))
}
