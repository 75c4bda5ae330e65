// Package schema validates a loader Asset's serialized {exports,
// links} wire shape against a JSON Schema, the way the teacher's
// generator package validates its DocModel output before writing it
// to disk (internal/generator/doc_model.go's validateDocModelWithSchema).
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed asset.schema.json
var assetSchemaSource []byte

const assetSchemaURL = "https://tsdocgraph.dev/schema/asset.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func assetSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(assetSchemaURL, bytes.NewReader(assetSchemaSource)); err != nil {
			compileErr = fmt.Errorf("schema: add resource: %w", err)
			return
		}
		s, err := compiler.Compile(assetSchemaURL)
		if err != nil {
			compileErr = fmt.Errorf("schema: compile: %w", err)
			return
		}
		compiled = s
	})
	return compiled, compileErr
}

// ValidateAsset marshals v (expected to be a *linker.Asset or any
// value whose JSON shape matches it) and validates the result against
// the embedded asset schema. The caller passes the already-built value
// rather than this package importing internal/linker directly, so
// schema stays usable against any wire-compatible payload — a cached
// snapshot, a host's own projection — without adding a dependency on
// the linker package's internals.
func ValidateAsset(v any) error {
	s, err := assetSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("schema: marshal: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("schema: normalize: %w", err)
	}
	if err := s.Validate(decoded); err != nil {
		return fmt.Errorf("schema: validate asset: %w", err)
	}
	return nil
}
