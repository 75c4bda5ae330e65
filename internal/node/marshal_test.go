package node

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalLiteralNumberAsString(t *testing.T) {
	n := &Node{Kind: KindNumber, LiteralValue: "1", HasLiteralValue: true}
	raw, err := json.Marshal(n)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"number","value":"1"}`, string(raw))
}

func TestMarshalKeywordKindOmitsValue(t *testing.T) {
	n := &Node{Kind: KindString}
	raw, err := json.Marshal(n)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"string"}`, string(raw))
}

func TestMarshalPropertyOrderPreserved(t *testing.T) {
	props := NewPropertyMap()
	props.Set("z", PropertyEntry{Name: "z", Property: &Node{Kind: KindNumber}})
	props.Set("a", PropertyEntry{Name: "a", Property: &Node{Kind: KindString}})
	props.Set("m", PropertyEntry{Name: "m", Property: &Node{Kind: KindBoolean}})

	obj := &Node{Kind: KindObject, Properties: props}
	raw, err := json.Marshal(obj)
	require.NoError(t, err)

	// JSONEq can't assert key order, so check the raw byte positions.
	s := string(raw)
	iz, ia, im := indexOf(s, `"z"`), indexOf(s, `"a"`), indexOf(s, `"m"`)
	require.True(t, iz < ia && ia < im, "expected z < a < m in %s", s)
}

func TestMarshalInterfaceShape(t *testing.T) {
	id := Id{File: "/abs/base.ts", Symbol: "Base"}
	props := NewPropertyMap()
	props.Set("value", PropertyEntry{Name: "value", Property: &Node{Kind: KindProperty, Name: "value", ValueNode: &Node{Kind: KindNumber}}})

	n := &Node{Kind: KindInterface, Id: id, Name: "Base", Properties: props}
	raw, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "interface", decoded["kind"])
	require.Equal(t, "/abs/base.ts:Base", decoded["id"])
	require.Equal(t, "Base", decoded["name"])
}

func TestTypeOperatorAndLegacyKeyofSynonym(t *testing.T) {
	operand := &Node{Kind: KindString}
	modern := &Node{Kind: KindTypeOperator, Operator: OperatorKeyof, ValueNode: operand}
	legacy := &Node{Kind: KindKeyof, ValueNode: operand}

	require.True(t, modern.IsTypeOperator())
	require.True(t, legacy.IsTypeOperator())
	require.Equal(t, OperatorKeyof, modern.OperatorOf())
	require.Equal(t, OperatorKeyof, legacy.OperatorOf())
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
