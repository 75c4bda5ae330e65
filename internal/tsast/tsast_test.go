package tsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSDoc(t *testing.T) {
	raw := "/**\n * Loads a widget.\n * @returns the widget\n */"
	assert.Equal(t, "Loads a widget.\n@returns the widget", cleanJSDoc(raw))
}

func TestCleanJSDocEmpty(t *testing.T) {
	assert.Equal(t, "", cleanJSDoc(""))
}

func TestGrammarForExtension(t *testing.T) {
	assert.NotNil(t, grammarFor("component.tsx"))
	assert.NotNil(t, grammarFor("types.ts"))
}
