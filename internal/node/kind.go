// Package node defines the closed documentation node model: the sum
// type every TypeScript declaration is lowered into, shared by the
// transformer and the linker.
package node

// Kind discriminates the Node sum type. Values are the lowercase
// strings used on the wire (see the Loader API's serialized output).
type Kind string

const (
	KindAny       Kind = "any"
	KindNull      Kind = "null"
	KindUndefined Kind = "undefined"
	KindVoid      Kind = "void"
	KindUnknown   Kind = "unknown"
	KindNever     Kind = "never"
	KindThis      Kind = "this"
	KindSymbol    Kind = "symbol"

	KindBoolean Kind = "boolean"
	KindString  Kind = "string"
	KindNumber  Kind = "number"

	KindArray        Kind = "array"
	KindTuple        Kind = "tuple"
	KindObject       Kind = "object"
	KindUnion        Kind = "union"
	KindIntersection Kind = "intersection"
	KindTemplate     Kind = "template"

	KindTypeParameter Kind = "typeParameter"
	KindParameter     Kind = "parameter"

	KindEnum       Kind = "enum"
	KindEnumMember Kind = "enumMember"

	KindInterface Kind = "interface"
	KindProperty  Kind = "property"
	KindMethod    Kind = "method"
	KindFunction  Kind = "function"
	KindComponent Kind = "component"

	KindApplication Kind = "application"
	KindIdentifier  Kind = "identifier"
	KindReference   Kind = "reference"
	KindAlias       Kind = "alias"

	KindTypeOperator Kind = "typeOperator"
	// KindKeyof is the legacy pattern-matching variant kept for fidelity
	// with hand-built trees (spec.md §3, §9 Open Questions). The
	// transformer never emits it; only typeOperator{operator:"keyof"}
	// is produced going forward. The linker treats both as synonyms.
	KindKeyof Kind = "keyof"

	KindConditional   Kind = "conditional"
	KindIndexedAccess Kind = "indexedAccess"

	// KindLink is produced only by the linker (never by the transformer).
	KindLink Kind = "link"
)

// TypeOperator enumerates the operand kinds of a typeOperator node.
type TypeOperator string

const (
	OperatorKeyof    TypeOperator = "keyof"
	OperatorTypeof   TypeOperator = "typeof"
	OperatorReadonly TypeOperator = "readonly"
	OperatorUnique   TypeOperator = "unique"
)

// Access is the JSDoc-derived visibility tag.
type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
)

// ReferenceImportKind classifies how a dependency symbol was imported,
// used by the transformer's dependency side-channel (spec.md §4.5).
type ReferenceImportKind string

const (
	ImportSymbol    ReferenceImportKind = "symbol"
	ImportDefault   ReferenceImportKind = "default"
	ImportNamespace ReferenceImportKind = "namespace"
)
