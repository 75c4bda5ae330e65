package transformer

import (
	"strings"

	"tsdocgraph/internal/node"
)

// jsdoc is a JSDoc comment parsed into its description and tags. Built
// from the raw, already-cleaned string tsast.DocComment produces (one
// line per `*`-stripped source line).
type jsdoc struct {
	Description string
	Access      node.Access
	Deprecated  bool
	Default     string
	Selector    string
	Return      string
	Params      map[string]string
}

// parseJSDoc splits a cleaned doc-comment block into its description
// and `@tag value` lines (spec.md §4.5 "Doc comments"). Access tags
// `@private`/`@protected`/`@public` map directly; `@deprecated` implies
// private (per spec.md §4.5's bullet: "@deprecated→private").
func parseJSDoc(raw string) jsdoc {
	out := jsdoc{Params: map[string]string{}}
	if raw == "" {
		return out
	}

	var descLines []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "@") {
			descLines = append(descLines, line)
			continue
		}
		tag, rest := splitTag(trimmed)
		switch tag {
		case "private":
			out.Access = node.AccessPrivate
		case "protected":
			out.Access = node.AccessProtected
		case "public":
			out.Access = node.AccessPublic
		case "deprecated":
			out.Deprecated = true
			out.Access = node.AccessPrivate
		case "default":
			out.Default = rest
		case "selector":
			out.Selector = rest
		case "return", "returns":
			out.Return = rest
		case "param":
			name, desc := splitParam(rest)
			if name != "" {
				out.Params[name] = desc
			}
		}
	}
	out.Description = strings.TrimSpace(strings.Join(descLines, "\n"))
	return out
}

func splitTag(line string) (tag, rest string) {
	line = strings.TrimPrefix(line, "@")
	parts := strings.SplitN(line, " ", 2)
	tag = parts[0]
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return tag, rest
}

// splitParam parses `name description...` or `{Type} name description`
// forms into (name, description), tolerating the optional `{Type}`
// prefix JSDoc allows before the parameter name.
func splitParam(rest string) (name, desc string) {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		if end := strings.Index(rest, "}"); end >= 0 {
			rest = strings.TrimSpace(rest[end+1:])
		}
	}
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", ""
	}
	name = strings.TrimPrefix(parts[0], "[")
	name = strings.TrimSuffix(name, "]")
	if len(parts) == 2 {
		desc = strings.TrimSpace(parts[1])
	}
	return name, desc
}

// applyShared copies the shared documentation fields from a jsdoc onto
// n. Called for every documented node the transformer emits, including
// properties and methods as well as top-level declarations.
func applyShared(n *node.Node, doc jsdoc) {
	n.Description = doc.Description
	n.Access = doc.Access
	n.Deprecated = doc.Deprecated
	n.Default = doc.Default
	n.Selector = doc.Selector
	n.ReturnDoc = doc.Return
	if len(doc.Params) > 0 {
		n.ParamDocs = doc.Params
	}
}

// distributeParamDocs pushes per-@param descriptions down onto the
// matching parameter nodes' own Description field (spec.md §4.5: "For
// function/method nodes, parameter and return descriptions are
// distributed into the respective sub-nodes").
func distributeParamDocs(params []node.Node, docs map[string]string) {
	if len(docs) == 0 {
		return
	}
	for i := range params {
		if d, ok := docs[params[i].Name]; ok {
			params[i].Description = d
		}
	}
}
