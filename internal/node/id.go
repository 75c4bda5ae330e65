package node

import "strings"

// Id is a pair (file, symbol) naming a declaration. Every interface and
// alias node carries one; it is the only thing a link node may target.
type Id struct {
	File   string
	Symbol string
}

// String renders the canonical "<file>:<symbol>" form (spec.md §3,
// §6 "NodeId string form"). Only the last colon splits the symbol when
// the file path itself contains colons, but in practice this never
// happens on the absolute paths this loader works with.
func (id Id) String() string {
	if id.File == "" && id.Symbol == "" {
		return ""
	}
	return id.File + ":" + id.Symbol
}

// ParseID splits a canonical NodeId string back into its parts,
// splitting on the last colon.
func ParseID(s string) Id {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return Id{File: s}
	}
	return Id{File: s[:i], Symbol: s[i+1:]}
}

// IsZero reports whether id names nothing.
func (id Id) IsZero() bool {
	return id.File == "" && id.Symbol == ""
}
