package jsonpath

import "slices"

// Constants for the navigation step variants of a compiled path.
const (
	// KindField selects a named member of an object.
	KindField Kind = iota + 1
	// KindIndex selects the n-th element of an array.
	KindIndex
	// KindWildcard selects every element of an array.
	KindWildcard
)

// Kind discriminates path token variants.
type Kind uint8

// Token is a single navigation step of a compiled path.
// Tokens are immutable after compilation.
type Token struct {
	Kind  Kind
	Name  string // member name for KindField
	Index int    // element index for KindIndex
}

// Path is a compiled path expression: the original string plus its ordered
// token sequence. A Path is never mutated after construction, so one
// instance can be shared across goroutines without synchronization.
//
// Paths have no exported constructor; they are obtained from
// Cache.GetOrCompile.
type Path struct {
	expr   string
	tokens []Token
}

// String returns the original path expression.
func (p *Path) String() string {
	return p.expr
}

// IsRootOnly reports whether the path is the bare root "$", which selects
// the whole document unmodified.
func (p *Path) IsRootOnly() bool {
	return len(p.tokens) == 0
}

// Tokens returns the compiled token sequence. Callers must not modify it.
func (p *Path) Tokens() []Token {
	return p.tokens
}

// Equal reports whether two compiled paths have identical token sequences.
func (p *Path) Equal(other *Path) bool {
	return slices.Equal(p.tokens, other.tokens)
}
