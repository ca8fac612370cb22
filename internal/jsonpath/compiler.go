package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// compile tokenizes a path expression. It is a pure function of the string:
// no document is touched and nothing is cached here.
func compile(expr string) (*Path, error) {
	if err := validateExpression(expr); err != nil {
		return nil, err
	}

	p := &Path{expr: expr}
	if expr == "$" {
		return p, nil
	}

	i := 1 // current parsing index in expr, after '$'

	for i < len(expr) {
		tok, newIndex, err := parseToken(expr, i)
		if err != nil {
			return nil, err
		}
		p.tokens = append(p.tokens, tok)
		i = newIndex
	}

	return p, nil
}

func validateExpression(expr string) error {
	if expr == "" {
		return fmt.Errorf("%w: expression cannot be empty", ErrInvalidPath)
	}
	if expr[0] != '$' || (len(expr) > 1 && expr[1] != '.' && expr[1] != '[') {
		return fmt.Errorf("%w: %q must start with '$', '$.', or '$['", ErrInvalidPath, expr)
	}
	return nil
}

func parseToken(expr string, i int) (Token, int, error) {
	if expr[i] == '.' {
		return parseField(expr, i)
	}
	if expr[i] == '[' {
		return parseSubscript(expr, i)
	}

	return Token{}, i, fmt.Errorf("%w: unexpected '%c' at position %d in %q, expected '.' or '['", ErrInvalidPath, expr[i], i, expr)
}

func parseField(expr string, i int) (Token, int, error) {
	i++ // consume '.'

	start := i
	for i < len(expr) && expr[i] != '.' && expr[i] != '[' && expr[i] != ']' {
		i++
	}
	if start == i { // field name cannot be empty
		return Token{}, i, fmt.Errorf("%w: empty field name at position %d in %q", ErrInvalidPath, start, expr)
	}

	return Token{Kind: KindField, Name: expr[start:i]}, i, nil
}

func parseSubscript(expr string, i int) (Token, int, error) {
	i++ // consume '['

	end := strings.IndexByte(expr[i:], ']')
	if end == -1 {
		return Token{}, i, fmt.Errorf("%w: unterminated subscript, missing ']' in %q", ErrInvalidPath, expr)
	}

	content := expr[i : i+end]
	newIndex := i + end + 1

	if content == "*" {
		return Token{Kind: KindWildcard}, newIndex, nil
	}

	if content == "" {
		return Token{}, newIndex, fmt.Errorf("%w: empty subscript '[]' in %q", ErrInvalidPath, expr)
	}
	for j := 0; j < len(content); j++ {
		if content[j] < '0' || content[j] > '9' {
			return Token{}, newIndex, fmt.Errorf("%w: subscript %q in %q must be '*' or a non-negative integer", ErrInvalidPath, content, expr)
		}
	}

	n, err := strconv.Atoi(content)
	if err != nil {
		return Token{}, newIndex, fmt.Errorf("%w: subscript %q in %q is out of range", ErrInvalidPath, content, expr)
	}

	return Token{Kind: KindIndex, Index: n}, newIndex, nil
}
