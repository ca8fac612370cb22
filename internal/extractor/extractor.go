// Package extractor locates the nodes of a JSON document selected by a path
// expression and streams them one at a time to a caller-supplied consumer,
// without materializing a result tree. Compiled paths are shared through a
// bounded cache so the same expression evaluated over millions of documents
// is tokenized once.
package extractor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/valyala/fastjson"

	"github.com/BlueStalker/velox/internal/jsonpath"
)

// Consumer receives matched nodes during extraction, one call per match, in
// document order. The value is a transient view into the pooled parser's
// document: it is valid only for the duration of the call and must not be
// retained, nor any sub-reference into it.
//
// Returning ErrStop ends the walk early and Extract reports success. Any
// other error aborts the walk and propagates to the Extract caller.
type Consumer func(v *fastjson.Value) error

// Extractor evaluates path expressions against JSON documents. It is safe
// for concurrent use: every call parses into a pooled parser of its own and
// compiled paths are shared read-only through the cache.
type Extractor struct {
	cache   *jsonpath.Cache
	parsers fastjson.ParserPool
}

// New creates an Extractor that compiles paths through the given cache.
func New(cache *jsonpath.Cache) *Extractor {
	return &Extractor{cache: cache}
}

// Extract streams every node of doc selected by expr to fn. A path that
// selects nothing is success with zero consumer calls. A malformed
// expression returns an error wrapping jsonpath.ErrInvalidPath; malformed
// document bytes return an error wrapping ErrParse. Matches already
// delivered before a failure stand.
func (e *Extractor) Extract(doc []byte, expr string, fn Consumer) error {
	p, err := e.cache.GetOrCompile(expr)
	if err != nil {
		return err
	}
	return e.ExtractPath(doc, p, fn)
}

// ExtractPath is Extract for a pre-compiled path.
func (e *Extractor) ExtractPath(doc []byte, p *jsonpath.Path, fn Consumer) error {
	parser := e.parsers.Get()
	defer e.parsers.Put(parser)

	root, err := parser.ParseBytes(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := walk(root, p.Tokens(), fn); err != nil {
		if errors.Is(err, ErrStop) {
			return nil
		}
		return err
	}
	return nil
}

// First returns a marshaled copy of the first node selected by expr, or
// ErrNotFound when nothing matches.
func (e *Extractor) First(doc []byte, expr string) ([]byte, error) {
	var match []byte
	err := e.Extract(doc, expr, func(v *fastjson.Value) error {
		match = v.MarshalTo(nil)
		return ErrStop
	})
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrNotFound
	}
	return match, nil
}

// All returns marshaled copies of every node selected by expr, in document
// order, or ErrNotFound when nothing matches.
func (e *Extractor) All(doc []byte, expr string) ([][]byte, error) {
	var matches [][]byte
	err := e.Extract(doc, expr, func(v *fastjson.Value) error {
		matches = append(matches, v.MarshalTo(nil))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return matches, nil
}

// walk consumes tokens in order starting at the current node. Once the token
// list is exhausted the current node is delivered to fn. Each node is fully
// descended into before any sibling is visited, so a single document cursor
// per branch suffices. A branch that cannot advance ends silently: a missing
// member, an out-of-range index, a scalar with tokens left, or a token kind
// that does not apply to the node are not errors.
func walk(v *fastjson.Value, tokens []jsonpath.Token, fn Consumer) error {
	for i, tok := range tokens {
		switch v.Type() {
		case fastjson.TypeObject:
			if tok.Kind != jsonpath.KindField {
				return nil
			}
			child := v.Get(tok.Name)
			if child == nil {
				return nil
			}
			v = child

		case fastjson.TypeArray:
			elems, err := v.Array()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrParse, err)
			}

			switch tok.Kind {
			case jsonpath.KindIndex:
				if tok.Index >= len(elems) {
					return nil
				}
				v = elems[tok.Index]

			case jsonpath.KindWildcard:
				// Terminal fan-out: every element becomes an
				// independent branch over the remaining tokens.
				rest := tokens[i+1:]
				for _, elem := range elems {
					if len(rest) == 0 {
						if err := fn(elem); err != nil {
							return err
						}
						continue
					}
					if err := walk(elem, rest, fn); err != nil {
						return err
					}
				}
				return nil

			default:
				return nil
			}

		default:
			// Scalar with tokens remaining cannot descend further.
			return nil
		}
	}

	return fn(v)
}

var defaultExtractor = sync.OnceValue(func() *Extractor {
	return New(jsonpath.Default())
})

// Extract evaluates expr against doc using the process-wide path cache.
func Extract(doc []byte, expr string, fn Consumer) error {
	return defaultExtractor().Extract(doc, expr, fn)
}

// First returns the first node selected by expr using the process-wide path
// cache.
func First(doc []byte, expr string) ([]byte, error) {
	return defaultExtractor().First(doc, expr)
}

// All returns every node selected by expr using the process-wide path cache.
func All(doc []byte, expr string) ([][]byte, error) {
	return defaultExtractor().All(doc, expr)
}
