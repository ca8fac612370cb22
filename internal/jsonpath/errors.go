package jsonpath

import "errors"

// ErrInvalidPath indicates a malformed path expression detected at compile
// time. It is a static configuration mistake on the caller's side, never a
// property of the document being queried.
var ErrInvalidPath = errors.New("jsonpath: invalid path")
