// Package jsonpath compiles JSON path expressions into immutable token
// sequences and caches the compiled form so a path evaluated over many
// documents is tokenized once.
//
// Supported grammar:
//   - `$`     document root; alone it selects the whole document
//   - `.name` object member access
//   - `[n]`   array subscript, 0-based and non-negative
//   - `[*]`   array wildcard, one branch per element
//
// Anything else is rejected at compile time with ErrInvalidPath.
package jsonpath
