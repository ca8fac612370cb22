package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/BlueStalker/velox/internal/exit"
	"github.com/BlueStalker/velox/internal/jsonpath"
)

// Output formats supported by the jx tool.
const (
	OutputJSON    = "json"
	OutputCompact = "compact"
	OutputYAML    = "yaml"
)

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrNoPath           = errors.New("no path expression specified, use -path")
	ErrInvalidOutput    = errors.New("output must be one of: json, compact, yaml")
	ErrInvalidCacheSize = errors.New("cache-size must be positive")
)

// Config represents the complete configuration for the jx tool.
type Config struct {
	// Path is the expression evaluated against every input document.
	Path string

	// Output selects how matched nodes are rendered.
	Output string

	// FirstOnly stops each document's walk after the first match.
	FirstOnly bool

	// CacheSize bounds the compiled path cache.
	CacheSize int

	// Files are the input documents; empty means read stdin.
	Files []string
}

// Parse parses command line arguments into a Config.
// On failure it returns an exit.Result carrying the message and exit code.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage and error output since we handle both ourselves
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		path      = fs.String("path", "", "Path expression to evaluate, e.g. '$.a[*].b'")
		output    = fs.String("output", OutputJSON, "Output format: json, compact or yaml")
		firstOnly = fs.Bool("first", false, "Stop after the first match per document")
		cacheSize = fs.Int("cache-size", jsonpath.DefaultCacheCapacity, "Compiled path cache capacity")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	cfg := &Config{
		Path:      *path,
		Output:    *output,
		FirstOnly: *firstOnly,
		CacheSize: *cacheSize,
		Files:     fs.Args(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Path == "" {
		return ErrNoPath
	}

	switch c.Output {
	case OutputJSON, OutputCompact, OutputYAML:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidOutput, c.Output)
	}

	if c.CacheSize <= 0 {
		return fmt.Errorf("%w, got: %d", ErrInvalidCacheSize, c.CacheSize)
	}

	for _, file := range c.Files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}

	return nil
}

// Usage returns the command usage text.
func Usage() string {
	return `jx - JSON path extraction tool

Usage: jx -path <expression> [options] [file1 file2 ...]

Reads JSON documents from the given files, or from stdin when no files are
given, and prints every node selected by the path expression, one per line.

Options:
  -path EXPR        Path expression to evaluate (required)
  -output FORMAT    Output format: json, compact or yaml (default: json)
  -first            Stop after the first match per document
  -cache-size N     Compiled path cache capacity (default: 32)
  -h, --help        Show this help message

Path grammar:
  $        document root
  .name    object member access
  [3]      array subscript (0-based)
  [*]      array wildcard, selects every element

Examples:
  echo '{"a":[1,2,3]}' | jx -path '$.a[*]'
  jx -path '$.store.book[0].title' books.json
  jx -path '$.users[*].email' -output yaml users.json
  jx -path '$.rows[*].id' -first -output compact dump.json`
}
