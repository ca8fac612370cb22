// Package run wires the extraction engine into the jx command line tool.
package run

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/pretty"
	"github.com/valyala/fastjson"

	"github.com/BlueStalker/velox/internal/config"
	"github.com/BlueStalker/velox/internal/exit"
	"github.com/BlueStalker/velox/internal/extractor"
	"github.com/BlueStalker/velox/internal/jsonpath"
)

// Runner evaluates one path expression against a sequence of documents.
type Runner struct {
	cfg       *config.Config
	extractor *extractor.Extractor
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

// New builds a Runner for cfg. The path expression is compiled eagerly so a
// malformed path surfaces as a usage error before any document is read.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	cache, err := jsonpath.NewCache(cfg.CacheSize)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}
	if _, err := cache.GetOrCompile(cfg.Path); err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}

	return &Runner{
		cfg:       cfg,
		extractor: extractor.New(cache),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}, nil
}

// Run processes every input and returns the process exit code. A document
// that fails to parse is reported and the remaining inputs still run.
func (r *Runner) Run() int {
	code := exit.CodeOK

	if len(r.cfg.Files) == 0 {
		if err := r.processStdin(); err != nil {
			fmt.Fprintf(r.stderr, "jx: stdin: %v\n", err)
			code = exit.CodeParse
		}
		return code
	}

	for _, file := range r.cfg.Files {
		if err := r.processFile(file); err != nil {
			fmt.Fprintf(r.stderr, "jx: %s: %v\n", file, err)
			code = exit.CodeParse
		}
	}

	return code
}

func (r *Runner) processStdin() error {
	doc, err := io.ReadAll(r.stdin)
	if err != nil {
		return err
	}
	return r.process(doc)
}

func (r *Runner) processFile(name string) error {
	doc, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return r.process(doc)
}

func (r *Runner) process(doc []byte) error {
	return r.extractor.Extract(doc, r.cfg.Path, func(v *fastjson.Value) error {
		if err := r.print(v); err != nil {
			return err
		}
		if r.cfg.FirstOnly {
			return extractor.ErrStop
		}
		return nil
	})
}

func (r *Runner) print(v *fastjson.Value) error {
	raw := v.MarshalTo(nil)

	switch r.cfg.Output {
	case config.OutputCompact:
		_, err := fmt.Fprintf(r.stdout, "%s\n", pretty.Ugly(raw))
		return err

	case config.OutputYAML:
		rendered, err := yaml.JSONToYAML(raw)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.stdout, "---\n%s", rendered)
		return err

	default: // config.OutputJSON, pretty.Pretty output is newline terminated
		_, err := r.stdout.Write(pretty.Pretty(raw))
		return err
	}
}
