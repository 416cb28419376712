// Command legit is the §6 CLI surface: render a liquid template against an
// optional JSON or YAML context document.
//
//	legit --input PATH [--output PATH] [--context PATH]
//
// With no --output, the rendered template is written to stdout. With no
// --context, the template renders against an empty root object. Exit code
// 0 on success; on failure, the error is printed to stderr and the
// process exits non-zero, per §6's "informative" CLI contract.
//
// Grounded on the teacher's `cmd`-less CLI gap filled in from the rest of
// the pack's `cmd/<binary>/main.go` convention (flag-parse, read input,
// call into the library, write output), using github.com/pkg/errors for
// the same I/O-wrapping style partials/ already establishes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/codingersid/liquidgo/engine"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("legit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "", "path to the liquid template to render (required)")
	output := fs.String("output", "", "path to write rendered output to (default: stdout)")
	context := fs.String("context", "", "path to a JSON or YAML context document")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return errors.New("legit: --input is required")
	}

	src, err := os.ReadFile(*input)
	if err != nil {
		return errors.Wrapf(err, "legit: reading template %q", *input)
	}

	data, err := loadContext(*context)
	if err != nil {
		return err
	}

	eng := engine.New()
	out, err := eng.ParseString(string(src), data)
	if err != nil {
		return errors.Wrapf(err, "legit: rendering %q", *input)
	}

	if *output == "" {
		_, err = fmt.Fprint(stdout, out)
		return err
	}
	if err := os.WriteFile(*output, []byte(out), 0o644); err != nil {
		return errors.Wrapf(err, "legit: writing output %q", *output)
	}
	return nil
}

// loadContext reads path (if non-empty) and parses it as JSON or YAML,
// chosen by extension when recognized and by best-effort JSON-then-YAML
// fallback otherwise. An empty path yields an empty context, matching
// §6's "optional --context" contract.
func loadContext(path string) (interface{}, error) {
	if path == "" {
		return map[string]interface{}{}, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "legit: reading context %q", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(content, path)
	case ".yaml", ".yml":
		return decodeYAML(content, path)
	}

	if v, err := decodeJSON(content, path); err == nil {
		return v, nil
	}
	return decodeYAML(content, path)
}

func decodeJSON(content []byte, path string) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrapf(err, "legit: parsing context %q as JSON", path)
	}
	return v, nil
}

func decodeYAML(content []byte, path string) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrapf(err, "legit: parsing context %q as YAML", path)
	}
	return v, nil
}
