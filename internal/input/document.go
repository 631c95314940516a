// Package input reads assessment input documents. A document lists the
// variables of one run with their ratings and may carry a title, a
// declared variable count and a format version.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/fmea/internal/fmea"
)

// SupportedMajor is the document format major version this build reads.
const SupportedMajor = "v1"

var (
	ErrEmptyDocument      = errors.New("document is empty")
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrCountMismatch      = errors.New("num_vars does not match the number of variables")
)

// Format is the encoding of an input document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension. Anything that is
// not .json is read as YAML, which also accepts most JSON.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is a parsed input document.
type Document struct {
	Version   string          `json:"version,omitempty" yaml:"version,omitempty"`
	Title     string          `json:"title,omitempty" yaml:"title,omitempty"`
	NumVars   *int            `json:"num_vars,omitempty" yaml:"num_vars,omitempty"`
	Variables []fmea.RawEntry `json:"variables" yaml:"variables"`
}

// Entries returns the raw entries in document order.
func (d *Document) Entries() []fmea.RawEntry {
	out := make([]fmea.RawEntry, len(d.Variables))
	copy(out, d.Variables)
	return out
}

// DocumentError reports a document that could not be read or does not have
// the expected shape.
type DocumentError struct {
	Source string
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid input document: %v", e.Err)
	}
	return fmt.Sprintf("invalid input document %s: %v", e.Source, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// Load reads the document at path. A path of "-" reads YAML from stdin.
func Load(path string) (*Document, error) {
	if path == "-" {
		return Read(os.Stdin, "stdin", FormatYAML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(data, FormatForPath(path))
	if err != nil {
		var docErr *DocumentError
		if errors.As(err, &docErr) {
			docErr.Source = path
		}
		return nil, err
	}
	return doc, nil
}

// Read parses a document from r. source names r in error messages.
func Read(r io.Reader, source string, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		var docErr *DocumentError
		if errors.As(err, &docErr) {
			docErr.Source = source
		}
		return nil, err
	}
	return doc, nil
}

// Parse decodes and checks a document. The returned entries have not been
// through fmea.Validate; name and rating problems are the core's to report.
func Parse(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DocumentError{Err: ErrEmptyDocument}
	}

	raw, err := toJSON(data, format)
	if err != nil {
		return nil, &DocumentError{Err: err}
	}

	if err := validateShape(raw); err != nil {
		return nil, &DocumentError{Err: err}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DocumentError{Err: fmt.Errorf("decode: %w", err)}
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, &DocumentError{Err: err}
	}
	if doc.NumVars != nil && *doc.NumVars != len(doc.Variables) {
		return nil, &DocumentError{Err: fmt.Errorf("%w: num_vars is %d but %d variables were given",
			ErrCountMismatch, *doc.NumVars, len(doc.Variables))}
	}
	if err := fmea.CheckCount(len(doc.Variables)); err != nil {
		return nil, &DocumentError{Err: err}
	}

	return &doc, nil
}

// toJSON normalises a document to JSON so that both formats go through the
// same schema and decoder.
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		if v == nil {
			return nil, ErrEmptyDocument
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("convert YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func validateShape(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// checkVersion accepts an empty version or any semver with the supported
// major. A missing "v" prefix is tolerated.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	canonical := v
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(canonical) != SupportedMajor {
		return fmt.Errorf("%w: %s (this build reads %s)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}
