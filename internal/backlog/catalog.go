package backlog

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// catalogFile is the on-disk YAML layout.
type catalogFile struct {
	Items []Item `yaml:"items"`
}

// LoadCatalog reads a YAML catalog file, validates it against the embedded
// CUE schema, and returns its items in file order.
//
// Validation runs before decoding so a malformed catalog fails with the
// schema's message (field, constraint, position) rather than a zero-valued
// item surfacing later.
func LoadCatalog(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	items, err := ParseCatalog(path, data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return items, nil
}

// ParseCatalog validates and decodes catalog bytes. filename is used for
// error positions only.
func ParseCatalog(filename string, data []byte) ([]Item, error) {
	if err := validateCatalog(filename, data); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return file.Items, nil
}

// validateCatalog unifies the YAML document with the embedded schema.
func validateCatalog(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("catalog schema is broken: %w", err)
	}

	doc, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parse catalog YAML: %w", err)
	}
	value := ctx.BuildFile(doc)
	if err := value.Err(); err != nil {
		return fmt.Errorf("build catalog value: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("catalog does not match schema: %s", cueerrors.Details(err, nil))
	}
	return nil
}
