// Package validate checks request payloads against embedded JSON schemas
// before they reach the domain logic.
package validate

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator holds compiled schemas keyed by name (the schema filename without
// extension).
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles all embedded schemas. Compilation failures are startup errors;
// a service with a broken schema should not come up.
func New() (*Validator, error) {
	v := &Validator{schemas: make(map[string]*jsonschema.Schema)}

	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := fs.ReadFile(schemaFS, path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		v.schemas[strings.TrimSuffix(e.Name(), ".json")] = rs
	}

	return v, nil
}

// Validate checks payload against the named schema and returns a descriptive
// error for the first violation.
func (v *Validator) Validate(ctx context.Context, name string, payload []byte) error {
	rs, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	keyErrs, err := rs.ValidateBytes(ctx, payload)
	if err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	if len(keyErrs) > 0 {
		ke := keyErrs[0]
		return fmt.Errorf("%s: %s", ke.PropertyPath, ke.Message)
	}

	return nil
}
