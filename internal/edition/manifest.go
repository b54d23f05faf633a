package edition

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed manifest_schema.json
var manifestSchemaJSON string

// ManifestFilename is the package metadata file probed inside a plugin
// directory.
const ManifestFilename = "package.json"

// compiled once at init; the schema is embedded and must be valid.
var manifestSchema = mustCompileManifestSchema()

func mustCompileManifestSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	const url = "https://plugintester.schemas.local/manifest.schema.json"
	if err := c.AddResource(url, strings.NewReader(manifestSchemaJSON)); err != nil {
		panic(fmt.Sprintf("manifest schema load failed: %v", err))
	}
	schema, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("manifest schema compile failed: %v", err))
	}
	return schema
}

// Edition describes one candidate source variant of a package.
type Edition struct {
	// Description is free text for humans; selection never reads it.
	Description string `json:"description,omitempty"`

	// Directory is the variant's path relative to the package root.
	Directory string `json:"directory"`

	// Entry is the entry point relative to Directory. Its extension, if
	// present, is stripped before probing and re-derived by the resolver.
	Entry string `json:"entry"`

	// Engines maps a runtime capability name to the version range the
	// variant requires, e.g. {"node": ">=10"}.
	Engines map[string]string `json:"engines,omitempty"`
}

// Manifest is the parsed package metadata relevant to edition selection.
// Parsed once at harness start and immutable thereafter.
type Manifest struct {
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Main     string    `json:"main,omitempty"`
	Editions []Edition `json:"editions,omitempty"`

	// Dir is the package root the manifest was loaded from.
	// Not part of the wire format.
	Dir string `json:"-"`

	// Path is the manifest file location, for diagnostics.
	Path string `json:"-"`
}

// LoadManifest reads and validates the package manifest inside dir.
//
// Structural validation runs against an embedded JSON Schema before decoding,
// so shape problems (an edition entry that is not an object, an engines value
// that is not a string) surface as a ManifestError with the schema detail
// rather than as a half-populated struct.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFilename)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	// Schema validation wants the generic decoded form.
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, &ManifestError{Path: path, Message: "invalid JSON", Err: err}
	}
	if err := manifestSchema.Validate(generic); err != nil {
		return nil, &ManifestError{Path: path, Message: "schema violation", Err: err}
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &ManifestError{Path: path, Message: "decode failed", Err: err}
	}
	m.Dir = dir
	m.Path = path
	return &m, nil
}
