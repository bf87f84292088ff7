package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	scaffoldtmpl "github.com/example/crudgen/internal/templates/scaffold"
)

const definitionSchemaURL = "https://github.com/example/crudgen/schemas/entity.schema.json"

// Definition is the on-disk form of an entity (JSON or YAML).
type Definition struct {
	Entity string            `json:"entity" yaml:"entity"`
	Fields []DefinitionField `json:"fields" yaml:"fields"`
}

// DefinitionField is one field entry of a Definition.
type DefinitionField struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// LoadResult is a parsed definition file.
type LoadResult struct {
	Entity   string
	Fields   []FieldDefinition
	Warnings []string
}

// LoadDefinitionFile reads an entity definition from a .json, .yaml/.yml or .cue file.
func LoadDefinitionFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSONDefinition(data)
	case ".yaml", ".yml":
		return ParseYAMLDefinition(data)
	case ".cue":
		return ParseCUEDefinition(path, data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q (valid: .json, .yaml, .yml, .cue)", filepath.Ext(path))
	}
}

// ParseJSONDefinition parses and validates a JSON definition.
func ParseJSONDefinition(data []byte) (*LoadResult, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return decodeDefinition(doc)
}

// ParseYAMLDefinition parses and validates a YAML definition.
func ParseYAMLDefinition(data []byte) (*LoadResult, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON-native types.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML structure: %w", err)
	}
	var jsonDoc any
	if err := json.Unmarshal(normalized, &jsonDoc); err != nil {
		return nil, fmt.Errorf("invalid YAML structure: %w", err)
	}
	return decodeDefinition(jsonDoc)
}

// decodeDefinition validates doc against the definition schema and converts it.
func decodeDefinition(doc any) (*LoadResult, error) {
	schema, err := compileDefinitionSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("definition does not match schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}

	result := &LoadResult{Entity: def.Entity}
	for _, f := range def.Fields {
		t, ok := ParseStorageType(f.Type)
		if !ok {
			t = DefaultStorageType
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown type %q for field %s, using %s", f.Type, f.Name, t))
		}
		result.Fields = append(result.Fields, FieldDefinition{Name: f.Name, Type: t})
	}
	return result, nil
}

func compileDefinitionSchema() (*jsonschema.Schema, error) {
	schemaData, err := scaffoldtmpl.GetDefinitionSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to read definition schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(definitionSchemaURL, bytes.NewReader(schemaData)); err != nil {
		return nil, fmt.Errorf("failed to add definition schema: %w", err)
	}
	schema, err := compiler.Compile(definitionSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid definition schema: %w", err)
	}
	return schema, nil
}

// ParseCUEDefinition parses a CUE definition of the form:
//
//	entity: "book"
//	fields: {
//		title: string
//		pages: int
//		body:  string @crudgen(TEXT)
//	}
//
// Field kinds map to storage types; @crudgen(TYPE) overrides the mapping.
func ParseCUEDefinition(filename string, data []byte) (*LoadResult, error) {
	ctx := cuecontext.New()
	val := ctx.CompileBytes(data, cue.Filename(filename))
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("invalid CUE: %w", err)
	}

	entity, err := val.LookupPath(cue.ParsePath("entity")).String()
	if err != nil {
		return nil, fmt.Errorf("CUE definition needs a concrete entity string: %w", err)
	}

	fieldsVal := val.LookupPath(cue.ParsePath("fields"))
	if err := fieldsVal.Err(); err != nil {
		return nil, fmt.Errorf("CUE definition has no fields struct: %w", err)
	}
	iter, err := fieldsVal.Fields(cue.Optional(true))
	if err != nil {
		return nil, fmt.Errorf("CUE fields must be a struct: %w", err)
	}

	result := &LoadResult{Entity: entity}
	for iter.Next() {
		name := strings.TrimSuffix(iter.Selector().String(), "?")
		t, warning := classifyCUEField(iter.Value())
		if warning != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("field %s: %s", name, warning))
		}
		result.Fields = append(result.Fields, FieldDefinition{Name: name, Type: t})
	}
	return result, nil
}

// classifyCUEField maps a CUE field value to a storage type.
func classifyCUEField(val cue.Value) (StorageType, string) {
	if a := val.Attribute("crudgen"); a.Err() == nil {
		name, err := a.String(0)
		if err == nil {
			if t, ok := ParseStorageType(name); ok {
				return t, ""
			}
			return DefaultStorageType, fmt.Sprintf("unknown @crudgen type %q, using %s", name, DefaultStorageType)
		}
	}

	if isCUETimeField(val) {
		return StorageDate, ""
	}

	switch val.IncompleteKind() {
	case cue.StringKind:
		return StorageString, ""
	case cue.IntKind:
		return StorageInteger, ""
	case cue.FloatKind, cue.NumberKind:
		return StorageFloat, ""
	case cue.BoolKind:
		return StorageBoolean, ""
	default:
		return DefaultStorageType, fmt.Sprintf("unsupported kind %s, using %s", val.IncompleteKind(), DefaultStorageType)
	}
}

// isCUETimeField reports whether val references time.Time.
func isCUETimeField(val cue.Value) bool {
	_, path := val.ReferencePath()
	if sels := path.Selectors(); len(sels) > 0 && sels[len(sels)-1].String() == "Time" {
		return true
	}
	op, args := val.Expr()
	if op == cue.SelectorOp && len(args) >= 2 {
		if s, err := args[1].String(); err == nil && s == "Time" {
			return true
		}
	}
	return false
}
