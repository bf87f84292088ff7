package scaffold

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidIdentifier is returned for entity or field names that are not valid JS identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrDuplicateField is returned when a field name repeats or shadows a generated column.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrEmptySchema is returned when an entity has no fields.
	ErrEmptySchema = errors.New("entity has no fields")
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// generatedColumns are emitted by every migration and cannot be declared as fields.
var generatedColumns = []string{"id", "createdAt", "updatedAt"}

// ParseFields parses the --fields DSL into a slice of FieldDefinition.
// Format: "title:string,pages:integer,published:bool"
// Unknown type names resolve to DefaultStorageType and are reported as warnings.
func ParseFields(fieldsStr string) ([]FieldDefinition, []string, error) {
	if strings.TrimSpace(fieldsStr) == "" {
		return nil, nil, nil
	}

	var (
		fields   []FieldDefinition
		warnings []string
	)
	for _, part := range strings.Split(fieldsStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, known, err := parseField(part)
		if err != nil {
			return nil, nil, err
		}
		if !known {
			warnings = append(warnings, fmt.Sprintf("unknown type in %q, using %s", part, DefaultStorageType))
		}
		fields = append(fields, field)
	}

	return fields, warnings, nil
}

// parseField parses a single field specification.
// Format: "name:type"
func parseField(spec string) (FieldDefinition, bool, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return FieldDefinition{}, false, fmt.Errorf("invalid field spec %q: expected 'name:type'", spec)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return FieldDefinition{}, false, fmt.Errorf("invalid field spec %q: empty field name", spec)
	}

	t, known := ParseStorageType(parts[1])
	if !known {
		t = DefaultStorageType
	}
	return FieldDefinition{Name: name, Type: t}, known, nil
}

// IsValidIdentifier reports whether s can be used as a JavaScript identifier.
func IsValidIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// BuildEntitySchema validates inputs and builds an EntitySchema.
// Rules:
// - entity and field names must be identifiers
// - at least one field
// - field names are unique and do not shadow id/createdAt/updatedAt
func BuildEntitySchema(name string, fields []FieldDefinition) (*EntitySchema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("entity name is required")
	}
	if !IsValidIdentifier(name) {
		return nil, fmt.Errorf("%w: entity name %q", ErrInvalidIdentifier, name)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySchema, name)
	}

	seen := make(map[string]bool, len(fields)+len(generatedColumns))
	for _, col := range generatedColumns {
		seen[col] = true
	}

	out := make([]FieldDefinition, 0, len(fields))
	for _, f := range fields {
		if !IsValidIdentifier(f.Name) {
			return nil, fmt.Errorf("%w: field name %q", ErrInvalidIdentifier, f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = true

		if !f.Type.Valid() {
			f.Type = DefaultStorageType
		}
		out = append(out, f)
	}

	return &EntitySchema{
		EntityName: name,
		Fields:     out,
	}, nil
}
