// Package scaffold provides code generation for CRUD entities.
package scaffold

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EntitySchema contains all information needed to generate an entity.
// It is built once per invocation and treated as read-only afterwards.
type EntitySchema struct {
	EntityName string            // as entered: "book"
	Fields     []FieldDefinition // declaration order is emission order
}

// FieldDefinition represents a single column of an entity.
type FieldDefinition struct {
	Name string      // "title"
	Type StorageType // STRING, INTEGER, ...
}

// SchemaName returns the Capitalized entity name used for exported symbols and doc tags.
func (s EntitySchema) SchemaName() string {
	return Capitalize(s.EntityName)
}

// FieldNames returns field names in declaration order.
func (s EntitySchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// ArtifactKind identifies one of the five generated files.
type ArtifactKind string

const (
	ArtifactMigration  ArtifactKind = "migration"
	ArtifactModel      ArtifactKind = "model"
	ArtifactController ArtifactKind = "controller"
	ArtifactValidation ArtifactKind = "validation"
	ArtifactRoute      ArtifactKind = "route"
)

// ArtifactKinds lists the artifacts in generation (and guard) order.
var ArtifactKinds = []ArtifactKind{
	ArtifactMigration,
	ArtifactModel,
	ArtifactController,
	ArtifactValidation,
	ArtifactRoute,
}

// Artifact is one generated text together with its target path.
type Artifact struct {
	Kind    ArtifactKind
	Path    string // relative to project root
	Content string
}

// ArtifactSet holds the five artifacts for one entity, in ArtifactKinds order.
type ArtifactSet struct {
	Artifacts []Artifact
}

// Paths returns the target paths in artifact order.
func (s ArtifactSet) Paths() []string {
	paths := make([]string, len(s.Artifacts))
	for i, a := range s.Artifacts {
		paths[i] = a.Path
	}
	return paths
}

// Get returns the artifact of the given kind.
func (s ArtifactSet) Get(kind ArtifactKind) (Artifact, bool) {
	for _, a := range s.Artifacts {
		if a.Kind == kind {
			return a, true
		}
	}
	return Artifact{}, false
}

// GenerateOptions tunes artifact rendering.
type GenerateOptions struct {
	// TypedValidation renders per-type yup rules instead of yup.string() for every field.
	TypedValidation bool
}

// Capitalize returns s with its first rune upper-cased and the rest untouched.
// "book" -> "Book", "bookItem" -> "BookItem".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// quoteJS renders s as a single-quoted JavaScript string literal.
func quoteJS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
