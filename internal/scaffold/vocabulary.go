package scaffold

import (
	"fmt"
	"strings"
)

// StorageType is the abstract column type that drives every per-artifact projection.
type StorageType string

const (
	StorageString  StorageType = "STRING"
	StorageInteger StorageType = "INTEGER"
	StorageBoolean StorageType = "BOOLEAN"
	StorageDate    StorageType = "DATE"
	StorageText    StorageType = "TEXT"
	StorageFloat   StorageType = "FLOAT"
)

// DefaultStorageType is used when a type name cannot be resolved.
const DefaultStorageType = StorageString

// StorageTypes lists the closed set of storage types.
var StorageTypes = []StorageType{
	StorageString,
	StorageInteger,
	StorageBoolean,
	StorageDate,
	StorageText,
	StorageFloat,
}

// Target selects which artifact a storage type is projected into.
type Target int

const (
	TargetMigration Target = iota
	TargetModel
	TargetDocumentation
	TargetValidationRule
)

func (t Target) String() string {
	switch t {
	case TargetMigration:
		return "migration"
	case TargetModel:
		return "model"
	case TargetDocumentation:
		return "documentation"
	case TargetValidationRule:
		return "validation"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// Targets lists every projection target.
var Targets = []Target{TargetMigration, TargetModel, TargetDocumentation, TargetValidationRule}

// documentationTypes maps storage types to OpenAPI primitive types.
var documentationTypes = map[StorageType]string{
	StorageString:  "string",
	StorageInteger: "integer",
	StorageBoolean: "boolean",
	StorageDate:    "string",
	StorageText:    "string",
	StorageFloat:   "number",
}

// validationRules maps storage types to yup rule chains (without .required()).
var validationRules = map[StorageType]string{
	StorageString:  "yup.string()",
	StorageInteger: "yup.number().integer()",
	StorageBoolean: "yup.boolean()",
	StorageDate:    "yup.date()",
	StorageText:    "yup.string()",
	StorageFloat:   "yup.number()",
}

// typeAliases accepts friendlier DSL spellings. Keys are lower-case.
var typeAliases = map[string]StorageType{
	"string":   StorageString,
	"str":      StorageString,
	"integer":  StorageInteger,
	"int":      StorageInteger,
	"boolean":  StorageBoolean,
	"bool":     StorageBoolean,
	"date":     StorageDate,
	"datetime": StorageDate,
	"time":     StorageDate,
	"text":     StorageText,
	"float":    StorageFloat,
	"number":   StorageFloat,
	"double":   StorageFloat,
}

// Valid reports whether t is a member of the closed set.
func (t StorageType) Valid() bool {
	_, ok := documentationTypes[t]
	return ok
}

// ParseStorageType resolves a type name (case-insensitive, aliases allowed).
// ok is false when the name is unknown.
func ParseStorageType(name string) (StorageType, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// ResolveStorageType resolves a type name, falling back to DefaultStorageType.
func ResolveStorageType(name string) StorageType {
	if t, ok := ParseStorageType(name); ok {
		return t
	}
	return DefaultStorageType
}

// Project returns the token representing t in the given target artifact.
// Out-of-enum values are projected as DefaultStorageType so generation never fails.
func Project(t StorageType, target Target) string {
	if !t.Valid() {
		t = DefaultStorageType
	}
	switch target {
	case TargetMigration:
		return "Sequelize." + string(t)
	case TargetModel:
		return "DataTypes." + string(t)
	case TargetDocumentation:
		return documentationTypes[t]
	case TargetValidationRule:
		return validationRules[t]
	default:
		return string(t)
	}
}
