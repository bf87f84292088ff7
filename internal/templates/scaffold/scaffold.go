// Package scaffold provides templates for code generation.
package scaffold

import (
	"embed"
	"text/template"
)

//go:embed artifact/*.tmpl bootstrap/*.tmpl definition/*.json
var scaffoldTemplates embed.FS

// GetArtifactTemplate returns the content of an artifact template, e.g. "migration.js".
func GetArtifactTemplate(name string) (string, error) {
	content, err := scaffoldTemplates.ReadFile("artifact/" + name + ".tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// GetModelsIndexTemplate returns the Sequelize models/index.js loader.
func GetModelsIndexTemplate() (string, error) {
	content, err := scaffoldTemplates.ReadFile("bootstrap/models_index.js.tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// GetDefinitionSchema returns the JSON Schema for entity definition files.
func GetDefinitionSchema() ([]byte, error) {
	return scaffoldTemplates.ReadFile("definition/entity.schema.json")
}

// TemplateFuncs returns the generic function map for scaffold templates.
// Domain-specific projections are added by the generator.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"last": func(i, n int) bool { return i == n-1 },
	}
}
