package scaffold

import (
	"bytes"
	"fmt"
	"path"
	"text/template"

	scaffoldtmpl "github.com/example/crudgen/internal/templates/scaffold"
)

// Fixed project-relative locations of generated and shared files.
const (
	MigrationsDir  = "migrations"
	ModelsDir      = "models"
	ControllersDir = "controllers"
	ValidationsDir = "validations"
	RoutesDir      = "routes"
	UtilsDir       = "utils"

	AggregatorPath  = "routes/index.js"
	RegistryPath    = "utils/swaggerSchemas.js"
	ModelsIndexPath = "models/index.js"
)

// OutputDirs lists every directory a generation run may write into.
var OutputDirs = []string{MigrationsDir, ModelsDir, ControllersDir, ValidationsDir, RoutesDir, UtilsDir}

// artifactTemplates maps each artifact kind to its template name.
var artifactTemplates = map[ArtifactKind]string{
	ArtifactMigration:  "migration.js",
	ArtifactModel:      "model.js",
	ArtifactController: "controller.js",
	ArtifactValidation: "validation.js",
	ArtifactRoute:      "route.js",
}

// ArtifactPath returns the project-relative target path for an artifact.
// timestamp is only used by the migration path.
func ArtifactPath(kind ArtifactKind, entityName string, timestamp int64) string {
	switch kind {
	case ArtifactMigration:
		return path.Join(MigrationsDir, fmt.Sprintf("%d-create-%s.js", timestamp, entityName))
	case ArtifactModel:
		return path.Join(ModelsDir, entityName+".js")
	case ArtifactController:
		return path.Join(ControllersDir, entityName+".js")
	case ArtifactValidation:
		return path.Join(ValidationsDir, entityName+".js")
	case ArtifactRoute:
		return path.Join(RoutesDir, entityName+"Routes.js")
	default:
		return ""
	}
}

// MigrationGlob matches any migration previously generated for the entity.
func MigrationGlob(entityName string) string {
	return path.Join(MigrationsDir, "*-create-"+entityName+".js")
}

// ArtifactPaths returns the five target paths in artifact order.
func ArtifactPaths(entityName string, timestamp int64) []string {
	paths := make([]string, len(ArtifactKinds))
	for i, kind := range ArtifactKinds {
		paths[i] = ArtifactPath(kind, entityName, timestamp)
	}
	return paths
}

// Generator generates code from templates.
type Generator struct {
	funcs template.FuncMap
	opts  GenerateOptions
}

// NewGenerator creates a new Generator.
func NewGenerator(opts GenerateOptions) *Generator {
	funcs := scaffoldtmpl.TemplateFuncs()
	funcs["quote"] = quoteJS
	funcs["migrationType"] = func(t StorageType) string { return Project(t, TargetMigration) }
	funcs["modelType"] = func(t StorageType) string { return Project(t, TargetModel) }
	funcs["docType"] = func(t StorageType) string { return Project(t, TargetDocumentation) }
	funcs["validationRule"] = func(t StorageType) string { return Project(t, TargetValidationRule) }

	return &Generator{
		funcs: funcs,
		opts:  opts,
	}
}

// templateData is the typed context every artifact template renders against.
type templateData struct {
	EntityName      string
	SchemaName      string
	Fields          []FieldDefinition
	TypedValidation bool
}

// GenerateEntity renders all five artifacts for an entity.
// Output is a pure function of (schema, timestamp, options).
func (g *Generator) GenerateEntity(schema *EntitySchema, timestamp int64) (*ArtifactSet, error) {
	set := &ArtifactSet{}
	for _, kind := range ArtifactKinds {
		content, err := g.GenerateArtifact(kind, schema)
		if err != nil {
			return nil, err
		}
		set.Artifacts = append(set.Artifacts, Artifact{
			Kind:    kind,
			Path:    ArtifactPath(kind, schema.EntityName, timestamp),
			Content: content,
		})
	}
	return set, nil
}

// GenerateArtifact renders a single artifact.
func (g *Generator) GenerateArtifact(kind ArtifactKind, schema *EntitySchema) (string, error) {
	name, ok := artifactTemplates[kind]
	if !ok {
		return "", fmt.Errorf("unknown artifact kind %q", kind)
	}

	data := templateData{
		EntityName:      schema.EntityName,
		SchemaName:      schema.SchemaName(),
		Fields:          schema.Fields,
		TypedValidation: g.opts.TypedValidation,
	}

	content, err := g.renderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return content, nil
}

// GenerateModelsIndex returns the Sequelize models loader.
func (g *Generator) GenerateModelsIndex() (string, error) {
	return scaffoldtmpl.GetModelsIndexTemplate()
}

// renderTemplate renders an artifact template.
func (g *Generator) renderTemplate(name string, data templateData) (string, error) {
	tmplContent, err := scaffoldtmpl.GetArtifactTemplate(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(g.funcs).Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
