package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/crudgen/internal/scaffold"
)

func bookSchema() *scaffold.EntitySchema {
	return &scaffold.EntitySchema{
		EntityName: "book",
		Fields: []scaffold.FieldDefinition{
			{Name: "title", Type: scaffold.StorageString},
			{Name: "pages", Type: scaffold.StorageInteger},
		},
	}
}

func authorSchema() *scaffold.EntitySchema {
	return &scaffold.EntitySchema{
		EntityName: "author",
		Fields: []scaffold.FieldDefinition{
			{Name: "name", Type: scaffold.StorageString},
			{Name: "rating", Type: scaffold.StorageFloat},
			{Name: "born", Type: scaffold.StorageDate},
		},
	}
}

const bookRegistry = "const globalSchemas = {\n" +
	"  Book: {\n" +
	"    type: 'object',\n" +
	"    required: ['title', 'pages'],\n" +
	"    properties: {\n" +
	"      title: { type: 'string' },\n" +
	"      pages: { type: 'integer' }\n" +
	"    },\n" +
	"  },\n" +
	"};\n" +
	"\n" +
	"module.exports = { globalSchemas };\n"

func TestMergeRegistry_AbsentFile(t *testing.T) {
	merge, err := MergeRegistry(RegistryState{}, bookSchema(), RegistryAccumulate)
	if err != nil {
		t.Fatalf("MergeRegistry() error = %v", err)
	}
	if merge.Content != bookRegistry {
		t.Errorf("Content =\n%s\nwant\n%s", merge.Content, bookRegistry)
	}
	if len(merge.Entries) != 1 || merge.Entries[0] != "Book" {
		t.Errorf("Entries = %v, want [Book]", merge.Entries)
	}
}

func TestMergeRegistry_AccumulatesEntries(t *testing.T) {
	merge, err := MergeRegistry(RegistryState{Content: bookRegistry, Exists: true}, authorSchema(), RegistryAccumulate)
	if err != nil {
		t.Fatalf("MergeRegistry() error = %v", err)
	}

	if got := strings.Join(merge.Entries, ","); got != "Book,Author" {
		t.Errorf("Entries = %s, want Book,Author", got)
	}
	if merge.Replaced {
		t.Error("Replaced = true for a new entry")
	}
	if !strings.Contains(merge.Content, RenderRegistryValue(bookSchema())) {
		t.Error("Book entry not kept verbatim")
	}
	if !strings.Contains(merge.Content, "      rating: { type: 'number' },\n      born: { type: 'string' }\n") {
		t.Errorf("Author properties missing:\n%s", merge.Content)
	}
	if !strings.HasSuffix(merge.Content, "};\n\nmodule.exports = { globalSchemas };\n") {
		t.Errorf("export not kept:\n%s", merge.Content)
	}
}

func TestMergeRegistry_ReplacesEntryInPlace(t *testing.T) {
	withBoth, err := MergeRegistry(RegistryState{Content: bookRegistry, Exists: true}, authorSchema(), RegistryAccumulate)
	if err != nil {
		t.Fatalf("MergeRegistry() error = %v", err)
	}

	changed := bookSchema()
	changed.Fields = append(changed.Fields, scaffold.FieldDefinition{Name: "isbn", Type: scaffold.StorageString})

	merge, err := MergeRegistry(RegistryState{Content: withBoth.Content, Exists: true}, changed, RegistryAccumulate)
	if err != nil {
		t.Fatalf("MergeRegistry() error = %v", err)
	}
	if !merge.Replaced {
		t.Error("Replaced = false, want true")
	}
	if got := strings.Join(merge.Entries, ","); got != "Book,Author" {
		t.Errorf("Entries = %s, want Book,Author", got)
	}
	if !strings.Contains(merge.Content, "required: ['title', 'pages', 'isbn']") {
		t.Errorf("Book entry not replaced:\n%s", merge.Content)
	}
}

func TestMergeRegistry_Idempotent(t *testing.T) {
	state := RegistryState{Content: bookRegistry, Exists: true}
	first, err := MergeRegistry(state, authorSchema(), RegistryAccumulate)
	if err != nil {
		t.Fatalf("first merge error = %v", err)
	}
	second, err := MergeRegistry(RegistryState{Content: first.Content, Exists: true}, authorSchema(), RegistryAccumulate)
	if err != nil {
		t.Fatalf("second merge error = %v", err)
	}
	if second.Content != first.Content {
		t.Errorf("second merge altered content:\n%s\nwant\n%s", second.Content, first.Content)
	}
}

func TestMergeRegistry_ReplaceMode(t *testing.T) {
	merge, err := MergeRegistry(RegistryState{Content: bookRegistry, Exists: true}, authorSchema(), RegistryReplace)
	if err != nil {
		t.Fatalf("MergeRegistry() error = %v", err)
	}
	if strings.Contains(merge.Content, "Book") {
		t.Errorf("replace mode kept other entries:\n%s", merge.Content)
	}
	if len(merge.Entries) != 1 || merge.Entries[0] != "Author" {
		t.Errorf("Entries = %v, want [Author]", merge.Entries)
	}
}

func TestMergeRegistry_KeepsSurroundingText(t *testing.T) {
	content := "// shared schemas\n" +
		"export const globalSchemas = {\n" +
		"  'Legacy-Item': { description: 'has a } brace', type: 'object' },\n" +
		"  Note: {\n" +
		"    type: 'object', // inline } comment\n" +
		"  }\n" +
		"};\n"

	merge, err := MergeRegistry(RegistryState{Content: content, Exists: true}, bookSchema(), RegistryAccumulate)
	if err != nil {
		t.Fatalf("MergeRegistry() error = %v", err)
	}

	if !strings.HasPrefix(merge.Content, "// shared schemas\nexport const globalSchemas = {\n") {
		t.Errorf("prefix not kept:\n%s", merge.Content)
	}
	if !strings.HasSuffix(merge.Content, "};\n") {
		t.Errorf("suffix not kept:\n%s", merge.Content)
	}
	if !strings.Contains(merge.Content, "{ description: 'has a } brace', type: 'object' }") {
		t.Errorf("quoted entry not kept verbatim:\n%s", merge.Content)
	}
	if got := strings.Join(merge.Entries, ","); got != "Legacy-Item,Note,Book" {
		t.Errorf("Entries = %s, want Legacy-Item,Note,Book", got)
	}
}

func TestMergeRegistry_EmptyObject(t *testing.T) {
	content := "const globalSchemas = {};\n\nmodule.exports = { globalSchemas };\n"

	merge, err := MergeRegistry(RegistryState{Content: content, Exists: true}, bookSchema(), RegistryAccumulate)
	if err != nil {
		t.Fatalf("MergeRegistry() error = %v", err)
	}
	if merge.Content != bookRegistry {
		t.Errorf("Content =\n%s\nwant\n%s", merge.Content, bookRegistry)
	}
}

func TestMergeRegistry_Unparseable(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no declaration", "module.exports = {};\n"},
		{"unbalanced braces", "const globalSchemas = {\n  Book: {\n"},
		{"unterminated string", "const globalSchemas = {\n  Book: { type: 'object },\n};\n"},
		{"comment between entries", "const globalSchemas = {\n  // Book\n  Book: {},\n};\n"},
		{"missing colon", "const globalSchemas = {\n  Book {},\n};\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeRegistry(RegistryState{Content: tt.content, Exists: true}, bookSchema(), RegistryAccumulate)
			if !errors.Is(err, ErrRegistryUnparseable) {
				t.Errorf("error = %v, want ErrRegistryUnparseable", err)
			}
		})
	}
}

func TestMergeRegistry_ReplaceModeIgnoresUnparseable(t *testing.T) {
	merge, err := MergeRegistry(RegistryState{Content: "garbage {", Exists: true}, bookSchema(), RegistryReplace)
	if err != nil {
		t.Fatalf("MergeRegistry() error = %v", err)
	}
	if merge.Content != bookRegistry {
		t.Errorf("Content =\n%s\nwant\n%s", merge.Content, bookRegistry)
	}
}

func TestParseRegistryMode(t *testing.T) {
	tests := []struct {
		input   string
		want    RegistryMode
		wantErr bool
	}{
		{"", RegistryAccumulate, false},
		{"accumulate", RegistryAccumulate, false},
		{"REPLACE", RegistryReplace, false},
		{"merge", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRegistryMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRegistryMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRegistryMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
