package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/example/crudgen/internal/scaffold"
)

// ErrRegistryUnparseable is returned when an existing registry cannot be merged.
var ErrRegistryUnparseable = errors.New("schema registry cannot be parsed")

// RegistryMode selects how the schema registry is rewritten.
type RegistryMode string

const (
	// RegistryAccumulate keeps entries of other entities and replaces or appends this one.
	RegistryAccumulate RegistryMode = "accumulate"
	// RegistryReplace overwrites the registry with this entity's entry only.
	RegistryReplace RegistryMode = "replace"
)

// ParseRegistryMode validates a mode name. Empty selects RegistryAccumulate.
func ParseRegistryMode(s string) (RegistryMode, error) {
	switch RegistryMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", RegistryAccumulate:
		return RegistryAccumulate, nil
	case RegistryReplace:
		return RegistryReplace, nil
	default:
		return "", fmt.Errorf("invalid registry mode %q (valid: accumulate, replace)", s)
	}
}

// RegistryState is the current content of the schema registry file.
type RegistryState struct {
	Content string
	Exists  bool
}

// RegistryMerge is the rewritten registry.
type RegistryMerge struct {
	Content  string
	Entries  []string // schema names in file order
	Replaced bool     // an entry for this schema existed before
}

// registryEntry is one top-level key of the globalSchemas object.
type registryEntry struct {
	Key    string
	RawKey string // key as written, quotes included
	Value  string // source text, verbatim
}

var registryDeclRe = regexp.MustCompile(`globalSchemas\s*=\s*\{`)

// MergeRegistry rewrites the registry so that it contains schema's entry.
// In accumulate mode the text around the globalSchemas object and the values of
// other entries are kept verbatim.
func MergeRegistry(state RegistryState, schema *scaffold.EntitySchema, mode RegistryMode) (RegistryMerge, error) {
	name := schema.SchemaName()
	entry := registryEntry{Key: name, RawKey: name, Value: RenderRegistryValue(schema)}

	if mode == RegistryReplace || !state.Exists || strings.TrimSpace(state.Content) == "" {
		return RegistryMerge{
			Content: renderRegistryFile([]registryEntry{entry}),
			Entries: []string{name},
		}, nil
	}

	loc := registryDeclRe.FindStringIndex(state.Content)
	if loc == nil {
		return RegistryMerge{}, fmt.Errorf("%w: no globalSchemas object found", ErrRegistryUnparseable)
	}
	open := loc[1] - 1
	closing, err := matchBrace(state.Content, open)
	if err != nil {
		return RegistryMerge{}, err
	}
	entries, err := parseRegistryEntries(state.Content[open+1 : closing])
	if err != nil {
		return RegistryMerge{}, err
	}

	merge := RegistryMerge{}
	for i, e := range entries {
		if e.Key == name {
			entries[i] = entry
			merge.Replaced = true
		}
	}
	if !merge.Replaced {
		entries = append(entries, entry)
	}
	for _, e := range entries {
		merge.Entries = append(merge.Entries, e.Key)
	}

	merge.Content = state.Content[:open] + renderRegistryObject(entries) + state.Content[closing+1:]
	return merge, nil
}

// RenderRegistryValue renders the schema object literal for one entity.
func RenderRegistryValue(schema *scaffold.EntitySchema) string {
	quoted := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		quoted[i] = "'" + f.Name + "'"
	}

	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString("    type: 'object',\n")
	fmt.Fprintf(&b, "    required: [%s],\n", strings.Join(quoted, ", "))
	b.WriteString("    properties: {\n")
	for i, f := range schema.Fields {
		fmt.Fprintf(&b, "      %s: { type: '%s' }", f.Name, scaffold.Project(f.Type, scaffold.TargetDocumentation))
		if i < len(schema.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("    },\n")
	b.WriteString("  }")
	return b.String()
}

func renderRegistryFile(entries []registryEntry) string {
	return "const globalSchemas = " + renderRegistryObject(entries) + ";\n\nmodule.exports = { globalSchemas };\n"
}

func renderRegistryObject(entries []registryEntry) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "  %s: %s,\n", e.RawKey, e.Value)
	}
	b.WriteString("}")
	return b.String()
}

// parseRegistryEntries splits the body of the globalSchemas object into entries.
func parseRegistryEntries(body string) ([]registryEntry, error) {
	var entries []registryEntry
	i := 0
	for {
		i = skipSeparators(body, i)
		if i >= len(body) {
			return entries, nil
		}
		if strings.HasPrefix(body[i:], "//") || strings.HasPrefix(body[i:], "/*") {
			return nil, fmt.Errorf("%w: comments between entries are not supported", ErrRegistryUnparseable)
		}

		key, next, err := readKey(body, i)
		if err != nil {
			return nil, err
		}
		rawKey := body[i:next]
		i = skipSpace(body, next)
		if i >= len(body) || body[i] != ':' {
			return nil, fmt.Errorf("%w: expected ':' after %q", ErrRegistryUnparseable, key)
		}
		i = skipSpace(body, i+1)

		end, err := valueEnd(body, i)
		if err != nil {
			return nil, err
		}
		value := strings.TrimRight(body[i:end], " \t\r\n")
		if value == "" {
			return nil, fmt.Errorf("%w: empty value for %q", ErrRegistryUnparseable, key)
		}
		entries = append(entries, registryEntry{Key: key, RawKey: rawKey, Value: value})
		i = end
	}
}

func readKey(s string, i int) (string, int, error) {
	if s[i] == '\'' || s[i] == '"' {
		end, err := skipString(s, i)
		if err != nil {
			return "", 0, err
		}
		return s[i+1 : end-1], end, nil
	}
	start := i
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	if i == start {
		return "", 0, fmt.Errorf("%w: unexpected %q", ErrRegistryUnparseable, s[start])
	}
	return s[start:i], i, nil
}

// valueEnd returns the index just past a value starting at i: the next
// top-level comma or the end of s.
func valueEnd(s string, i int) (int, error) {
	depth := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == '\'' || c == '"' || c == '`':
			end, err := skipString(s, i)
			if err != nil {
				return 0, err
			}
			i = end
			continue
		case strings.HasPrefix(s[i:], "//"), strings.HasPrefix(s[i:], "/*"):
			i = skipComment(s, i)
			continue
		case c == '{' || c == '[' || c == '(':
			depth++
		case c == '}' || c == ']' || c == ')':
			depth--
			if depth < 0 {
				return 0, fmt.Errorf("%w: unbalanced %q", ErrRegistryUnparseable, c)
			}
		case c == ',' && depth == 0:
			return i, nil
		}
		i++
	}
	if depth != 0 {
		return 0, fmt.Errorf("%w: unterminated value", ErrRegistryUnparseable)
	}
	return i, nil
}

// matchBrace returns the index of the brace closing the one at open.
func matchBrace(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); {
		switch c := s[i]; {
		case c == '\'' || c == '"' || c == '`':
			end, err := skipString(s, i)
			if err != nil {
				return 0, err
			}
			i = end
			continue
		case strings.HasPrefix(s[i:], "//"), strings.HasPrefix(s[i:], "/*"):
			i = skipComment(s, i)
			continue
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
		i++
	}
	return 0, fmt.Errorf("%w: unbalanced braces", ErrRegistryUnparseable)
}

// skipString returns the index just past the string literal starting at i.
func skipString(s string, i int) (int, error) {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: unterminated string", ErrRegistryUnparseable)
}

func skipComment(s string, i int) int {
	if strings.HasPrefix(s[i:], "//") {
		if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
			return i + nl + 1
		}
		return len(s)
	}
	if end := strings.Index(s[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 2
	}
	return len(s)
}

func skipSpace(s string, i int) int {
	for i < len(s) && strings.IndexByte(" \t\r\n", s[i]) >= 0 {
		i++
	}
	return i
}

func skipSeparators(s string, i int) int {
	for i < len(s) && strings.IndexByte(" \t\r\n,", s[i]) >= 0 {
		i++
	}
	return i
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
