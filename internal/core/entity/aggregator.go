package entity

import (
	"fmt"
	"regexp"
	"strings"
)

// prologueRe anchors import insertion: the router construction lines.
var prologueRe = regexp.MustCompile(`const express = require\('express'\);\s*const router = express\.Router\(\);`)

// epilogueRe anchors mount insertion: the module export.
var epilogueRe = regexp.MustCompile(`module\.exports = router;`)

const (
	aggregatorPrologue = "const express = require('express');\nconst router = express.Router();\n"
	aggregatorEpilogue = "module.exports = router;\n"
)

// AggregatorState is the current content of the route aggregator file.
type AggregatorState struct {
	Content string
	Exists  bool
}

// AggregatorPatch is the result of registering an entity in the aggregator.
type AggregatorPatch struct {
	Content     string
	Created     bool // file did not exist
	Changed     bool // content differs from the input state
	ImportAdded bool
	MountAdded  bool
	Warnings    []string
}

// ImportLine returns the require statement for an entity's route module.
func ImportLine(entityName string) string {
	return fmt.Sprintf("const %sRoutes = require('./%sRoutes');", entityName, entityName)
}

// MountLine returns the router.use statement for an entity's route module.
func MountLine(entityName string) string {
	return fmt.Sprintf("router.use('/%s', %sRoutes);", entityName, entityName)
}

// PatchAggregator registers entityName in the aggregator.
// Absent file: a fresh aggregator with prologue, import, mount and epilogue.
// Present file: the import goes right after the prologue anchor and the mount right
// before the epilogue anchor, each only if its exact line is not already a substring.
// Applying the patch to its own output is a no-op.
func PatchAggregator(state AggregatorState, entityName string) AggregatorPatch {
	importLine := ImportLine(entityName)
	mountLine := MountLine(entityName)

	if !state.Exists {
		var b strings.Builder
		b.WriteString(aggregatorPrologue)
		b.WriteString("\n")
		b.WriteString(importLine + "\n")
		b.WriteString(mountLine + "\n")
		b.WriteString("\n")
		b.WriteString(aggregatorEpilogue)
		return AggregatorPatch{
			Content:     b.String(),
			Created:     true,
			Changed:     true,
			ImportAdded: true,
			MountAdded:  true,
		}
	}

	patch := AggregatorPatch{Content: state.Content}

	if !strings.Contains(patch.Content, importLine) {
		if loc := prologueRe.FindStringIndex(patch.Content); loc != nil {
			patch.Content = patch.Content[:loc[1]] + "\n" + importLine + patch.Content[loc[1]:]
		} else {
			patch.Content = importLine + "\n" + patch.Content
			patch.Warnings = append(patch.Warnings, "router construction not found in aggregator; import added at top of file")
		}
		patch.ImportAdded = true
	}

	if !strings.Contains(patch.Content, mountLine) {
		if loc := epilogueRe.FindStringIndex(patch.Content); loc != nil {
			patch.Content = patch.Content[:loc[0]] + mountLine + "\n" + patch.Content[loc[0]:]
		} else {
			if patch.Content != "" && !strings.HasSuffix(patch.Content, "\n") {
				patch.Content += "\n"
			}
			patch.Content += mountLine + "\n"
			patch.Warnings = append(patch.Warnings, "module export not found in aggregator; mount added at end of file")
		}
		patch.MountAdded = true
	}

	patch.Changed = patch.ImportAdded || patch.MountAdded
	return patch
}
