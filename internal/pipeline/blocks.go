package pipeline

import (
	"strings"

	"reqnorm/internal"
	"reqnorm/internal/util"
)

const (
	blockStart = "ID :"
	blockEnd   = "Compliance Comment :"
	// Extraction sometimes drops the first character of the end label
	// at a page boundary.
	blockEndTruncated = "ompliance Comment :"
)

// blockLabels is the ordered label table for the per-block field
// parser. Matching is strictly prefix-based; a label appearing
// mid-sentence never triggers.
var blockLabels = []struct {
	label string
	field string
}{
	{"ID :", "id"},
	{"Object Type :", "type"},
	{"Source :", "source"},
	{"Verification Method :", "verification"},
	{"Compliance :", "compliance"},
	{"Subsystem Allocation :", "allocation"},
	{"Justification & Comments :", "comments"},
	{"Compliance Comment :", "compliance_comment"},
	{"ompliance Comment :", "compliance_comment"},
}

// continuations names, per labeled field, the field that absorbs
// following unlabeled lines. Only the object type (whose narrative
// definition follows on its own lines) and the comments label keep a
// continuation open; every other label closes it.
var continuations = map[string]string{
	"type":     "definition",
	"comments": "comments",
}

// GroupBlocks splits extracted text lines into requirement blocks. A
// block opens on the "ID :" sentinel and closes on the compliance
// comment sentinel (truncated variant included). Lines outside a block
// are dropped. A block still open at end of input is flushed rather
// than discarded, so a document whose last requirement lacks the end
// sentinel keeps that requirement.
func GroupBlocks(lines []string) [][]string {
	blocks := [][]string{}
	var current []string
	recording := false

	for _, line := range lines {
		if strings.HasPrefix(line, blockStart) {
			if recording && len(current) > 0 {
				blocks = append(blocks, current)
			}
			current = []string{line}
			recording = true
			continue
		}
		if !recording {
			continue
		}
		current = append(current, line)
		if strings.HasPrefix(line, blockEnd) || strings.Contains(line, blockEndTruncated) {
			blocks = append(blocks, current)
			current = nil
			recording = false
		}
	}
	if recording && len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// ParseBlock extracts the labeled fields of one requirement block and
// folds continuation lines into the current multi-line field.
func ParseBlock(lines []string) internal.Record {
	fields := map[string]string{}
	continuation := ""

	for _, line := range lines {
		matched := false
		for _, entry := range blockLabels {
			if !strings.HasPrefix(line, entry.label) {
				continue
			}
			value := strings.TrimSpace(strings.TrimPrefix(line, entry.label))
			// "N/A" marks an explicitly absent value.
			if value == "N/A" {
				value = ""
			}
			fields[entry.field] = value
			continuation = continuations[entry.field]
			matched = true
			break
		}
		if !matched && continuation != "" {
			fields[continuation] += " " + line
		}
	}

	return internal.Record{
		RequirementID:   fields["id"],
		ParentID:        fields["source"],
		Type:            fields["type"],
		Definition:      util.CollapseWhitespace(fields["definition"]),
		Verification:    fields["verification"],
		Compliance:      fields["compliance"],
		Responsibility:  fields["allocation"],
		Notes:           util.CollapseWhitespace(fields["comments"]),
		ComplianceNotes: util.CollapseWhitespace(fields["compliance_comment"]),
	}
}
