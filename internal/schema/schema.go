// Package schema holds the canonical column list and the static lookup
// tables used by the reconciliation engine.
package schema

import "strings"

// Columns is the canonical 16-column schema, in export order.
var Columns = []string{
	"Parent ID",
	"Requirement ID",
	"Type",
	"Sub-Type",
	"Title",
	"Definition",
	"Notes",
	"Remarks",
	"Responsibility",
	"Applicability",
	"Compliance",
	"Compliance Notes",
	"Verification",
	"Verification Notes",
	"Reference Document",
	"Original External Identifier",
}

// ColumnMapping maps a standardized source header (lowercased, trimmed,
// quotes stripped) to its canonical column. Every canonical column maps
// to itself so that re-reconciling an already normalized table is a
// no-op.
var ColumnMapping = map[string]string{
	"req id":                "Requirement ID",
	"requirement id":        "Requirement ID",
	"id":                    "Requirement ID",
	"object identifier":     "Requirement ID",
	"object id":             "Requirement ID",
	"parent":                "Parent ID",
	"parent id":             "Parent ID",
	"parent requirement id": "Parent ID",
	"source":                "Parent ID",
	"object type":           "Type",
	"type":                  "Type",
	"sub-type":              "Sub-Type",
	"subtype":               "Sub-Type",
	"title":                 "Title",
	"definition":            "Definition",
	"description":           "Definition",
	"req description":       "Definition",
	"note":                  "Notes",
	"notes":                 "Notes",
	"comments":              "Notes",
	"remarks":               "Remarks",
	"responsibility":        "Responsibility",
	"responsible":           "Responsibility",
	"owner":                 "Responsibility",
	"applicability":         "Applicability",
	"applicable":            "Applicability",
	"verification":          "Verification",
	"verification method":   "Verification",
	"compliance":            "Compliance",
	"status":                "Compliance",
	"compliance status":     "Compliance",
	"compliance note":       "Compliance Notes",
	"compliance notes":      "Compliance Notes",
	"compliance comment":    "Compliance Notes",
	"verification note":     "Verification Notes",
	"verification notes":    "Verification Notes",
	"verification comment":  "Verification Notes",
	"reference":             "Reference Document",
	"reference document":    "Reference Document",
	"ref doc":               "Reference Document",
	"document":              "Reference Document",

	"original external identifier": "Original External Identifier",
	"external identifier":          "Original External Identifier",
	// Legacy spellings kept for older exports, typo included.
	"original esa identifier": "Original External Identifier",
	"orginal esa identifier":  "Original External Identifier",
	"esa identifier":          "Original External Identifier",
	"esa id":                  "Original External Identifier",
}

var complianceMap = map[string]string{
	"compliant":           "C",
	"c":                   "C",
	"non-compliant":       "NC",
	"non compliant":       "NC",
	"noncompliant":        "NC",
	"not-compliant":       "NC",
	"not compliant":       "NC",
	"notcompliant":        "NC",
	"nc":                  "NC",
	"partially-compliant": "PC",
	"partially compliant": "PC",
	"partial-compliant":   "PC",
	"partial compliant":   "PC",
	"partially":           "PC",
	"partial":             "PC",
	"pc":                  "PC",
}

// NormalizeCompliance maps a raw compliance status onto C/NC/PC.
// Unrecognized tokens are returned unchanged.
func NormalizeCompliance(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if code, ok := complianceMap[strings.ToLower(strings.TrimSpace(value))]; ok {
		return code
	}
	return value
}

// StandardizeHeader brings a source header into lookup form.
func StandardizeHeader(header string) string {
	s := strings.TrimSpace(strings.ToLower(header))
	return strings.ReplaceAll(s, `"`, "")
}

// ColumnIndex returns the position of a canonical column title, or -1.
func ColumnIndex(column string) int {
	for i, c := range Columns {
		if c == column {
			return i
		}
	}
	return -1
}
