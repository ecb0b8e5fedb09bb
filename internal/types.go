package internal

type SourceType string

const (
	SourceExcel SourceType = "excel"
	SourceCSV   SourceType = "csv"
	SourcePDF   SourceType = "pdf"
	SourceHTML  SourceType = "html"
)

// Record is the unified requirement model. Field order mirrors the
// 16-column export schema.
type Record struct {
	ParentID                   string
	RequirementID              string
	Type                       string
	SubType                    string
	Title                      string
	Definition                 string
	Notes                      string
	Remarks                    string
	Responsibility             string
	Applicability              string
	Compliance                 string
	ComplianceNotes            string
	Verification               string
	VerificationNotes          string
	ReferenceDocument          string
	OriginalExternalIdentifier string
}

// Values returns the record's fields in canonical column order.
func (r Record) Values() []string {
	return []string{
		r.ParentID,
		r.RequirementID,
		r.Type,
		r.SubType,
		r.Title,
		r.Definition,
		r.Notes,
		r.Remarks,
		r.Responsibility,
		r.Applicability,
		r.Compliance,
		r.ComplianceNotes,
		r.Verification,
		r.VerificationNotes,
		r.ReferenceDocument,
		r.OriginalExternalIdentifier,
	}
}

// Set assigns a value to the field behind a canonical column title.
// Unknown titles are ignored.
func (r *Record) Set(column, value string) {
	switch column {
	case "Parent ID":
		r.ParentID = value
	case "Requirement ID":
		r.RequirementID = value
	case "Type":
		r.Type = value
	case "Sub-Type":
		r.SubType = value
	case "Title":
		r.Title = value
	case "Definition":
		r.Definition = value
	case "Notes":
		r.Notes = value
	case "Remarks":
		r.Remarks = value
	case "Responsibility":
		r.Responsibility = value
	case "Applicability":
		r.Applicability = value
	case "Compliance":
		r.Compliance = value
	case "Compliance Notes":
		r.ComplianceNotes = value
	case "Verification":
		r.Verification = value
	case "Verification Notes":
		r.VerificationNotes = value
	case "Reference Document":
		r.ReferenceDocument = value
	case "Original External Identifier":
		r.OriginalExternalIdentifier = value
	}
}

// Get returns the field behind a canonical column title.
func (r Record) Get(column string) string {
	switch column {
	case "Parent ID":
		return r.ParentID
	case "Requirement ID":
		return r.RequirementID
	case "Type":
		return r.Type
	case "Sub-Type":
		return r.SubType
	case "Title":
		return r.Title
	case "Definition":
		return r.Definition
	case "Notes":
		return r.Notes
	case "Remarks":
		return r.Remarks
	case "Responsibility":
		return r.Responsibility
	case "Applicability":
		return r.Applicability
	case "Compliance":
		return r.Compliance
	case "Compliance Notes":
		return r.ComplianceNotes
	case "Verification":
		return r.Verification
	case "Verification Notes":
		return r.VerificationNotes
	case "Reference Document":
		return r.ReferenceDocument
	case "Original External Identifier":
		return r.OriginalExternalIdentifier
	}
	return ""
}

// Table is the opaque tabular input contract shared by the spreadsheet,
// CSV and HTML front-ends. Rows are aligned with Headers; short rows are
// treated as padded with empty cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the cell at row/column, tolerating ragged rows.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// RunRow is one entry of the processing history kept in storage.
type RunRow struct {
	ID         int
	TraceID    string
	InputPath  string
	SourceType string
	Extracted  int
	Exported   int
	OutputPath string
	DurationMs float64
	Status     string
	CreatedAt  string
}
