package sqlscript

// Script is a SQL file split into statements
type Script struct {
	Path       string
	Source     string
	Statements []*Statement
}

// Statement represents a single SQL statement with location information
type Statement struct {
	RawSQL    string        `json:"sql"`                  // Original SQL text without the terminating semicolon
	StartPos  int           `json:"start_pos"`            // Byte offset of RawSQL in the script
	StartLine int           `json:"start_line"`           // 1-indexed line number
	EndLine   int           `json:"end_line"`             // 1-indexed line number
	Type      StatementType `json:"type"`                 // Statement classification
	Language  string        `json:"language,omitempty"`   // LANGUAGE clause of routines and DO blocks, lower case
	Body      string        `json:"body,omitempty"`       // Routine or DO body without its quotes
	BodyStart int           `json:"body_start,omitempty"` // Offset of Body within RawSQL
}

// StatementType classifies SQL statements
type StatementType int

const (
	StmtUnknown   StatementType = iota
	StmtFunction                // CREATE FUNCTION
	StmtProcedure               // CREATE PROCEDURE
	StmtTrigger                 // CREATE TRIGGER
	StmtView                    // CREATE VIEW
	StmtDO                      // DO block
	StmtOther                   // Any other statement
)

// String returns a string representation of StatementType
func (st StatementType) String() string {
	switch st {
	case StmtFunction:
		return "function"
	case StmtProcedure:
		return "procedure"
	case StmtTrigger:
		return "trigger"
	case StmtView:
		return "view"
	case StmtDO:
		return "do"
	case StmtOther:
		return "other"
	default:
		return "unknown"
	}
}

// MarshalText lets encoders render the type by name
func (st StatementType) MarshalText() ([]byte, error) {
	return []byte(st.String()), nil
}
