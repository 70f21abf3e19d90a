package migrate

// Step adds one column to one managed table. Steps are never edited once
// released; new columns get a new, higher Version.
type Step struct {
	Version int
	Table   string
	Column  string
	Type    string
	Default string
}

// DefaultSteps is the ledger of every column added after the first schema.
var DefaultSteps = []Step{
	{Version: 1, Table: "account", Column: "username", Type: "VARCHAR(100)"},
	{Version: 2, Table: "account", Column: "password", Type: "TEXT"},
	{Version: 3, Table: "account", Column: "account_url", Type: "VARCHAR(500)"},
	{Version: 4, Table: "account", Column: "notes", Type: "TEXT"},

	{Version: 5, Table: "task", Column: "category", Type: "VARCHAR(100)"},
	{Version: 6, Table: "task", Column: "assigned_to", Type: "VARCHAR(100)"},
	{Version: 7, Table: "task", Column: "estimated_hours", Type: "FLOAT"},
	{Version: 8, Table: "task", Column: "actual_hours", Type: "FLOAT"},
	{Version: 9, Table: "task", Column: "start_date", Type: "DATE"},
	{Version: 10, Table: "task", Column: "completion_date", Type: "DATE"},
	{Version: 11, Table: "task", Column: "dependencies", Type: "TEXT"},

	{Version: 12, Table: "entity", Column: "ein", Type: "VARCHAR(50)"},
	{Version: 13, Table: "entity", Column: "registered_address", Type: "VARCHAR(500)"},
	{Version: 14, Table: "entity", Column: "registered_phone", Type: "VARCHAR(50)"},
	{Version: 15, Table: "entity", Column: "state_of_incorporation", Type: "VARCHAR(100)"},
	{Version: 16, Table: "entity", Column: "status", Type: "VARCHAR(50)", Default: "'active'"},
	{Version: 17, Table: "entity", Column: "date_of_incorporation", Type: "DATE"},

	{Version: 18, Table: "document", Column: "original_filename", Type: "VARCHAR(500)"},
	{Version: 19, Table: "document", Column: "file_size", Type: "INTEGER"},
}

func (s Step) definition() string {
	if s.Default == "" {
		return s.Type
	}
	return s.Type + " DEFAULT " + s.Default
}
