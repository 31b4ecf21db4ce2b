package models

// SessionContext reports what CURRENT_DATABASE/SCHEMA/WAREHOUSE resolved to
// on the live session.
type SessionContext struct {
	Database  string `json:"database"`
	Schema    string `json:"schema"`
	Warehouse string `json:"warehouse"`
}

// TableProbe is the outcome of one COUNT(*) probe against a candidate table.
// Probes are independent; one failure never hides the others.
type TableProbe struct {
	Table    string `json:"table"`
	OK       bool   `json:"ok"`
	RowCount int64  `json:"row_count"`
	Error    string `json:"error,omitempty"`
	Category string `json:"category,omitempty"`
}

// SchemaTable is one row of the table-discovery listing.
type SchemaTable struct {
	Name     string `json:"name"`
	Database string `json:"database_name"`
	Schema   string `json:"schema_name"`
}

// DiagnosticReport is the full probe-mode result surfaced to the operator.
type DiagnosticReport struct {
	Context       *SessionContext `json:"context,omitempty"`
	ContextError  string          `json:"context_error,omitempty"`
	Tables        []SchemaTable   `json:"tables"`
	Matched       []SchemaTable   `json:"matched_tables"`
	Probes        []TableProbe    `json:"probes"`
	RecentErrors  []ErrorEntry    `json:"recent_errors,omitempty"`
	DiscoveryNote string          `json:"discovery_note,omitempty"`
}

// ErrorEntry is one aggregated recent-error line from the in-process log
// collector, shown on the diagnostics page.
type ErrorEntry struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Caller    string `json:"caller"`
	Count     int    `json:"count"`
	FirstSeen string `json:"first_seen"`
	LastSeen  string `json:"last_seen"`
}
