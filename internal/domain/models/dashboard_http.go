package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type DashboardRequest struct {
	WithBias bool `query:"with_bias" json:"with_bias" default:"true"`
}

type AccuracyRequest struct {
	WithBias bool `query:"with_bias" json:"with_bias" default:"true"`
}

type DiagnosticsRequest struct {
	WithErrors bool `query:"with_errors" json:"with_errors" default:"false"`
}
