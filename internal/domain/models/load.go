package models

// LoadStatus is the discriminated per-entity outcome of a bulk load. The
// bundle stays all-or-nothing: on any failure no entity surfaces rows, but
// each reports whether it loaded, failed, or was never attempted.
type LoadStatus string

const (
	LoadLoaded  LoadStatus = "loaded"
	LoadFailed  LoadStatus = "failed"
	LoadSkipped LoadStatus = "skipped"
)

// EntityStatus describes one logical record set inside a load bundle.
type EntityStatus struct {
	Entity   string     `json:"entity"`
	Status   LoadStatus `json:"status"`
	Rows     int        `json:"rows"`
	Error    string     `json:"error,omitempty"`
	Category string     `json:"category,omitempty"`
	Hint     string     `json:"hint,omitempty"`
}

// DashboardData is the complete bulk-load result consumed by the
// presentation layer.
type DashboardData struct {
	OK        bool             `json:"ok"`
	Error     string           `json:"error,omitempty"`
	Hint      string           `json:"hint,omitempty"`
	Statuses  []EntityStatus   `json:"statuses"`
	Forecasts []ForecastRecord `json:"forecasts"`
	Market    []MarketRecord   `json:"market"`
	Summaries []SummaryRecord  `json:"summaries"`
	Accuracy  *AccuracyReport  `json:"accuracy,omitempty"`
}

// ConnectionStatus is the sidebar live-status check result. It always comes
// from its own session, never the data-load one.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
	Category  string `json:"category,omitempty"`
}
