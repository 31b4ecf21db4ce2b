package models

// BiasBreakdown is the per-category accuracy aggregate. Categories with very
// few records report equally-weighted percentages; no significance handling.
type BiasBreakdown struct {
	Bias     string  `json:"bias"`
	Count    int     `json:"count"`
	Hits     int     `json:"hits"`
	Accuracy float64 `json:"accuracy_pct"`
}

// AccuracyReport is the overall hit/miss summary over the loaded forecast set.
type AccuracyReport struct {
	Total       int             `json:"total"`
	Hits        int             `json:"hits"`
	Misses      int             `json:"misses"`
	Accuracy    float64         `json:"accuracy_pct"`
	Target      float64         `json:"target_pct"`
	TargetDelta float64         `json:"target_delta_pct"`
	OnTarget    bool            `json:"on_target"`
	NoData      bool            `json:"no_data"`
	ByBias      []BiasBreakdown `json:"by_bias,omitempty"`
}
