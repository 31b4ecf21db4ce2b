package models

import "time"

// ForecastRecord is one postmortem row: a directional call paired with its
// realized outcome. The hit flag is precomputed by the warehouse pipeline.
type ForecastRecord struct {
	Date          time.Time `json:"date"`
	Symbol        string    `json:"symbol"`
	ForecastBias  string    `json:"forecast_bias"`
	ActualClose   float64   `json:"actual_close"`
	Hit           bool      `json:"hit"`
	LoadTimestamp time.Time `json:"load_timestamp"`
}

// MarketRecord is one daily market snapshot. Close prices are nullable in the
// warehouse (holidays, late loads), hence the pointer fields.
type MarketRecord struct {
	Date      time.Time `json:"date"`
	SPXClose  *float64  `json:"spx_close"`
	ESClose   *float64  `json:"es_close"`
	VIXClose  *float64  `json:"vix_close"`
	VVIXClose *float64  `json:"vvix_close"`
}

// SummaryRecord is the annotated forecast sheet for one session: levels,
// straddle pricing and free-text notes. No numeric derivation happens on it.
type SummaryRecord struct {
	Date         time.Time `json:"date"`
	Symbol       string    `json:"symbol"`
	ForecastBias string    `json:"forecast_bias"`
	Support      string    `json:"support_levels"`
	Resistance   string    `json:"resistance_levels"`
	ATMStraddle  *float64  `json:"atm_straddle"`
	Notes        string    `json:"notes"`
}
