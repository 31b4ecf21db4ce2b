package usecase

import (
	"math"
	"sort"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/internal/domain/models"
)

// AccuracyTarget is the displayed hit-rate goal in percent. Comparison and
// messaging only; it never gates anything.
const AccuracyTarget = 88.0

// ComputeAccuracy scores a forecast record set. An empty set reports
// NoData=true rather than a zero (or NaN) percentage.
func ComputeAccuracy(records []models.ForecastRecord, withBias bool) *models.AccuracyReport {
	rep := &models.AccuracyReport{Target: AccuracyTarget}

	if len(records) == 0 {
		rep.NoData = true
		return rep
	}

	for _, r := range records {
		if r.Hit {
			rep.Hits++
		}
	}
	rep.Total = len(records)
	rep.Misses = rep.Total - rep.Hits
	rep.Accuracy = round1(float64(rep.Hits) / float64(rep.Total) * 100)
	rep.TargetDelta = round1(rep.Accuracy - AccuracyTarget)
	rep.OnTarget = rep.Accuracy >= AccuracyTarget

	if withBias {
		rep.ByBias = groupByBias(records)
	}
	return rep
}

// groupByBias aggregates hit rate per forecast-bias category. Small groups
// get equally-weighted percentages; no significance handling.
func groupByBias(records []models.ForecastRecord) []models.BiasBreakdown {
	type agg struct {
		count int
		hits  int
	}
	groups := make(map[string]*agg)
	for _, r := range records {
		g, ok := groups[r.ForecastBias]
		if !ok {
			g = &agg{}
			groups[r.ForecastBias] = g
		}
		g.count++
		if r.Hit {
			g.hits++
		}
	}

	out := make([]models.BiasBreakdown, 0, len(groups))
	for bias, g := range groups {
		out = append(out, models.BiasBreakdown{
			Bias:     bias,
			Count:    g.count,
			Hits:     g.hits,
			Accuracy: round1(float64(g.hits) / float64(g.count) * 100),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Bias < out[j].Bias
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
