package analysis

import "github.com/de-tools/shop-pulse/pkg/models/domain"

// ProjectionWeeks is the fixed projection horizon.
const ProjectionWeeks = 52

// Project extrapolates a weekly rate ProjectionWeeks forward. The model is
// a line through three synthetic anchors at weeks 1..3 valued at 95%, 100%
// and 105% of the current rate: an assumed 5%-per-week pattern, not a fit
// to historical data. The anchors are collinear, so the least-squares line
// is exact: value(week) = 0.90*rate + 0.05*rate*week.
func Project(weeklyRate float64) domain.TrendProjection {
	intercept := 0.90 * weeklyRate
	slope := 0.05 * weeklyRate

	values := make([]float64, ProjectionWeeks)
	for i := range values {
		values[i] = intercept + slope*float64(i+1)
	}

	growth := 0.0
	if weeklyRate != 0 {
		growth = (values[ProjectionWeeks-1] - weeklyRate) / weeklyRate * 100
	}
	return domain.TrendProjection{Values: values, GrowthPct: growth}
}
