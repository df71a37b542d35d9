package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	p := Project(1000)

	require.Len(t, p.Values, ProjectionWeeks)
	assert.InDelta(t, 950, p.Values[0], 1e-9, "week 1 anchors at 95% of the rate")
	assert.InDelta(t, 1000, p.Values[1], 1e-9)
	assert.InDelta(t, 1050, p.Values[2], 1e-9)
	assert.InDelta(t, 3500, p.Values[51], 1e-9, "week 52 of the 5%-per-week line")
	assert.InDelta(t, 250, p.GrowthPct, 1e-9)

	for i := 1; i < len(p.Values); i++ {
		assert.Greater(t, p.Values[i], p.Values[i-1], "projection must grow linearly")
	}
}

func TestProject_ZeroRate(t *testing.T) {
	p := Project(0)

	require.Len(t, p.Values, ProjectionWeeks)
	for _, v := range p.Values {
		assert.Zero(t, v)
	}
	assert.Zero(t, p.GrowthPct, "zero rate reports 0% growth, not NaN")
}
