package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDDM_WarmUp(t *testing.T) {
	ddm := NewDDM(WithDDMMinNumInstances(10))
	for i := 0; i < 9; i++ {
		assert.Equal(t, Result{}, ddm.Update(false))
	}
	assert.Equal(t, 9, ddm.Statistics().NumErrors)
}

func TestDDM_DetectsRisingErrorRate(t *testing.T) {
	ddm := NewDDM()

	// stable phase: one error in ten
	for i := 0; i < 200; i++ {
		r := ddm.Update(i%10 != 9)
		require.False(t, r.Drift, "event %d", i)
	}
	stats := ddm.Statistics()
	assert.Equal(t, 200, stats.NumInstances)
	assert.Equal(t, 20, stats.NumErrors)
	assert.InDelta(t, 0.1, stats.ErrorRate, 1e-12)

	// the concept changes and everything is misclassified
	detectedAt := -1
	for i := 0; i < 100; i++ {
		r := ddm.Update(false)
		if r.Drift {
			assert.Greater(t, r.Score, r.Threshold)
			detectedAt = i
			break
		}
	}
	require.NotEqual(t, -1, detectedAt)
	assert.Less(t, detectedAt, 30)

	stats = ddm.Statistics()
	assert.Equal(t, 0, stats.NumInstances)
	assert.Equal(t, 1, stats.Drifts)
}

func TestDDM_Levels(t *testing.T) {
	// with a huge out-of-control level only warnings are raised
	ddm := NewDDM(WithDDMOutControlLevel(1e9), WithDDMWarningLevel(2))
	for i := 0; i < 100; i++ {
		ddm.Update(i%10 != 9)
	}
	warned := false
	for i := 0; i < 50; i++ {
		r := ddm.Update(false)
		require.False(t, r.Drift)
		warned = warned || r.Warning
	}
	assert.True(t, warned)
	assert.True(t, ddm.Statistics().WarningDetected)

	ddm.Reset()
	assert.Equal(t, 0, ddm.Statistics().NumInstances)
	assert.False(t, ddm.Statistics().WarningDetected)
	assert.Equal(t, "DDM", ddm.Name())
}
