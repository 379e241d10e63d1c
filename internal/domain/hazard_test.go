package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreToTier(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected Tier
	}{
		{"zero", 0, TierLow},
		{"just below medium", 14.999, TierLow},
		{"medium boundary", 15, TierMedium},
		{"just below high", 34.9, TierMedium},
		{"high boundary", 35, TierHigh},
		{"just below critical", 59.99, TierHigh},
		{"critical boundary", 60, TierCritical},
		{"maximum", 100, TierCritical},
		{"above maximum", 150, TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreToTier(tt.score))
		})
	}
}

func TestTierRank(t *testing.T) {
	assert.True(t, TierCritical.AtLeast(TierHigh))
	assert.True(t, TierHigh.AtLeast(TierHigh))
	assert.False(t, TierMedium.AtLeast(TierHigh))
	assert.False(t, Tier("severe").Valid())
	assert.True(t, TierLow.Valid())
}

func TestHazardAssessmentRescore(t *testing.T) {
	a := HazardAssessment{Hazard: Flood}

	a.Rescore(42)
	assert.Equal(t, 42.0, a.Score)
	assert.Equal(t, TierHigh, a.Tier)

	a.Rescore(-5)
	assert.Zero(t, a.Score)
	assert.Equal(t, TierLow, a.Tier)
}

func TestHazardAssessmentAddFactor(t *testing.T) {
	var a HazardAssessment
	a.AddFactor("Heavy rainfall detected")
	a.AddFactor("%dkm from %s", 12, "Kerala Coast")
	assert.Equal(t, []string{"Heavy rainfall detected", "12km from Kerala Coast"}, a.Factors)
}

func TestUnavailable(t *testing.T) {
	a := Unavailable(Cyclone)
	assert.Equal(t, Cyclone, a.Hazard)
	assert.Zero(t, a.Score)
	assert.Equal(t, TierLow, a.Tier)
	assert.Equal(t, "Unable to assess cyclone risk at this time", a.Details)
	assert.Equal(t, []string{"Risk assessment unavailable"}, a.Factors)
	assert.Nil(t, a.NearestZoneKm)
}

func TestParseHazardType(t *testing.T) {
	h, err := ParseHazardType("landslide")
	require.NoError(t, err)
	assert.Equal(t, Landslide, h)

	_, err = ParseHazardType("tsunami")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
