package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTierNilIsUnranked(t *testing.T) {
	assert.Equal(t, TierUnranked, ClassifyTier(nil))
}

func TestClassifyTierBands(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		want   Tier
	}{
		{"zero", 0, TierRookie},
		{"top of rookie band", 39.9, TierRookie},
		{"bronze lower bound", 40, TierBronze},
		{"top of bronze band", 54.9, TierBronze},
		{"silver lower bound", 55, TierSilver},
		{"top of silver band", 69.9, TierSilver},
		{"gold lower bound", 70, TierGold},
		{"mid gold", 75, TierGold},
		{"top of gold band", 84.9, TierGold},
		{"elite lower bound", 85, TierElite},
		{"perfect score", 100, TierElite},
		{"negative falls through to rookie", -5, TierRookie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating := tt.rating
			assert.Equal(t, tt.want, ClassifyTier(&rating))
		})
	}
}

func TestTierThreshold(t *testing.T) {
	threshold, ok := TierThreshold(TierGold)
	assert.True(t, ok)
	assert.Equal(t, 70.0, threshold)

	threshold, ok = TierThreshold(TierRookie)
	assert.True(t, ok)
	assert.Equal(t, 0.0, threshold)

	_, ok = TierThreshold(TierUnranked)
	assert.False(t, ok)

	_, ok = TierThreshold(Tier("DIAMOND"))
	assert.False(t, ok)
}

func TestIsRankedTier(t *testing.T) {
	assert.True(t, IsRankedTier(TierRookie))
	assert.True(t, IsRankedTier(TierElite))
	assert.False(t, IsRankedTier(TierUnranked))
	assert.False(t, IsRankedTier(Tier("")))
}
