package utils

// Tier is the ordinal classification band derived from a 0-100 composite
// rating. UNRANKED is reserved for players without a rankable score.
type Tier string

const (
	TierUnranked Tier = "UNRANKED"
	TierRookie   Tier = "ROOKIE"
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierElite    Tier = "ELITE"
)

type tierThreshold struct {
	Tier      Tier
	MinRating float64
}

// tierThresholds is the single source of truth for tier bands, ordered from
// highest to lowest. Shared by the rating calculator, the goal tracker and
// any read-side formatting.
var tierThresholds = []tierThreshold{
	{TierElite, 85},
	{TierGold, 70},
	{TierSilver, 55},
	{TierBronze, 40},
	{TierRookie, 0},
}

// ClassifyTier maps a composite rating to its tier. A nil rating means the
// player is not yet ranked. Total over its domain: negative inputs fall
// through to the lowest band.
func ClassifyTier(rating *float64) Tier {
	if rating == nil {
		return TierUnranked
	}
	for _, t := range tierThresholds {
		if *rating >= t.MinRating {
			return t.Tier
		}
	}
	return TierRookie
}

// TierThreshold returns the minimum composite rating for a tier, and whether
// the tier is a ranked band at all (UNRANKED and unknown values are not).
func TierThreshold(tier Tier) (float64, bool) {
	for _, t := range tierThresholds {
		if t.Tier == tier {
			return t.MinRating, true
		}
	}
	return 0, false
}

// IsRankedTier reports whether the value names one of the ranked bands.
func IsRankedTier(tier Tier) bool {
	_, ok := TierThreshold(tier)
	return ok
}
