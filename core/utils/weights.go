package utils

const (
	// DefaultTechniqueWeight applies when a technique has no configured weight.
	DefaultTechniqueWeight = 0.6

	// MaxScore is the top of the engine's internal rating scale. Producers
	// emit 0-10 scores; everything past the ingestion boundary is 0-100.
	MaxScore = 100.0

	// ScoreScaleFactor converts a raw producer score to the internal scale.
	ScoreScaleFactor = 10.0

	// RatingWindowSize bounds how many recent assessments per technique
	// contribute to the rolling score.
	RatingWindowSize = 3

	// MinTechniquesForRating is the floor of distinct scored techniques a
	// sport needs before it can be ranked.
	MinTechniquesForRating = 3
)

// TechniqueWeight resolves a technique's configured weight, falling back to
// the engine default.
func TechniqueWeight(configured *float64) float64 {
	if configured == nil {
		return DefaultTechniqueWeight
	}
	return *configured
}

// WeightedMean computes sum(weight*value)/sum(weight). Returns 0 when the
// total weight is not positive; callers gate on having enough entries first.
func WeightedMean(values, weights []float64) float64 {
	var sum, totalWeight float64
	for i, v := range values {
		sum += weights[i] * v
		totalWeight += weights[i]
	}
	if totalWeight <= 0 {
		return 0
	}
	return sum / totalWeight
}

// ScaleScore converts a raw 0-10 producer score to the 0-100 scale.
func ScaleScore(raw float64) float64 {
	return raw * ScoreScaleFactor
}
