package services

import (
	"testing"
	"time"

	"techniq-api/core/models"
	"techniq-api/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeRatingPlayerNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	err := service.RecomputeRating(9999)
	require.Error(t, err)
	assert.Equal(t, "player not found", err.Error())
}

func TestRecomputeRatingBelowTechniqueFloor(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	player := createPlayer(t, db, "rookie")
	sport := createSport(t, db, "tennis")
	forehand := createTechnique(t, db, sport, "Forehand", weightPtr(1.0))
	backhand := createTechnique(t, db, sport, "Backhand", weightPtr(1.0))

	now := time.Now().UTC().Truncate(time.Second)
	createCompletedAssessment(t, db, player, forehand, 8.0, now.Add(-2*time.Hour))
	createCompletedAssessment(t, db, player, backhand, 9.0, now.Add(-time.Hour))

	require.NoError(t, service.RecomputeRating(player.ID))

	// The rating row exists but stays unranked with only two techniques.
	var rating models.PlayerSportRating
	require.NoError(t, db.Where("player_id = ? AND sport_id = ?", player.ID, sport.ID).First(&rating).Error)
	assert.Nil(t, rating.CompositeScore)
	assert.Equal(t, string(utils.TierUnranked), rating.Tier)
	assert.Equal(t, 2, rating.TotalAssessments)
	assert.Equal(t, 2, rating.TotalTechniques)

	var updated models.Player
	require.NoError(t, db.First(&updated, player.ID).Error)
	assert.Nil(t, updated.HeadlineRating)
	assert.Equal(t, string(utils.TierUnranked), updated.HeadlineTier)
	assert.Equal(t, 2, updated.TotalAssessments)
}

func TestRecomputeRatingWeightedComposite(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	player := createPlayer(t, db, "contender")
	sport := createSport(t, db, "tennis")
	forehand := createTechnique(t, db, sport, "Forehand", weightPtr(1.0))
	backhand := createTechnique(t, db, sport, "Backhand", weightPtr(0.5))
	serve := createTechnique(t, db, sport, "Serve", weightPtr(0.5))

	now := time.Now().UTC().Truncate(time.Second)
	createCompletedAssessment(t, db, player, forehand, 9.0, now.Add(-3*time.Hour))
	createCompletedAssessment(t, db, player, backhand, 7.0, now.Add(-2*time.Hour))
	createCompletedAssessment(t, db, player, serve, 5.0, now.Add(-time.Hour))

	require.NoError(t, service.RecomputeRating(player.ID))

	// (90*1.0 + 70*0.5 + 50*0.5) / 2.0 = 75
	var rating models.PlayerSportRating
	require.NoError(t, db.Where("player_id = ? AND sport_id = ?", player.ID, sport.ID).First(&rating).Error)
	require.NotNil(t, rating.CompositeScore)
	assert.InDelta(t, 75.0, *rating.CompositeScore, 0.001)
	assert.Equal(t, string(utils.TierGold), rating.Tier)
	assert.Equal(t, 3, rating.TotalAssessments)
	assert.Equal(t, 3, rating.TotalTechniques)

	var updated models.Player
	require.NoError(t, db.First(&updated, player.ID).Error)
	require.NotNil(t, updated.HeadlineRating)
	assert.InDelta(t, 75.0, *updated.HeadlineRating, 0.001)
	assert.Equal(t, string(utils.TierGold), updated.HeadlineTier)
}

func TestRecomputeRatingWindowCapsAtThree(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	player := createPlayer(t, db, "grinder")
	sport := createSport(t, db, "tennis")
	forehand := createTechnique(t, db, sport, "Forehand", weightPtr(1.0))

	// Five assessments, oldest to newest: 2, 3, 9, 4, 6. Only the newest
	// three (9, 4, 6) may count.
	now := time.Now().UTC().Truncate(time.Second)
	scores := []float64{2.0, 3.0, 9.0, 4.0, 6.0}
	for i, raw := range scores {
		createCompletedAssessment(t, db, player, forehand, raw, now.Add(time.Duration(i-5)*time.Hour))
	}

	require.NoError(t, service.RecomputeRating(player.ID))

	var score models.TechniqueScore
	require.NoError(t, db.Where("player_id = ? AND technique_id = ?", player.ID, forehand.ID).First(&score).Error)
	assert.Equal(t, 3, score.AssessmentCount)
	assert.Len(t, score.ScoreHistory, 3)
	assert.InDelta(t, 90.0, score.BestScore, 0.001)
	assert.InDelta(t, (90.0+40.0+60.0)/3.0, score.AverageScore, 0.001)
	// Newest first.
	assert.InDelta(t, 60.0, score.ScoreHistory[0].Score, 0.001)
	assert.InDelta(t, 40.0, score.ScoreHistory[1].Score, 0.001)
	assert.InDelta(t, 90.0, score.ScoreHistory[2].Score, 0.001)
}

func TestRecomputeRatingIdempotent(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	player := createPlayer(t, db, "steady")
	sport := createSport(t, db, "padel")
	names := []string{"Bandeja", "Volley", "Lob"}

	now := time.Now().UTC().Truncate(time.Second)
	for i, name := range names {
		technique := createTechnique(t, db, sport, name, weightPtr(1.0))
		createCompletedAssessment(t, db, player, technique, 6.0, now.Add(time.Duration(i-3)*time.Hour))
	}

	require.NoError(t, service.RecomputeRating(player.ID))

	var first models.PlayerSportRating
	require.NoError(t, db.Where("player_id = ? AND sport_id = ?", player.ID, sport.ID).First(&first).Error)

	require.NoError(t, service.RecomputeRating(player.ID))

	var second models.PlayerSportRating
	require.NoError(t, db.Where("player_id = ? AND sport_id = ?", player.ID, sport.ID).First(&second).Error)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.CompositeScore)
	assert.Equal(t, *first.CompositeScore, *second.CompositeScore)
	assert.Equal(t, first.Tier, second.Tier)
	assert.Equal(t, first.TotalAssessments, second.TotalAssessments)
	assert.Equal(t, first.TotalTechniques, second.TotalTechniques)
	assert.True(t, first.LastUpdatedAt.Equal(second.LastUpdatedAt))

	var scoreRows []models.TechniqueScore
	require.NoError(t, db.Where("player_id = ?", player.ID).Find(&scoreRows).Error)
	assert.Len(t, scoreRows, 3)
}

func TestRecomputeRatingHeadlinePicksBestSport(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	player := createPlayer(t, db, "crossover")
	tennis := createSport(t, db, "tennis")
	padel := createSport(t, db, "padel")

	now := time.Now().UTC().Truncate(time.Second)
	for i, name := range []string{"Forehand", "Backhand", "Serve"} {
		technique := createTechnique(t, db, tennis, name, weightPtr(1.0))
		createCompletedAssessment(t, db, player, technique, 5.0, now.Add(time.Duration(i-6)*time.Hour))
	}
	for i, name := range []string{"Bandeja", "Volley", "Lob"} {
		technique := createTechnique(t, db, padel, name, weightPtr(1.0))
		createCompletedAssessment(t, db, player, technique, 8.0, now.Add(time.Duration(i-3)*time.Hour))
	}

	require.NoError(t, service.RecomputeRating(player.ID))

	var updated models.Player
	require.NoError(t, db.First(&updated, player.ID).Error)
	require.NotNil(t, updated.HeadlineRating)
	assert.InDelta(t, 80.0, *updated.HeadlineRating, 0.001)
	assert.Equal(t, string(utils.TierGold), updated.HeadlineTier)
	assert.Equal(t, 6, updated.TotalAssessments)

	response, err := service.GetPlayerRatings(player.ID)
	require.NoError(t, err)
	assert.Len(t, response.Sports, 2)
}

func TestGetTechniqueBreakdownFiltersBySport(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	player := createPlayer(t, db, "specialist")
	tennis := createSport(t, db, "tennis")
	padel := createSport(t, db, "padel")
	forehand := createTechnique(t, db, tennis, "Forehand", weightPtr(1.0))
	bandeja := createTechnique(t, db, padel, "Bandeja", weightPtr(1.0))

	now := time.Now().UTC().Truncate(time.Second)
	createCompletedAssessment(t, db, player, forehand, 7.0, now.Add(-2*time.Hour))
	createCompletedAssessment(t, db, player, bandeja, 6.0, now.Add(-time.Hour))

	require.NoError(t, service.RecomputeRating(player.ID))

	all, err := service.GetTechniqueBreakdown(player.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	tennisOnly, err := service.GetTechniqueBreakdown(player.ID, &tennis.ID)
	require.NoError(t, err)
	require.Len(t, tennisOnly, 1)
	assert.Equal(t, forehand.ID, tennisOnly[0].TechniqueID)
}
