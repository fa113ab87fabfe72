package services

import (
	"log"
	"time"

	"techniq-api/core/models"

	"gorm.io/gorm"
)

// ResyncService is the self-heal for at-least-once event delivery: if a
// completion event never reached the rating calculator, the player's rating
// row lags behind the assessment history until the next sweep re-runs the
// (idempotent) recomputation.
type ResyncService struct {
	db            *gorm.DB
	ratingService *RatingService
}

func NewResyncService(db *gorm.DB, ratingService *RatingService) *ResyncService {
	return &ResyncService{
		db:            db,
		ratingService: ratingService,
	}
}

// ResyncStaleRatings recomputes ratings for every player with a completed
// assessment newer than (or missing from) their sport rating row.
func (s *ResyncService) ResyncStaleRatings() error {
	playerIDs, err := s.findStalePlayers()
	if err != nil {
		log.Printf("Error finding players with stale ratings: %v", err)
		return err
	}

	if len(playerIDs) == 0 {
		log.Println("No stale ratings found")
		return nil
	}

	log.Printf("Found %d players with stale ratings to resync", len(playerIDs))

	for _, playerID := range playerIDs {
		if err := s.ratingService.RecomputeRating(playerID); err != nil {
			log.Printf("Error resyncing rating for player %d: %v", playerID, err)
			// Continue with other players even if one fails
			continue
		}
	}

	return nil
}

func (s *ResyncService) findStalePlayers() ([]uint, error) {
	var playerIDs []uint
	err := s.db.Model(&models.Assessment{}).
		Distinct("assessments.player_id").
		Joins("JOIN techniques ON techniques.id = assessments.technique_id").
		Joins("LEFT JOIN player_sport_ratings ON player_sport_ratings.player_id = assessments.player_id AND player_sport_ratings.sport_id = techniques.sport_id").
		Where("assessments.status = ? AND assessments.score IS NOT NULL", models.AssessmentStatusCompleted).
		Where("player_sport_ratings.id IS NULL OR assessments.completed_at > player_sport_ratings.last_updated_at").
		Pluck("assessments.player_id", &playerIDs).Error
	if err != nil {
		return nil, err
	}

	return playerIDs, nil
}

// GetStaleRatingsCount returns how many players currently have a rating row
// lagging behind their assessment history.
func (s *ResyncService) GetStaleRatingsCount() (int64, error) {
	playerIDs, err := s.findStalePlayers()
	if err != nil {
		return 0, err
	}
	return int64(len(playerIDs)), nil
}

// ExpireStuckAssessments fails assessments that sat in pending or processing
// for more than 24 hours; the producer is not coming back for those.
func (s *ResyncService) ExpireStuckAssessments() error {
	cutoffTime := time.Now().Add(-24 * time.Hour)

	result := s.db.Model(&models.Assessment{}).
		Where("status IN ? AND created_at < ?", []string{models.AssessmentStatusPending, models.AssessmentStatusProcessing}, cutoffTime).
		Update("status", models.AssessmentStatusFailed)

	if result.Error != nil {
		log.Printf("Error expiring stuck assessments: %v", result.Error)
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Expired %d stuck assessments", result.RowsAffected)
	}

	return nil
}
