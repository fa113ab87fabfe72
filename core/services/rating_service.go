package services

import (
	"errors"
	"log"
	"sort"
	"time"

	"techniq-api/core/models"
	"techniq-api/core/utils"

	"gorm.io/gorm"
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{
		db: db,
	}
}

// assessmentWindow is one technique's recent completed assessments, newest
// first, capped at utils.RatingWindowSize.
type assessmentWindow struct {
	technique models.Technique
	entries   []models.Assessment
}

// RecomputeRating rebuilds a player's per-sport composite ratings and the
// denormalized headline rating from the full completed-assessment history.
// The recomputation is idempotent: re-running it with no new assessments
// produces identical rows, which is what makes duplicate "assessment
// completed" deliveries harmless.
func (s *RatingService) RecomputeRating(playerID uint) error {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("player not found")
		}
		return err
	}

	// Load every completed, scored assessment for the player across all
	// sports, resolved to its technique.
	var assessments []models.Assessment
	if err := s.db.Where("player_id = ? AND status = ? AND score IS NOT NULL", playerID, models.AssessmentStatusCompleted).
		Preload("Technique").
		Find(&assessments).Error; err != nil {
		return err
	}

	// Newest first; id breaks ties between same-instant completions.
	sort.Slice(assessments, func(i, j int) bool {
		ti, tj := assessments[i].CompletedAt, assessments[j].CompletedAt
		if ti != nil && tj != nil && !ti.Equal(*tj) {
			return ti.After(*tj)
		}
		return assessments[i].ID > assessments[j].ID
	})

	// Partition by sport, then group by technique keeping only the most
	// recent window per technique.
	windowsBySport := make(map[uint]map[uint]*assessmentWindow)
	for _, a := range assessments {
		sportID := a.Technique.SportID
		if windowsBySport[sportID] == nil {
			windowsBySport[sportID] = make(map[uint]*assessmentWindow)
		}
		w := windowsBySport[sportID][a.TechniqueID]
		if w == nil {
			w = &assessmentWindow{technique: a.Technique}
			windowsBySport[sportID][a.TechniqueID] = w
		}
		if len(w.entries) < utils.RatingWindowSize {
			w.entries = append(w.entries, a)
		}
	}

	// Each sport commits independently so a failure mid-sport cannot corrupt
	// sports already processed.
	var firstErr error
	for sportID, windows := range windowsBySport {
		if err := s.recomputeSport(playerID, sportID, windows); err != nil {
			log.Printf("Error recomputing sport %d for player %d: %v", sportID, playerID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if err := s.updateHeadline(playerID, len(assessments)); err != nil {
		log.Printf("Error updating headline rating for player %d: %v", playerID, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// recomputeSport upserts the technique scores and the sport rating for one
// sport inside a single transaction.
func (s *RatingService) recomputeSport(playerID, sportID uint, windows map[uint]*assessmentWindow) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var values, weights []float64
	totalAssessments := 0
	var latestCompletion time.Time

	// Stable iteration keeps log output and row update order deterministic.
	techniqueIDs := make([]uint, 0, len(windows))
	for id := range windows {
		techniqueIDs = append(techniqueIDs, id)
	}
	sort.Slice(techniqueIDs, func(i, j int) bool { return techniqueIDs[i] < techniqueIDs[j] })

	for _, techniqueID := range techniqueIDs {
		w := windows[techniqueID]
		best, avg, history := summarizeWindow(w.entries)

		if err := s.upsertTechniqueScore(tx, playerID, sportID, w, best, avg, history); err != nil {
			tx.Rollback()
			return err
		}

		values = append(values, best)
		weights = append(weights, utils.TechniqueWeight(w.technique.Weight))
		totalAssessments += len(w.entries)

		if at := w.entries[0].CompletedAt; at != nil && at.After(latestCompletion) {
			latestCompletion = *at
		}
	}

	// A sport with fewer than the minimum distinct scored techniques stays
	// unranked no matter how high the individual scores are.
	var composite *float64
	if len(windows) >= utils.MinTechniquesForRating {
		c := utils.WeightedMean(values, weights)
		composite = &c
	}
	tier := utils.ClassifyTier(composite)

	if err := s.upsertSportRating(tx, playerID, sportID, composite, tier, totalAssessments, len(windows), latestCompletion); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// summarizeWindow computes the rolling aggregates for one technique window
// (entries newest first, raw 0-10 scores scaled to 0-100).
func summarizeWindow(entries []models.Assessment) (best, avg float64, history []models.ScoreSample) {
	var sum float64
	for _, a := range entries {
		scaled := utils.ScaleScore(*a.Score)
		if scaled > best {
			best = scaled
		}
		sum += scaled
		history = append(history, models.ScoreSample{
			AssessmentID: a.ID,
			Score:        scaled,
		})
	}
	if len(entries) > 0 {
		avg = sum / float64(len(entries))
	}
	return best, avg, history
}

func (s *RatingService) upsertTechniqueScore(tx *gorm.DB, playerID, sportID uint, w *assessmentWindow, best, avg float64, history []models.ScoreSample) error {
	latest := w.entries[0]

	var score models.TechniqueScore
	err := tx.Where("player_id = ? AND technique_id = ?", playerID, w.technique.ID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		score = models.TechniqueScore{
			PlayerID:    playerID,
			TechniqueID: w.technique.ID,
			SportID:     sportID,
		}
	} else if err != nil {
		return err
	}

	score.BestScore = best
	score.AverageScore = avg
	score.AssessmentCount = len(w.entries)
	score.ScoreHistory = history
	score.LastAssessmentID = latest.ID
	score.LastAssessedAt = latest.CompletedAt

	return tx.Save(&score).Error
}

func (s *RatingService) upsertSportRating(tx *gorm.DB, playerID, sportID uint, composite *float64, tier utils.Tier, totalAssessments, totalTechniques int, latestCompletion time.Time) error {
	var rating models.PlayerSportRating
	err := tx.Where("player_id = ? AND sport_id = ?", playerID, sportID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rating = models.PlayerSportRating{
			PlayerID: playerID,
			SportID:  sportID,
			Tier:     string(utils.TierUnranked),
		}
	} else if err != nil {
		return err
	}

	previousTier := rating.Tier

	// Derived from the newest processed assessment, not the wall clock, so
	// that re-running the recompute on an unchanged history writes an
	// identical row.
	rating.CompositeScore = composite
	rating.Tier = string(tier)
	rating.TotalAssessments = totalAssessments
	rating.TotalTechniques = totalTechniques
	rating.LastUpdatedAt = latestCompletion

	if err := tx.Save(&rating).Error; err != nil {
		return err
	}

	// Tier movement into a ranked band is worth surfacing for downstream
	// notification consumers.
	if previousTier != rating.Tier && tier != utils.TierUnranked {
		log.Printf("Player %d sport %d tier changed: %s -> %s", playerID, sportID, previousTier, rating.Tier)
	}

	return nil
}

// updateHeadline denormalizes the player's single best ranked sport onto the
// player row for legacy/simple consumers.
func (s *RatingService) updateHeadline(playerID uint, totalAssessments int) error {
	var ratings []models.PlayerSportRating
	if err := s.db.Where("player_id = ?", playerID).Find(&ratings).Error; err != nil {
		return err
	}

	var best *float64
	for i := range ratings {
		c := ratings[i].CompositeScore
		if c == nil {
			continue
		}
		if best == nil || *c > *best {
			best = c
		}
	}

	updates := map[string]interface{}{
		"headline_rating":   best,
		"headline_tier":     string(utils.ClassifyTier(best)),
		"total_assessments": totalAssessments,
	}
	return s.db.Model(&models.Player{}).Where("id = ?", playerID).Updates(updates).Error
}

// GetPlayerRatings returns the per-sport ratings plus the headline for one
// player. Pure read.
func (s *RatingService) GetPlayerRatings(playerID uint) (*models.PlayerRatingsResponse, error) {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("player not found")
		}
		return nil, err
	}

	var ratings []models.PlayerSportRating
	if err := s.db.Where("player_id = ?", playerID).
		Preload("Sport").
		Order("sport_id ASC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}

	return &models.PlayerRatingsResponse{
		PlayerID:       player.ID,
		HeadlineRating: player.HeadlineRating,
		HeadlineTier:   player.HeadlineTier,
		Sports:         ratings,
	}, nil
}

// GetTechniqueBreakdown returns the per-technique rolling scores for one
// player, optionally narrowed to a sport. Pure read.
func (s *RatingService) GetTechniqueBreakdown(playerID uint, sportID *uint) ([]models.TechniqueScore, error) {
	query := s.db.Where("player_id = ?", playerID)
	if sportID != nil {
		query = query.Where("sport_id = ?", *sportID)
	}

	var scores []models.TechniqueScore
	if err := query.Preload("Technique").Order("technique_id ASC").Find(&scores).Error; err != nil {
		return nil, err
	}

	return scores, nil
}
