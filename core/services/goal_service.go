package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"techniq-api/core/models"
	"techniq-api/core/utils"

	"gorm.io/gorm"
)

type GoalService struct {
	db      *gorm.DB
	roadmap RoadmapGenerator
}

func NewGoalService(db *gorm.DB, roadmap RoadmapGenerator) *GoalService {
	return &GoalService{
		db:      db,
		roadmap: roadmap,
	}
}

// GoalSpec is the typed per-variant goal configuration. Each variant carries
// exactly the fields its goal type requires, so a SCORE_TARGET goal cannot be
// constructed without a target score in the first place.
type GoalSpec interface {
	GoalType() string
	apply(goal *models.ImprovementGoal)
}

type TechniqueImprovementSpec struct{}

func (TechniqueImprovementSpec) GoalType() string { return models.GoalTypeTechniqueImprovement }

func (TechniqueImprovementSpec) apply(goal *models.ImprovementGoal) {}

type ScoreTargetSpec struct {
	TargetScore float64
}

func (ScoreTargetSpec) GoalType() string { return models.GoalTypeScoreTarget }

func (s ScoreTargetSpec) apply(goal *models.ImprovementGoal) {
	target := s.TargetScore
	goal.TargetScore = &target
}

type TierTargetSpec struct {
	TargetTier utils.Tier
}

func (TierTargetSpec) GoalType() string { return models.GoalTypeTierTarget }

func (s TierTargetSpec) apply(goal *models.ImprovementGoal) {
	tier := string(s.TargetTier)
	goal.TargetTier = &tier
}

// SpecFromRequest validates the wire-level goal creation payload into a typed
// GoalSpec, rejecting variant-field violations up front.
func SpecFromRequest(req models.CreateGoalRequest) (GoalSpec, error) {
	switch req.Type {
	case models.GoalTypeTechniqueImprovement:
		return TechniqueImprovementSpec{}, nil
	case models.GoalTypeScoreTarget:
		if req.TargetScore == nil {
			return nil, errors.New("target score is required for SCORE_TARGET goals")
		}
		if *req.TargetScore <= 0 || *req.TargetScore > utils.MaxScore {
			return nil, errors.New("target score must be between 0 and 100")
		}
		return ScoreTargetSpec{TargetScore: *req.TargetScore}, nil
	case models.GoalTypeTierTarget:
		if req.TargetTier == nil {
			return nil, errors.New("target tier is required for TIER_TARGET goals")
		}
		tier := utils.Tier(*req.TargetTier)
		if !utils.IsRankedTier(tier) {
			return nil, errors.New("target tier must be a ranked tier")
		}
		return TierTargetSpec{TargetTier: tier}, nil
	default:
		return nil, errors.New("invalid goal type")
	}
}

// CreateGoal creates an ACTIVE goal with its roadmap. The baseline score is
// deliberately left unset; it is fixed by the first matching assessment that
// arrives after creation.
func (s *GoalService) CreateGoal(ownerID uint, spec GoalSpec, title, description string, techniqueIDs []uint) (*models.ImprovementGoal, error) {
	if err := s.db.First(&models.Player{}, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("player not found")
		}
		return nil, err
	}

	if len(techniqueIDs) == 0 {
		return nil, errors.New("at least one technique is required")
	}

	var techniques []models.Technique
	if err := s.db.Where("id IN ?", techniqueIDs).Find(&techniques).Error; err != nil {
		return nil, err
	}
	if len(techniques) != len(techniqueIDs) {
		return nil, errors.New("technique not found")
	}

	roadmap := s.roadmap.Generate(spec.GoalType(), title, techniques)
	if err := validateRoadmap(roadmap); err != nil {
		return nil, fmt.Errorf("roadmap generator returned an invalid roadmap: %w", err)
	}

	goal := models.ImprovementGoal{
		OwnerID:     ownerID,
		Type:        spec.GoalType(),
		Title:       title,
		Description: description,
		Status:      models.GoalStatusActive,
		Roadmap:     roadmap,
		Techniques:  techniques,
	}
	spec.apply(&goal)

	if err := s.db.Create(&goal).Error; err != nil {
		return nil, err
	}

	return &goal, nil
}

// validateRoadmap enforces the generator output contract: 3 to 5 steps,
// opening and closing with an assessment.
func validateRoadmap(steps []models.RoadmapStep) error {
	if len(steps) < 3 || len(steps) > 5 {
		return fmt.Errorf("expected 3 to 5 steps, got %d", len(steps))
	}
	if steps[0].Kind != models.StepKindAssessment {
		return errors.New("first step must be an assessment")
	}
	if steps[len(steps)-1].Kind != models.StepKindAssessment {
		return errors.New("last step must be an assessment")
	}
	return nil
}

// OnAssessmentCompleted updates every ACTIVE goal of the player that links
// the assessed technique. Invoked from the "assessment completed" event with
// at-least-once delivery; processing the same assessment twice is a no-op for
// any goal that already recorded it. Individual goal failures are logged and
// do not abort sibling goals.
func (s *GoalService) OnAssessmentCompleted(playerID, assessmentID uint) error {
	var assessment models.Assessment
	if err := s.db.Preload("Technique").First(&assessment, assessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Goal tracker: assessment %d not found, skipping", assessmentID)
			return nil
		}
		return err
	}

	if assessment.PlayerID != playerID {
		log.Printf("Goal tracker: assessment %d does not belong to player %d, skipping", assessmentID, playerID)
		return nil
	}
	if assessment.Status != models.AssessmentStatusCompleted || assessment.Score == nil {
		log.Printf("Goal tracker: assessment %d is not completed with a score, skipping", assessmentID)
		return nil
	}

	var goals []models.ImprovementGoal
	if err := s.db.
		Joins("JOIN goal_techniques ON goal_techniques.improvement_goal_id = improvement_goals.id").
		Where("goal_techniques.technique_id = ? AND improvement_goals.owner_id = ? AND improvement_goals.status = ?",
			assessment.TechniqueID, playerID, models.GoalStatusActive).
		Find(&goals).Error; err != nil {
		return err
	}

	if len(goals) == 0 {
		log.Printf("Goal tracker: no active goals reference technique %d for player %d", assessment.TechniqueID, playerID)
		return nil
	}

	// Snapshot of the sport composite for TIER_TARGET math. Read outside the
	// goal transactions: the rating tables belong to the calculator, which
	// may or may not have processed this assessment yet, and the tracker must
	// treat them as eventually consistent.
	sportComposite := s.sportCompositeSnapshot(playerID, assessment.Technique.SportID)

	for _, goal := range goals {
		if err := s.applyAssessmentToGoal(goal.ID, assessment, sportComposite); err != nil {
			log.Printf("Error applying assessment %d to goal %d: %v", assessmentID, goal.ID, err)
		}
	}

	return nil
}

func (s *GoalService) sportCompositeSnapshot(playerID, sportID uint) *float64 {
	var rating models.PlayerSportRating
	err := s.db.Where("player_id = ? AND sport_id = ?", playerID, sportID).First(&rating).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error reading sport rating for player %d sport %d: %v", playerID, sportID, err)
		}
		return nil
	}
	return rating.CompositeScore
}

// applyAssessmentToGoal runs one goal's update in its own transaction. The
// fresh in-transaction read plus the unique (goal, assessment) link key give
// both serialization against overlapping events and duplicate protection.
func (s *GoalService) applyAssessmentToGoal(goalID uint, assessment models.Assessment, sportComposite *float64) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var goal models.ImprovementGoal
	if err := tx.First(&goal, goalID).Error; err != nil {
		tx.Rollback()
		return err
	}

	// A sibling event may have completed the goal since the initial query.
	if goal.Status != models.GoalStatusActive {
		tx.Rollback()
		return nil
	}

	// Already recorded: duplicate delivery, nothing to do.
	var existing models.GoalAssessmentLink
	err := tx.Where("goal_id = ? AND assessment_id = ?", goal.ID, assessment.ID).First(&existing).Error
	if err == nil {
		tx.Rollback()
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return err
	}

	scaled := utils.ScaleScore(*assessment.Score)

	// The first matching assessment fixes the baseline; later ones never
	// move it.
	scoreDelta := 0.0
	if goal.BaselineScore == nil {
		goal.BaselineScore = &scaled
	} else {
		scoreDelta = scaled - *goal.BaselineScore
	}
	goal.CurrentScore = &scaled

	if progress, ok := computeProgress(&goal, scaled, sportComposite); ok {
		goal.ProgressPercent = progress
	}

	link := models.GoalAssessmentLink{
		GoalID:       goal.ID,
		AssessmentID: assessment.ID,
		ScoreDelta:   scoreDelta,
	}
	if err := tx.Create(&link).Error; err != nil {
		tx.Rollback()
		return err
	}

	goal.Roadmap, _ = AdvanceRoadmap(goal.Roadmap, models.StepKindAssessment, assessment.ID)

	if goal.ProgressPercent >= 100 && goal.Status == models.GoalStatusActive {
		now := time.Now()
		goal.Status = models.GoalStatusCompleted
		goal.CompletedAt = &now
		log.Printf("Goal %d completed for player %d", goal.ID, goal.OwnerID)
	}

	if err := tx.Save(&goal).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// computeProgress evaluates the goal-type-specific progress formula. The
// second return is false when the goal is missing its variant configuration,
// in which case progress stays unchanged for this event.
func computeProgress(goal *models.ImprovementGoal, scaled float64, sportComposite *float64) (float64, bool) {
	baseline := *goal.BaselineScore

	switch goal.Type {
	case models.GoalTypeTechniqueImprovement:
		// Fraction of the remaining gap to a perfect score closed.
		if baseline >= utils.MaxScore {
			return 100, true
		}
		return clampPercent((scaled - baseline) / (utils.MaxScore - baseline) * 100), true

	case models.GoalTypeScoreTarget:
		if goal.TargetScore == nil {
			log.Printf("Goal %d has type SCORE_TARGET but no target score, skipping progress", goal.ID)
			return 0, false
		}
		// Target at or below baseline: already met (or malformed); never a
		// division error.
		if *goal.TargetScore <= baseline {
			return 100, true
		}
		return clampPercent((scaled - baseline) / (*goal.TargetScore - baseline) * 100), true

	case models.GoalTypeTierTarget:
		if goal.TargetTier == nil {
			log.Printf("Goal %d has type TIER_TARGET but no target tier, skipping progress", goal.ID)
			return 0, false
		}
		threshold, ok := utils.TierThreshold(utils.Tier(*goal.TargetTier))
		if !ok {
			log.Printf("Goal %d has unknown target tier %q, skipping progress", goal.ID, *goal.TargetTier)
			return 0, false
		}
		if threshold <= 0 {
			return 100, true
		}

		// Compare against the sport-level composite, not just this single
		// assessment. Legacy comparand: whichever of the fresh score and the
		// (possibly lagging) composite is higher.
		effective := scaled
		if sportComposite != nil && *sportComposite > effective {
			effective = *sportComposite
		}

		return clampPercent(effective / threshold * 100), true
	}

	log.Printf("Goal %d has unknown type %q, skipping progress", goal.ID, goal.Type)
	return 0, false
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// OnTrainingPlanLinked attaches a completed training plan to a goal and
// advances the first open training step. Ownership and status are soft
// validations: event call sites are asynchronous, so violations log and
// no-op instead of erroring. Progress percent is untouched here; it derives
// from assessment scores only.
func (s *GoalService) OnTrainingPlanLinked(ownerID, trainingPlanID, goalID uint) error {
	var goal models.ImprovementGoal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Training link: goal %d not found, skipping", goalID)
			return nil
		}
		return err
	}

	if goal.OwnerID != ownerID {
		log.Printf("Training link: goal %d does not belong to player %d, skipping", goalID, ownerID)
		return nil
	}
	if goal.Status != models.GoalStatusActive {
		log.Printf("Training link: goal %d is not active, skipping", goalID)
		return nil
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.First(&goal, goalID).Error; err != nil {
		tx.Rollback()
		return err
	}

	var existing models.GoalTrainingLink
	err := tx.Where("goal_id = ? AND training_plan_id = ?", goalID, trainingPlanID).First(&existing).Error
	if err == nil {
		tx.Rollback()
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return err
	}

	link := models.GoalTrainingLink{
		GoalID:         goalID,
		TrainingPlanID: trainingPlanID,
	}
	if err := tx.Create(&link).Error; err != nil {
		tx.Rollback()
		return err
	}

	goal.Roadmap, _ = AdvanceRoadmap(goal.Roadmap, models.StepKindTraining, trainingPlanID)

	if err := tx.Save(&goal).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// GetGoalsByOwner lists a player's goals, optionally filtered by status.
// Pure read.
func (s *GoalService) GetGoalsByOwner(ownerID uint, status string) ([]models.ImprovementGoal, error) {
	query := s.db.Where("owner_id = ?", ownerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var goals []models.ImprovementGoal
	if err := query.Preload("Techniques").Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}

	return goals, nil
}

func (s *GoalService) GetGoalByID(goalID uint) (*models.ImprovementGoal, error) {
	var goal models.ImprovementGoal
	if err := s.db.Preload("Techniques").First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("goal not found")
		}
		return nil, err
	}

	return &goal, nil
}
