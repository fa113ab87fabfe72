package services

import (
	"errors"
	"log"
	"time"

	"techniq-api/core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentService struct {
	db            *gorm.DB
	ratingService *RatingService
	goalService   *GoalService
}

func NewAssessmentService(db *gorm.DB, ratingService *RatingService, goalService *GoalService) *AssessmentService {
	return &AssessmentService{
		db:            db,
		ratingService: ratingService,
		goalService:   goalService,
	}
}

func (s *AssessmentService) GetAssessmentByID(id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	result := s.db.Preload("Technique").First(&assessment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("assessment not found")
		}
		return nil, result.Error
	}

	return &assessment, nil
}

// CreateAssessment records a pending assessment for an uploaded video. The
// score arrives later via CompleteAssessment once the producer has processed
// the video.
func (s *AssessmentService) CreateAssessment(req models.CreateAssessmentRequest) (*models.Assessment, error) {
	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		return nil, errors.New("invalid video id")
	}

	if err := s.db.First(&models.Player{}, req.PlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("player not found")
		}
		return nil, err
	}

	if err := s.db.First(&models.Technique{}, req.TechniqueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("technique not found")
		}
		return nil, err
	}

	assessment := models.Assessment{
		PlayerID:    req.PlayerID,
		TechniqueID: req.TechniqueID,
		VideoID:     videoID,
		Status:      models.AssessmentStatusPending,
	}

	if err := s.db.Create(&assessment).Error; err != nil {
		return nil, err
	}

	return &assessment, nil
}

// CompleteAssessment is the terminal-success transition: it stores the
// producer's score and fans the event out to the rating calculator and the
// goal tracker. The two consumers are independent and make no ordering
// assumption between each other; both recover from a missed invocation on
// the next event (or the resync sweep), so their failures are logged rather
// than surfaced.
func (s *AssessmentService) CompleteAssessment(id uint, req models.CompleteAssessmentRequest) (*models.Assessment, error) {
	if req.Score == nil || *req.Score < 0 || *req.Score > 10 {
		return nil, errors.New("score must be between 0 and 10")
	}

	var assessment models.Assessment
	if err := s.db.First(&assessment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("assessment not found")
		}
		return nil, err
	}

	if assessment.Status == models.AssessmentStatusCompleted {
		return nil, errors.New("assessment is already completed")
	}
	if assessment.Status == models.AssessmentStatusFailed {
		return nil, errors.New("assessment has failed")
	}

	now := time.Now()
	assessment.Status = models.AssessmentStatusCompleted
	assessment.Score = req.Score
	assessment.Issues = req.Issues
	assessment.CompletedAt = &now

	if err := s.db.Save(&assessment).Error; err != nil {
		return nil, err
	}

	s.dispatchCompleted(assessment.PlayerID, assessment.ID)

	return &assessment, nil
}

// dispatchCompleted notifies both engine consumers of a completed
// assessment.
func (s *AssessmentService) dispatchCompleted(playerID, assessmentID uint) {
	if err := s.ratingService.RecomputeRating(playerID); err != nil {
		log.Printf("Error recomputing rating for player %d after assessment %d: %v", playerID, assessmentID, err)
	}

	if err := s.goalService.OnAssessmentCompleted(playerID, assessmentID); err != nil {
		log.Printf("Error updating goals for player %d after assessment %d: %v", playerID, assessmentID, err)
	}
}

// FailAssessment marks a pending or processing assessment as failed. Failed
// assessments never feed the engines.
func (s *AssessmentService) FailAssessment(id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.db.First(&assessment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("assessment not found")
		}
		return nil, err
	}

	if assessment.Status == models.AssessmentStatusCompleted {
		return nil, errors.New("assessment is already completed")
	}

	assessment.Status = models.AssessmentStatusFailed
	if err := s.db.Save(&assessment).Error; err != nil {
		return nil, err
	}

	return &assessment, nil
}

// GetPlayerAssessments lists a player's assessments newest first with
// pagination.
func (s *AssessmentService) GetPlayerAssessments(playerID uint, status string, page, pageSize int) (*models.PaginatedAssessmentsResponse, error) {
	baseQuery := s.db.Model(&models.Assessment{}).Where("player_id = ?", playerID)
	if status != "" {
		baseQuery = baseQuery.Where("status = ?", status)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	var assessments []models.Assessment
	if err := baseQuery.Order("created_at DESC").
		Preload("Technique").
		Offset(offset).
		Limit(pageSize).
		Find(&assessments).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedAssessmentsResponse{
		Data:       assessments,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
