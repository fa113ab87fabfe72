package services

import (
	"time"

	"techniq-api/core/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var totalPlayers int64
	var totalAssessments int64
	var assessmentsLast7Days int64
	var assessmentsPrevious7Days int64
	var activeGoals int64
	var completedGoals int64

	// Count total players
	if err := s.db.Model(&models.Player{}).Count(&totalPlayers).Error; err != nil {
		return nil, err
	}

	// Count total completed assessments
	if err := s.db.Model(&models.Assessment{}).
		Where("status = ?", models.AssessmentStatusCompleted).
		Count(&totalAssessments).Error; err != nil {
		return nil, err
	}

	// Calculate date ranges
	now := time.Now()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)
	previous7DaysEnd := last7DaysStart

	// Count assessments completed in the last 7 days
	if err := s.db.Model(&models.Assessment{}).
		Where("status = ? AND completed_at >= ?", models.AssessmentStatusCompleted, last7DaysStart).
		Count(&assessmentsLast7Days).Error; err != nil {
		return nil, err
	}

	// Count assessments completed in the previous 7 days (7-14 days ago)
	if err := s.db.Model(&models.Assessment{}).
		Where("status = ? AND completed_at >= ? AND completed_at < ?", models.AssessmentStatusCompleted, previous7DaysStart, previous7DaysEnd).
		Count(&assessmentsPrevious7Days).Error; err != nil {
		return nil, err
	}

	// Count goals by status
	if err := s.db.Model(&models.ImprovementGoal{}).
		Where("status = ?", models.GoalStatusActive).
		Count(&activeGoals).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ImprovementGoal{}).
		Where("status = ?", models.GoalStatusCompleted).
		Count(&completedGoals).Error; err != nil {
		return nil, err
	}

	stats := &models.Stats{
		TotalPlayers:             totalPlayers,
		TotalAssessments:         totalAssessments,
		AssessmentsLast7Days:     assessmentsLast7Days,
		AssessmentsPrevious7Days: assessmentsPrevious7Days,
		ActiveGoals:              activeGoals,
		CompletedGoals:           completedGoals,
	}

	return stats, nil
}
