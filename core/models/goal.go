package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GoalTypeTechniqueImprovement = "TECHNIQUE_IMPROVEMENT"
	GoalTypeScoreTarget          = "SCORE_TARGET"
	GoalTypeTierTarget           = "TIER_TARGET"

	GoalStatusActive    = "ACTIVE"
	GoalStatusCompleted = "COMPLETED"
)

// Roadmap step kinds. A step is advanced by a completed assessment or a
// linked training plan, depending on its kind.
const (
	StepKindAssessment = "assessment"
	StepKindTraining   = "training"
)

// RoadmapStep is one entry of a goal's ordered checklist.
type RoadmapStep struct {
	Order          int    `json:"order"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Kind           string `json:"kind"`
	Completed      bool   `json:"completed"`
	LinkedEntityID *uint  `json:"linked_entity_id,omitempty"`
}

type ImprovementGoal struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Type        string `gorm:"size:30;not null" json:"type"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	// Variant fields: TargetScore for SCORE_TARGET, TargetTier for TIER_TARGET.
	TargetScore *float64 `json:"target_score,omitempty"`
	TargetTier  *string  `gorm:"size:20" json:"target_tier,omitempty"`
	// BaselineScore is fixed by the first matching assessment after creation.
	BaselineScore   *float64                         `json:"baseline_score"`
	CurrentScore    *float64                         `json:"current_score"`
	ProgressPercent float64                          `gorm:"default:0" json:"progress_percent"`
	Status          string                           `gorm:"size:20;default:ACTIVE;index" json:"status"`
	Roadmap         datatypes.JSONSlice[RoadmapStep] `json:"roadmap"`
	CompletedAt     *time.Time                       `json:"completed_at"`
	CreatedAt       time.Time                        `json:"created_at"`
	UpdatedAt       time.Time                        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt                   `gorm:"index" json:"-"`

	// Relationships
	Techniques []Technique `gorm:"many2many:goal_techniques" json:"techniques,omitempty"`
}

func (ImprovementGoal) TableName() string {
	return "improvement_goals"
}

// GoalAssessmentLink records that an assessment has been applied to a goal.
// The (goal, assessment) unique key is what makes duplicate event delivery
// harmless.
type GoalAssessmentLink struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GoalID       uint      `gorm:"not null;uniqueIndex:idx_goal_assessment_links_goal_assessment" json:"goal_id"`
	AssessmentID uint      `gorm:"not null;uniqueIndex:idx_goal_assessment_links_goal_assessment" json:"assessment_id"`
	ScoreDelta   float64   `gorm:"default:0" json:"score_delta"`
	CreatedAt    time.Time `json:"created_at"`
}

func (GoalAssessmentLink) TableName() string {
	return "goal_assessment_links"
}

type GoalTrainingLink struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GoalID         uint      `gorm:"not null;uniqueIndex:idx_goal_training_links_goal_plan" json:"goal_id"`
	TrainingPlanID uint      `gorm:"not null;uniqueIndex:idx_goal_training_links_goal_plan" json:"training_plan_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (GoalTrainingLink) TableName() string {
	return "goal_training_links"
}

type CreateGoalRequest struct {
	OwnerID      uint     `json:"owner_id" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	TechniqueIDs []uint   `json:"technique_ids" binding:"required"`
	TargetScore  *float64 `json:"target_score"`
	TargetTier   *string  `json:"target_tier"`
}

type LinkTrainingPlanRequest struct {
	OwnerID        uint `json:"owner_id" binding:"required"`
	TrainingPlanID uint `json:"training_plan_id" binding:"required"`
}
