package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assessment statuses. An assessment only feeds the rating and goal engines
// once it reaches "completed" with a non-nil score.
const (
	AssessmentStatusPending    = "pending"
	AssessmentStatusProcessing = "processing"
	AssessmentStatusCompleted  = "completed"
	AssessmentStatusFailed     = "failed"
)

type Assessment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID    uint      `gorm:"not null;index" json:"player_id"`
	TechniqueID uint      `gorm:"not null;index" json:"technique_id"`
	VideoID     uuid.UUID `gorm:"type:uuid;not null" json:"video_id"`
	Status      string    `gorm:"size:20;default:pending;index" json:"status"`
	// Raw producer score on the 0-10 scale; nil until the assessment completes.
	Score       *float64                    `json:"score"`
	Issues      datatypes.JSONSlice[string] `json:"issues,omitempty"`
	CompletedAt *time.Time                  `json:"completed_at"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"-"`

	// Relationships
	Player    Player    `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Technique Technique `gorm:"foreignKey:TechniqueID;references:ID" json:"technique,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

type CreateAssessmentRequest struct {
	PlayerID    uint   `json:"player_id" binding:"required"`
	TechniqueID uint   `json:"technique_id" binding:"required"`
	VideoID     string `json:"video_id" binding:"required"`
}

// CompleteAssessmentRequest is what the assessment producer posts back once
// the video has been scored.
type CompleteAssessmentRequest struct {
	Score  *float64 `json:"score" binding:"required"`
	Issues []string `json:"issues"`
}

type PaginatedAssessmentsResponse struct {
	Data       []Assessment `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}
