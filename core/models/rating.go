package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScoreSample is one entry of a technique's rolling score window.
type ScoreSample struct {
	AssessmentID uint    `json:"assessment_id"`
	Score        float64 `json:"score"`
}

// TechniqueScore holds the rolling per-technique aggregate for one player.
// Rows are created and updated exclusively by the rating recomputation.
type TechniqueScore struct {
	ID          uint `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID    uint `gorm:"not null;uniqueIndex:idx_technique_scores_player_technique" json:"player_id"`
	TechniqueID uint `gorm:"not null;uniqueIndex:idx_technique_scores_player_technique" json:"technique_id"`
	SportID     uint `gorm:"not null;index" json:"sport_id"`
	// Aggregates over the most recent assessments, window capped at 3.
	BestScore        float64                          `gorm:"not null" json:"best_score"`
	AverageScore     float64                          `gorm:"not null" json:"average_score"`
	AssessmentCount  int                              `gorm:"not null" json:"assessment_count"`
	ScoreHistory     datatypes.JSONSlice[ScoreSample] `json:"score_history"`
	LastAssessmentID uint                             `json:"last_assessment_id"`
	LastAssessedAt   *time.Time                       `json:"last_assessed_at"`
	CreatedAt        time.Time                        `json:"created_at"`
	UpdatedAt        time.Time                        `json:"updated_at"`

	// Relationships
	Technique Technique `gorm:"foreignKey:TechniqueID;references:ID" json:"technique,omitempty"`
}

func (TechniqueScore) TableName() string {
	return "technique_scores"
}

// PlayerSportRating is the per-sport composite rating row.
// CompositeScore is nil exactly when Tier is UNRANKED.
type PlayerSportRating struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID         uint           `gorm:"not null;uniqueIndex:idx_player_sport_ratings_player_sport" json:"player_id"`
	SportID          uint           `gorm:"not null;uniqueIndex:idx_player_sport_ratings_player_sport" json:"sport_id"`
	CompositeScore   *float64       `json:"composite_score"`
	Tier             string         `gorm:"size:20;default:UNRANKED" json:"tier"`
	TotalAssessments int            `gorm:"default:0" json:"total_assessments"`
	TotalTechniques  int            `gorm:"default:0" json:"total_techniques"`
	LastUpdatedAt    time.Time      `json:"last_updated_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sport Sport `gorm:"foreignKey:SportID;references:ID" json:"sport,omitempty"`
}

func (PlayerSportRating) TableName() string {
	return "player_sport_ratings"
}

// PlayerRatingsResponse is the read contract for a player's rating surface.
type PlayerRatingsResponse struct {
	PlayerID       uint                `json:"player_id"`
	HeadlineRating *float64            `json:"headline_rating"`
	HeadlineTier   string              `json:"headline_tier"`
	Sports         []PlayerSportRating `json:"sports"`
}
