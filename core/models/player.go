package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:255;not null" json:"username"`
	// Headline rating: denormalized copy of the player's best ranked sport.
	// Written only by the rating recomputation, never hand-edited.
	HeadlineRating   *float64       `json:"headline_rating"`
	HeadlineTier     string         `gorm:"size:20;default:UNRANKED" json:"headline_tier"`
	TotalAssessments int            `gorm:"default:0" json:"total_assessments"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Assessments  []Assessment        `gorm:"foreignKey:PlayerID" json:"assessments,omitempty"`
	SportRatings []PlayerSportRating `gorm:"foreignKey:PlayerID" json:"sport_ratings,omitempty"`
	Goals        []ImprovementGoal   `gorm:"foreignKey:OwnerID" json:"goals,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

type PaginatedPlayersResponse struct {
	Data       []Player `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}
