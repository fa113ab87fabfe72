package models

import (
	"time"

	"gorm.io/gorm"
)

type Sport struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Techniques []Technique `gorm:"foreignKey:SportID" json:"techniques,omitempty"`
}

func (Sport) TableName() string {
	return "sports"
}

type Technique struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SportID     uint           `gorm:"not null;index" json:"sport_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	// Weight used by the rating aggregation; nil means the engine default applies.
	Weight    *float64       `json:"weight,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sport Sport `gorm:"foreignKey:SportID;references:ID" json:"sport,omitempty"`
}

func (Technique) TableName() string {
	return "techniques"
}
