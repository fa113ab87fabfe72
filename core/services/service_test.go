package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"techniq-api/core/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Player{},
		&models.Sport{},
		&models.Technique{},
		&models.Assessment{},
		&models.TechniqueScore{},
		&models.PlayerSportRating{},
		&models.ImprovementGoal{},
		&models.GoalAssessmentLink{},
		&models.GoalTrainingLink{},
	))

	return db
}

func createPlayer(t *testing.T, db *gorm.DB, username string) models.Player {
	t.Helper()

	player := models.Player{
		Username:     username,
		HeadlineTier: "UNRANKED",
	}
	require.NoError(t, db.Create(&player).Error)
	return player
}

func createSport(t *testing.T, db *gorm.DB, slug string) models.Sport {
	t.Helper()

	sport := models.Sport{
		Name: slug,
		Slug: slug,
	}
	require.NoError(t, db.Create(&sport).Error)
	return sport
}

func createTechnique(t *testing.T, db *gorm.DB, sport models.Sport, name string, weight *float64) models.Technique {
	t.Helper()

	technique := models.Technique{
		SportID: sport.ID,
		Name:    name,
		Weight:  weight,
	}
	require.NoError(t, db.Create(&technique).Error)
	return technique
}

// createCompletedAssessment inserts a completed assessment with a raw 0-10
// score, bypassing the service layer.
func createCompletedAssessment(t *testing.T, db *gorm.DB, player models.Player, technique models.Technique, rawScore float64, completedAt time.Time) models.Assessment {
	t.Helper()

	assessment := models.Assessment{
		PlayerID:    player.ID,
		TechniqueID: technique.ID,
		VideoID:     uuid.New(),
		Status:      models.AssessmentStatusCompleted,
		Score:       &rawScore,
		CompletedAt: &completedAt,
	}
	require.NoError(t, db.Create(&assessment).Error)
	return assessment
}

func weightPtr(w float64) *float64 { return &w }
