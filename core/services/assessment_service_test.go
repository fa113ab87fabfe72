package services

import (
	"testing"
	"time"

	"techniq-api/core/models"
	"techniq-api/core/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssessmentService(db *gorm.DB) *AssessmentService {
	ratingService := NewRatingService(db)
	goalService := NewGoalService(db, NewTemplateRoadmapGenerator())
	return NewAssessmentService(db, ratingService, goalService)
}

func TestCreateAssessmentValidation(t *testing.T) {
	db := setupTestDB(t)
	service := newAssessmentService(db)

	player := createPlayer(t, db, "uploader")
	sport := createSport(t, db, "tennis")
	technique := createTechnique(t, db, sport, "Forehand", weightPtr(1.0))

	_, err := service.CreateAssessment(models.CreateAssessmentRequest{
		PlayerID:    player.ID,
		TechniqueID: technique.ID,
		VideoID:     "not-a-uuid",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid video id", err.Error())

	_, err = service.CreateAssessment(models.CreateAssessmentRequest{
		PlayerID:    9999,
		TechniqueID: technique.ID,
		VideoID:     uuid.NewString(),
	})
	require.Error(t, err)
	assert.Equal(t, "player not found", err.Error())

	_, err = service.CreateAssessment(models.CreateAssessmentRequest{
		PlayerID:    player.ID,
		TechniqueID: 9999,
		VideoID:     uuid.NewString(),
	})
	require.Error(t, err)
	assert.Equal(t, "technique not found", err.Error())

	created, err := service.CreateAssessment(models.CreateAssessmentRequest{
		PlayerID:    player.ID,
		TechniqueID: technique.ID,
		VideoID:     uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.AssessmentStatusPending, created.Status)
	assert.Nil(t, created.Score)
}

func TestCompleteAssessmentFansOut(t *testing.T) {
	db := setupTestDB(t)
	service := newAssessmentService(db)

	player := createPlayer(t, db, "uploader")
	sport := createSport(t, db, "tennis")
	technique := createTechnique(t, db, sport, "Forehand", weightPtr(1.0))

	goalService := NewGoalService(db, NewTemplateRoadmapGenerator())
	goal, err := goalService.CreateGoal(player.ID, TechniqueImprovementSpec{}, "Sharper forehand", "", []uint{technique.ID})
	require.NoError(t, err)

	created, err := service.CreateAssessment(models.CreateAssessmentRequest{
		PlayerID:    player.ID,
		TechniqueID: technique.ID,
		VideoID:     uuid.NewString(),
	})
	require.NoError(t, err)

	score := 6.5
	completed, err := service.CompleteAssessment(created.ID, models.CompleteAssessmentRequest{
		Score:  &score,
		Issues: []string{"late preparation"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.AssessmentStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.Len(t, completed.Issues, 1)

	// Rating consumer ran: a (still unranked) sport row exists for the
	// single assessed technique.
	var rating models.PlayerSportRating
	require.NoError(t, db.Where("player_id = ? AND sport_id = ?", player.ID, sport.ID).First(&rating).Error)
	assert.Nil(t, rating.CompositeScore)
	assert.Equal(t, string(utils.TierUnranked), rating.Tier)
	assert.Equal(t, 1, rating.TotalAssessments)

	// Goal consumer ran: the baseline is fixed from the same event.
	var updated models.ImprovementGoal
	require.NoError(t, db.First(&updated, goal.ID).Error)
	require.NotNil(t, updated.BaselineScore)
	assert.InDelta(t, 65.0, *updated.BaselineScore, 0.001)
}

func TestCompleteAssessmentGuards(t *testing.T) {
	db := setupTestDB(t)
	service := newAssessmentService(db)

	player := createPlayer(t, db, "uploader")
	sport := createSport(t, db, "tennis")
	technique := createTechnique(t, db, sport, "Forehand", weightPtr(1.0))

	created, err := service.CreateAssessment(models.CreateAssessmentRequest{
		PlayerID:    player.ID,
		TechniqueID: technique.ID,
		VideoID:     uuid.NewString(),
	})
	require.NoError(t, err)

	badScore := 11.0
	_, err = service.CompleteAssessment(created.ID, models.CompleteAssessmentRequest{Score: &badScore})
	require.Error(t, err)
	assert.Equal(t, "score must be between 0 and 10", err.Error())

	_, err = service.CompleteAssessment(created.ID, models.CompleteAssessmentRequest{})
	require.Error(t, err)
	assert.Equal(t, "score must be between 0 and 10", err.Error())

	score := 7.0
	_, err = service.CompleteAssessment(created.ID, models.CompleteAssessmentRequest{Score: &score})
	require.NoError(t, err)

	_, err = service.CompleteAssessment(created.ID, models.CompleteAssessmentRequest{Score: &score})
	require.Error(t, err)
	assert.Equal(t, "assessment is already completed", err.Error())

	_, err = service.CompleteAssessment(9999, models.CompleteAssessmentRequest{Score: &score})
	require.Error(t, err)
	assert.Equal(t, "assessment not found", err.Error())

	_, err = service.FailAssessment(created.ID)
	require.Error(t, err)
	assert.Equal(t, "assessment is already completed", err.Error())
}

func TestFailAssessment(t *testing.T) {
	db := setupTestDB(t)
	service := newAssessmentService(db)

	player := createPlayer(t, db, "uploader")
	sport := createSport(t, db, "tennis")
	technique := createTechnique(t, db, sport, "Forehand", weightPtr(1.0))

	created, err := service.CreateAssessment(models.CreateAssessmentRequest{
		PlayerID:    player.ID,
		TechniqueID: technique.ID,
		VideoID:     uuid.NewString(),
	})
	require.NoError(t, err)

	failed, err := service.FailAssessment(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssessmentStatusFailed, failed.Status)

	score := 7.0
	_, err = service.CompleteAssessment(created.ID, models.CompleteAssessmentRequest{Score: &score})
	require.Error(t, err)
	assert.Equal(t, "assessment has failed", err.Error())
}

func TestGetPlayerAssessmentsPagination(t *testing.T) {
	db := setupTestDB(t)
	service := newAssessmentService(db)

	player := createPlayer(t, db, "uploader")
	sport := createSport(t, db, "tennis")
	technique := createTechnique(t, db, sport, "Forehand", weightPtr(1.0))

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		createCompletedAssessment(t, db, player, technique, 5.0, now.Add(time.Duration(i-5)*time.Hour))
	}

	page, err := service.GetPlayerAssessments(player.ID, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 2)

	last, err := service.GetPlayerAssessments(player.ID, "", 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.Data, 1)

	completedOnly, err := service.GetPlayerAssessments(player.ID, models.AssessmentStatusCompleted, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), completedOnly.Total)

	failedOnly, err := service.GetPlayerAssessments(player.ID, models.AssessmentStatusFailed, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), failedOnly.Total)
}
