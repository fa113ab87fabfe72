package core

import (
	"log"

	"techniq-api/core/cron"
	"techniq-api/core/handlers"
	"techniq-api/core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	PlayerHandler     *handlers.PlayerHandler
	PlayerService     *services.PlayerService
	AssessmentHandler *handlers.AssessmentHandler
	AssessmentService *services.AssessmentService
	GoalHandler       *handlers.GoalHandler
	GoalService       *services.GoalService
	RatingService     *services.RatingService
	StatsHandler      *handlers.StatsHandler
	StatsService      *services.StatsService
	ResyncService     *services.ResyncService
	Scheduler         *cron.Scheduler
	db                *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	ratingService := services.NewRatingService(db)
	goalService := services.NewGoalService(db, services.NewTemplateRoadmapGenerator())
	assessmentService := services.NewAssessmentService(db, ratingService, goalService)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)

	playerService := services.NewPlayerService(db)
	playerHandler := handlers.NewPlayerHandler(playerService, ratingService)

	goalHandler := handlers.NewGoalHandler(goalService)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Initialize resync service and scheduler
	resyncService := services.NewResyncService(db, ratingService)
	scheduler := cron.NewScheduler(resyncService)

	return &Module{
		PlayerHandler:     playerHandler,
		PlayerService:     playerService,
		AssessmentHandler: assessmentHandler,
		AssessmentService: assessmentService,
		GoalHandler:       goalHandler,
		GoalService:       goalService,
		RatingService:     ratingService,
		StatsHandler:      statsHandler,
		StatsService:      statsService,
		ResyncService:     resyncService,
		Scheduler:         scheduler,
		db:                db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetAllPlayers)
		players.GET("/top", m.PlayerHandler.GetTopPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/ratings", m.PlayerHandler.GetPlayerRatings)
		players.GET("/:id/techniques", m.PlayerHandler.GetTechniqueBreakdown)
		players.GET("/:id/assessments", m.AssessmentHandler.GetPlayerAssessments)
		players.GET("/:id/goals", m.GoalHandler.GetPlayerGoals)
	}

	assessments := r.Group("/assessments")
	{
		assessments.POST("", m.AssessmentHandler.CreateAssessment)
		assessments.GET("/:id", m.AssessmentHandler.GetAssessment)
		assessments.PATCH("/:id/complete", m.AssessmentHandler.CompleteAssessment)
		assessments.PATCH("/:id/fail", m.AssessmentHandler.FailAssessment)
	}

	goals := r.Group("/goals")
	{
		goals.POST("", m.GoalHandler.CreateGoal)
		goals.GET("/:id", m.GoalHandler.GetGoal)
		goals.POST("/:id/training-link", m.GoalHandler.LinkTrainingPlan)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the cron scheduler for rating resync
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunResyncNow manually triggers the rating resync (useful for testing)
func (m *Module) RunResyncNow() {
	log.Println("Manually triggering rating resync...")
	m.Scheduler.RunNow()
}
