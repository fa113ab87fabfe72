package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"techniq-api/core/models"
	"techniq-api/core/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

// GenerateTestData creates 2 sports with techniques, 10 players, a spread of
// completed assessments and a few goals, then runs the rating recomputation
// so the derived tables are populated.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	sports, err := f.generateSports()
	if err != nil {
		return fmt.Errorf("failed to generate sports: %w", err)
	}

	players, err := f.generatePlayers()
	if err != nil {
		return fmt.Errorf("failed to generate players: %w", err)
	}

	if err := f.generateAssessments(players, sports); err != nil {
		return fmt.Errorf("failed to generate assessments: %w", err)
	}

	if err := f.generateGoals(players, sports); err != nil {
		return fmt.Errorf("failed to generate goals: %w", err)
	}

	if err := f.recomputeRatings(players); err != nil {
		return fmt.Errorf("failed to recompute ratings: %w", err)
	}

	log.Println("Fixtures generation completed")
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func (f *Fixtures) generateSports() ([]models.Sport, error) {
	log.Println("Generating sports and techniques...")

	sports := []models.Sport{
		{
			Name: "Tennis",
			Slug: "tennis",
			Techniques: []models.Technique{
				{Name: "Serve", Weight: floatPtr(1.0)},
				{Name: "Forehand", Weight: floatPtr(0.8)},
				{Name: "Backhand", Weight: floatPtr(0.8)},
				{Name: "Volley", Weight: floatPtr(0.5)},
				{Name: "Slice"},
			},
		},
		{
			Name: "Padel",
			Slug: "padel",
			Techniques: []models.Technique{
				{Name: "Bandeja", Weight: floatPtr(1.0)},
				{Name: "Smash", Weight: floatPtr(0.7)},
				{Name: "Wall return", Weight: floatPtr(0.7)},
				{Name: "Lob"},
			},
		},
	}

	for i := range sports {
		if err := f.db.Create(&sports[i]).Error; err != nil {
			return nil, err
		}
	}

	return sports, nil
}

func (f *Fixtures) generatePlayers() ([]models.Player, error) {
	log.Println("Generating players...")

	usernames := []string{
		"ace_hunter", "topspin_tara", "baseline_ben", "volley_vera", "smash_sam",
		"drop_shot_dana", "rally_rick", "slice_sofia", "net_rusher_nico", "lob_lucia",
	}

	players := make([]models.Player, 0, len(usernames))
	for _, username := range usernames {
		player := models.Player{
			Username:     username,
			HeadlineTier: "UNRANKED",
		}
		if err := f.db.Create(&player).Error; err != nil {
			return nil, err
		}
		players = append(players, player)
	}

	return players, nil
}

func (f *Fixtures) generateAssessments(players []models.Player, sports []models.Sport) error {
	log.Println("Generating assessments...")

	now := time.Now()

	for i, player := range players {
		// The first few players get a full technique spread so they end up
		// ranked; later ones stay below the distinct-technique floor.
		sport := sports[i%len(sports)]
		techniqueCount := len(sport.Techniques)
		if i >= 7 {
			techniqueCount = 2
		}

		for t := 0; t < techniqueCount; t++ {
			technique := sport.Techniques[t]
			attempts := 1 + rand.Intn(5)

			for a := 0; a < attempts; a++ {
				completedAt := now.AddDate(0, 0, -rand.Intn(60))
				score := 3.0 + rand.Float64()*6.5

				issues := []string{"late preparation"}
				if rand.Intn(2) == 0 {
					issues = append(issues, "open racket face")
				}

				assessment := models.Assessment{
					PlayerID:    player.ID,
					TechniqueID: technique.ID,
					VideoID:     uuid.New(),
					Status:      models.AssessmentStatusCompleted,
					Score:       &score,
					Issues:      issues,
					CompletedAt: &completedAt,
					CreatedAt:   completedAt.Add(-10 * time.Minute),
				}
				if err := f.db.Create(&assessment).Error; err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (f *Fixtures) generateGoals(players []models.Player, sports []models.Sport) error {
	log.Println("Generating goals...")

	goalService := services.NewGoalService(f.db, services.NewTemplateRoadmapGenerator())

	for i, player := range players[:5] {
		sport := sports[i%len(sports)]
		technique := sport.Techniques[0]

		var spec services.GoalSpec
		switch i % 3 {
		case 0:
			spec = services.TechniqueImprovementSpec{}
		case 1:
			spec = services.ScoreTargetSpec{TargetScore: 80}
		default:
			spec = services.TierTargetSpec{TargetTier: "SILVER"}
		}

		title := fmt.Sprintf("Improve my %s", technique.Name)
		if _, err := goalService.CreateGoal(player.ID, spec, title, "", []uint{technique.ID}); err != nil {
			return err
		}
	}

	return nil
}

func (f *Fixtures) recomputeRatings(players []models.Player) error {
	log.Println("Recomputing ratings...")

	ratingService := services.NewRatingService(f.db)
	for _, player := range players {
		if err := ratingService.RecomputeRating(player.ID); err != nil {
			return err
		}
	}

	return nil
}

// ClearAllData removes all fixture data, children first.
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	tables := []string{
		"goal_training_links",
		"goal_assessment_links",
		"goal_techniques",
		"improvement_goals",
		"player_sport_ratings",
		"technique_scores",
		"assessments",
		"techniques",
		"sports",
		"players",
	}

	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	log.Println("All fixture data cleared")
	return nil
}
