package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_06_10_000000_create_core_tables",
			Up: func(db *gorm.DB) error {
				// Create players table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						username VARCHAR(255) NOT NULL,
						headline_rating FLOAT NULL,
						headline_tier VARCHAR(20) DEFAULT 'UNRANKED',
						total_assessments INT DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_players_deleted_at ON players(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_players_headline_rating ON players(headline_rating);
				`).Error; err != nil {
					return err
				}

				// Create sports and techniques tables
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS sports (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						slug VARCHAR(100) NOT NULL UNIQUE,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_sports_deleted_at ON sports(deleted_at);

					CREATE TABLE IF NOT EXISTS techniques (
						id BIGSERIAL PRIMARY KEY,
						sport_id BIGINT NOT NULL,
						name VARCHAR(255) NOT NULL,
						description TEXT,
						weight FLOAT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (sport_id) REFERENCES sports(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_techniques_deleted_at ON techniques(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_techniques_sport_id ON techniques(sport_id);
				`).Error; err != nil {
					return err
				}

				// Create assessments table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS assessments (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						technique_id BIGINT NOT NULL,
						video_id UUID NOT NULL,
						status VARCHAR(20) DEFAULT 'pending',
						score FLOAT NULL,
						issues JSONB,
						completed_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (technique_id) REFERENCES techniques(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_assessments_deleted_at ON assessments(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_assessments_player_id ON assessments(player_id);
					CREATE INDEX IF NOT EXISTS idx_assessments_technique_id ON assessments(technique_id);
					CREATE INDEX IF NOT EXISTS idx_assessments_status ON assessments(status);
				`).Error; err != nil {
					return err
				}

				// Create technique_scores and player_sport_ratings tables
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS technique_scores (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						technique_id BIGINT NOT NULL,
						sport_id BIGINT NOT NULL,
						best_score FLOAT NOT NULL,
						average_score FLOAT NOT NULL,
						assessment_count INT NOT NULL,
						score_history JSONB,
						last_assessment_id BIGINT,
						last_assessed_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (technique_id) REFERENCES techniques(id) ON DELETE CASCADE,
						UNIQUE (player_id, technique_id)
					);
					CREATE INDEX IF NOT EXISTS idx_technique_scores_sport_id ON technique_scores(sport_id);

					CREATE TABLE IF NOT EXISTS player_sport_ratings (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						sport_id BIGINT NOT NULL,
						composite_score FLOAT NULL,
						tier VARCHAR(20) DEFAULT 'UNRANKED',
						total_assessments INT DEFAULT 0,
						total_techniques INT DEFAULT 0,
						last_updated_at TIMESTAMP DEFAULT NOW(),
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (sport_id) REFERENCES sports(id) ON DELETE CASCADE,
						UNIQUE (player_id, sport_id)
					);
					CREATE INDEX IF NOT EXISTS idx_player_sport_ratings_deleted_at ON player_sport_ratings(deleted_at);
				`).Error; err != nil {
					return err
				}

				// Create goal tables
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS improvement_goals (
						id BIGSERIAL PRIMARY KEY,
						owner_id BIGINT NOT NULL,
						type VARCHAR(30) NOT NULL,
						title VARCHAR(255) NOT NULL,
						description TEXT,
						target_score FLOAT NULL,
						target_tier VARCHAR(20) NULL,
						baseline_score FLOAT NULL,
						current_score FLOAT NULL,
						progress_percent FLOAT DEFAULT 0,
						status VARCHAR(20) DEFAULT 'ACTIVE',
						roadmap JSONB,
						completed_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (owner_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_improvement_goals_deleted_at ON improvement_goals(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_improvement_goals_owner_id ON improvement_goals(owner_id);
					CREATE INDEX IF NOT EXISTS idx_improvement_goals_status ON improvement_goals(status);

					CREATE TABLE IF NOT EXISTS goal_techniques (
						improvement_goal_id BIGINT NOT NULL,
						technique_id BIGINT NOT NULL,
						PRIMARY KEY (improvement_goal_id, technique_id),
						FOREIGN KEY (improvement_goal_id) REFERENCES improvement_goals(id) ON DELETE CASCADE,
						FOREIGN KEY (technique_id) REFERENCES techniques(id) ON DELETE CASCADE
					);

					CREATE TABLE IF NOT EXISTS goal_assessment_links (
						id BIGSERIAL PRIMARY KEY,
						goal_id BIGINT NOT NULL,
						assessment_id BIGINT NOT NULL,
						score_delta FLOAT DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (goal_id) REFERENCES improvement_goals(id) ON DELETE CASCADE,
						FOREIGN KEY (assessment_id) REFERENCES assessments(id) ON DELETE CASCADE,
						UNIQUE (goal_id, assessment_id)
					);

					CREATE TABLE IF NOT EXISTS goal_training_links (
						id BIGSERIAL PRIMARY KEY,
						goal_id BIGINT NOT NULL,
						training_plan_id BIGINT NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (goal_id) REFERENCES improvement_goals(id) ON DELETE CASCADE,
						UNIQUE (goal_id, training_plan_id)
					);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS goal_training_links;
					DROP TABLE IF EXISTS goal_assessment_links;
					DROP TABLE IF EXISTS goal_techniques;
					DROP TABLE IF EXISTS improvement_goals;
					DROP TABLE IF EXISTS player_sport_ratings;
					DROP TABLE IF EXISTS technique_scores;
					DROP TABLE IF EXISTS assessments;
					DROP TABLE IF EXISTS techniques;
					DROP TABLE IF EXISTS sports;
					DROP TABLE IF EXISTS players;
				`).Error
			},
		},
	}
}

func GetAllMigrations() []MigrationDefinition {
	return GetCoreMigrations()
}
