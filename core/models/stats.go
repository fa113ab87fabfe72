package models

type Stats struct {
	TotalPlayers             int64 `json:"total_players"`
	TotalAssessments         int64 `json:"total_assessments"`
	AssessmentsLast7Days     int64 `json:"assessments_last_7_days"`
	AssessmentsPrevious7Days int64 `json:"assessments_previous_7_days"`
	ActiveGoals              int64 `json:"active_goals"`
	CompletedGoals           int64 `json:"completed_goals"`
}
