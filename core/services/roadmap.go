package services

import (
	"fmt"

	"techniq-api/core/models"
)

// RoadmapGenerator produces the ordered step checklist for a new goal. The
// default implementation below is template-based; an AI-backed generator can
// be swapped in as long as it honors the same contract: 3 to 5 steps, first
// and last of kind assessment, kinds interleaved in between.
type RoadmapGenerator interface {
	Generate(goalType string, title string, techniques []models.Technique) []models.RoadmapStep
}

type TemplateRoadmapGenerator struct{}

func NewTemplateRoadmapGenerator() *TemplateRoadmapGenerator {
	return &TemplateRoadmapGenerator{}
}

func (g *TemplateRoadmapGenerator) Generate(goalType string, title string, techniques []models.Technique) []models.RoadmapStep {
	focus := "your technique"
	if len(techniques) > 0 {
		focus = techniques[0].Name
	}

	if goalType == models.GoalTypeTierTarget {
		return []models.RoadmapStep{
			{Order: 1, Kind: models.StepKindAssessment, Title: "Baseline assessment", Description: fmt.Sprintf("Record a video of %s to establish your starting point", focus)},
			{Order: 2, Kind: models.StepKindTraining, Title: "Targeted training block", Description: "Complete a training plan focused on your weakest techniques"},
			{Order: 3, Kind: models.StepKindAssessment, Title: "Re-assessment", Description: fmt.Sprintf("Record %s again and compare against your baseline", focus)},
		}
	}

	return []models.RoadmapStep{
		{Order: 1, Kind: models.StepKindAssessment, Title: "Baseline assessment", Description: fmt.Sprintf("Record a video of %s to establish your starting point", focus)},
		{Order: 2, Kind: models.StepKindTraining, Title: "First training block", Description: "Work through the drills addressing your top issues"},
		{Order: 3, Kind: models.StepKindAssessment, Title: "Progress check", Description: fmt.Sprintf("Record %s again to measure improvement", focus)},
		{Order: 4, Kind: models.StepKindTraining, Title: "Refinement block", Description: "Repeat the drills that still show issues"},
		{Order: 5, Kind: models.StepKindAssessment, Title: "Final assessment", Description: "Record a final video to close out the goal"},
	}
}

// AdvanceRoadmap marks the first not-yet-completed step of the given kind as
// done and attaches the triggering entity. It returns a new slice so the
// caller can persist the whole roadmap atomically; the second return reports
// whether any step was advanced.
func AdvanceRoadmap(roadmap []models.RoadmapStep, kind string, linkedEntityID uint) ([]models.RoadmapStep, bool) {
	out := make([]models.RoadmapStep, len(roadmap))
	copy(out, roadmap)

	for i := range out {
		if out[i].Kind != kind || out[i].Completed {
			continue
		}
		id := linkedEntityID
		out[i].Completed = true
		out[i].LinkedEntityID = &id
		return out, true
	}

	return out, false
}
