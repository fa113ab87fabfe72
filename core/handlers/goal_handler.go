package handlers

import (
	"net/http"
	"strconv"

	"techniq-api/core/models"
	"techniq-api/core/services"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// CreateGoal creates an improvement goal
// @Summary Create an improvement goal
// @Description Create a goal with its roadmap; target fields depend on the goal type
// @Tags goals
// @Accept json
// @Produce json
// @Param goal body models.CreateGoalRequest true "Goal to create"
// @Success 201 {object} models.ImprovementGoal
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	spec, err := services.SpecFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	goal, err := h.goalService.CreateGoal(req.OwnerID, spec, req.Title, req.Description, req.TechniqueIDs)
	if err != nil {
		switch err.Error() {
		case "player not found", "technique not found", "at least one technique is required":
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create goal",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// GetGoal retrieves a goal by ID
// @Summary Get goal by ID
// @Description Get a goal with its roadmap, progress and linked techniques
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} models.ImprovementGoal
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid goal ID",
		})
		return
	}

	goal, err := h.goalService.GetGoalByID(uint(id))
	if err != nil {
		if err.Error() == "goal not found" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Goal not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, goal)
}

// GetPlayerGoals lists a player's goals
// @Summary Get goals for a player
// @Description Get a player's goals with roadmap and progress, optionally filtered by status
// @Tags goals
// @Produce json
// @Param id path int true "Player ID"
// @Param status query string false "Filter by status: 'ACTIVE' or 'COMPLETED'"
// @Success 200 {array} models.ImprovementGoal
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/goals [get]
func (h *GoalHandler) GetPlayerGoals(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid player ID",
		})
		return
	}

	status := c.Query("status")
	if status != "" && status != models.GoalStatusActive && status != models.GoalStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid status parameter",
		})
		return
	}

	goals, err := h.goalService.GetGoalsByOwner(uint(id), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve goals",
		})
		return
	}

	c.JSON(http.StatusOK, goals)
}

// LinkTrainingPlan attaches a completed training plan to a goal
// @Summary Link a training plan to a goal
// @Description Record a completed training plan against a goal and advance its roadmap
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param link body models.LinkTrainingPlanRequest true "Training plan link"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /goals/{id}/training-link [post]
func (h *GoalHandler) LinkTrainingPlan(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid goal ID",
		})
		return
	}

	var req models.LinkTrainingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	// Ownership and status violations are soft no-ops by design; the event
	// source may be replaying stale data.
	if err := h.goalService.OnTrainingPlanLinked(req.OwnerID, req.TrainingPlanID, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to link training plan",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
