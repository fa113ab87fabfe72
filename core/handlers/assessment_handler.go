package handlers

import (
	"net/http"
	"strconv"

	"techniq-api/core/models"
	"techniq-api/core/services"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	assessmentService *services.AssessmentService
}

func NewAssessmentHandler(assessmentService *services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
	}
}

// CreateAssessment records a pending assessment for an uploaded video
// @Summary Create an assessment
// @Description Record a pending assessment awaiting a score from the video analysis pipeline
// @Tags assessments
// @Accept json
// @Produce json
// @Param assessment body models.CreateAssessmentRequest true "Assessment to create"
// @Success 201 {object} models.Assessment
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req models.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	assessment, err := h.assessmentService.CreateAssessment(req)
	if err != nil {
		switch err.Error() {
		case "player not found", "technique not found", "invalid video id":
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create assessment",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// GetAssessment retrieves an assessment by ID
// @Summary Get assessment by ID
// @Tags assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid assessment ID",
		})
		return
	}

	assessment, err := h.assessmentService.GetAssessmentByID(uint(id))
	if err != nil {
		if err.Error() == "assessment not found" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Assessment not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// CompleteAssessment stores the producer's score and triggers the engines
// @Summary Complete an assessment
// @Description Mark an assessment as completed with its score; ratings and goal progress update as a consequence
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment ID"
// @Param result body models.CompleteAssessmentRequest true "Score and issues from the producer"
// @Success 200 {object} models.Assessment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assessments/{id}/complete [patch]
func (h *AssessmentHandler) CompleteAssessment(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid assessment ID",
		})
		return
	}

	var req models.CompleteAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	assessment, err := h.assessmentService.CompleteAssessment(uint(id), req)
	if err != nil {
		switch err.Error() {
		case "assessment not found":
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Assessment not found",
			})
		case "assessment is already completed", "assessment has failed":
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
		case "score must be between 0 and 10":
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to complete assessment",
			})
		}
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// FailAssessment marks an assessment as failed
// @Summary Fail an assessment
// @Description Mark an assessment as failed; it will never feed ratings or goals
// @Tags assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assessments/{id}/fail [patch]
func (h *AssessmentHandler) FailAssessment(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid assessment ID",
		})
		return
	}

	assessment, err := h.assessmentService.FailAssessment(uint(id))
	if err != nil {
		switch err.Error() {
		case "assessment not found":
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Assessment not found",
			})
		case "assessment is already completed":
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update assessment",
			})
		}
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// GetPlayerAssessments retrieves assessments for a player with pagination
// @Summary Get assessments for a player
// @Description Get a player's assessments, newest first, with optional status filter and pagination
// @Tags assessments
// @Produce json
// @Param id path int true "Player ID"
// @Param status query string false "Filter by status: 'pending', 'processing', 'completed', 'failed'"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Number of assessments per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedAssessmentsResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/assessments [get]
func (h *AssessmentHandler) GetPlayerAssessments(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid player ID",
		})
		return
	}

	status := c.Query("status")

	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid page parameter",
		})
		return
	}

	pageSizeStr := c.DefaultQuery("pageSize", "10")
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pageSize parameter",
		})
		return
	}

	// Cap the pageSize to prevent excessive queries
	if pageSize > 100 {
		pageSize = 100
	}

	paginatedResponse, err := h.assessmentService.GetPlayerAssessments(uint(id), status, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve assessments",
		})
		return
	}

	c.JSON(http.StatusOK, paginatedResponse)
}
