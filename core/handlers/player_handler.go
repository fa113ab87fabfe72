package handlers

import (
	"net/http"
	"strconv"

	"techniq-api/core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
	ratingService *services.RatingService
}

func NewPlayerHandler(playerService *services.PlayerService, ratingService *services.RatingService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		ratingService: ratingService,
	}
}

// GetPlayer retrieves a player by ID
// @Summary Get player by ID
// @Description Get player information, including the headline rating and tier
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid player ID",
		})
		return
	}

	player, err := h.playerService.GetPlayerByID(uint(id))
	if err != nil {
		if err.Error() == "player not found" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Player not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, player)
}

// GetPlayerRatings retrieves a player's per-sport ratings
// @Summary Get player ratings
// @Description Get the per-sport composite ratings and tiers plus the headline rating
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.PlayerRatingsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/ratings [get]
func (h *PlayerHandler) GetPlayerRatings(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid player ID",
		})
		return
	}

	ratings, err := h.ratingService.GetPlayerRatings(uint(id))
	if err != nil {
		if err.Error() == "player not found" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Player not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve ratings",
		})
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// GetTechniqueBreakdown retrieves a player's per-technique scores
// @Summary Get technique score breakdown
// @Description Get the rolling per-technique scores for a player, optionally filtered by sport
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param sportId query int false "Filter by sport ID"
// @Success 200 {array} models.TechniqueScore
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/{id}/techniques [get]
func (h *PlayerHandler) GetTechniqueBreakdown(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid player ID",
		})
		return
	}

	// Check if player exists
	_, err = h.playerService.GetPlayerByID(uint(id))
	if err != nil {
		if err.Error() == "player not found" {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Player not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var sportID *uint
	if sportIDStr := c.Query("sportId"); sportIDStr != "" {
		parsed, err := strconv.ParseUint(sportIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid sportId parameter",
			})
			return
		}
		v := uint(parsed)
		sportID = &v
	}

	scores, err := h.ratingService.GetTechniqueBreakdown(uint(id), sportID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve technique scores",
		})
		return
	}

	c.JSON(http.StatusOK, scores)
}

// GetTopPlayers retrieves top N players by headline rating
// @Summary Get top players by headline rating
// @Description Get top N ranked players ordered by headline rating (highest first)
// @Tags players
// @Produce json
// @Param limit query int false "Number of players to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players/top [get]
func (h *PlayerHandler) GetTopPlayers(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit parameter",
		})
		return
	}

	// Cap the limit to prevent excessive queries
	if limit > 100 {
		limit = 100
	}

	players, err := h.playerService.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve top players",
		})
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetAllPlayers retrieves all players with pagination and sorting
// @Summary Get all players
// @Description Get all players with pagination and sorting options
// @Tags players
// @Produce json
// @Param orderBy query string false "Sort field: 'created_at', 'headline_rating', 'username' (default: 'created_at')"
// @Param direction query string false "Sort direction: 'ASC' or 'DESC' (default: 'DESC')"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Number of players per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedPlayersResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetAllPlayers(c *gin.Context) {
	orderBy := c.DefaultQuery("orderBy", "created_at")
	direction := c.DefaultQuery("direction", "DESC")

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

	paginatedResponse, err := h.playerService.GetAllPlayers(orderBy, direction, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve players",
		})
		return
	}

	c.JSON(http.StatusOK, paginatedResponse)
}
