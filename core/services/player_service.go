package services

import (
	"errors"

	"techniq-api/core/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

func (s *PlayerService) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("player not found")
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) CreatePlayer(username string) (*models.Player, error) {
	player := &models.Player{
		Username:     username,
		HeadlineTier: "UNRANKED",
	}

	result := s.db.Create(player)
	if result.Error != nil {
		return nil, result.Error
	}

	return player, nil
}

func (s *PlayerService) GetTopPlayers(limit int) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Where("headline_rating IS NOT NULL").
		Order("headline_rating DESC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetAllPlayers(orderBy string, direction string, page int, pageSize int) (*models.PaginatedPlayersResponse, error) {
	var players []models.Player
	var total int64

	// Validate order by field
	allowedOrderBy := map[string]bool{
		"created_at":      true,
		"headline_rating": true,
		"username":        true,
	}

	if !allowedOrderBy[orderBy] {
		orderBy = "created_at"
	}

	// Validate direction
	if direction != "ASC" && direction != "DESC" {
		direction = "DESC"
	}

	// Count total records
	if err := s.db.Model(&models.Player{}).Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate offset
	offset := (page - 1) * pageSize

	// Build order clause
	orderClause := orderBy + " " + direction

	// Get paginated players
	if err := s.db.Order(orderClause).
		Offset(offset).
		Limit(pageSize).
		Find(&players).Error; err != nil {
		return nil, err
	}

	// Calculate total pages
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedPlayersResponse{
		Data:       players,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
