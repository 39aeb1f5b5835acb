package repository

import (
	"context"
	"errors"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

func (r *catalogRepository) ListGames(ctx context.Context) ([]domain.Game, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ListGames called", zap.String("request_id", requestID))

	games := make([]domain.Game, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&games).Error; err != nil {
		logger.DBLogger.Error("Error listing games", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (r *catalogRepository) GetGame(ctx context.Context, gameID uint) (*domain.Game, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetGame called", zap.String("request_id", requestID), zap.Uint("game_id", gameID))

	var game domain.Game
	if err := r.db.WithContext(ctx).Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", domain.ErrNotFound, gameID)
		}
		logger.DBLogger.Error("Error getting game", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &game, nil
}

func (r *catalogRepository) CreateGame(ctx context.Context, game *domain.Game) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateGame called", zap.String("request_id", requestID), zap.String("title", game.Title))

	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return r.mapWriteError(err, requestID, game.Title)
	}

	logger.DBLogger.Info("Successfully created game", zap.String("request_id", requestID), zap.Uint("game_id", game.ID))
	return nil
}

// UpdateGame saves the whole row so the final price is recomputed by the save hook.
func (r *catalogRepository) UpdateGame(ctx context.Context, gameID uint, req domain.GameRequest) (*domain.Game, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("UpdateGame called", zap.String("request_id", requestID), zap.Uint("game_id", gameID))

	var game domain.Game
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", gameID).First(&game).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: game %d", domain.ErrNotFound, gameID)
			}
			return fmt.Errorf("failed to get game: %w", err)
		}

		game.Title = req.Title
		game.Genre = req.Genre
		game.Description = req.Description
		game.Price = req.Price
		game.DiscountPercent = req.DiscountPercent
		game.Amount = req.Amount

		if err := tx.Save(&game).Error; err != nil {
			return r.mapWriteError(err, requestID, req.Title)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.DBLogger.Info("Successfully updated game", zap.String("request_id", requestID), zap.Uint("game_id", gameID))
	return &game, nil
}

func (r *catalogRepository) SoftDeleteGame(ctx context.Context, gameID uint) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("SoftDeleteGame called", zap.String("request_id", requestID), zap.Uint("game_id", gameID))

	result := r.db.WithContext(ctx).Delete(&domain.Game{}, gameID)
	if result.Error != nil {
		logger.DBLogger.Error("Error deleting game", zap.String("request_id", requestID), zap.Error(result.Error))
		return fmt.Errorf("failed to delete game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: game %d", domain.ErrNotFound, gameID)
	}
	return nil
}

func (r *catalogRepository) mapWriteError(err error, requestID, title string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		logger.DBLogger.Warn("Game title taken", zap.String("request_id", requestID), zap.String("title", title))
		return fmt.Errorf("%w: title %q is taken", domain.ErrConflict, title)
	}
	logger.DBLogger.Error("Error saving game", zap.String("request_id", requestID), zap.Error(err))
	return fmt.Errorf("failed to save game: %w", err)
}
