package usecase

import (
	"context"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/service/access"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"gamestore/internal/service/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"strings"
	"unicode/utf8"
)

const maxTitleLen = 30

var maxDiscount = decimal.NewFromInt(100)

type CatalogUsecase interface {
	ListGames(ctx context.Context) ([]domain.Game, error)
	GetGame(ctx context.Context, rawGameID string) (*domain.Game, error)
	CreateGame(ctx context.Context, principal domain.Principal, req domain.GameRequest) (*domain.Game, error)
	UpdateGame(ctx context.Context, principal domain.Principal, rawGameID string, req domain.GameRequest) (*domain.Game, error)
	DeleteGame(ctx context.Context, principal domain.Principal, rawGameID string) error
}

type catalogUsecase struct {
	catalogRepository domain.CatalogRepository
}

func NewCatalogUsecase(catalogRepository domain.CatalogRepository) CatalogUsecase {
	return &catalogUsecase{
		catalogRepository: catalogRepository,
	}
}

func (uc *catalogUsecase) ListGames(ctx context.Context) ([]domain.Game, error) {
	return uc.catalogRepository.ListGames(ctx)
}

func (uc *catalogUsecase) GetGame(ctx context.Context, rawGameID string) (*domain.Game, error) {
	gameID, ok := validation.ParseID(rawGameID)
	if !ok {
		return nil, fmt.Errorf("%w: game id must be a positive number", domain.ErrInvalidInput)
	}
	return uc.catalogRepository.GetGame(ctx, gameID)
}

func (uc *catalogUsecase) CreateGame(ctx context.Context, principal domain.Principal, req domain.GameRequest) (*domain.Game, error) {
	requestID := middleware.GetRequestID(ctx)
	if err := uc.authorize(ctx, principal, "CreateGame"); err != nil {
		return nil, err
	}
	req, err := normalizeGame(req)
	if err != nil {
		logger.AccessLogger.Warn("Invalid game", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	game := &domain.Game{
		Title:           req.Title,
		Genre:           req.Genre,
		Description:     req.Description,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
		Amount:          req.Amount,
	}
	if err := uc.catalogRepository.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	logger.AccessLogger.Info("Game created", zap.String("request_id", requestID),
		zap.Uint("game_id", game.ID), zap.Uint("staff_id", principal.ID))
	return game, nil
}

func (uc *catalogUsecase) UpdateGame(ctx context.Context, principal domain.Principal, rawGameID string, req domain.GameRequest) (*domain.Game, error) {
	requestID := middleware.GetRequestID(ctx)
	if err := uc.authorize(ctx, principal, "UpdateGame"); err != nil {
		return nil, err
	}
	gameID, ok := validation.ParseID(rawGameID)
	if !ok {
		return nil, fmt.Errorf("%w: game id must be a positive number", domain.ErrInvalidInput)
	}
	req, err := normalizeGame(req)
	if err != nil {
		logger.AccessLogger.Warn("Invalid game", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	game, err := uc.catalogRepository.UpdateGame(ctx, gameID, req)
	if err != nil {
		return nil, err
	}

	logger.AccessLogger.Info("Game updated", zap.String("request_id", requestID),
		zap.Uint("game_id", gameID), zap.Uint("staff_id", principal.ID))
	return game, nil
}

func (uc *catalogUsecase) DeleteGame(ctx context.Context, principal domain.Principal, rawGameID string) error {
	requestID := middleware.GetRequestID(ctx)
	if err := uc.authorize(ctx, principal, "DeleteGame"); err != nil {
		return err
	}
	gameID, ok := validation.ParseID(rawGameID)
	if !ok {
		return fmt.Errorf("%w: game id must be a positive number", domain.ErrInvalidInput)
	}

	if err := uc.catalogRepository.SoftDeleteGame(ctx, gameID); err != nil {
		return err
	}

	logger.AccessLogger.Info("Game deleted", zap.String("request_id", requestID),
		zap.Uint("game_id", gameID), zap.Uint("staff_id", principal.ID))
	return nil
}

func (uc *catalogUsecase) authorize(ctx context.Context, principal domain.Principal, operation string) error {
	if access.IsAllowed(principal, access.CatalogManagers...) {
		return nil
	}
	logger.AccessLogger.Warn(operation+" denied",
		zap.String("request_id", middleware.GetRequestID(ctx)),
		zap.String("kind", string(principal.Kind)),
		zap.String("role", principal.RoleName))
	return fmt.Errorf("%w: catalog is managed by admins and managers", domain.ErrDenied)
}

func normalizeGame(req domain.GameRequest) (domain.GameRequest, error) {
	req.Title = strings.TrimSpace(req.Title)
	switch {
	case req.Title == "":
		return req, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	case utf8.RuneCountInString(req.Title) > maxTitleLen:
		return req, fmt.Errorf("%w: title is longer than %d characters", domain.ErrInvalidInput, maxTitleLen)
	case req.Price.IsNegative():
		return req, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	case !req.Price.Equal(req.Price.Truncate(2)):
		return req, fmt.Errorf("%w: price must have at most 2 decimal places", domain.ErrInvalidInput)
	case req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(maxDiscount):
		return req, fmt.Errorf("%w: discount must be between 0 and 100", domain.ErrInvalidInput)
	case !req.DiscountPercent.Equal(req.DiscountPercent.Truncate(2)):
		return req, fmt.Errorf("%w: discount must have at most 2 decimal places", domain.ErrInvalidInput)
	case req.Amount < 0:
		return req, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	return req, nil
}
