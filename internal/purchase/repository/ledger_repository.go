package repository

import (
	"context"
	"errors"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) domain.LedgerStore {
	return &ledgerRepository{
		db: db,
	}
}

func (r *ledgerRepository) WithinTransaction(ctx context.Context, fn func(tx domain.LedgerTx) error) error {
	requestID := middleware.GetRequestID(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{db: tx, requestID: requestID})
	})
}

func (r *ledgerRepository) GetLibrary(ctx context.Context, gamerID uint) ([]domain.LibraryItem, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetLibrary called", zap.String("request_id", requestID), zap.Uint("gamer_id", gamerID))

	items := make([]domain.LibraryItem, 0)
	if err := r.db.WithContext(ctx).
		Table("library_entries").
		Select("library_entries.game_id, games.title, library_entries.created_at AS added_at").
		Joins("JOIN games ON games.id = library_entries.game_id").
		Where("library_entries.gamer_id = ?", gamerID).
		Order("library_entries.created_at").
		Scan(&items).Error; err != nil {
		logger.DBLogger.Error("Failed to get library", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch library: %w", err)
	}

	return items, nil
}

func (r *ledgerRepository) GetWallet(ctx context.Context, gamerID uint) (decimal.Decimal, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetWallet called", zap.String("request_id", requestID), zap.Uint("gamer_id", gamerID))

	var gamer domain.Gamer
	if err := r.db.WithContext(ctx).Where("id = ?", gamerID).First(&gamer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("Gamer not found", zap.String("request_id", requestID), zap.Uint("gamer_id", gamerID))
			return decimal.Zero, fmt.Errorf("%w: gamer %d", domain.ErrNotFound, gamerID)
		}
		logger.DBLogger.Error("Failed to get gamer", zap.String("request_id", requestID), zap.Error(err))
		return decimal.Zero, fmt.Errorf("failed to fetch gamer: %w", err)
	}

	return gamer.Wallet, nil
}

// ledgerTx runs every call on the transaction opened by WithinTransaction.
type ledgerTx struct {
	db        *gorm.DB
	requestID string
}

func (t *ledgerTx) GetGame(gameID uint) (*domain.Game, error) {
	var game domain.Game
	if err := t.db.Where("id = ?", gameID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("Game not found", zap.String("request_id", t.requestID), zap.Uint("game_id", gameID))
			return nil, fmt.Errorf("%w: game %d", domain.ErrNotFound, gameID)
		}
		logger.DBLogger.Error("Failed to get game", zap.String("request_id", t.requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch game: %w", err)
	}
	return &game, nil
}

func (t *ledgerTx) LockGamer(gamerID uint) (*domain.Gamer, error) {
	var gamer domain.Gamer
	if err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", gamerID).First(&gamer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("Gamer not found", zap.String("request_id", t.requestID), zap.Uint("gamer_id", gamerID))
			return nil, fmt.Errorf("%w: gamer %d", domain.ErrNotFound, gamerID)
		}
		logger.DBLogger.Error("Failed to lock gamer", zap.String("request_id", t.requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to lock gamer: %w", err)
	}
	return &gamer, nil
}

func (t *ledgerTx) LibraryEntryExists(gamerID, gameID uint) (bool, error) {
	var count int64
	if err := t.db.Model(&domain.LibraryEntry{}).
		Where("gamer_id = ? AND game_id = ?", gamerID, gameID).
		Count(&count).Error; err != nil {
		logger.DBLogger.Error("Failed to check library", zap.String("request_id", t.requestID), zap.Error(err))
		return false, fmt.Errorf("failed to check library: %w", err)
	}
	return count > 0, nil
}

func (t *ledgerTx) UpdateWallet(gamerID uint, balance decimal.Decimal) error {
	res := t.db.Model(&domain.Gamer{}).Where("id = ?", gamerID).Update("wallet", balance)
	if res.Error != nil {
		logger.DBLogger.Error("Failed to update wallet", zap.String("request_id", t.requestID), zap.Error(res.Error))
		return fmt.Errorf("failed to update wallet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: gamer %d", domain.ErrNotFound, gamerID)
	}
	return nil
}

func (t *ledgerTx) InsertPurchase(gamerID, gameID uint, price decimal.Decimal) (*domain.Purchase, error) {
	purchase := domain.Purchase{
		GamerID: gamerID,
		GameID:  gameID,
		Price:   price,
	}
	if err := t.db.Create(&purchase).Error; err != nil {
		logger.DBLogger.Error("Failed to create purchase", zap.String("request_id", t.requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	return &purchase, nil
}

func (t *ledgerTx) InsertLibraryEntry(gamerID, gameID uint) (*domain.LibraryEntry, error) {
	entry := domain.LibraryEntry{
		GamerID: gamerID,
		GameID:  gameID,
	}
	res := t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		logger.DBLogger.Error("Failed to add library entry", zap.String("request_id", t.requestID), zap.Error(res.Error))
		return nil, fmt.Errorf("failed to add library entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		logger.DBLogger.Warn("Library entry already exists", zap.String("request_id", t.requestID),
			zap.Uint("gamer_id", gamerID), zap.Uint("game_id", gameID))
		return nil, fmt.Errorf("%w: game %d", domain.ErrAlreadyOwned, gameID)
	}
	return &entry, nil
}
