package usecase

import (
	"context"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/service/access"
	"gamestore/internal/service/lock"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"gamestore/internal/service/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PurchaseUsecase interface {
	BuyGame(ctx context.Context, principal domain.Principal, rawGameID string) (domain.PurchaseReceipt, error)
	Deposit(ctx context.Context, principal domain.Principal, amount decimal.Decimal) (decimal.Decimal, error)
	GetLibrary(ctx context.Context, principal domain.Principal) ([]domain.LibraryItem, error)
	GetWallet(ctx context.Context, principal domain.Principal) (decimal.Decimal, error)
}

type purchaseUsecase struct {
	ledger domain.LedgerStore
	locker lock.Locker
}

func NewPurchaseUsecase(ledger domain.LedgerStore, locker lock.Locker) PurchaseUsecase {
	return &purchaseUsecase{
		ledger: ledger,
		locker: locker,
	}
}

// BuyGame charges the gamer the game's final price and adds the game to their library.
// Checks run in order: numeric id, active game, not yet owned, enough funds.
func (uc *purchaseUsecase) BuyGame(ctx context.Context, principal domain.Principal, rawGameID string) (domain.PurchaseReceipt, error) {
	requestID := middleware.GetRequestID(ctx)
	if !access.IsGamer(principal) {
		logger.AccessLogger.Warn("BuyGame denied", zap.String("request_id", requestID), zap.String("kind", string(principal.Kind)))
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: only gamers can buy games", domain.ErrDenied)
	}

	gameID, ok := validation.ParseID(rawGameID)
	if !ok {
		logger.AccessLogger.Warn("Invalid game id", zap.String("request_id", requestID), zap.String("game_id", rawGameID))
		return domain.PurchaseReceipt{}, fmt.Errorf("%w: game id must be a positive number", domain.ErrInvalidInput)
	}

	release, err := uc.locker.Acquire(ctx, lock.PurchaseKey(principal.ID, gameID))
	if err != nil {
		logger.AccessLogger.Warn("Purchase lock not acquired", zap.String("request_id", requestID), zap.Error(err))
		return domain.PurchaseReceipt{}, err
	}
	defer release()

	var receipt domain.PurchaseReceipt
	err = uc.ledger.WithinTransaction(ctx, func(tx domain.LedgerTx) error {
		game, err := tx.GetGame(gameID)
		if err != nil {
			return err
		}

		gamer, err := tx.LockGamer(principal.ID)
		if err != nil {
			return err
		}

		owned, err := tx.LibraryEntryExists(gamer.ID, game.ID)
		if err != nil {
			return err
		}
		if owned {
			return fmt.Errorf("%w: game %d", domain.ErrAlreadyOwned, game.ID)
		}

		if gamer.Wallet.LessThan(game.FinalPrice) {
			return fmt.Errorf("%w: wallet %s is below price %s", domain.ErrInsufficientFunds,
				gamer.Wallet.StringFixed(2), game.FinalPrice.StringFixed(2))
		}

		balance := gamer.Wallet.Sub(game.FinalPrice)
		if err := tx.UpdateWallet(gamer.ID, balance); err != nil {
			return err
		}

		purchase, err := tx.InsertPurchase(gamer.ID, game.ID, game.FinalPrice)
		if err != nil {
			return err
		}

		entry, err := tx.InsertLibraryEntry(gamer.ID, game.ID)
		if err != nil {
			return err
		}

		receipt = domain.PurchaseReceipt{
			Purchase:     *purchase,
			LibraryEntry: *entry,
			Wallet:       balance,
		}
		return nil
	})
	if err != nil {
		logger.AccessLogger.Warn("BuyGame failed", zap.String("request_id", requestID),
			zap.Uint("gamer_id", principal.ID), zap.Uint("game_id", gameID), zap.Error(err))
		return domain.PurchaseReceipt{}, err
	}

	logger.AccessLogger.Info("Game purchased", zap.String("request_id", requestID),
		zap.Uint("gamer_id", principal.ID), zap.Uint("game_id", gameID))
	return receipt, nil
}

// Deposit adds a strictly positive amount with at most two decimal places to the wallet.
func (uc *purchaseUsecase) Deposit(ctx context.Context, principal domain.Principal, amount decimal.Decimal) (decimal.Decimal, error) {
	requestID := middleware.GetRequestID(ctx)
	if !access.IsGamer(principal) {
		logger.AccessLogger.Warn("Deposit denied", zap.String("request_id", requestID))
		return decimal.Zero, fmt.Errorf("%w: only gamers have a wallet", domain.ErrDenied)
	}

	if !amount.IsPositive() {
		logger.AccessLogger.Warn("Deposit amount must be positive", zap.String("request_id", requestID))
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than 0", domain.ErrInvalidInput)
	}
	if !amount.Equal(amount.Truncate(2)) {
		logger.AccessLogger.Warn("Deposit amount has too many decimals", zap.String("request_id", requestID))
		return decimal.Zero, fmt.Errorf("%w: amount must have at most 2 decimal places", domain.ErrInvalidInput)
	}

	var balance decimal.Decimal
	err := uc.ledger.WithinTransaction(ctx, func(tx domain.LedgerTx) error {
		gamer, err := tx.LockGamer(principal.ID)
		if err != nil {
			return err
		}

		balance = gamer.Wallet.Add(amount)
		if balance.GreaterThan(domain.MaxWallet) {
			logger.AccessLogger.Warn("Deposit would overflow wallet", zap.String("request_id", requestID),
				zap.Uint("gamer_id", gamer.ID))
			return fmt.Errorf("%w: wallet balance cannot exceed %s", domain.ErrInvalidInput, domain.MaxWallet.StringFixed(2))
		}
		return tx.UpdateWallet(gamer.ID, balance)
	})
	if err != nil {
		return decimal.Zero, err
	}

	logger.AccessLogger.Info("Wallet deposit", zap.String("request_id", requestID),
		zap.Uint("gamer_id", principal.ID), zap.String("amount", amount.String()))
	return balance, nil
}

func (uc *purchaseUsecase) GetLibrary(ctx context.Context, principal domain.Principal) ([]domain.LibraryItem, error) {
	if !access.IsGamer(principal) {
		return nil, fmt.Errorf("%w: only gamers have a library", domain.ErrDenied)
	}
	return uc.ledger.GetLibrary(ctx, principal.ID)
}

func (uc *purchaseUsecase) GetWallet(ctx context.Context, principal domain.Principal) (decimal.Decimal, error) {
	if !access.IsGamer(principal) {
		return decimal.Zero, fmt.Errorf("%w: only gamers have a wallet", domain.ErrDenied)
	}
	return uc.ledger.GetWallet(ctx, principal.ID)
}
