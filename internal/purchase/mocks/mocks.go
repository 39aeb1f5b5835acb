package mocks

import (
	"context"
	"gamestore/domain"
	"gamestore/internal/service/middleware"
	"github.com/golang-jwt/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockPurchaseUsecase struct {
	mock.Mock
}

func (m *MockPurchaseUsecase) BuyGame(ctx context.Context, principal domain.Principal, rawGameID string) (domain.PurchaseReceipt, error) {
	args := m.Called(ctx, principal, rawGameID)
	return args.Get(0).(domain.PurchaseReceipt), args.Error(1)
}

func (m *MockPurchaseUsecase) Deposit(ctx context.Context, principal domain.Principal, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, principal, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPurchaseUsecase) GetLibrary(ctx context.Context, principal domain.Principal) ([]domain.LibraryItem, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.LibraryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPurchaseUsecase) GetWallet(ctx context.Context, principal domain.Principal) (decimal.Decimal, error) {
	args := m.Called(ctx, principal)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockLedgerStore runs the transaction callback against the LedgerTx given to Return,
// or fails with the error given to Return.
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) WithinTransaction(ctx context.Context, fn func(tx domain.LedgerTx) error) error {
	args := m.Called(ctx)
	if err := args.Error(1); err != nil {
		return err
	}
	return fn(args.Get(0).(domain.LedgerTx))
}

func (m *MockLedgerStore) GetLibrary(ctx context.Context, gamerID uint) ([]domain.LibraryItem, error) {
	args := m.Called(ctx, gamerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.LibraryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerStore) GetWallet(ctx context.Context, gamerID uint) (decimal.Decimal, error) {
	args := m.Called(ctx, gamerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockLedgerTx struct {
	mock.Mock
}

func (m *MockLedgerTx) GetGame(gameID uint) (*domain.Game, error) {
	args := m.Called(gameID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerTx) LockGamer(gamerID uint) (*domain.Gamer, error) {
	args := m.Called(gamerID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Gamer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerTx) LibraryEntryExists(gamerID, gameID uint) (bool, error) {
	args := m.Called(gamerID, gameID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerTx) UpdateWallet(gamerID uint, balance decimal.Decimal) error {
	args := m.Called(gamerID, balance)
	return args.Error(0)
}

func (m *MockLedgerTx) InsertPurchase(gamerID, gameID uint, price decimal.Decimal) (*domain.Purchase, error) {
	args := m.Called(gamerID, gameID, price)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Purchase), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerTx) InsertLibraryEntry(gamerID, gameID uint) (*domain.LibraryEntry, error) {
	args := m.Called(gamerID, gameID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.LibraryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	if args.Get(0) != nil {
		return args.Get(0).(func()), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockJwtTokenService struct {
	mock.Mock
}

func (m *MockJwtTokenService) Create(principal domain.Principal, tokenExpTime int64) (string, error) {
	args := m.Called(principal, tokenExpTime)
	return args.String(0), args.Error(1)
}

func (m *MockJwtTokenService) Validate(tokenString string) (*middleware.SessionClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) != nil {
		return args.Get(0).(*middleware.SessionClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJwtTokenService) ParseSecretGetter(token *jwt.Token) (interface{}, error) {
	args := m.Called(token)
	return args.Get(0), args.Error(1)
}
