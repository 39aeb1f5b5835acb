package mocks

import (
	"context"
	"gamestore/domain"
	"gamestore/internal/service/middleware"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListGames(ctx context.Context) ([]domain.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) GetGame(ctx context.Context, gameID uint) (*domain.Game, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) CreateGame(ctx context.Context, game *domain.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateGame(ctx context.Context, gameID uint, req domain.GameRequest) (*domain.Game, error) {
	args := m.Called(ctx, gameID, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) SoftDeleteGame(ctx context.Context, gameID uint) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

type MockCatalogUsecase struct {
	mock.Mock
}

func (m *MockCatalogUsecase) ListGames(ctx context.Context) ([]domain.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUsecase) GetGame(ctx context.Context, rawGameID string) (*domain.Game, error) {
	args := m.Called(ctx, rawGameID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUsecase) CreateGame(ctx context.Context, principal domain.Principal, req domain.GameRequest) (*domain.Game, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUsecase) UpdateGame(ctx context.Context, principal domain.Principal, rawGameID string, req domain.GameRequest) (*domain.Game, error) {
	args := m.Called(ctx, principal, rawGameID, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUsecase) DeleteGame(ctx context.Context, principal domain.Principal, rawGameID string) error {
	args := m.Called(ctx, principal, rawGameID)
	return args.Error(0)
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
