package mocks

import (
	"context"
	"gamestore/domain"
	"gamestore/internal/service/middleware"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/mock"
)

type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) CreateGamer(ctx context.Context, gamer *domain.Gamer) error {
	args := m.Called(ctx, gamer)
	return args.Error(0)
}

func (m *MockAuthRepository) GetGamerByUsername(ctx context.Context, username string) (*domain.Gamer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Gamer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) CreateStaff(ctx context.Context, staff *domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockAuthRepository) GetStaffByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	args := m.Called(ctx, username)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Staff), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Role), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) SoftDeleteRole(ctx context.Context, roleID uint) error {
	args := m.Called(ctx, roleID)
	return args.Error(0)
}

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) RegisterGamer(ctx context.Context, req domain.GamerSignUpRequest) (*domain.Gamer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Gamer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthUsecase) LoginGamer(ctx context.Context, username string, password string) (domain.Principal, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *MockAuthUsecase) LoginStaff(ctx context.Context, username string, password string) (domain.Principal, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *MockAuthUsecase) CreateStaff(ctx context.Context, principal domain.Principal, req domain.StaffCreateRequest) (*domain.Staff, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Staff), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthUsecase) ListRoles(ctx context.Context, principal domain.Principal) ([]domain.Role, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Role), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthUsecase) DeleteRole(ctx context.Context, principal domain.Principal, rawRoleID string) error {
	args := m.Called(ctx, principal, rawRoleID)
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
