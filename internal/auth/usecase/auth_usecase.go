package usecase

import (
	"context"
	"errors"
	"fmt"
	"gamestore/domain"
	"gamestore/internal/service/access"
	"gamestore/internal/service/logger"
	"gamestore/internal/service/middleware"
	"gamestore/internal/service/validation"
	"go.uber.org/zap"
	"time"
)

const maxLen = 100

type AuthUsecase interface {
	RegisterGamer(ctx context.Context, req domain.GamerSignUpRequest) (*domain.Gamer, error)
	LoginGamer(ctx context.Context, username string, password string) (domain.Principal, error)
	LoginStaff(ctx context.Context, username string, password string) (domain.Principal, error)
	CreateStaff(ctx context.Context, principal domain.Principal, req domain.StaffCreateRequest) (*domain.Staff, error)
	ListRoles(ctx context.Context, principal domain.Principal) ([]domain.Role, error)
	DeleteRole(ctx context.Context, principal domain.Principal, rawRoleID string) error
}

type authUsecase struct {
	authRepository domain.AuthRepository
	now            func() time.Time
}

func NewAuthUsecase(authRepository domain.AuthRepository) AuthUsecase {
	return &authUsecase{
		authRepository: authRepository,
		now:            time.Now,
	}
}

func checkCredentials(ctx context.Context, username, password string) error {
	requestID := middleware.GetRequestID(ctx)
	if len(username) > maxLen || len(password) > maxLen {
		logger.AccessLogger.Warn("Input exceeds character limit", zap.String("request_id", requestID))
		return fmt.Errorf("%w: input exceeds character limit", domain.ErrInvalidInput)
	}
	if !validation.ValidateLogin(username) {
		logger.AccessLogger.Warn("not correct username", zap.String("request_id", requestID))
		return fmt.Errorf("%w: not correct username", domain.ErrInvalidInput)
	}
	if !validation.ValidatePassword(password) {
		logger.AccessLogger.Warn("not correct password", zap.String("request_id", requestID))
		return fmt.Errorf("%w: not correct password", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *authUsecase) RegisterGamer(ctx context.Context, req domain.GamerSignUpRequest) (*domain.Gamer, error) {
	requestID := middleware.GetRequestID(ctx)
	if err := checkCredentials(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}
	if !validation.ValidateEmail(req.Email) {
		logger.AccessLogger.Warn("not correct email", zap.String("request_id", requestID))
		return nil, fmt.Errorf("%w: not correct email", domain.ErrInvalidInput)
	}
	if len(req.FirstName) > 50 || len(req.LastName) > 150 {
		return nil, fmt.Errorf("%w: name is too long", domain.ErrInvalidInput)
	}

	birthDate, err := time.Parse(validation.BirthDateLayout, req.BirthDate)
	if err != nil {
		logger.AccessLogger.Warn("not correct birth date", zap.String("request_id", requestID), zap.String("birth_date", req.BirthDate))
		return nil, fmt.Errorf("%w: birth date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if !validation.OldEnough(birthDate, uc.now()) {
		logger.AccessLogger.Warn("Gamer is too young", zap.String("request_id", requestID))
		return nil, fmt.Errorf("%w: gamer must be at least 14 years old", domain.ErrInvalidInput)
	}

	hashed, err := middleware.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	gamer := &domain.Gamer{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
	}
	if err := uc.authRepository.CreateGamer(ctx, gamer); err != nil {
		return nil, err
	}

	logger.AccessLogger.Info("Gamer registered", zap.String("request_id", requestID), zap.Uint("gamer_id", gamer.ID))
	return gamer, nil
}

func (uc *authUsecase) LoginGamer(ctx context.Context, username string, password string) (domain.Principal, error) {
	if err := checkCredentials(ctx, username, password); err != nil {
		return domain.Principal{}, err
	}

	gamer, err := uc.authRepository.GetGamerByUsername(ctx, username)
	if err != nil {
		return domain.Principal{}, hideMissingAccount(err)
	}
	if !middleware.CheckPassword(gamer.Password, password) {
		return domain.Principal{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	return domain.Principal{ID: gamer.ID, Authenticated: true, Kind: domain.KindGamer}, nil
}

// LoginStaff embeds the role name in the principal so the token carries it.
func (uc *authUsecase) LoginStaff(ctx context.Context, username string, password string) (domain.Principal, error) {
	if err := checkCredentials(ctx, username, password); err != nil {
		return domain.Principal{}, err
	}

	staff, err := uc.authRepository.GetStaffByUsername(ctx, username)
	if err != nil {
		return domain.Principal{}, hideMissingAccount(err)
	}
	if !middleware.CheckPassword(staff.Password, password) {
		return domain.Principal{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	return domain.Principal{ID: staff.ID, Authenticated: true, Kind: domain.KindStaff, RoleName: staff.Role.Name}, nil
}

func (uc *authUsecase) CreateStaff(ctx context.Context, principal domain.Principal, req domain.StaffCreateRequest) (*domain.Staff, error) {
	requestID := middleware.GetRequestID(ctx)
	if !access.IsAllowed(principal, access.StaffManagers...) {
		logger.AccessLogger.Warn("CreateStaff denied", zap.String("request_id", requestID), zap.String("role", principal.RoleName))
		return nil, fmt.Errorf("%w: only admins can create staff", domain.ErrDenied)
	}
	if err := checkCredentials(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}
	if req.Email != "" && !validation.ValidateEmail(req.Email) {
		return nil, fmt.Errorf("%w: not correct email", domain.ErrInvalidInput)
	}
	if req.RoleID == 0 {
		return nil, fmt.Errorf("%w: role id is required", domain.ErrInvalidInput)
	}

	hashed, err := middleware.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &domain.Staff{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		RoleID:   req.RoleID,
	}
	if err := uc.authRepository.CreateStaff(ctx, staff); err != nil {
		return nil, err
	}

	logger.AccessLogger.Info("Staff created", zap.String("request_id", requestID), zap.Uint("staff_id", staff.ID))
	return staff, nil
}

func (uc *authUsecase) ListRoles(ctx context.Context, principal domain.Principal) ([]domain.Role, error) {
	if !access.IsAllowed(principal, access.StaffManagers...) {
		logger.AccessLogger.Warn("ListRoles denied", zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.String("role", principal.RoleName))
		return nil, fmt.Errorf("%w: only admins can manage roles", domain.ErrDenied)
	}
	return uc.authRepository.ListRoles(ctx)
}

func (uc *authUsecase) DeleteRole(ctx context.Context, principal domain.Principal, rawRoleID string) error {
	requestID := middleware.GetRequestID(ctx)
	if !access.IsAllowed(principal, access.StaffManagers...) {
		logger.AccessLogger.Warn("DeleteRole denied", zap.String("request_id", requestID), zap.String("role", principal.RoleName))
		return fmt.Errorf("%w: only admins can manage roles", domain.ErrDenied)
	}
	roleID, ok := validation.ParseID(rawRoleID)
	if !ok {
		return fmt.Errorf("%w: role id must be a positive number", domain.ErrInvalidInput)
	}

	if err := uc.authRepository.SoftDeleteRole(ctx, roleID); err != nil {
		return err
	}

	logger.AccessLogger.Info("Role deleted", zap.String("request_id", requestID),
		zap.Uint("role_id", roleID), zap.Uint("staff_id", principal.ID))
	return nil
}

func hideMissingAccount(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	return err
}
