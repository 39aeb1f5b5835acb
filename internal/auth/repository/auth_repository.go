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
	"gorm.io/gorm/clause"
)

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) domain.AuthRepository {
	return &authRepository{
		db: db,
	}
}

func (r *authRepository) CreateGamer(ctx context.Context, gamer *domain.Gamer) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateGamer called", zap.String("request_id", requestID), zap.String("username", gamer.Username))

	if err := r.db.WithContext(ctx).Create(gamer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.DBLogger.Warn("Gamer already exists", zap.String("request_id", requestID), zap.String("username", gamer.Username))
			return fmt.Errorf("%w: username or email is taken", domain.ErrConflict)
		}
		logger.DBLogger.Error("Error creating gamer", zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("failed to create gamer: %w", err)
	}

	logger.DBLogger.Info("Successfully created gamer", zap.String("request_id", requestID), zap.Uint("gamer_id", gamer.ID))
	return nil
}

func (r *authRepository) GetGamerByUsername(ctx context.Context, username string) (*domain.Gamer, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetGamerByUsername called", zap.String("request_id", requestID), zap.String("username", username))

	var gamer domain.Gamer
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&gamer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: gamer %s", domain.ErrNotFound, username)
		}
		logger.DBLogger.Error("Error getting gamer", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to get gamer: %w", err)
	}
	return &gamer, nil
}

// CreateStaff inserts the staff member only if its role exists and is not soft-deleted.
func (r *authRepository) CreateStaff(ctx context.Context, staff *domain.Staff) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateStaff called", zap.String("request_id", requestID),
		zap.String("username", staff.Username), zap.Uint("role_id", staff.RoleID))

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role domain.Role
		if err := tx.First(&role, staff.RoleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Warn("Role not found", zap.String("request_id", requestID), zap.Uint("role_id", staff.RoleID))
				return fmt.Errorf("%w: role %d", domain.ErrNotFound, staff.RoleID)
			}
			return fmt.Errorf("failed to get role: %w", err)
		}

		if err := tx.Omit(clause.Associations).Create(staff).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: username is taken", domain.ErrConflict)
			}
			logger.DBLogger.Error("Error creating staff", zap.String("request_id", requestID), zap.Error(err))
			return fmt.Errorf("failed to create staff: %w", err)
		}

		staff.Role = role
		logger.DBLogger.Info("Successfully created staff", zap.String("request_id", requestID), zap.Uint("staff_id", staff.ID))
		return nil
	})
}

// GetStaffByUsername loads the role even when it has been soft-deleted.
func (r *authRepository) GetStaffByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetStaffByUsername called", zap.String("request_id", requestID), zap.String("username", username))

	var staff domain.Staff
	err := r.db.WithContext(ctx).
		Preload("Role", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("username = ?", username).
		First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: staff %s", domain.ErrNotFound, username)
		}
		logger.DBLogger.Error("Error getting staff", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *authRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ListRoles called", zap.String("request_id", requestID))

	roles := make([]domain.Role, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		logger.DBLogger.Error("Error listing roles", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// SoftDeleteRole hides the role from new staff; existing staff keep it.
func (r *authRepository) SoftDeleteRole(ctx context.Context, roleID uint) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("SoftDeleteRole called", zap.String("request_id", requestID), zap.Uint("role_id", roleID))

	result := r.db.WithContext(ctx).Delete(&domain.Role{}, roleID)
	if result.Error != nil {
		logger.DBLogger.Error("Error deleting role", zap.String("request_id", requestID), zap.Error(result.Error))
		return fmt.Errorf("failed to delete role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: role %d", domain.ErrNotFound, roleID)
	}
	return nil
}
