package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/repository"
	apperrors "github.com/sara-relief/relief-service/pkg/util"
)

// UserCounts aggregates account totals for the admin dashboard.
type UserCounts struct {
	Total      int `json:"total_users"`
	Donors     int `json:"total_donors"`
	Volunteers int `json:"total_volunteers"`
	Victims    int `json:"total_victims"`
}

// UserService exposes the admin side of the user registry.
type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewUserService creates the service.
func NewUserService(users repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns users, optionally restricted to one role.
func (s *UserService) List(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	users, err := s.users.List(ctx, repository.UserFilter{Role: role})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ToggleStatus flips the enabled flag of a user.
func (s *UserService) ToggleStatus(ctx context.Context, id string) (*domain.User, Outcome, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if missing, err := absent(err); !missing {
			return nil, OutcomeNotFound, apperrors.MapError(err)
		}
		return nil, OutcomeNotFound, nil
	}
	user.Enabled = !user.Enabled
	if err := s.users.Update(ctx, user); err != nil {
		return nil, OutcomeNotFound, apperrors.MapError(err)
	}
	s.logger.Info("user status toggled", zap.String("user_id", user.ID), zap.Bool("enabled", user.Enabled))
	return user, OutcomeApplied, nil
}

// Delete physically removes a user; deleting an absent id is a no-op.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Counts returns totals overall and per non-admin role.
func (s *UserService) Counts(ctx context.Context) (UserCounts, error) {
	var counts UserCounts
	var err error
	if counts.Total, err = s.users.Count(ctx, repository.UserFilter{}); err != nil {
		return counts, apperrors.MapError(err)
	}
	for _, target := range []struct {
		role domain.Role
		dst  *int
	}{
		{domain.RoleDonor, &counts.Donors},
		{domain.RoleVolunteer, &counts.Volunteers},
		{domain.RoleVictim, &counts.Victims},
	} {
		role := target.role
		n, err := s.users.Count(ctx, repository.UserFilter{Role: &role})
		if err != nil {
			return counts, apperrors.MapError(err)
		}
		*target.dst = n
	}
	return counts, nil
}
