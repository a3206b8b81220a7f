package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sara-relief/relief-service/internal/auth"
	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/repository"
	apperrors "github.com/sara-relief/relief-service/pkg/util"
)

// AccountInput describes a new account.
type AccountInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     domain.Role
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	hasher   *auth.PasswordHasher
	denylist auth.Denylist
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
	Hasher   *auth.PasswordHasher
	Denylist auth.Denylist
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		tokenMgr: deps.Tokens,
		hasher:   deps.Hasher,
		denylist: deps.Denylist,
	}
}

// Register creates a self-service account. Administrators cannot self-register.
func (s *AuthService) Register(ctx context.Context, in AccountInput) (*domain.User, error) {
	if in.Role == domain.RoleAdmin {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{
			"role": "cannot self-register as ADMIN",
		})
	}
	return s.CreateAccount(ctx, in)
}

// CreateAccount checks username and email uniqueness, hashes the password and stores the user.
func (s *AuthService) CreateAccount(ctx context.Context, in AccountInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if !in.Role.Valid() {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{"role": "unknown role"})
	}

	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperrors.NewConflict("Username already exists", map[string]any{"username": in.Username})
	} else if missing, err := absent(err); !missing {
		return nil, apperrors.MapError(err)
	}
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("Email already exists", map[string]any{"email": in.Email})
	} else if missing, err := absent(err); !missing {
		return nil, apperrors.MapError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		Role:         in.Role,
		Enabled:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("Username or email already exists", map[string]any{"username": in.Username})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates by username and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, domain.Session, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if missing, err := absent(err); !missing {
			return nil, "", domain.Session{}, apperrors.MapError(err)
		}
		return nil, "", domain.Session{}, apperrors.NewUnauthorized("Invalid username or password")
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domain.Session{}, apperrors.NewUnauthorized("Invalid username or password")
	}
	if !user.Enabled {
		return nil, "", domain.Session{}, apperrors.NewUnauthorized("account disabled")
	}
	token, session, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", domain.Session{}, apperrors.NewInternalError(err)
	}
	return user, token, session, nil
}

// Logout revokes the session's token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	if s.denylist == nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, session); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
