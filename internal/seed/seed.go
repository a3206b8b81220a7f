package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/repository"
	"github.com/sara-relief/relief-service/internal/service"
)

// User is one account in a seed file.
type User struct {
	Username string `yaml:"username" validate:"required"`
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password" validate:"required,min=6"`
	FullName string `yaml:"fullName"`
	Role     string `yaml:"role" validate:"required,oneof=ADMIN DONOR VOLUNTEER VICTIM"`
}

// File is the seed document.
type File struct {
	Users []User `yaml:"users" validate:"required,min=1,dive"`
}

// Result counts what Apply did.
type Result struct {
	Created int
	Skipped int
}

var validate = validator.New()

// Load reads and validates a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("seed file validation failed: %w", err)
	}
	return &f, nil
}

// Apply creates every account whose username is not taken yet.
func Apply(ctx context.Context, accounts *service.AuthService, users repository.UserRepository, f *File, logger *zap.Logger) (Result, error) {
	var res Result
	for _, u := range f.Users {
		_, err := users.GetByUsername(ctx, u.Username)
		if err == nil {
			logger.Info("user exists, skipping", zap.String("username", u.Username))
			res.Skipped++
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return res, fmt.Errorf("lookup %s: %w", u.Username, err)
		}

		role, _ := domain.ParseRole(u.Role)
		if _, err := accounts.CreateAccount(ctx, service.AccountInput{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			FullName: u.FullName,
			Role:     role,
		}); err != nil {
			return res, fmt.Errorf("create %s: %w", u.Username, err)
		}
		logger.Info("user created", zap.String("username", u.Username), zap.String("role", string(role)))
		res.Created++
	}
	return res, nil
}
