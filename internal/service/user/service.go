package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"growthplan/internal/repository"
	"growthplan/internal/util"
)

type Service struct {
	repo      *repository.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewService(repo *repository.UserRepository, jwtSecret string, logger *zap.Logger) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret, logger: logger}
}

func (s *Service) Register(ctx context.Context, email, password string) (int, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("email already registered")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return 0, err
	}

	return s.repo.Insert(ctx, email, hash)
}

// Login verifies credentials and returns a signed JWT.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil || !util.CheckPassword(password, u.PasswordHash) {
		s.logger.Warn("Login failed", zap.String("email", email))
		return "", fmt.Errorf("invalid email or password")
	}

	return util.GenerateJWT(u.ID, s.jwtSecret)
}
