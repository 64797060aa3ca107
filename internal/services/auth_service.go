package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pocketbook/internal/dto"
	"pocketbook/internal/models"
	"pocketbook/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = repositories.ErrEmailTaken
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles registration and login
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Register creates a new user with a zero starting balance
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	hash, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "register"})
	s.logger.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error, so login probing cannot tell them
// apart.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "login_failed"})
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "login_failed"})
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": "login_success"})
	s.logger.Info("user logged in", slog.String("user_id", user.ID.String()))

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// GetProfile returns the user's profile including the running balance
func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}
