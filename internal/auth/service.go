package auth

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rahmadiangg/attendance-management/internal/core/events"
	"github.com/rahmadiangg/attendance-management/internal/core/validation"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// UserServiceAPI is the slice of the user service auth needs for
// registration.
type UserServiceAPI interface {
	CreateUser(dto user.CreateUserDTO) (*user.User, error)
}

// Service authenticates users and manages token lifecycle.
type Service struct {
	userRepo    user.RepositoryAPI
	userService UserServiceAPI
	tokens      *TokenGenerator
	denylist    *Denylist
	bus         *events.EventBus
	logger      *slog.Logger
}

func NewService(
	userRepo user.RepositoryAPI,
	userService UserServiceAPI,
	tokens *TokenGenerator,
	denylist *Denylist,
	bus *events.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		userService: userService,
		tokens:      tokens,
		denylist:    denylist,
		bus:         bus,
		logger:      logger,
	}
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password answer identically.
func (s *Service) Login(ctx context.Context, dto LoginDTO, ip string) (*LoginResult, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, ErrUserInactive
	}

	token, _, err := s.tokens.Generate(u)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "user_id", u.ID)
		return nil, err
	}

	if err := s.bus.Publish(ctx, events.NewUserLoggedInEvent(u.ID, u.Username, ip)); err != nil {
		s.logger.Error("failed to publish login event", "error", err, "user_id", u.ID)
	}

	return &LoginResult{Token: token, User: u}, nil
}

// Register creates a user account through the user service, which owns
// identity-conflict checks and password hashing.
func (s *Service) Register(dto user.CreateUserDTO) (*user.User, error) {
	return s.userService.CreateUser(dto)
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *Service) Logout(token string) {
	if token == "" {
		return
	}
	expiry := time.Now().Add(24 * time.Hour)
	if claims, err := s.tokens.Validate(token); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	s.denylist.Add(token, expiry)
}

// ValidateAccessToken checks the denylist before signature and expiry.
func (s *Service) ValidateAccessToken(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	if s.denylist.Has(token) {
		return nil, ErrInvalidToken.WithMessage("Token is revoked, please login again")
	}
	return s.tokens.Validate(token)
}
