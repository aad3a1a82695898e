package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/platform/logger"
	"github.com/phrazzld/taskapi/internal/service/auth"
	"github.com/phrazzld/taskapi/internal/store"
)

// NewUserInput carries the fields needed to create an account, either
// through self-registration or the admin surface.
type NewUserInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password_complexity"`
	Role     string `json:"role"     validate:"required,max=50"`
}

// LoginInput carries login credentials. A user must match both name and email.
type LoginInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by successful register and login calls.
type AuthResult struct {
	Token string
	User  domain.UserSummary
}

// AuthService handles account registration and credential login.
type AuthService interface {
	// Register validates input, stores a new user and issues a token for it.
	// Returns *domain.ValidationError for invalid input or a taken email.
	Register(ctx context.Context, input NewUserInput) (*AuthResult, error)

	// Login issues a token when name, email and password all match one user.
	// Returns domain.ErrAuthentication otherwise.
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
}

type authServiceImpl struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// Ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

// NewAuthService creates an AuthService.
func NewAuthService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (AuthService, error) {
	if userStore == nil {
		return nil, domain.NewFieldError("userStore", "cannot be nil")
	}
	if jwtService == nil {
		return nil, domain.NewFieldError("jwtService", "cannot be nil")
	}
	if hasher == nil || verifier == nil {
		return nil, domain.NewFieldError("passwordHasher", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		logger:     logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Register implements AuthService.
func (s *authServiceImpl) Register(ctx context.Context, input NewUserInput) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := createUser(ctx, s.userStore, s.hasher, input)
	if err != nil {
		return nil, wrapUnexpected("auth", "register", err)
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token for new user",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "register", err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return &AuthResult{Token: token, User: user.Summary()}, nil
}

// Login implements AuthService.
func (s *authServiceImpl) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateStruct(input).OrNil(); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByNameAndEmail(ctx, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown name/email pair")
			return nil, domain.ErrAuthentication
		}
		return nil, NewServiceError("auth", "login", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, input.Password); err != nil {
		log.Debug("login attempt with wrong password", slog.Int64("user_id", user.ID))
		return nil, domain.ErrAuthentication
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token on login",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("auth", "login", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return &AuthResult{Token: token, User: user.Summary()}, nil
}

// createUser validates input, rejects taken emails and persists the user
// with a hashed password. Shared by registration and admin creation.
func createUser(
	ctx context.Context,
	users store.UserStore,
	hasher auth.PasswordHasher,
	input NewUserInput,
) (*domain.User, error) {
	verr := validateStruct(input)

	if !verr.Has("email") {
		taken, err := users.EmailExists(ctx, input.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			verr.Add("email", emailTakenMessage)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hashed, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:           input.Name,
		Email:          input.Email,
		HashedPassword: hashed,
		Role:           input.Role,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
