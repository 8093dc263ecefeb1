package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"foodorder/internal/auth"
	"foodorder/internal/db"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/repository"
)

// RegisterInput carries a registration request. An empty Role means customer.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Profile(ctx context.Context, userID uint) (*model.User, error)
	// Logout revokes the token the claims were read from.
	Logout(ctx context.Context, claims *auth.Claims) error
	// Authenticate verifies a bearer token and rejects revoked ones.
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

type authService struct {
	store      repository.Store
	jwtService *auth.JWTService
	revoker    auth.Revoker
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(store repository.Store, jwtService *auth.JWTService, revoker auth.Revoker) AuthService {
	return &authService{
		store:      store,
		jwtService: jwtService,
		revoker:    revoker,
		now:        time.Now,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	role := in.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, apperrors.Invalid("role")
	}

	_, err := s.store.Users().FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, apperrors.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: hashed,
		Name:         in.Name,
		Role:         role,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login checks credentials and issues a token. Unknown emails and wrong
// passwords produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("find user: %w", err)
		}
		checkPassword(dummyHash(), password)
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !checkPassword([]byte(user.PasswordHash), password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

func (s *authService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return apperrors.ErrUnauthenticated
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrUnauthenticated
	}

	return claims, nil
}
