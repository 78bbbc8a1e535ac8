package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/paydesk/payroll-backend-go/internal/domain/auth"
	"github.com/paydesk/payroll-backend-go/internal/pkg/database"
	"github.com/paydesk/payroll-backend-go/internal/pkg/jwt"
	"github.com/paydesk/payroll-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db       *database.DB
	userRepo auth.UserRepository
	jwtRepo  postgresql.JWTRepository
	jwtSvc   jwt.Service
}

func NewAuthService(db *database.DB, userRepo auth.UserRepository, jwtRepo postgresql.JWTRepository, jwtSvc jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:       db,
		userRepo: userRepo,
		jwtRepo:  jwtRepo,
		jwtSvc:   jwtSvc,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	user := auth.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         auth.RoleHR,
		IsActive:     true,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return s.issueTokens(ctx, created)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}
	if !user.IsActive {
		return auth.AuthResponse{}, auth.ErrAccountInactive
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.AuthResponse, error) {
	userID, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	revoked, err := s.jwtRepo.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.AuthResponse{}, err
	}
	if revoked {
		return auth.AuthResponse{}, auth.ErrRefreshTokenRevoked
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.AuthResponse{}, err
	}
	if !user.IsActive {
		return auth.AuthResponse{}, auth.ErrAccountInactive
	}

	// Rotate: the presented refresh token is single-use.
	if err := s.jwtRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return auth.AuthResponse{}, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.jwtRepo.RevokeRefreshToken(ctx, refreshToken)
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, user auth.User) (auth.AuthResponse, error) {
	accessToken, accessExp, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Name, user.Email, user.Role)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	refreshToken, refreshExp, err := s.jwtSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	if err := s.jwtRepo.CreateRefreshToken(ctx, user.ID, refreshToken, refreshExp); err != nil {
		return auth.AuthResponse{}, err
	}

	return auth.AuthResponse{
		User: auth.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}
