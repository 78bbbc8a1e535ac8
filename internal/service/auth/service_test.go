package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydesk/payroll-backend-go/internal/domain/auth"
	"github.com/paydesk/payroll-backend-go/internal/pkg/jwt"
)

type stubUserRepo struct {
	users  map[string]auth.User
	nextID int
}

func (r *stubUserRepo) Create(ctx context.Context, user auth.User) (auth.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return auth.User{}, auth.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[user.ID] = user
	return user, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return auth.User{}, auth.ErrUserNotFound
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (auth.User, error) {
	user, ok := r.users[id]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return user, nil
}

// stubJWTRepo mimics the persistent refresh token store: tokens it never
// saw count as revoked.
type stubJWTRepo struct {
	revoked map[string]bool
}

func (r *stubJWTRepo) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64) error {
	r.revoked[token] = false
	return nil
}

func (r *stubJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	revoked, issued := r.revoked[token]
	if !issued {
		return true, nil
	}
	return revoked, nil
}

func (r *stubJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	if _, issued := r.revoked[token]; issued {
		r.revoked[token] = true
	}
	return nil
}

func newTestService() (auth.AuthService, *stubUserRepo) {
	repo := &stubUserRepo{users: map[string]auth.User{}}
	jwtRepo := &stubJWTRepo{revoked: map[string]bool{}}
	jwtSvc := jwt.NewJWTService("test-secret-key-for-unit-tests", "1h", "168h")
	return NewAuthService(nil, repo, jwtRepo, jwtSvc), repo
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and issues tokens", func(t *testing.T) {
		svc, repo := newTestService()

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "hr", resp.User.Role)

		stored, err := repo.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "supersecret", stored.PasswordHash, "password must be hashed")
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()

		req := auth.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "supersecret"}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, auth.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "short"})
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc auth.AuthService) {
		t.Helper()
		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name: "Jane Doe", Email: "jane@example.com", Password: "supersecret",
		})
		require.NoError(t, err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := newTestService()
		register(t, svc)

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "supersecret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		register(t, svc)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, repo := newTestService()
		register(t, svc)

		user, err := repo.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		user.IsActive = false
		repo.users[user.ID] = user

		_, err = svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates refresh token", func(t *testing.T) {
		svc, _ := newTestService()

		registered, err := svc.Register(ctx, auth.RegisterRequest{
			Name: "Jane Doe", Email: "jane@example.com", Password: "supersecret",
		})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, registered.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		// The first refresh token is now revoked.
		_, err = svc.Refresh(ctx, registered.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Refresh(ctx, "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		svc, _ := newTestService()

		registered, err := svc.Register(ctx, auth.RegisterRequest{
			Name: "Jane Doe", Email: "jane@example.com", Password: "supersecret",
		})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, registered.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	registered, err := svc.Register(ctx, auth.RegisterRequest{
		Name: "Jane Doe", Email: "jane@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.RefreshToken))

	_, err = svc.Refresh(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

// Revocation lives in the token store, not in process memory: a service
// built from scratch over the same store must still reject the token.
func TestAuthService_RevocationSurvivesRestart(t *testing.T) {
	ctx := context.Background()

	userRepo := &stubUserRepo{users: map[string]auth.User{}}
	jwtRepo := &stubJWTRepo{revoked: map[string]bool{}}
	jwtSvc := jwt.NewJWTService("test-secret-key-for-unit-tests", "1h", "168h")
	svc := NewAuthService(nil, userRepo, jwtRepo, jwtSvc)

	registered, err := svc.Register(ctx, auth.RegisterRequest{
		Name: "Jane Doe", Email: "jane@example.com", Password: "supersecret",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, registered.RefreshToken))

	restarted := NewAuthService(nil, userRepo, jwtRepo,
		jwt.NewJWTService("test-secret-key-for-unit-tests", "1h", "168h"))

	_, err = restarted.Refresh(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

// A well-formed refresh token that was never issued through the store is
// rejected.
func TestAuthService_UnknownRefreshTokenRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	foreign, _, err := jwt.NewJWTService("test-secret-key-for-unit-tests", "1h", "168h").
		GenerateRefreshToken("user-99")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, foreign)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
