package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sayuryunur/storefront/internal/config"
	appErrors "github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"github.com/sayuryunur/storefront/internal/repositories/mocks"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func securityConfig(t *testing.T) config.Security {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("sayur-segar"), bcrypt.MinCost)
	require.NoError(t, err)

	return config.Security{
		JWTKey:            "test-key",
		JWTExpiryHours:    24,
		AdminEmail:        "Admin@SayurYunur.id",
		AdminPasswordHash: string(hash),
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Issues an admin token and resets attempts", func(t *testing.T) {
		// Arrange
		cfg := securityConfig(t)
		rateLimit := new(mocks.RateLimitRepository)
		authService := service.NewAuthService(rateLimit, cfg)
		req := &models.LoginRequest{Email: "admin@sayuryunur.id", Password: "sayur-segar"}

		rateLimit.On("Allow", mock.Anything, req.Email).Return(repository.LoginAllowance{Allowed: true, Remaining: 4}, nil).Once()
		rateLimit.On("Reset", mock.Anything, req.Email).Return(nil).Once()

		// Act
		resp, err := authService.Login(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 24*3600, resp.ExpiresIn)

		claims := &models.Claims{}
		token, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (any, error) {
			return []byte(cfg.JWTKey), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, models.RoleAdmin, claims.Role)
		assert.Equal(t, "admin@sayuryunur.id", claims.Email)
		rateLimit.AssertExpectations(t)
	})

	t.Run("Failure - Wrong password", func(t *testing.T) {
		rateLimit := new(mocks.RateLimitRepository)
		req := &models.LoginRequest{Email: "admin@sayuryunur.id", Password: "nope"}
		rateLimit.On("Allow", mock.Anything, req.Email).Return(repository.LoginAllowance{Allowed: true, Remaining: 2}, nil).Once()

		resp, err := service.NewAuthService(rateLimit, securityConfig(t)).Login(ctx, req)

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 2, resp.RemainingTries)
		assert.Empty(t, resp.Token)
		rateLimit.AssertNotCalled(t, "Reset", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown email", func(t *testing.T) {
		rateLimit := new(mocks.RateLimitRepository)
		req := &models.LoginRequest{Email: "someone@else.id", Password: "sayur-segar"}
		rateLimit.On("Allow", mock.Anything, req.Email).Return(repository.LoginAllowance{Allowed: true, Remaining: 3}, nil).Once()

		resp, err := service.NewAuthService(rateLimit, securityConfig(t)).Login(ctx, req)

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		rateLimit := new(mocks.RateLimitRepository)
		req := &models.LoginRequest{Email: "admin@sayuryunur.id", Password: "sayur-segar"}
		rateLimit.On("Allow", mock.Anything, req.Email).Return(repository.LoginAllowance{RetryAfter: 15 * time.Second}, nil).Once()

		resp, err := service.NewAuthService(rateLimit, securityConfig(t)).Login(ctx, req)

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 15, resp.RetryAfter)
	})

	t.Run("Failure - Rate limited with an expiring window", func(t *testing.T) {
		rateLimit := new(mocks.RateLimitRepository)
		req := &models.LoginRequest{Email: "admin@sayuryunur.id", Password: "sayur-segar"}
		rateLimit.On("Allow", mock.Anything, req.Email).Return(repository.LoginAllowance{}, nil).Once()

		resp, err := service.NewAuthService(rateLimit, securityConfig(t)).Login(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.RetryAfter)
	})

	t.Run("Failure - Rate limiter unavailable", func(t *testing.T) {
		rateLimit := new(mocks.RateLimitRepository)
		req := &models.LoginRequest{Email: "admin@sayuryunur.id", Password: "sayur-segar"}
		rateLimit.On("Allow", mock.Anything, req.Email).Return(repository.LoginAllowance{}, errors.New("redis down")).Once()

		_, err := service.NewAuthService(rateLimit, securityConfig(t)).Login(ctx, req)

		assertAppErrorCode(t, err, appErrors.ErrCodeThirdPartyError)
	})
}
