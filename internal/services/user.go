package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/config"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// authService checks credentials against the single admin account from config.
type authService struct {
	rateLimit    repository.RateLimitRepository
	adminEmail   string
	passwordHash []byte
	jwtKey       []byte
	expiry       time.Duration
	now          func() time.Time
}

func NewAuthService(rateLimit repository.RateLimitRepository, cfg config.Security) AuthService {
	return &authService{
		rateLimit:    rateLimit,
		adminEmail:   strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		passwordHash: []byte(cfg.AdminPasswordHash),
		jwtKey:       []byte(cfg.JWTKey),
		expiry:       time.Duration(cfg.JWTExpiryHours) * time.Hour,
		now:          time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	allowance, err := s.rateLimit.Allow(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowance.Allowed {
		// never tell a blocked client to retry immediately
		retryAfter := max(int(allowance.RetryAfter.Seconds()), 1)
		logger.Warn("Admin login rate limited", slog.Int("retryAfter", retryAfter))
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// compare even on an unknown email so both paths cost the same
	hashErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if email != s.adminEmail || hashErr != nil {
		logger.Warn("Admin login failed", slog.Int("remainingTries", allowance.Remaining))
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: allowance.Remaining,
		}, nil
	}

	if err := s.rateLimit.Reset(ctx, req.Email); err != nil {
		logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	now := s.now()

	claims := &models.Claims{
		Email: email,
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(s.expiry.Seconds()),
	}, nil
}
