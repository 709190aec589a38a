package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"pedalads/internal/logger"
	"pedalads/internal/ratelimit"
	"pedalads/internal/utils"

	"go.uber.org/zap"
)

const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminDisabled      = errors.New("admin login is not configured")
	ErrLoginThrottled     = errors.New("too many login attempts")
)

// AdminAuthService checks the single admin account configured through the
// environment and issues access tokens for the blog endpoints.
type AdminAuthService struct {
	email        string
	passwordHash string
	secret       string
	ttl          time.Duration
	guard        rateGuard
}

func NewAdminAuthService(email, passwordHash, secret string, ttl time.Duration, limiter ratelimit.Limiter) *AdminAuthService {
	return &AdminAuthService{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
		guard:        rateGuard{limiter: limiter},
	}
}

func (s *AdminAuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	log := logger.WithCtx(ctx).With(zap.String("action", "adminLogin"))

	if s.email == "" || s.passwordHash == "" || s.secret == "" {
		log.Warn("admin login attempted but not configured")
		return "", time.Time{}, ErrAdminDisabled
	}
	if !s.guard.allow(ctx, ratelimit.AdminLogin) {
		return "", time.Time{}, ErrLoginThrottled
	}

	email = strings.ToLower(strings.TrimSpace(email))
	// bcrypt runs whatever the email is
	passOK := utils.CheckPasswordHash(password, s.passwordHash)
	if email != s.email || !passOK {
		log.Warn("admin login rejected", zap.String("email", email))
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := utils.GenerateToken(s.secret, s.email, RoleAdmin, s.ttl)
	if err != nil {
		log.Error("failed to sign admin token", zap.Error(err))
		return "", time.Time{}, err
	}

	log.Info("admin logged in", zap.Time("expires_at", exp))
	return token, exp, nil
}
