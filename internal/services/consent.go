package services

import (
	"context"
	"errors"
	"net/http"
	"unicode/utf8"

	"pedalads/internal/logger"
	"pedalads/internal/metrics"
	"pedalads/internal/models"
	"pedalads/internal/ratelimit"
	"pedalads/internal/repository"
	"pedalads/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgConsentSaved = "Preferences saved"
	maxUserAgent    = 512
)

type ConsentService interface {
	// Save records a consent choice. An unknown or malformed visitorID gets
	// a fresh one; the stored record is returned in Result.Data.
	Save(ctx context.Context, visitorID, userAgent string, req models.ConsentRequest) models.Result
	Get(ctx context.Context, visitorID string) *models.Consent
}

type consentService struct {
	repo     repository.ConsentRepo
	sanitize *utils.Sanitizer
	guard    rateGuard
}

func NewConsentService(repo repository.ConsentRepo, limiter ratelimit.Limiter, m *metrics.Metrics) ConsentService {
	return &consentService{repo: repo, sanitize: utils.NewSanitizer(), guard: rateGuard{limiter: limiter, metrics: m}}
}

func (s *consentService) Save(ctx context.Context, visitorID, userAgent string, req models.ConsentRequest) models.Result {
	log := logger.WithCtx(ctx).With(zap.String("action", "cookieConsent"))

	if !s.guard.allow(ctx, ratelimit.CookieConsent) {
		return models.Fail(http.StatusTooManyRequests, msgTooMany, nil)
	}

	req.Vendor = s.sanitize.Text(req.Vendor)
	if details := utils.ValidateStruct(req); details != nil {
		return models.Fail(http.StatusBadRequest, msgInvalidData, details)
	}

	if _, err := uuid.Parse(visitorID); err != nil {
		visitorID = uuid.NewString()
	}
	userAgent = truncateUTF8(userAgent, maxUserAgent)

	saved, err := s.repo.Save(ctx, &models.Consent{
		VisitorID:   visitorID,
		Necessary:   true,
		Analytics:   req.Analytics,
		Marketing:   req.Marketing,
		Preferences: req.Preferences,
		Vendor:      req.Vendor,
		UserAgent:   userAgent,
	})
	if err != nil {
		log.Error("failed to save consent", zap.Error(err))
		return models.Fail(http.StatusInternalServerError, msgSubmitFailed, nil)
	}

	log.Debug("consent saved",
		zap.String("visitor_id", saved.VisitorID),
		zap.Bool("analytics", saved.Analytics),
		zap.Bool("marketing", saved.Marketing),
	)
	return models.OK(msgConsentSaved).WithData(saved)
}

// Get returns the latest consent for the visitor, or nil.
func (s *consentService) Get(ctx context.Context, visitorID string) *models.Consent {
	if _, err := uuid.Parse(visitorID); err != nil {
		return nil
	}
	c, err := s.repo.Latest(ctx, visitorID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.WithCtx(ctx).Error("failed to load consent", zap.String("action", "cookieConsent"), zap.Error(err))
		}
		return nil
	}
	return c
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
