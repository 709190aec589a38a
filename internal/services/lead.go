package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pedalads/internal/logger"
	"pedalads/internal/metrics"
	"pedalads/internal/models"
	"pedalads/internal/ratelimit"
	"pedalads/internal/repository"
	"pedalads/internal/reqctx"
	"pedalads/internal/utils"

	"go.uber.org/zap"
)

const (
	msgSubmitFailed      = "Something went wrong, please try again later"
	msgWaitlistJoined    = "You're on the waitlist"
	msgRiderReceived     = "Application received"
	msgContactReceived   = "Message sent"
	msgSubscribed        = "Subscribed successfully"
	msgAlreadySubscribed = "You're already subscribed"
)

// LeadNotifier is told about every stored lead.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, l *models.Lead)
}

type LeadService interface {
	JoinWaitlist(ctx context.Context, req models.WaitlistRequest) models.Result
	SignUpRider(ctx context.Context, req models.RiderSignupRequest) models.Result
	SubmitContact(ctx context.Context, req models.ContactRequest) models.Result
	SubscribeNewsletter(ctx context.Context, req models.NewsletterRequest) models.Result
	List(ctx context.Context, kind models.LeadKind, page, perPage int) ([]*models.Lead, int, error)
}

type leadService struct {
	repo     repository.LeadRepo
	notifier LeadNotifier
	sanitize *utils.Sanitizer
	guard    rateGuard
	metrics  *metrics.Metrics
}

func NewLeadService(repo repository.LeadRepo, notifier LeadNotifier, limiter ratelimit.Limiter, m *metrics.Metrics) LeadService {
	return &leadService{
		repo:     repo,
		notifier: notifier,
		sanitize: utils.NewSanitizer(),
		guard:    rateGuard{limiter: limiter, metrics: m},
		metrics:  m,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *leadService) JoinWaitlist(ctx context.Context, req models.WaitlistRequest) models.Result {
	if !s.guard.allow(ctx, ratelimit.Waitlist) {
		return models.Fail(http.StatusTooManyRequests, msgTooMany, nil)
	}

	req.Name = s.sanitize.Text(req.Name)
	req.Email = normalizeEmail(s.sanitize.Text(req.Email))
	req.Company = s.sanitize.Text(req.Company)
	req.Role = s.sanitize.Text(req.Role)
	req.City = s.sanitize.Text(req.City)
	req.FleetSize = s.sanitize.Text(req.FleetSize)
	req.Budget = s.sanitize.Text(req.Budget)

	if details := utils.ValidateStruct(req); details != nil {
		return models.Fail(http.StatusBadRequest, msgInvalidData, details)
	}

	return s.store(ctx, &models.Lead{
		Kind:    models.LeadWaitlist,
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		City:    req.City,
		Metadata: compact(map[string]string{
			"role":      req.Role,
			"fleetSize": req.FleetSize,
			"budget":    req.Budget,
		}),
	}, msgWaitlistJoined)
}

func (s *leadService) SignUpRider(ctx context.Context, req models.RiderSignupRequest) models.Result {
	if !s.guard.allow(ctx, ratelimit.RiderSignup) {
		return models.Fail(http.StatusTooManyRequests, msgTooMany, nil)
	}

	req.Name = s.sanitize.Text(req.Name)
	req.Email = normalizeEmail(s.sanitize.Text(req.Email))
	req.Phone = s.sanitize.Text(req.Phone)
	req.City = s.sanitize.Text(req.City)
	req.BikeType = strings.ToLower(s.sanitize.Text(req.BikeType))
	req.Referral = s.sanitize.Text(req.Referral)

	if details := utils.ValidateStruct(req); details != nil {
		return models.Fail(http.StatusBadRequest, msgInvalidData, details)
	}

	return s.store(ctx, &models.Lead{
		Kind:  models.LeadRider,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		City:  req.City,
		Metadata: compact(map[string]string{
			"bikeType":    req.BikeType,
			"weeklyHours": itoa(req.WeeklyHours),
			"referral":    req.Referral,
		}),
	}, msgRiderReceived)
}

func (s *leadService) SubmitContact(ctx context.Context, req models.ContactRequest) models.Result {
	if !s.guard.allow(ctx, ratelimit.ContactForm) {
		return models.Fail(http.StatusTooManyRequests, msgTooMany, nil)
	}

	req.Name = s.sanitize.Text(req.Name)
	req.Email = normalizeEmail(s.sanitize.Text(req.Email))
	req.Company = s.sanitize.Text(req.Company)
	req.Subject = s.sanitize.Text(req.Subject)
	req.Message = s.sanitize.Text(req.Message)

	if details := utils.ValidateStruct(req); details != nil {
		return models.Fail(http.StatusBadRequest, msgInvalidData, details)
	}

	return s.store(ctx, &models.Lead{
		Kind:     models.LeadContact,
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Message:  req.Message,
		Metadata: map[string]string{"subject": req.Subject},
	}, msgContactReceived)
}

func (s *leadService) SubscribeNewsletter(ctx context.Context, req models.NewsletterRequest) models.Result {
	log := logger.WithCtx(ctx).With(zap.String("action", "newsletter"))

	if !s.guard.allow(ctx, ratelimit.Newsletter) {
		return models.Fail(http.StatusTooManyRequests, msgTooMany, nil)
	}

	req.Email = normalizeEmail(s.sanitize.Text(req.Email))
	req.Source = s.sanitize.Text(req.Source)

	if details := utils.ValidateStruct(req); details != nil {
		return models.Fail(http.StatusBadRequest, msgInvalidData, details)
	}

	lead := &models.Lead{
		Kind:     models.LeadNewsletter,
		Email:    req.Email,
		Metadata: compact(map[string]string{"source": req.Source}),
		ClientIP: reqctx.ClientIP(ctx),
	}
	created, err := s.repo.Subscribe(ctx, lead)
	if errors.Is(err, repository.ErrAlreadySubscribed) {
		log.Info("newsletter address already subscribed")
		return models.OK(msgAlreadySubscribed)
	}
	if err != nil {
		log.Error("failed to store newsletter subscription", zap.Error(err))
		return models.Fail(http.StatusInternalServerError, msgSubmitFailed, nil)
	}

	s.metrics.RecordLead(ctx, string(created.Kind))
	s.notify(ctx, created)
	return models.OK(msgSubscribed)
}

func (s *leadService) store(ctx context.Context, l *models.Lead, success string) models.Result {
	log := logger.WithCtx(ctx).With(zap.String("action", string(l.Kind)))

	l.ClientIP = reqctx.ClientIP(ctx)
	created, err := s.repo.Create(ctx, l)
	if err != nil {
		log.Error("failed to store lead", zap.Error(err))
		return models.Fail(http.StatusInternalServerError, msgSubmitFailed, nil)
	}

	s.metrics.RecordLead(ctx, string(created.Kind))
	log.Info("lead stored", zap.String("id", created.ID))
	s.notify(ctx, created)
	return models.OK(success)
}

func (s *leadService) notify(ctx context.Context, l *models.Lead) {
	if s.notifier != nil {
		s.notifier.NotifyLead(ctx, l)
	}
}

func (s *leadService) List(ctx context.Context, kind models.LeadKind, page, perPage int) ([]*models.Lead, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}
	return s.repo.List(ctx, kind, perPage, (page-1)*perPage)
}

// compact drops empty values so metadata only records what was submitted.
func compact(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" || v == "0" {
			delete(m, k)
		}
	}
	return m
}
