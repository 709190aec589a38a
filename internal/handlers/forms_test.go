package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pedalads/internal/models"
	"pedalads/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsentService struct {
	saved map[string]*models.Consent
}

func (f *fakeConsentService) Save(_ context.Context, visitorID, _ string, req models.ConsentRequest) models.Result {
	if visitorID == "" {
		visitorID = "11111111-1111-4111-8111-111111111111"
	}
	c := &models.Consent{VisitorID: visitorID, Necessary: true, Analytics: req.Analytics}
	f.saved[visitorID] = c
	return models.OK("Preferences saved").WithData(c)
}

func (f *fakeConsentService) Get(_ context.Context, visitorID string) *models.Consent {
	return f.saved[visitorID]
}

func TestConsentCookieRoundTrip(t *testing.T) {
	h := NewConsentHandler(&fakeConsentService{saved: map[string]*models.Consent{}})

	rec := httptest.NewRecorder()
	h.Save(rec, httptest.NewRequest(http.MethodPost, "/api/consent", strings.NewReader(`{"analytics":true}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, ConsentCookie, c.Name)
	assert.Equal(t, "11111111-1111-4111-8111-111111111111", c.Value)
	assert.Equal(t, 365*24*3600, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.True(t, c.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/consent", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/consent", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalculatorHandlers(t *testing.T) {
	h := NewCalculatorHandler()

	rec := httptest.NewRecorder()
	h.Pricing(rec, httptest.NewRequest(http.MethodPost, "/api/calculators/pricing",
		strings.NewReader(`{"plan":"growth","bikes":50,"weeks":4}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var quote struct {
		Data struct {
			Total string `json:"total"`
		} `json:"data"`
	}
	decode(t, rec, &quote)
	assert.Equal(t, "7020", quote.Data.Total)

	rec = httptest.NewRecorder()
	h.ROI(rec, httptest.NewRequest(http.MethodPost, "/api/calculators/roi",
		strings.NewReader(`{"bikes":0,"hoursPerDay":6,"days":30,"spend":100}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var res struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &res)
	assert.Equal(t, "Invalid data", res.Error)
	assert.Contains(t, res.Details, "bikes")
}

type fakeAuth struct{ err error }

func (f fakeAuth) Login(context.Context, string, string) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "token", time.Now().Add(time.Hour), nil
}

func TestLoginStatusCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrLoginThrottled, http.StatusTooManyRequests},
		{services.ErrAdminDisabled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		NewAuthHandler(fakeAuth{err: tt.err}).Login(rec,
			httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`)))
		assert.Equal(t, tt.want, rec.Code, "err=%v", tt.err)
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(map[string]Check{"postgres": func(context.Context) error { return nil }}).
		Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewHealthHandler(map[string]Check{"redis": func(context.Context) error { return errors.New("dial tcp: refused") }}).
		Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}
