package handlers

import (
	"net/http"
	"time"

	"pedalads/internal/models"
	"pedalads/internal/services"
	helpers "pedalads/internal/utils/helpers"
)

const (
	ConsentCookie    = "pa_consent"
	consentCookieAge = 365 * 24 * time.Hour
)

type ConsentHandler struct {
	svc services.ConsentService
}

func NewConsentHandler(svc services.ConsentService) *ConsentHandler {
	return &ConsentHandler{svc: svc}
}

func visitorID(r *http.Request) string {
	if c, err := r.Cookie(ConsentCookie); err == nil {
		return c.Value
	}
	return ""
}

// Get
// @Summary      Current cookie consent
// @Description  Reads the visitor id from the pa_consent cookie.
// @Tags         consent
// @Produce      json
// @Success      200  {object}  helpers.Response{data=models.Consent}
// @Failure      404  {object}  helpers.Response
// @Router       /api/consent [get]
func (h *ConsentHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.svc.Get(r.Context(), visitorID(r))
	if c == nil {
		helpers.Error(w, http.StatusNotFound, "no consent recorded")
		return
	}
	helpers.JSON(w, http.StatusOK, c)
}

// Save
// @Summary      Record cookie consent
// @Description  Stores the choice and sets the pa_consent cookie for a year.
// @Tags         consent
// @Accept       json
// @Produce      json
// @Param        body  body  models.ConsentRequest  true  "Choice"
// @Success      200  {object}  models.Result
// @Failure      400  {object}  models.Result
// @Failure      429  {object}  models.Result
// @Router       /api/consent [post]
func (h *ConsentHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.ConsentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w)
		return
	}

	res := h.svc.Save(r.Context(), visitorID(r), r.UserAgent(), req)
	if saved, ok := res.Data.(*models.Consent); ok && res.OK() {
		http.SetCookie(w, &http.Cookie{
			Name:     ConsentCookie,
			Value:    saved.VisitorID,
			Path:     "/",
			MaxAge:   int(consentCookieAge.Seconds()),
			HttpOnly: true,
			Secure:   isHTTPS(r),
			SameSite: http.SameSiteLaxMode,
		})
	}
	writeResult(w, res)
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
