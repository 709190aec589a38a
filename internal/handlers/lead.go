package handlers

import (
	"net/http"

	"pedalads/internal/logger"
	"pedalads/internal/models"
	"pedalads/internal/services"
	helpers "pedalads/internal/utils/helpers"

	"go.uber.org/zap"
)

type LeadHandler struct {
	svc services.LeadService
}

func NewLeadHandler(svc services.LeadService) *LeadHandler {
	return &LeadHandler{svc: svc}
}

// JoinWaitlist
// @Summary      Join the advertiser waitlist
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  models.WaitlistRequest  true  "Advertiser"
// @Success      200  {object}  models.Result
// @Failure      400  {object}  models.Result
// @Failure      429  {object}  models.Result
// @Router       /api/waitlist [post]
func (h *LeadHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	var req models.WaitlistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w)
		return
	}
	writeResult(w, h.svc.JoinWaitlist(r.Context(), req))
}

// SignUpRider
// @Summary      Apply as a rider
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  models.RiderSignupRequest  true  "Rider"
// @Success      200  {object}  models.Result
// @Failure      400  {object}  models.Result
// @Failure      429  {object}  models.Result
// @Router       /api/riders [post]
func (h *LeadHandler) SignUpRider(w http.ResponseWriter, r *http.Request) {
	var req models.RiderSignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w)
		return
	}
	writeResult(w, h.svc.SignUpRider(r.Context(), req))
}

// Contact
// @Summary      Contact form
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  models.ContactRequest  true  "Message"
// @Success      200  {object}  models.Result
// @Failure      400  {object}  models.Result
// @Failure      429  {object}  models.Result
// @Router       /api/contact [post]
func (h *LeadHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w)
		return
	}
	writeResult(w, h.svc.SubmitContact(r.Context(), req))
}

// Newsletter
// @Summary      Subscribe to the newsletter
// @Description  Subscribing twice is not an error.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  models.NewsletterRequest  true  "Subscriber"
// @Success      200  {object}  models.Result
// @Failure      400  {object}  models.Result
// @Failure      429  {object}  models.Result
// @Router       /api/newsletter [post]
func (h *LeadHandler) Newsletter(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w)
		return
	}
	writeResult(w, h.svc.SubscribeNewsletter(r.Context(), req))
}

// AdminList
// @Summary      List leads
// @Tags         admin-leads
// @Produce      json
// @Param        kind     query  string  false  "waitlist, rider, contact or newsletter"
// @Param        page     query  int     false  "Page, from 1"
// @Param        perPage  query  int     false  "Items per page (default 50, max 200)"
// @Success      200  {object}  helpers.Response
// @Failure      400  {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/leads [get]
func (h *LeadHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	kind := models.LeadKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		helpers.Error(w, http.StatusBadRequest, "unknown lead kind")
		return
	}
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "perPage", 50)

	leads, total, err := h.svc.List(r.Context(), kind, page, perPage)
	if err != nil {
		logger.WithCtx(r.Context()).Error("failed to list leads", zap.String("kind", string(kind)), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"items": leads,
		"total": total,
	})
}
