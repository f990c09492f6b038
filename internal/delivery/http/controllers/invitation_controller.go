package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"sportteammanager/internal/delivery/http/helpers"
	"sportteammanager/internal/domain"
	"sportteammanager/internal/metrics"
)

// guestLinkRejected is the only message the public guest endpoints return on
// failure. Decode errors, missing events, and missing guests are deliberately
// indistinguishable to the caller.
const guestLinkRejected = "link invalid or expired"

// InviteRequest is the request body for POST /events/{eventID}/invitations
type InviteRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	if strings.TrimSpace(i.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// InviteBatchRequest is the request body for POST /events/{eventID}/invitations/batch
type InviteBatchRequest struct {
	Emails []string `json:"emails"`
}

// Validate implements Validator.
func (i InviteBatchRequest) Validate() []string {
	var errs []string
	if len(i.Emails) == 0 {
		errs = append(errs, "emails is required")
	}
	for _, e := range i.Emails {
		if strings.TrimSpace(e) == "" {
			errs = append(errs, "emails must not contain blank entries")
			break
		}
	}
	return errs
}

// ChangeStatusRequest is the request body for PATCH /events/{eventID}/invitations
type ChangeStatusRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// Validate implements Validator.
func (c ChangeStatusRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	}
	if !domain.KnownStatus(domain.InvitationStatus(c.Status)) {
		errs = append(errs, "status must be PENDING, ACCEPTED, or DECLINED")
	}
	return errs
}

// GuestStatusRequest is the request body for POST /guest/{token}/status
type GuestStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (g GuestStatusRequest) Validate() []string {
	if !domain.KnownStatus(domain.InvitationStatus(g.Status)) {
		return []string{"status must be PENDING, ACCEPTED, or DECLINED"}
	}
	return nil
}

// CreateGuestRequest is the request body for POST /events/{eventID}/guests.
// Email is optional; when present the link is mailed to it.
type CreateGuestRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements Validator.
func (c CreateGuestRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Email != "" && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(c.Email))) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// CreateGuestResponse is the response body for POST /events/{eventID}/guests
type CreateGuestResponse struct {
	Guest      *domain.Guest      `json:"guest"`
	Invitation *domain.Invitation `json:"invitation"`
	Link       string             `json:"link"`
}

// InvitationSuccessResponse is the success response envelope for single-invitation endpoints.
type InvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// InvitationListResponse is the response body for GET /events/{eventID}/invitations
type InvitationListResponse struct {
	Invitations []*domain.Invitation   `json:"invitations"`
	Pagination  helpers.PaginationMeta `json:"pagination"`
}

// WithdrawResponse is the response body for DELETE /events/{eventID}/invitations/{email}
type WithdrawResponse struct {
	Removed bool `json:"removed"`
}

// InvitationController handles the invitation ledger endpoints, including the
// public guest link flow.
type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
	Metrics *metrics.Metrics
}

// NewInvitationController creates an InvitationController. metrics may be nil.
func NewInvitationController(logger *slog.Logger, svc domain.InvitationService, m *metrics.Metrics) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
		Metrics: m,
	}
}

// Invite godoc
// @Summary Invite a registered user
// @Description Create a PENDING invitation for the user with the given email. A recipient holds at most one invitation per event. Creator only.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body InviteRequest true "Invitee email"
// @Success 201 {object} controllers.InvitationSuccessResponse "data contains the invitation"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/invitations [post]
func (c *InvitationController) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req InviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Invite(r.Context(), eventID, userID, req.Email)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	if c.Metrics != nil {
		c.Metrics.IncInvitationCreated("user")
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, inv)
}

// InviteBatch godoc
// @Summary Invite several registered users
// @Description Create PENDING invitations for every email, or none at all: one unknown address or duplicate fails the whole batch. Creator only.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body InviteBatchRequest true "Invitee emails"
// @Success 201 {object} helpers.APIResponse "data contains the created invitations"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/invitations/batch [post]
func (c *InvitationController) InviteBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req InviteBatchRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	invs, err := c.Service.InviteAll(r.Context(), eventID, userID, req.Emails)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	if c.Metrics != nil {
		for range invs {
			c.Metrics.IncInvitationCreated("user")
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, invs)
}

// ChangeStatus godoc
// @Summary Change an invitation status
// @Description Set the status of the invitation held by the recipient with the given email. Any transition is allowed; the change timestamp is refreshed.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body ChangeStatusRequest true "Recipient email and new status"
// @Success 200 {object} controllers.InvitationSuccessResponse "data contains the updated invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitations [patch]
func (c *InvitationController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req ChangeStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.ChangeStatus(r.Context(), eventID, req.Email, domain.InvitationStatus(req.Status))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// Withdraw godoc
// @Summary Withdraw an invitation
// @Description Remove the invitation held by the recipient with the given email. Withdrawing an absent invitation is not an error; removal frees the recipient for a fresh invitation. Creator only.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param email path string true "Recipient email"
// @Success 200 {object} helpers.APIResponse "data contains {removed}"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitations/{email} [delete]
func (c *InvitationController) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	removed, err := c.Service.Withdraw(r.Context(), eventID, userID, r.PathValue("email"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, WithdrawResponse{Removed: removed})
}

// ListByStatus godoc
// @Summary List invitations by status
// @Description Returns the event's invitations with the given status, ordered by the time of their last status change, oldest first. Paginated.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param status query string true "Invitation status (PENDING, ACCEPTED, or DECLINED)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains invitations and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invitations [get]
func (c *InvitationController) ListByStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	status := domain.InvitationStatus(r.URL.Query().Get("status"))
	if !domain.KnownStatus(status) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "status must be PENDING, ACCEPTED, or DECLINED")
		return
	}
	params := helpers.ParsePagination(r)
	invs, total, err := c.Service.ListByStatus(r.Context(), eventID, status, params)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InvitationListResponse{
		Invitations: invs,
		Pagination:  helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// CreateGuest godoc
// @Summary Invite a guest
// @Description Create a guest recipient with a PENDING invitation and mint their encrypted link. When an email is given, the link is mailed to it. Requires authentication.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body CreateGuestRequest true "Guest name and optional email"
// @Success 201 {object} helpers.APIResponse "data contains guest, invitation, and link"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/guests [post]
func (c *InvitationController) CreateGuest(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req CreateGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest, inv, err := c.Service.CreateGuestInvitation(r.Context(), eventID, req.Name, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	if c.Metrics != nil {
		c.Metrics.IncInvitationCreated("guest")
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateGuestResponse{
		Guest:      guest,
		Invitation: inv,
		Link:       c.Service.GuestURL(guest.Link),
	})
}

// ResolveGuestLink godoc
// @Summary Resolve a guest link
// @Description Public endpoint. Returns the invitation behind the token. Every failure, whatever its cause, is the same 404.
// @Tags guests
// @Produce json
// @Param token path string true "Guest link token"
// @Success 200 {object} controllers.InvitationSuccessResponse "data contains the invitation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /guest/{token} [get]
func (c *InvitationController) ResolveGuestLink(w http.ResponseWriter, r *http.Request) {
	inv, err := c.Service.ResolveGuestLink(r.Context(), r.PathValue("token"))
	if err != nil {
		c.rejectGuestLink(w, r, err)
		return
	}
	if c.Metrics != nil {
		c.Metrics.IncGuestLinkResolution("ok")
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// ChangeGuestStatus godoc
// @Summary Answer through a guest link
// @Description Public endpoint. Sets the status of the invitation behind the token. Every resolution failure is the same 404.
// @Tags guests
// @Accept json
// @Produce json
// @Param token path string true "Guest link token"
// @Param body body GuestStatusRequest true "New status"
// @Success 200 {object} controllers.InvitationSuccessResponse "data contains the updated invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /guest/{token}/status [post]
func (c *InvitationController) ChangeGuestStatus(w http.ResponseWriter, r *http.Request) {
	var req GuestStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.ChangeGuestStatus(r.Context(), r.PathValue("token"), domain.InvitationStatus(req.Status))
	if err != nil {
		c.rejectGuestLink(w, r, err)
		return
	}
	if c.Metrics != nil {
		c.Metrics.IncGuestLinkResolution("ok")
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// rejectGuestLink answers every guest link failure identically. The precise
// cause stays in the logs.
func (c *InvitationController) rejectGuestLink(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.InfoContext(r.Context(), "guest link rejected", "path", r.URL.Path, "err", err)
	if c.Metrics != nil {
		c.Metrics.IncGuestLinkResolution("rejected")
	}
	helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, guestLinkRejected)
}
