package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"sportteammanager/internal/delivery/http/helpers"
	"sportteammanager/internal/domain"
)

// CreateTeamRequest is the request body for POST /teams
type CreateTeamRequest struct {
	Name  string `json:"name"`
	Sport string `json:"sport"`
}

// Validate implements Validator.
func (c CreateTeamRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Sport) == "" {
		errs = append(errs, "sport is required")
	}
	return errs
}

// UpdateTeamRequest is the request body for PATCH /teams/{teamID}. Both fields are optional.
type UpdateTeamRequest struct {
	Name  *string `json:"name"`
	Sport *string `json:"sport"`
}

// Validate implements Validator.
func (u UpdateTeamRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Sport != nil && strings.TrimSpace(*u.Sport) == "" {
		errs = append(errs, "sport cannot be empty")
	}
	return errs
}

// MemberRequest is the request body for membership and owner endpoints that
// identify a user by email.
type MemberRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (m MemberRequest) Validate() []string {
	if strings.TrimSpace(m.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// SubgroupRequest is the request body for subgroup create and rename endpoints.
type SubgroupRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (s SubgroupRequest) Validate() []string {
	if strings.TrimSpace(s.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// TeamSuccessResponse is the success response envelope for team endpoints.
type TeamSuccessResponse struct {
	Data  *domain.Team      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TeamController handles team and subgroup endpoints. All mutations require
// the caller to be the team owner; the service enforces that.
type TeamController struct {
	Logger  *slog.Logger
	Service domain.TeamService
}

// NewTeamController creates a TeamController with the given logger and service.
func NewTeamController(logger *slog.Logger, svc domain.TeamService) *TeamController {
	return &TeamController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateTeam godoc
// @Summary Create a team
// @Description Create a team with a name and sport. The caller becomes the owner and is placed in the reserved "All Users" and "Coaches" subgroups.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTeamRequest true "Team data"
// @Success 201 {object} controllers.TeamSuccessResponse "data contains the created team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams [post]
func (c *TeamController) CreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req CreateTeamRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	team, err := c.Service.CreateTeam(r.Context(), req.Name, req.Sport, userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, team)
}

// GetTeam godoc
// @Summary Get a team
// @Description Returns the team with its subgroups and members.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the team"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /teams/{teamID} [get]
func (c *TeamController) GetTeam(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	team, err := c.Service.GetTeam(r.Context(), teamID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// UpdateTeam godoc
// @Summary Update a team
// @Description Rename the team and/or change its sport. Owner only.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param body body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /teams/{teamID} [patch]
func (c *TeamController) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req UpdateTeamRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var team *domain.Team
	var err error
	if req.Name != nil {
		team, err = c.Service.RenameTeam(r.Context(), teamID, userID, strings.TrimSpace(*req.Name))
		if err != nil {
			writeDomainError(c.Logger, w, r, err)
			return
		}
	}
	if req.Sport != nil {
		team, err = c.Service.ChangeSport(r.Context(), teamID, userID, strings.TrimSpace(*req.Sport))
		if err != nil {
			writeDomainError(c.Logger, w, r, err)
			return
		}
	}
	if team == nil {
		team, err = c.Service.GetTeam(r.Context(), teamID)
		if err != nil {
			writeDomainError(c.Logger, w, r, err)
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Description Delete the team and all its subgroups. Owner only.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /teams/{teamID} [delete]
func (c *TeamController) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	if err := c.Service.DeleteTeam(r.Context(), teamID, userID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// ChangeOwner godoc
// @Summary Transfer team ownership
// @Description Make the member with the given email the new owner. The new owner must already be a team member and is promoted to "Coaches" if absent there. Owner only.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param body body MemberRequest true "New owner email"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /teams/{teamID}/owner [put]
func (c *TeamController) ChangeOwner(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req MemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	team, err := c.Service.ChangeOwner(r.Context(), teamID, userID, req.Email)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// CreateSubgroup godoc
// @Summary Create a subgroup
// @Description Add an empty subgroup to the team. Names are unique within the team. Owner only.
// @Tags subgroups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param body body SubgroupRequest true "Subgroup name"
// @Success 201 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /teams/{teamID}/subgroups [post]
func (c *TeamController) CreateSubgroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req SubgroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	team, err := c.Service.CreateSubgroup(r.Context(), teamID, userID, req.Name)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, team)
}

// RenameSubgroup godoc
// @Summary Rename a subgroup
// @Description Rename the subgroup. Renaming to a name held by another subgroup fails. Owner only.
// @Tags subgroups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param name path string true "Current subgroup name"
// @Param body body SubgroupRequest true "New subgroup name"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /teams/{teamID}/subgroups/{name} [patch]
func (c *TeamController) RenameSubgroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req SubgroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	team, err := c.Service.RenameSubgroup(r.Context(), teamID, userID, r.PathValue("name"), req.Name)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// DeleteSubgroup godoc
// @Summary Delete a subgroup
// @Description Delete the subgroup. The reserved "All Users" and "Coaches" subgroups cannot be deleted. Owner only.
// @Tags subgroups
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param name path string true "Subgroup name"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /teams/{teamID}/subgroups/{name} [delete]
func (c *TeamController) DeleteSubgroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	team, err := c.Service.DeleteSubgroup(r.Context(), teamID, userID, r.PathValue("name"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// AddMember godoc
// @Summary Add a team member
// @Description Add the user with the given email to the team ("All Users"). Owner only.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param body body MemberRequest true "Member email"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /teams/{teamID}/members [post]
func (c *TeamController) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req MemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	team, err := c.Service.AddMember(r.Context(), teamID, userID, req.Email)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// RemoveMember godoc
// @Summary Remove a team member
// @Description Remove the user with the given email from the team and every subgroup. The owner cannot be removed. Owner only.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param email path string true "Member email"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /teams/{teamID}/members/{email} [delete]
func (c *TeamController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	team, err := c.Service.RemoveMember(r.Context(), teamID, userID, r.PathValue("email"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// AddMemberToSubgroup godoc
// @Summary Add a member to a subgroup
// @Description Add the team member with the given email to the named subgroup. Owner only.
// @Tags subgroups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param name path string true "Subgroup name"
// @Param body body MemberRequest true "Member email"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /teams/{teamID}/subgroups/{name}/members [post]
func (c *TeamController) AddMemberToSubgroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	var req MemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	team, err := c.Service.AddMemberToSubgroup(r.Context(), teamID, userID, r.PathValue("name"), req.Email)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// RemoveMemberFromSubgroup godoc
// @Summary Remove a member from a subgroup
// @Description Remove the member with the given email from the named subgroup only. Owner only.
// @Tags subgroups
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "Team ID"
// @Param name path string true "Subgroup name"
// @Param email path string true "Member email"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains the updated team"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /teams/{teamID}/subgroups/{name}/members/{email} [delete]
func (c *TeamController) RemoveMemberFromSubgroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}
	team, err := c.Service.RemoveMemberFromSubgroup(r.Context(), teamID, userID, r.PathValue("name"), r.PathValue("email"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}
