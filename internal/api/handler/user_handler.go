package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"csv-manager/internal/model"
	"csv-manager/internal/store"
	"csv-manager/pkg/utils"
)

// RegisterUser creates an account
// @Summary Register a user
// @Description Accounts are identity-only; session issuance stays with the external auth layer
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} model.User "Created user"
// @Failure 400 {object} map[string]interface{} "Missing email or name"
// @Router /users [post]
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Name == "" {
		h.writeError(w, fmt.Errorf("%w: email and name are required", model.ErrInvalidInput))
		return
	}

	user, err := store.CreateUser(body.Email, body.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateTeam creates a team owned by the caller
// @Summary Create a team
// @Description One team per user; callers already in a team cannot create another
// @Tags teams
// @Accept json
// @Produce json
// @Success 200 {object} model.Team "Created team"
// @Failure 400 {object} map[string]interface{} "Caller is already in a team"
// @Router /teams [post]
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if _, _, ok := store.TeamMembership(user.ID); ok {
		h.writeError(w, fmt.Errorf("%w: already part of a team", model.ErrInvalidInput))
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	// the team name is optional
	json.NewDecoder(r.Body).Decode(&body)
	name := body.Name
	if name == "" {
		name = user.Name + " Team"
	}

	team, err := store.CreateTeam(name, user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// AddTeamMember adds a user to the caller's team
// @Summary Add a team member
// @Description Team owner only; re-adding an existing member is a no-op
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} map[string]interface{} "Membership confirmation"
// @Failure 400 {object} map[string]interface{} "Unknown user or invalid role"
// @Failure 403 {object} map[string]interface{} "Caller does not own the team"
// @Router /teams/{id}/members [post]
func (h *Handler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	teamID, err := teamIDFromPath(r.URL.Path, "/members")
	if err != nil {
		h.writeError(w, err)
		return
	}

	var body struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" {
		h.writeError(w, fmt.Errorf("%w: userId is required", model.ErrInvalidInput))
		return
	}
	memberRole := body.Role
	if memberRole == "" {
		memberRole = model.RoleMember
	}
	if memberRole != model.RoleOwner && memberRole != model.RoleMember {
		h.writeError(w, fmt.Errorf("%w: role must be owner or member", model.ErrInvalidInput))
		return
	}

	if callerRole, ok := store.TeamRole(teamID, user.ID); !ok || callerRole != model.RoleOwner {
		h.writeError(w, fmt.Errorf("%w: only the team owner can add members", model.ErrForbidden))
		return
	}
	if _, err := store.GetUser(body.UserID); err != nil {
		h.writeError(w, fmt.Errorf("%w: unknown user %q", model.ErrInvalidInput, body.UserID))
		return
	}

	if err := store.AddTeamMember(teamID, body.UserID, memberRole); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Member added to team successfully",
		"teamId":  teamID,
		"userId":  body.UserID,
	})
}

// GetActivity lists the caller's recent dataset activity
// @Summary List recent activity
// @Description Upload and delete entries, newest first
// @Tags users
// @Produce json
// @Param limit query int false "Maximum entries (default 20)"
// @Success 200 {array} model.Activity "Recent activity"
// @Failure 401 {object} map[string]interface{} "No caller identity"
// @Router /activity [get]
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	limit := utils.ParseIntDefault(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
	}

	entries, err := store.ListActivity(user.ID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []model.Activity{}
	}
	writeJSON(w, http.StatusOK, entries)
}
