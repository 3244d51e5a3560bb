package handlers

import (
	"net/http"

	"github.com/Dosada05/championship-manager/services"
)

type GroupHandler struct {
	tournamentService services.TournamentService
}

func NewGroupHandler(ts services.TournamentService) *GroupHandler {
	return &GroupHandler{tournamentService: ts}
}

type initializeGroupsInput struct {
	NumGroups int `json:"num_groups"`
}

type assignTeamInput struct {
	TeamID string `json:"team_id"`
}

// GetAllocation godoc
// @Summary Groups of the active phase and the teams not allocated yet
// @Tags groups
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} services.GroupAllocation
// @Router /tournaments/{tournamentID}/groups [get]
func (h *GroupHandler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	alloc, err := h.tournamentService.GroupAllocation(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, alloc, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Initialize godoc
// @Summary Replace the active phase's allocation with empty groups
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body initializeGroupsInput true "Number of groups (1-8)"
// @Success 200 {object} map[string]interface{} "groups"
// @Failure 400 {object} map[string]string "Invalid group count"
// @Failure 409 {object} map[string]string "Phase already has matches"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups [put]
func (h *GroupHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input initializeGroupsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.tournamentService.InitializeGroups(r.Context(), tournamentID, input.NumGroups)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AssignTeam godoc
// @Summary Move a team into a group
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param groupIndex path int true "Group index, starting at 0"
// @Param input body assignTeamInput true "Team"
// @Success 200 {object} map[string]interface{} "groups"
// @Failure 400 {object} map[string]string "Group index out of range"
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/{groupIndex}/teams [post]
func (h *GroupHandler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupIndex, err := getIntParam(r, "groupIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input assignTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.tournamentService.AssignTeam(r.Context(), tournamentID, input.TeamID, groupIndex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UnassignTeam godoc
// @Summary Take a team out of a group
// @Tags groups
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param groupIndex path int true "Group index, starting at 0"
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "groups"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/{groupIndex}/teams/{teamID} [delete]
func (h *GroupHandler) UnassignTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupIndex, err := getIntParam(r, "groupIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getStringParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.tournamentService.UnassignTeam(r.Context(), tournamentID, teamID, groupIndex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
