package handlers

import (
	"net/http"

	"github.com/Dosada05/championship-manager/services"
)

type TeamHandler struct {
	tournamentService services.TournamentService
}

func NewTeamHandler(ts services.TournamentService) *TeamHandler {
	return &TeamHandler{tournamentService: ts}
}

// ListTeams godoc
// @Summary List the team registry
// @Tags teams
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "teams"
// @Router /tournaments/{tournamentID}/teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.tournamentService.ListTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddTeam godoc
// @Summary Register a team
// @Tags teams
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body services.AddTeamInput true "Team name"
// @Success 201 {object} map[string]interface{} "team"
// @Failure 400 {object} map[string]string "Empty name"
// @Failure 409 {object} map[string]string "Duplicate name"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams [post]
func (h *TeamHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AddTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.tournamentService.AddTeam(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveTeam godoc
// @Summary Remove a team with its matches and allocations
// @Tags teams
// @Param tournamentID path string true "Tournament ID"
// @Param teamID path string true "Team ID"
// @Success 204
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams/{teamID} [delete]
func (h *TeamHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getStringParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.RemoveTeam(r.Context(), tournamentID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTeamGroup godoc
// @Summary Group of a team in the active phase
// @Tags teams
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param teamID path string true "Team ID"
// @Success 200 {object} services.TeamGroup
// @Failure 404 {object} map[string]string "Team not found"
// @Router /tournaments/{tournamentID}/teams/{teamID}/group [get]
func (h *TeamHandler) GetTeamGroup(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getStringParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.tournamentService.GroupOfTeam(r.Context(), tournamentID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, group, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListEligibleOpponents godoc
// @Summary Teams that may be scheduled against a team
// @Tags teams
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "teams"
// @Router /tournaments/{tournamentID}/teams/{teamID}/opponents [get]
func (h *TeamHandler) ListEligibleOpponents(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getStringParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.tournamentService.EligibleOpponents(r.Context(), tournamentID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
