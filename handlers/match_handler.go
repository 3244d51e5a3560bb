package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/championship-manager/models"
	"github.com/Dosada05/championship-manager/services"
)

type MatchHandler struct {
	tournamentService services.TournamentService
}

func NewMatchHandler(ts services.TournamentService) *MatchHandler {
	return &MatchHandler{tournamentService: ts}
}

// ListMatches godoc
// @Summary List matches
// @Tags matches
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param phase query int false "Phase index"
// @Param status query string false "scheduled or completed"
// @Param team query string false "Team ID"
// @Success 200 {object} map[string]interface{} "matches"
// @Router /tournaments/{tournamentID}/matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := services.MatchFilter{TeamID: q.Get("team")}
	if raw := q.Get("phase"); raw != "" {
		phase, err := strconv.Atoi(raw)
		if err != nil || phase < 0 {
			badRequestResponse(w, r, errors.New("phase must be a non-negative integer"))
			return
		}
		filter.PhaseIndex = &phase
	}
	if raw := q.Get("status"); raw != "" {
		status := models.MatchStatus(raw)
		if status != models.MatchStatusScheduled && status != models.MatchStatusCompleted {
			badRequestResponse(w, r, errors.New("status must be scheduled or completed"))
			return
		}
		filter.Status = &status
	}

	matches, err := h.tournamentService.ListMatches(r.Context(), tournamentID, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ScheduleMatch godoc
// @Summary Schedule a match, or both legs in a round-trip tournament
// @Tags matches
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body services.ScheduleMatchInput true "Teams, date (YYYY-MM-DD), time (HH:MM), location"
// @Success 201 {object} map[string]interface{} "matches"
// @Failure 400 {object} map[string]interface{} "Illegal pairing or missing date"
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches [post]
func (h *MatchHandler) ScheduleMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ScheduleMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.tournamentService.ScheduleMatch(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult godoc
// @Summary Record or overwrite the result of a match
// @Tags matches
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID"
// @Param input body services.RecordResultInput true "Scores"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 400 {object} map[string]string "Invalid score"
// @Failure 404 {object} map[string]string "Match not found"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches/{matchID}/result [put]
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getStringParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.tournamentService.RecordResult(r.Context(), tournamentID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatch godoc
// @Summary Delete a match, reverting its result
// @Tags matches
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID"
// @Success 204
// @Failure 404 {object} map[string]string "Match not found"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches/{matchID} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getStringParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.DeleteMatch(r.Context(), tournamentID, matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewMatchup godoc
// @Summary Check whether two teams may play each other
// @Tags matches
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param team1 query string true "First team ID"
// @Param team2 query string true "Second team ID"
// @Success 200 {object} services.MatchupPreview
// @Failure 404 {object} map[string]string "Team not found"
// @Router /tournaments/{tournamentID}/matchups/preview [get]
func (h *MatchHandler) PreviewMatchup(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team1ID, team2ID := r.URL.Query().Get("team1"), r.URL.Query().Get("team2")
	if team1ID == "" || team2ID == "" {
		badRequestResponse(w, r, errors.New("team1 and team2 query parameters are required"))
		return
	}

	preview, err := h.tournamentService.PreviewMatchup(r.Context(), tournamentID, team1ID, team2ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, preview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
