package handlers

import (
	"net/http"

	"github.com/Dosada05/championship-manager/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// ListTournaments godoc
// @Summary IDs of every tournament with stored state
// @Tags tournaments
// @Produce json
// @Success 200 {object} map[string]interface{} "tournaments"
// @Router /tournaments [get]
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ids, err := h.tournamentService.ListTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": ids}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTournament godoc
// @Summary Tournament overview with phase statuses
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} models.TournamentOverview
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	overview, err := h.tournamentService.GetTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetConfig godoc
// @Summary Phase schema and per-phase allocations
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} models.TournamentConfig
// @Router /tournaments/{tournamentID}/config [get]
func (h *TournamentHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cfg, err := h.tournamentService.GetConfig(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, cfg, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Configure godoc
// @Summary Configure the phase schema
// @Description Simple structure builds one phase from kind/num_groups/elimination_type; advanced takes the phases list.
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body services.ConfigureTournamentInput true "Schema"
// @Success 200 {object} models.TournamentConfig
// @Failure 400 {object} map[string]string "Invalid schema"
// @Failure 409 {object} map[string]string "A later phase has started"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/config [put]
func (h *TournamentHandler) Configure(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ConfigureTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cfg, err := h.tournamentService.ConfigureTournament(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, cfg, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GlobalStandings godoc
// @Summary Overall standings on cumulative statistics
// @Tags standings
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "standings"
// @Router /tournaments/{tournamentID}/standings [get]
func (h *TournamentHandler) GlobalStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.tournamentService.GlobalStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PhaseStandings godoc
// @Summary Per-group standings of a phase with qualification status
// @Tags standings
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param phaseIndex path int true "Phase index, starting at 0"
// @Success 200 {object} models.PhaseStandings
// @Failure 404 {object} map[string]string "Phase not found"
// @Router /tournaments/{tournamentID}/phases/{phaseIndex}/standings [get]
func (h *TournamentHandler) PhaseStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	phaseIndex, err := getIntParam(r, "phaseIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.tournamentService.PhaseStandings(r.Context(), tournamentID, phaseIndex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CanAdvance godoc
// @Summary Whether a phase can advance, with required and available qualifier counts
// @Tags phases
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param phaseIndex path int true "Phase index, starting at 0"
// @Success 200 {object} services.AdvanceCheck
// @Router /tournaments/{tournamentID}/phases/{phaseIndex}/advance [get]
func (h *TournamentHandler) CanAdvance(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	phaseIndex, err := getIntParam(r, "phaseIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	check, err := h.tournamentService.CanAdvance(r.Context(), tournamentID, phaseIndex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, check, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvancePhase godoc
// @Summary Move the qualifiers of a phase into the next phase
// @Tags phases
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param phaseIndex path int true "Phase index, starting at 0"
// @Success 200 {object} phases.Advancement
// @Failure 400 {object} map[string]string "No next phase or advancement not configured"
// @Failure 409 {object} map[string]string "Phase locked"
// @Failure 422 {object} map[string]interface{} "Not enough qualified teams"
// @Failure 501 {object} map[string]string "Elimination qualifiers not supported"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/phases/{phaseIndex}/advance [post]
func (h *TournamentHandler) AdvancePhase(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getStringParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	phaseIndex, err := getIntParam(r, "phaseIndex")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	adv, err := h.tournamentService.AdvancePhase(r.Context(), tournamentID, phaseIndex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, adv, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
