package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/championship-manager/groups"
	"github.com/Dosada05/championship-manager/phases"
	"github.com/Dosada05/championship-manager/services"
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusNotFound, err.Error())
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func getIntParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}

func getStringParam(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(chi.URLParam(r, name))
	if v == "" {
		return "", fmt.Errorf("missing %s parameter", name)
	}
	return v, nil
}

// mapServiceErrorToHTTP translates service errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *phases.InsufficientQualifiersError
	var crossGroup *groups.CrossGroupError
	var unallocated *groups.UnallocatedTeamError

	switch {
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrPhaseNotFound):
		notFoundResponse(w, r, err)

	case errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrPhaseLocked),
		errors.Is(err, services.ErrSchemaLocked):
		conflictResponse(w, r, err.Error())

	case errors.As(err, &insufficient):
		errorResponse(w, r, http.StatusUnprocessableEntity, jsonResponse{
			"message":   err.Error(),
			"required":  insufficient.Required,
			"available": insufficient.Actual,
		})

	case errors.As(err, &crossGroup):
		errorResponse(w, r, http.StatusBadRequest, jsonResponse{
			"message": err.Error(),
			"team1":   crossGroup.Team1,
			"team2":   crossGroup.Team2,
			"group1":  crossGroup.Group1,
			"group2":  crossGroup.Group2,
		})

	case errors.As(err, &unallocated):
		errorResponse(w, r, http.StatusBadRequest, jsonResponse{
			"message": err.Error(),
			"team":    unallocated.Team,
		})

	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrMatchDateRequired),
		errors.Is(err, services.ErrInvalidMatchDate),
		errors.Is(err, services.ErrInvalidScore),
		errors.Is(err, services.ErrInvalidStructure),
		errors.Is(err, services.ErrTournamentNotConfigured),
		errors.Is(err, services.ErrNotGroupPhase),
		errors.Is(err, services.ErrSelfMatch),
		errors.Is(err, services.ErrInvalidPhaseSchema),
		errors.Is(err, services.ErrGroupIndexOutOfRange),
		errors.Is(err, services.ErrInvalidGroupCount),
		errors.Is(err, services.ErrAdvancementNotConfigured),
		errors.Is(err, services.ErrNoNextPhase):
		badRequestResponse(w, r, err)

	case errors.Is(err, services.ErrUnsupportedPhaseKind):
		errorResponse(w, r, http.StatusNotImplemented, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}
