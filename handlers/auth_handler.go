package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/championship-manager/middleware"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	passwordHash []byte
	jwtSecret    []byte
}

// NewAuthHandler checks organizer logins against a single bcrypt hash.
func NewAuthHandler(passwordHash, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
	}
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Exchange the organizer password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "Credentials"
// @Success 200 {object} map[string]interface{} "token"
// @Failure 400 {object} map[string]string "Missing fields"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/token [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Username == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("username and password are required"))
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(input.Password)); err != nil {
		slog.WarnContext(r.Context(), "failed organizer login", slog.String("username", input.Username))
		unauthorizedResponse(w, r, "invalid username or password")
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, input.Username, middleware.RoleOrganizer, tokenTTL)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"token":      token,
		"expires_in": int(tokenTTL.Seconds()),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
