// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"partyconnect/internal/domain/auth"
)

// loginRequest mirrors the JSON shape for POST /auth/login. Either a
// provider name or email credentials must be present.
type loginRequest struct {
	Provider string `json:"provider"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// signupRequest mirrors the JSON shape for POST /auth/signup.
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthHandler handles the simulated login endpoints.
type AuthHandler struct {
	deps AuthDependencies
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(deps AuthDependencies) *AuthHandler {
	return &AuthHandler{deps: deps}
}

// HandleLogin handles POST /auth/login requests for both social and
// email flows.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	var (
		session auth.Session
		err     error
	)
	switch {
	case req.Provider != "":
		session, err = h.deps.LoginWithProvider(r.Context(), req.Provider)
	case req.Email != "" && req.Password != "":
		session, err = h.deps.LoginWithEmail(r.Context(), req.Email, req.Password)
	default:
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: provider or email credentials required", ErrBadRequest))
		return
	}
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// HandleSignup handles POST /auth/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	session, err := h.deps.SignupWithEmail(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// writeAuthError translates login errors into HTTP responses.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnknownProvider), errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
