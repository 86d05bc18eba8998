package httpapp

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/threadhouse/threadhouse/internal/auth"
	"github.com/threadhouse/threadhouse/internal/model"
)

const minPasswordLen = 8

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type registerResponse struct {
	User      model.Author `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func validateCredentials(req credentialsRequest) error {
	if req.Username == "" {
		return errors.New("username is required")
	}
	if len(req.Username) > 150 {
		return errors.New("username must be at most 150 characters")
	}
	if len(req.Password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// handleRegister godoc
//
//	@Summary		Register a new account
//	@Description	Creates a user and returns the account's first bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		credentialsRequest	true	"Desired username and password"
//	@Success		201			{object}	registerResponse
//	@Failure		400			{object}	map[string]string
//	@Router			/auth/register/ [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if err := validateCredentials(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerResponse{
		User:      user.Author(),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	})
}

// handleLogin godoc
//
//	@Summary		Obtain a bearer token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		credentialsRequest	true	"Username and password"
//	@Success		200			{object}	tokenResponse
//	@Failure		401			{object}	map[string]string
//	@Router			/auth/login/ [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt})
}
