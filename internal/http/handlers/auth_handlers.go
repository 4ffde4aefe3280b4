package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/repo"
	"go.uber.org/zap"
)

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "missing credentials", http.StatusBadRequest)
		return
	}

	user, err := s.userRepo.GetByUsername(r.Context(), creds.Username)
	if err != nil && !errors.Is(err, repo.ErrUserNotFound) {
		s.logger.Error("could not fetch user", zap.String("username", creds.Username), zap.Error(err))
		http.Error(w, "could not log in", http.StatusInternalServerError)
		return
	}
	if err != nil || auth.CheckPassword(user.PasswordHash, creds.Password) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err))
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	s.respond(w, http.StatusOK, LoginResult{Token: token})
}
