package server

import (
	"net/http"

	"github.com/stocktide/curator/internal/auth"
	"github.com/stocktide/curator/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	Email string `json:"email"`
}

// handleLogin checks the request against the configured admin
// credentials and issues a JWT.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !domain.ValidEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	if req.Email != s.authCfg.AdminEmail || !auth.VerifyPassword(req.Password, s.authCfg.AdminPassword) {
		s.logger.Warn("failed login attempt", nil, map[string]interface{}{"email": req.Email})
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.GenerateToken(req.Email)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{Email: req.Email},
	}, "Login successful")
}
