package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocktide/curator/internal/domain"
	"github.com/stocktide/curator/internal/repository"
)

// handleListAccounts handles GET /api/admin/accounts.
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	isActive, err := parseBoolParam(r, "is_active")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	pageNum, pageSize := parsePagination(r)

	accounts, total, err := s.accounts.List(r.Context(), repository.AccountListParams{
		IsActive: isActive,
		Search:   r.URL.Query().Get("search"),
		Page:     pageNum,
		PageSize: pageSize,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, newPage(accounts, total, pageNum, pageSize), "")
}

// handleCreateAccount handles POST /api/admin/accounts.
func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateAccountInput
	if err := decodeBody(r, &in); err != nil {
		s.handleError(w, r, err)
		return
	}

	if in.TwitterHandle == "" {
		respondError(w, http.StatusBadRequest, "twitter_handle is required")
		return
	}
	if !domain.ValidTwitterHandle(in.TwitterHandle) {
		respondError(w, http.StatusBadRequest, "Invalid twitter handle")
		return
	}
	in.TwitterHandle = domain.NormalizeTwitterHandle(in.TwitterHandle)

	exists, err := s.accounts.HandleExists(r.Context(), in.TwitterHandle, "")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if exists {
		respondError(w, http.StatusBadRequest, "An account with this handle already exists")
		return
	}

	account, err := s.accounts.Create(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, account, "Account created successfully")
}

// handleGetAccount handles GET /api/admin/accounts/{id}.
func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, account, "")
}

// handleUpdateAccount handles PUT /api/admin/accounts/{id}. Nil fields
// in the body are left untouched.
func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in domain.UpdateAccountInput
	if err := decodeBody(r, &in); err != nil {
		s.handleError(w, r, err)
		return
	}

	if in.TwitterHandle != nil {
		if !domain.ValidTwitterHandle(*in.TwitterHandle) {
			respondError(w, http.StatusBadRequest, "Invalid twitter handle")
			return
		}
		normalized := domain.NormalizeTwitterHandle(*in.TwitterHandle)
		in.TwitterHandle = &normalized

		exists, err := s.accounts.HandleExists(r.Context(), normalized, id)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		if exists {
			respondError(w, http.StatusBadRequest, "An account with this handle already exists")
			return
		}
	}

	account, err := s.accounts.Update(r.Context(), id, in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, account, "Account updated successfully")
}

// handleDeleteAccount handles DELETE /api/admin/accounts/{id}.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, "Account deleted successfully")
}
