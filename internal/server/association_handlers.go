package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocktide/curator/internal/domain"
)

// handleListBucketAccounts handles GET /api/admin/buckets/{id}/accounts.
func (s *Server) handleListBucketAccounts(w http.ResponseWriter, r *http.Request) {
	bucketID := chi.URLParam(r, "id")

	if _, err := s.buckets.Get(r.Context(), bucketID); err != nil {
		s.handleError(w, r, err)
		return
	}

	members, err := s.associations.ListMembers(r.Context(), bucketID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, members, "")
}

// handleAssignAccount handles POST /api/admin/buckets/{id}/accounts.
func (s *Server) handleAssignAccount(w http.ResponseWriter, r *http.Request) {
	bucketID := chi.URLParam(r, "id")

	var in domain.AssignAccountInput
	if err := decodeBody(r, &in); err != nil {
		s.handleError(w, r, err)
		return
	}
	if in.AccountID == "" {
		respondError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	if _, err := s.buckets.Get(r.Context(), bucketID); err != nil {
		s.handleError(w, r, err)
		return
	}

	priority := 0
	if in.Priority != nil {
		priority = *in.Priority
	}

	assoc, err := s.associations.Assign(r.Context(), bucketID, in.AccountID, priority)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, assoc, "Account added to bucket")
}

// handleRemoveAccount handles
// DELETE /api/admin/buckets/{id}/accounts/{accountId}.
func (s *Server) handleRemoveAccount(w http.ResponseWriter, r *http.Request) {
	bucketID := chi.URLParam(r, "id")
	accountID := chi.URLParam(r, "accountId")

	if err := s.associations.Remove(r.Context(), bucketID, accountID); err != nil {
		s.handleError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, "Account removed from bucket")
}
