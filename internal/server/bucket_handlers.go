package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocktide/curator/internal/domain"
	"github.com/stocktide/curator/internal/repository"
)

// handleListBuckets handles GET /api/admin/buckets.
func (s *Server) handleListBuckets(w http.ResponseWriter, r *http.Request) {
	isActive, err := parseBoolParam(r, "is_active")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var bucketType *domain.BucketType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := domain.BucketType(raw)
		if !t.Valid() {
			respondError(w, http.StatusBadRequest, "Invalid bucket type")
			return
		}
		bucketType = &t
	}

	pageNum, pageSize := parsePagination(r)

	buckets, total, err := s.buckets.List(r.Context(), repository.BucketListParams{
		IsActive: isActive,
		Type:     bucketType,
		Page:     pageNum,
		PageSize: pageSize,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, newPage(buckets, total, pageNum, pageSize), "")
}

// handleCreateBucket handles POST /api/admin/buckets. At most one macro
// bucket may exist.
func (s *Server) handleCreateBucket(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateBucketInput
	if err := decodeBody(r, &in); err != nil {
		s.handleError(w, r, err)
		return
	}

	if in.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if in.Persona == "" {
		respondError(w, http.StatusBadRequest, "persona is required")
		return
	}
	if in.Type == "" {
		in.Type = domain.BucketTypeRegular
	}
	if !in.Type.Valid() {
		respondError(w, http.StatusBadRequest, "Invalid bucket type")
		return
	}

	if in.Type == domain.BucketTypeMacro {
		exists, err := s.buckets.MacroExists(r.Context())
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		if exists {
			respondError(w, http.StatusBadRequest, "A macro bucket already exists")
			return
		}
	}

	exists, err := s.buckets.NameExists(r.Context(), in.Name, "")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if exists {
		respondError(w, http.StatusBadRequest, "A bucket with this name already exists")
		return
	}

	bucket, err := s.buckets.Create(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, bucket, "Bucket created successfully")
}

// handleGetBucket handles GET /api/admin/buckets/{id}.
func (s *Server) handleGetBucket(w http.ResponseWriter, r *http.Request) {
	bucket, err := s.buckets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, bucket, "")
}

// handleUpdateBucket handles PUT /api/admin/buckets/{id}. The macro
// bucket keeps its name.
func (s *Server) handleUpdateBucket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in domain.UpdateBucketInput
	if err := decodeBody(r, &in); err != nil {
		s.handleError(w, r, err)
		return
	}

	bucket, err := s.buckets.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if in.Name != nil && *in.Name != bucket.Name {
		if bucket.Type == domain.BucketTypeMacro {
			respondError(w, http.StatusBadRequest, "The macro bucket cannot be renamed")
			return
		}
		exists, err := s.buckets.NameExists(r.Context(), *in.Name, id)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		if exists {
			respondError(w, http.StatusBadRequest, "A bucket with this name already exists")
			return
		}
	}

	updated, err := s.buckets.Update(r.Context(), id, in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, updated, "Bucket updated successfully")
}

// handleDeleteBucket handles DELETE /api/admin/buckets/{id}. The macro
// bucket cannot be deleted.
func (s *Server) handleDeleteBucket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	bucket, err := s.buckets.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if bucket.Type == domain.BucketTypeMacro {
		respondError(w, http.StatusBadRequest, "The macro bucket cannot be deleted")
		return
	}

	if err := s.buckets.Delete(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, "Bucket deleted successfully")
}
