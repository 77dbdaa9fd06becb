package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/auth"
	profilesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/profiles"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/dto"
	httperrors "github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/errors"
)

// JobHandler is the standalone CRUD surface over the caller's own job
// postings, a lighter alternative to the full profile update.
type JobHandler struct {
	service *profilesvc.Service
}

func NewJobHandler(service *profilesvc.Service) *JobHandler {
	return &JobHandler{service: service}
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.JobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	job, err := h.service.CreateJob(r.Context(), identity.ID, req.Input())
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.JobResponse{Message: "Job created", Job: job})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.JobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	job, err := h.service.UpdateJob(r.Context(), identity.ID, chi.URLParam(r, "jobId"), req.Input())
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.JobResponse{Message: "Job updated", Job: job})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	if err := h.service.DeleteJob(r.Context(), identity.ID, chi.URLParam(r, "jobId")); err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]string{"message": "Job deleted"})
}
