package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	listingsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/listings"
	httperrors "github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/errors"
)

// ListingHandler is the public, unauthenticated read surface over
// jobs and courses.
type ListingHandler struct {
	service *listingsvc.Service
}

func NewListingHandler(service *listingsvc.Service) *ListingHandler {
	return &ListingHandler{service: service}
}

func (h *ListingHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	h.jobs(w, r, r.URL.Query().Get("roleType"))
}

func (h *ListingHandler) JobsByRoleType(w http.ResponseWriter, r *http.Request) {
	h.jobs(w, r, chi.URLParam(r, "roleType"))
}

func (h *ListingHandler) jobs(w http.ResponseWriter, r *http.Request, roleType string) {
	if h.service == nil {
		writeInternal(w, "LISTING_SERVICE_UNAVAILABLE", "listing service is unavailable")
		return
	}

	page, err := h.service.Jobs(r.Context(), queryInt(r, "page", "1"), queryInt(r, "limit", "10"), roleType)
	if err != nil {
		handleListingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, page)
}

func (h *ListingHandler) Courses(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LISTING_SERVICE_UNAVAILABLE", "listing service is unavailable")
		return
	}

	page, err := h.service.Courses(r.Context(), queryInt(r, "page", "1"), queryInt(r, "limit", "10"))
	if err != nil {
		handleListingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, page)
}

func (h *ListingHandler) Course(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LISTING_SERVICE_UNAVAILABLE", "listing service is unavailable")
		return
	}

	course, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		handleListingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, course)
}

func handleListingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listingsvc.ErrInvalidRoleType):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid role type")
	case errors.Is(err, listingsvc.ErrCourseNotFound):
		writeNotFound(w, "NOT_FOUND", "course not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "listing operation failed")
	}
}
