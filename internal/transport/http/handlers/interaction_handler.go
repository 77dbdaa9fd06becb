package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/auth"
	interactionsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/interactions"
	ratesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/rate"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/dto"
	httperrors "github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/errors"
)

type InteractionHandler struct {
	service         *interactionsvc.Service
	limiter         *ratesvc.Limiter
	writesPerMinute int
}

func NewInteractionHandler(service *interactionsvc.Service, limiter *ratesvc.Limiter, writesPerMinute int) *InteractionHandler {
	return &InteractionHandler{
		service:         service,
		limiter:         limiter,
		writesPerMinute: writesPerMinute,
	}
}

func (h *InteractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTERACTION_SERVICE_UNAVAILABLE", "interaction service is unavailable")
		return
	}

	if h.limiter != nil {
		allowed, retryAfter, err := h.limiter.Allow(r.Context(), "interaction", identity.ID, h.writesPerMinute)
		if err == nil && !allowed {
			writeRateLimited(w, retryAfter)
			return
		}
	}

	var req dto.CreateInteractionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), identity.ID, interactionsvc.CreateInput{
		PostID:     req.JobID,
		Message:    req.Message,
		SenderRole: req.SenderRole,
	})
	if err != nil {
		handleInteractionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.InteractionResponse{
		Message:     "Interaction created successfully",
		Interaction: created,
	})
}

func (h *InteractionHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTERACTION_SERVICE_UNAVAILABLE", "interaction service is unavailable")
		return
	}

	views, err := h.service.ListForUser(r.Context(), identity.ID)
	if err != nil {
		handleInteractionError(w, err)
		return
	}
	if views == nil {
		views = []interactionsvc.InteractionView{}
	}

	httperrors.Write(w, http.StatusOK, dto.InteractionsListResponse{Interactions: views})
}

func (h *InteractionHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTERACTION_SERVICE_UNAVAILABLE", "interaction service is unavailable")
		return
	}

	id := chi.URLParam(r, "id")
	var req dto.UpdateInteractionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), identity.ID, id, req.Status, req.IsFavorite)
	if err != nil {
		handleInteractionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.InteractionUpdateResponse{
		ID:         updated.ID,
		Status:     updated.Status,
		IsFavorite: updated.IsFavorite,
		Timestamp:  updated.CreatedAt,
	})
}

func (h *InteractionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTERACTION_SERVICE_UNAVAILABLE", "interaction service is unavailable")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), identity.ID, id); err != nil {
		handleInteractionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]string{"message": "Interaction deleted"})
}

func handleInteractionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interactionsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, interactionsvc.ErrPostNotFound):
		writeNotFound(w, "NOT_FOUND", "post not found")
	case errors.Is(err, interactionsvc.ErrUserNotFound):
		writeNotFound(w, "NOT_FOUND", "user not found")
	case errors.Is(err, interactionsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "interaction not found")
	case errors.Is(err, interactionsvc.ErrNotAuthorized):
		writeForbidden(w, "FORBIDDEN", "only the recipient may do this")
	default:
		writeInternal(w, "INTERNAL_ERROR", "interaction operation failed")
	}
}
