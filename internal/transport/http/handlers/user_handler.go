package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/auth"
	userssvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/users"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/dto"
	httperrors "github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/errors"
)

type UserHandler struct {
	service *userssvc.Service
}

func NewUserHandler(service *userssvc.Service) *UserHandler {
	return &UserHandler{service: service}
}

// authorize resolves the {id} URL parameter and checks that the caller is
// either the account owner or an admin.
func (h *UserHandler) authorize(w http.ResponseWriter, r *http.Request) (int64, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return 0, false
	}
	userID, ok := urlParamInt64(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return 0, false
	}
	if identity.ID != userID && !identity.HasRole("admin") {
		writeForbidden(w, "FORBIDDEN", "you may only manage your own account")
		return 0, false
	}
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return 0, false
	}
	return userID, true
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	user, err := h.service.Update(r.Context(), userID, userssvc.UpdateInput{
		Username:          req.Username,
		Email:             req.Email,
		RegNumber:         req.RegNumber,
		RegisteredAddress: req.RegisteredAddress,
	})
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, userssvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "user not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "something went wrong")
	}
}
