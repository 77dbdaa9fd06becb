package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/services/assets"
)

// AssetHandler serves the raw binary surface. Responses carry the
// stored content type and an hour of client-side caching; URL
// versioning from the projection handles invalidation.
type AssetHandler struct {
	service *assets.Service
}

func NewAssetHandler(service *assets.Service) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlParamInt64(r, "userId")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}
	h.serve(w, r, assets.AvatarKey(userID))
}

func (h *AssetHandler) Background(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlParamInt64(r, "userId")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}
	h.serve(w, r, assets.BackgroundKey(userID))
}

func (h *AssetHandler) CV(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlParamInt64(r, "userId")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}
	h.serve(w, r, assets.CVKey(userID))
}

func (h *AssetHandler) CarouselImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlParamInt64(r, "userId")
	itemID := chi.URLParam(r, "itemId")
	if !ok || itemID == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid asset path")
		return
	}
	h.serve(w, r, assets.CarouselKey(userID, itemID))
}

func (h *AssetHandler) CourseThumbnail(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlParamInt64(r, "userId")
	courseID := chi.URLParam(r, "courseId")
	if !ok || courseID == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid asset path")
		return
	}
	h.serve(w, r, assets.ThumbnailKey(userID, courseID))
}

func (h *AssetHandler) serve(w http.ResponseWriter, r *http.Request, key assets.Key) {
	if h.service == nil {
		writeInternal(w, "ASSET_SERVICE_UNAVAILABLE", "asset service is unavailable")
		return
	}

	asset, err := h.service.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			writeNotFound(w, "NOT_FOUND", "asset not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "could not read asset")
		return
	}

	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(asset.Data)
}
