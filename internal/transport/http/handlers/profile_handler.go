package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	authsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/auth"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/services/assets"
	profilesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/profiles"
	ratesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/rate"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/dto"
	httperrors "github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/errors"
)

const maxProfileUploadSize = 50 << 20 // 50 MiB across all buckets

type ProfileHandler struct {
	service         *profilesvc.Service
	limiter         *ratesvc.Limiter
	writesPerMinute int
}

func NewProfileHandler(service *profilesvc.Service, limiter *ratesvc.Limiter, writesPerMinute int) *ProfileHandler {
	return &ProfileHandler{
		service:         service,
		limiter:         limiter,
		writesPerMinute: writesPerMinute,
	}
}

// Update is the multipart create-or-update endpoint. JSON parts carry
// the metadata (profileData, carousel, courses, jobDescriptions), file
// parts carry the binaries.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	if h.limiter != nil {
		allowed, retryAfter, err := h.limiter.Allow(r.Context(), "profile", identity.ID, h.writesPerMinute)
		if err == nil && !allowed {
			writeRateLimited(w, retryAfter)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProfileUploadSize)
	if err := r.ParseMultipartForm(maxProfileUploadSize); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return
	}

	input, err := parseUpdateInput(r)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	view, created, err := h.service.Apply(r.Context(), identity.ID, input)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	message := "Profile updated successfully"
	if created {
		message = "Profile created successfully"
	}
	httperrors.Write(w, http.StatusOK, dto.ProfileUpdateResponse{
		Message: message,
		Profile: view,
	})
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	userID, ok := urlParamInt64(r, "userId")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	view, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, view)
}

func parseUpdateInput(r *http.Request) (profilesvc.UpdateInput, error) {
	var input profilesvc.UpdateInput

	if raw := r.FormValue("profileData"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.ProfileData); err != nil {
			return input, errors.New("profileData is not valid JSON")
		}
	}
	if raw := r.FormValue("carousel"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.Carousel); err != nil {
			return input, errors.New("carousel is not valid JSON")
		}
	}
	if raw, ok := formValue(r, "courses"); ok {
		input.CoursesProvided = true
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &input.Courses); err != nil {
				return input, errors.New("courses is not valid JSON")
			}
		}
	}
	if raw := r.FormValue("jobDescriptions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.JobDescriptions); err != nil {
			return input, errors.New("jobDescriptions is not valid JSON")
		}
	}

	var err error
	if input.Files.Avatar, err = singleUpload(r, "avatarUrl"); err != nil {
		return input, err
	}
	if input.Files.Background, err = singleUpload(r, "backgroundUrl"); err != nil {
		return input, err
	}
	if input.Files.CV, err = singleUpload(r, "cv"); err != nil {
		return input, err
	}
	if input.Files.CarouselImages, err = bucketUploads(r, "carouselImages"); err != nil {
		return input, err
	}
	if input.Files.CourseThumbnails, err = bucketUploads(r, "courseThumbnails"); err != nil {
		return input, err
	}

	return input, nil
}

func formValue(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func singleUpload(r *http.Request, field string) (*profilesvc.FileUpload, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	upload, err := readUpload(r.MultipartForm.File[field][0])
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

func bucketUploads(r *http.Request, field string) ([]profilesvc.FileUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	uploads := make([]profilesvc.FileUpload, 0, len(headers))
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func readUpload(header *multipart.FileHeader) (profilesvc.FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return profilesvc.FileUpload{}, errors.New("could not read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return profilesvc.FileUpload{}, errors.New("could not read uploaded file")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return profilesvc.FileUpload{
		Data:        data,
		ContentType: contentType,
		FileName:    header.Filename,
	}, nil
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profilesvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, profilesvc.ErrUserNotFound):
		writeNotFound(w, "NOT_FOUND", "user not found")
	case errors.Is(err, profilesvc.ErrProfileNotFound):
		writeNotFound(w, "NOT_FOUND", "profile not found")
	case errors.Is(err, profilesvc.ErrJobNotFound):
		writeNotFound(w, "NOT_FOUND", "job not found")
	case errors.Is(err, assets.ErrProcessing):
		writeUnprocessable(w, "PROCESSING_ERROR", "could not process uploaded image")
	default:
		writeInternal(w, "INTERNAL_ERROR", "profile operation failed")
	}
}
