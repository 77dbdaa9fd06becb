package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/services/assets"
	profilesvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/profiles"
)

type stubProfileDocStore struct {
	profiles map[int64]*model.Profile
}

func (s *stubProfileDocStore) Get(_ context.Context, userID int64) (*model.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, pgrepo.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubProfileDocStore) Save(_ context.Context, profile *model.Profile) error {
	clone := *profile
	s.profiles[profile.UserID] = &clone
	return nil
}

type stubProfileUsers struct {
	users map[int64]model.User
}

func (s *stubProfileUsers) Get(_ context.Context, userID int64) (model.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return u, nil
}

type stubAssetSink struct {
	objects map[string][]byte
}

func (s *stubAssetSink) Put(_ context.Context, key assets.Key, data []byte, _ string) error {
	s.objects[key.CacheKey()] = data
	return nil
}

func (s *stubAssetSink) Remove(_ context.Context, key assets.Key) error {
	delete(s.objects, key.CacheKey())
	return nil
}

type passthroughProcessor struct{}

func (passthroughProcessor) Normalize(data []byte) ([]byte, error) { return data, nil }

func newProfileHandlerFixture() (*ProfileHandler, *stubProfileDocStore, *stubAssetSink) {
	profiles := &stubProfileDocStore{profiles: map[int64]*model.Profile{}}
	users := &stubProfileUsers{users: map[int64]model.User{
		7: {ID: 7, Username: "boris"},
	}}
	sink := &stubAssetSink{objects: map[string][]byte{}}
	svc := profilesvc.NewService(profiles, users, sink, passthroughProcessor{}, "http://localhost:8080")
	return NewProfileHandler(svc, nil, 0), profiles, sink
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for name, data := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+name+`"; filename="upload.jpg"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part %s: %v", name, err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestProfileUpdateRequiresAuth(t *testing.T) {
	h, _, _ := newProfileHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(""))
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestProfileUpdateCreatesProfile(t *testing.T) {
	h, store, sink := newProfileHandlerFixture()

	body, contentType := multipartBody(t, map[string]string{
		"profileData": `{"tagline":"building things","industry":"software"}`,
	}, map[string][]byte{
		"avatarUrl": []byte("avatar-bytes"),
	})

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/profile", body), 7)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var payload struct {
		Message string `json:"message"`
		Profile struct {
			Tagline   string  `json:"tagline"`
			AvatarURL *string `json:"avatarUrl"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message != "Profile created successfully" {
		t.Fatalf("unexpected message: %q", payload.Message)
	}
	if payload.Profile.Tagline != "building things" {
		t.Fatalf("tagline not applied: %+v", payload.Profile)
	}
	if payload.Profile.AvatarURL == nil || !strings.Contains(*payload.Profile.AvatarURL, "/profile/7/avatar") {
		t.Fatalf("avatar url missing: %+v", payload.Profile)
	}
	if store.profiles[7] == nil {
		t.Fatalf("profile not persisted")
	}
	if string(sink.objects["avatar:7"]) != "avatar-bytes" {
		t.Fatalf("avatar bytes not stored: %v", sink.objects)
	}
}

func TestProfileUpdateRejectsBrokenJSONPart(t *testing.T) {
	h, _, _ := newProfileHandlerFixture()

	body, contentType := multipartBody(t, map[string]string{
		"profileData": `{not json`,
	}, nil)

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/profile", body), 7)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestProfileGetUnknownUser(t *testing.T) {
	h, _, _ := newProfileHandlerFixture()

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/profile/99", nil), 7)
	req = withURLParam(req, "userId", "99")
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNotFound)
	}
}
