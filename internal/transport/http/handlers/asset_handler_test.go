package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/services/assets"
)

type memObjectStorage struct {
	objects map[string]assets.Asset
}

func (m *memObjectStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.objects[key] = assets.Asset{Data: data, ContentType: contentType}
	return nil
}

func (m *memObjectStorage) Get(_ context.Context, key string) ([]byte, string, error) {
	a, ok := m.objects[key]
	if !ok {
		return nil, "", assets.ErrAssetNotFound
	}
	return a.Data, a.ContentType, nil
}

func (m *memObjectStorage) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func newAssetHandlerFixture() (*AssetHandler, *memObjectStorage) {
	storage := &memObjectStorage{objects: map[string]assets.Asset{}}
	svc := assets.NewService(storage, assets.NewCache(time.Hour))
	return NewAssetHandler(svc), storage
}

func TestAvatarServesStoredBytes(t *testing.T) {
	h, storage := newAssetHandlerFixture()
	storage.objects["profiles/7/avatar"] = assets.Asset{Data: []byte("jpeg-bytes"), ContentType: "image/jpeg"}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/profile/7/avatar", nil), "userId", "7")
	rr := httptest.NewRecorder()
	h.Avatar(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Fatalf("unexpected cache control: %q", got)
	}
	if rr.Body.String() != "jpeg-bytes" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestAvatarMissingAsset(t *testing.T) {
	h, _ := newAssetHandlerFixture()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/profile/7/avatar", nil), "userId", "7")
	rr := httptest.NewRecorder()
	h.Avatar(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCarouselImageRequiresItemID(t *testing.T) {
	h, _ := newAssetHandlerFixture()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/profile/7/carousel//image", nil), "userId", "7")
	rr := httptest.NewRecorder()
	h.CarouselImage(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCourseThumbnailServed(t *testing.T) {
	h, storage := newAssetHandlerFixture()
	storage.objects["profiles/7/courses/c1/thumbnail"] = assets.Asset{Data: []byte("thumb"), ContentType: "image/jpeg"}

	req := httptest.NewRequest(http.MethodGet, "/profile/7/courses/c1/thumbnail", nil)
	req = withURLParam(req, "userId", "7")
	req = withURLParam(req, "courseId", "c1")
	rr := httptest.NewRecorder()
	h.CourseThumbnail(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}
	if rr.Body.String() != "thumb" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}
