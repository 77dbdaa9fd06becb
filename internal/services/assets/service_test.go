package assets

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStorage struct {
	objects map[string]Asset
	gets    int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]Asset)}
}

func (f *fakeStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	f.objects[key] = Asset{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

func (f *fakeStorage) Get(_ context.Context, key string) ([]byte, string, error) {
	f.gets++
	obj, ok := f.objects[key]
	if !ok {
		return nil, "", ErrAssetNotFound
	}
	return obj.Data, obj.ContentType, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func TestServiceGetFillsCache(t *testing.T) {
	storage := newFakeStorage()
	svc := NewService(storage, NewCache(time.Hour))
	ctx := context.Background()

	if err := svc.Put(ctx, AvatarKey(7), []byte("jpeg-bytes"), "image/jpeg"); err != nil {
		t.Fatalf("put: %v", err)
	}

	for i := 0; i < 3; i++ {
		asset, err := svc.Get(ctx, AvatarKey(7))
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if !bytes.Equal(asset.Data, []byte("jpeg-bytes")) || asset.ContentType != "image/jpeg" {
			t.Fatalf("unexpected asset: %v %q", asset.Data, asset.ContentType)
		}
	}

	if storage.gets != 1 {
		t.Fatalf("expected a single storage read, got %d", storage.gets)
	}
}

func TestServicePutInvalidatesStaleCacheEntry(t *testing.T) {
	storage := newFakeStorage()
	svc := NewService(storage, NewCache(time.Hour))
	ctx := context.Background()

	if err := svc.Put(ctx, AvatarKey(7), []byte("old"), "image/jpeg"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := svc.Get(ctx, AvatarKey(7)); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if err := svc.Put(ctx, AvatarKey(7), []byte("new"), "image/jpeg"); err != nil {
		t.Fatalf("replace: %v", err)
	}

	asset, err := svc.Get(ctx, AvatarKey(7))
	if err != nil {
		t.Fatalf("get after replace: %v", err)
	}
	if !bytes.Equal(asset.Data, []byte("new")) {
		t.Fatalf("served stale bytes %q after replace", asset.Data)
	}
}

func TestServiceRemoveInvalidatesAndDeletes(t *testing.T) {
	storage := newFakeStorage()
	svc := NewService(storage, NewCache(time.Hour))
	ctx := context.Background()

	if err := svc.Put(ctx, CarouselKey(7, "item1"), []byte("img"), "image/jpeg"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := svc.Get(ctx, CarouselKey(7, "item1")); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if err := svc.Remove(ctx, CarouselKey(7, "item1")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := svc.Get(ctx, CarouselKey(7, "item1")); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestServiceGetUnknownAsset(t *testing.T) {
	svc := NewService(newFakeStorage(), NewCache(time.Hour))

	if _, err := svc.Get(context.Background(), BackgroundKey(99)); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestKeyShapes(t *testing.T) {
	if got := CarouselKey(7, "ab12").CacheKey(); got != "carousel:7:ab12" {
		t.Fatalf("carousel cache key: %q", got)
	}
	if got := AvatarKey(7).CacheKey(); got != "avatar:7" {
		t.Fatalf("avatar cache key: %q", got)
	}
	if got := ThumbnailKey(7, "c1").objectKey(); got != "profiles/7/courses/c1/thumbnail" {
		t.Fatalf("thumbnail object key: %q", got)
	}
}
