package assets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
)

// Key identifies one binary asset: the asset class plus its owner, and
// for embedded items (carousel images, course thumbnails) the item id.
type Key struct {
	Kind   enums.AssetKind
	UserID int64
	ItemID string
}

func AvatarKey(userID int64) Key {
	return Key{Kind: enums.AssetKindAvatar, UserID: userID}
}

func BackgroundKey(userID int64) Key {
	return Key{Kind: enums.AssetKindBackground, UserID: userID}
}

func CVKey(userID int64) Key {
	return Key{Kind: enums.AssetKindCV, UserID: userID}
}

func CarouselKey(userID int64, itemID string) Key {
	return Key{Kind: enums.AssetKindCarousel, UserID: userID, ItemID: itemID}
}

func ThumbnailKey(userID int64, courseID string) Key {
	return Key{Kind: enums.AssetKindThumbnail, UserID: userID, ItemID: courseID}
}

// CacheKey is the cache map key, e.g. "avatar:7" or "carousel:7:ab12".
func (k Key) CacheKey() string {
	base := string(k.Kind) + ":" + strconv.FormatInt(k.UserID, 10)
	if k.ItemID != "" {
		return base + ":" + k.ItemID
	}
	return base
}

func (k Key) objectKey() string {
	owner := "profiles/" + strconv.FormatInt(k.UserID, 10)
	switch k.Kind {
	case enums.AssetKindAvatar:
		return owner + "/avatar"
	case enums.AssetKindBackground:
		return owner + "/background"
	case enums.AssetKindCV:
		return owner + "/cv"
	case enums.AssetKindCarousel:
		return owner + "/carousel/" + k.ItemID
	case enums.AssetKindThumbnail:
		return owner + "/courses/" + k.ItemID + "/thumbnail"
	}
	return owner + "/" + string(k.Kind)
}

type Asset struct {
	Data        []byte
	ContentType string
}

// Service fronts object storage with the process-local cache. Reads
// fill the cache; every write or delete invalidates the key first so a
// replaced asset is never served stale.
type Service struct {
	storage ObjectStorage
	cache   *Cache
}

func NewService(storage ObjectStorage, cache *Cache) *Service {
	return &Service{
		storage: storage,
		cache:   cache,
	}
}

func (s *Service) Get(ctx context.Context, key Key) (Asset, error) {
	if s.storage == nil {
		return Asset{}, fmt.Errorf("asset storage is not configured")
	}
	if key.UserID <= 0 {
		return Asset{}, ErrAssetNotFound
	}

	if s.cache != nil {
		if data, contentType, ok := s.cache.Get(key.CacheKey()); ok {
			return Asset{Data: data, ContentType: contentType}, nil
		}
	}

	data, contentType, err := s.storage.Get(ctx, key.objectKey())
	if err != nil {
		return Asset{}, err
	}

	if s.cache != nil {
		s.cache.Put(key.CacheKey(), data, contentType)
	}

	return Asset{Data: data, ContentType: contentType}, nil
}

func (s *Service) Put(ctx context.Context, key Key, data []byte, contentType string) error {
	if s.storage == nil {
		return fmt.Errorf("asset storage is not configured")
	}
	if key.UserID <= 0 || len(data) == 0 {
		return fmt.Errorf("invalid asset payload")
	}

	if s.cache != nil {
		s.cache.Invalidate(key.CacheKey())
	}

	return s.storage.Put(ctx, key.objectKey(), data, contentType)
}

func (s *Service) Remove(ctx context.Context, key Key) error {
	if s.storage == nil {
		return fmt.Errorf("asset storage is not configured")
	}

	if s.cache != nil {
		s.cache.Invalidate(key.CacheKey())
	}

	return s.storage.Delete(ctx, key.objectKey())
}
