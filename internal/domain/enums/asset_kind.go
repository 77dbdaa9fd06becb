package enums

type AssetKind string

const (
	AssetKindAvatar     AssetKind = "avatar"
	AssetKindBackground AssetKind = "background"
	AssetKindCV         AssetKind = "cv"
	AssetKindCarousel   AssetKind = "carousel"
	AssetKindThumbnail  AssetKind = "thumbnail"
)
