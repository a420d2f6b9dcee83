package media

import (
	"context"
	"io"
	"time"

	"github.com/altarajoyas/catalog-service/internal/media/dto"
	pkgmedia "github.com/altarajoyas/catalog-service/pkg/media"
)

type UseCase interface {
	// UploadImage persists the file to the media host, assigns the next
	// display order and records the image row.
	UploadImage(ctx context.Context, input *dto.UploadImageInput) (*dto.UploadImageResult, error)
}

// Uploader is the media host surface; satisfied by the Cloudinary client.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*pkgmedia.UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// Locker serializes per-product sort_order assignment; satisfied by the
// Redis client.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
