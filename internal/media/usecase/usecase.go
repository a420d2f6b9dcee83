package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/media"
	"github.com/altarajoyas/catalog-service/internal/media/dto"
	"github.com/altarajoyas/catalog-service/internal/model"
	"github.com/altarajoyas/catalog-service/pkg/cache"
	"github.com/altarajoyas/catalog-service/pkg/logger"
)

const (
	lockTTL        = 5 * time.Second
	lockRetries    = 3
	lockRetryDelay = 100 * time.Millisecond
)

type Config struct {
	Folder       string
	MaxFileBytes int64
}

type mediaUseCase struct {
	repo     media.Repository
	uploader media.Uploader
	locker   media.Locker
	cache    *cache.RedisClient
	cfg      Config
	logger   logger.ZapLogger
}

// NewMediaUseCase wires the upload path. locker and cache may be nil
// (locking and list-cache invalidation degrade to no-ops).
func NewMediaUseCase(repo media.Repository, uploader media.Uploader, locker media.Locker, cache *cache.RedisClient, cfg Config, log logger.ZapLogger) media.UseCase {
	return &mediaUseCase{
		repo:     repo,
		uploader: uploader,
		locker:   locker,
		cache:    cache,
		cfg:      cfg,
		logger:   log,
	}
}

func (uc *mediaUseCase) UploadImage(ctx context.Context, input *dto.UploadImageInput) (*dto.UploadImageResult, error) {
	if input.File == nil {
		return nil, apperrors.NewID(apperrors.KindValidation, "error.file_missing")
	}
	if input.ProductID <= 0 {
		return nil, apperrors.NewID(apperrors.KindValidation, "error.product_id_missing")
	}
	if uc.cfg.MaxFileBytes > 0 && input.Size > uc.cfg.MaxFileBytes {
		return nil, apperrors.NewID(apperrors.KindValidation, "error.file_too_large")
	}

	exists, err := uc.repo.VariantExists(ctx, input.ProductID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreUnavailable, "check variant", err)
	}
	if !exists {
		return nil, apperrors.New(apperrors.KindNotFound, fmt.Sprintf("variant %d not found", input.ProductID))
	}

	// 1. Media host first: a failed upload must leave the catalog store
	// untouched.
	uploaded, err := uc.uploader.Upload(ctx, input.File, uc.cfg.Folder)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindMediaUnavailable, "upload to media host", err)
	}

	// 2. Assign the next display order under a per-product lock so two
	// concurrent uploads cannot compute the same value.
	unlock, err := uc.lockProduct(ctx, input.ProductID)
	if err != nil {
		uc.compensate(uploaded.PublicID)
		return nil, err
	}
	defer unlock()

	max, err := uc.repo.MaxSortOrder(ctx, input.ProductID)
	if err != nil {
		uc.compensate(uploaded.PublicID)
		return nil, apperrors.Wrap(apperrors.KindStoreUnavailable, "read sort order", err)
	}

	altText := input.AltText
	if altText == "" {
		altText = fmt.Sprintf("Product %d image", input.ProductID)
	}

	img := &model.ProductImage{
		ProductID:     input.ProductID,
		URL:           uploaded.SecureURL,
		URLCloudinary: uploaded.SecureURL,
		AltText:       &altText,
		SortOrder:     max + 1,
	}

	if err := uc.repo.InsertImage(ctx, img); err != nil {
		// The remote file would otherwise be orphaned.
		uc.compensate(uploaded.PublicID)
		return nil, apperrors.Wrap(apperrors.KindStoreUnavailable, "insert image row", err)
	}

	go uc.invalidateVariantCache(context.Background())

	return &dto.UploadImageResult{
		ProductImage: *img,
		Cloudinary: dto.CloudinaryInfo{
			PublicID:  uploaded.PublicID,
			SecureURL: uploaded.SecureURL,
		},
	}, nil
}

// lockProduct acquires the per-product upload lock with a short retry
// loop. The returned func releases it.
func (uc *mediaUseCase) lockProduct(ctx context.Context, productID int64) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	lockKey := fmt.Sprintf("lock:product_images:%d", productID)
	lockValue := uuid.New().String()

	for i := 0; i < lockRetries; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire upload lock", zap.Error(err))
		}
		if ok {
			return func() {
				if err := uc.locker.ReleaseLock(ctx, lockKey, lockValue); err != nil {
					uc.logger.Error("failed to release upload lock", zap.Error(err))
				}
			}, nil
		}
		time.Sleep(lockRetryDelay)
	}

	return nil, apperrors.New(apperrors.KindStoreUnavailable, "upload lock busy")
}

// compensate deletes the remote file after a failure between upload and
// insert, so no orphan is left on the media host.
func (uc *mediaUseCase) compensate(publicID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := uc.uploader.Destroy(ctx, publicID); err != nil {
		uc.logger.Error("cloudinary cleanup failed", zap.String("public_id", publicID), zap.Error(err))
	}
}

func (uc *mediaUseCase) invalidateVariantCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "variants:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}
