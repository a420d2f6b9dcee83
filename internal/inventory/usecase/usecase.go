package usecase

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/inventory"
	"github.com/altarajoyas/catalog-service/internal/inventory/dto"
	"github.com/altarajoyas/catalog-service/pkg/cache"
	"github.com/altarajoyas/catalog-service/pkg/logger"
	"github.com/altarajoyas/catalog-service/pkg/search"
)

const variantIndex = "product_variants"

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

// NewInventoryUseCase wires the write path. cache and es may be nil;
// both are best-effort side channels, never part of the commit.
func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *inventoryUseCase) UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) error {
	if input.ProductID <= 0 {
		return apperrors.New(apperrors.KindValidation, "product_id is required")
	}
	if input.Quantity < 0 {
		return apperrors.New(apperrors.KindValidation, "quantity must be non-negative")
	}
	if input.Price.IsNegative() {
		return apperrors.New(apperrors.KindValidation, "price must be non-negative")
	}

	if err := uc.repo.UpdateVariantWithStock(ctx, input); err != nil {
		if errors.Is(err, inventory.ErrVariantNotFound) {
			return apperrors.Wrap(apperrors.KindNotFound, "variant not found", err)
		}
		return apperrors.Wrap(apperrors.KindStoreUnavailable, "update variant", err)
	}

	go uc.invalidateVariantCache(context.Background())
	go uc.syncToElastic(context.Background(), input.ProductID)

	return nil
}

func (uc *inventoryUseCase) ApplyMovement(ctx context.Context, productID, change int64, notes string) error {
	if productID <= 0 {
		return apperrors.New(apperrors.KindValidation, "product_id is required")
	}

	if err := uc.repo.AdjustStock(ctx, productID, change, notes); err != nil {
		if errors.Is(err, inventory.ErrInsufficientStock) {
			return apperrors.Wrap(apperrors.KindValidation, "insufficient stock", err)
		}
		return apperrors.Wrap(apperrors.KindStoreUnavailable, "adjust stock", err)
	}

	go uc.invalidateVariantCache(context.Background())

	return nil
}

func (uc *inventoryUseCase) invalidateVariantCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "variants:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *inventoryUseCase) syncToElastic(ctx context.Context, productID int64) {
	if uc.es == nil {
		return
	}

	doc, err := uc.repo.GetVariantSearchDoc(ctx, productID)
	if err != nil || doc == nil {
		if err != nil {
			uc.logger.Error("failed to load variant for indexing", zap.Int64("product_id", productID), zap.Error(err))
		}
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"code": { "type": "long" },
				"size": { "type": "keyword" },
				"color": { "type": "text" },
				"composition": { "type": "text" },
				"price": { "type": "double" },
				"group_name": { "type": "text" },
				"brand_name": { "type": "text" },
				"type_name": { "type": "text" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, variantIndex, mapping)

	if err := uc.es.Index(ctx, variantIndex, strconv.FormatInt(doc.ID, 10), doc); err != nil {
		uc.logger.Error("failed to index variant", zap.Int64("product_id", productID), zap.Error(err))
	}
}
