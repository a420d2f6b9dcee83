package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/catalog"
	"github.com/altarajoyas/catalog-service/internal/catalog/dto"
	"github.com/altarajoyas/catalog-service/internal/model"
	"github.com/altarajoyas/catalog-service/pkg/cache"
	"github.com/altarajoyas/catalog-service/pkg/logger"
	"github.com/altarajoyas/catalog-service/pkg/search"
)

const (
	variantIndex  = "product_variants"
	listCacheTTL  = 5 * time.Minute
	searchMaxHits = 500
)

type catalogUseCase struct {
	repo   catalog.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

// NewCatalogUseCase wires the read path. cache and es may be nil; both
// are optional accelerators over the catalog store.
func NewCatalogUseCase(repo catalog.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *catalogUseCase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	brands, err := uc.repo.ListBrands(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreUnavailable, "list brands", err)
	}
	return brands, nil
}

func (uc *catalogUseCase) ListProductTypes(ctx context.Context) ([]model.ProductType, error) {
	types, err := uc.repo.ListProductTypes(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreUnavailable, "list product types", err)
	}
	return types, nil
}

func (uc *catalogUseCase) ListVariants(ctx context.Context, query string) ([]model.ProductVariant, error) {
	cacheKey := uc.generateCacheKey(query)

	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached []model.ProductVariant
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	variants, err := uc.search(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreUnavailable, "list variants", err)
	}

	if uc.cache != nil {
		if data, err := json.Marshal(variants); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	return variants, nil
}

// search prefers Elasticsearch for free-text queries and falls back to
// the catalog store on any failure.
func (uc *catalogUseCase) search(ctx context.Context, query string) ([]model.ProductVariant, error) {
	if query != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"query_string": map[string]interface{}{
					"query":  fmt.Sprintf("*%s*", query),
					"fields": []string{"group_name^3", "brand_name", "color", "composition", "code"},
				},
			},
			"size": searchMaxHits,
		}

		res, err := uc.es.Search(ctx, variantIndex, q)
		if err == nil {
			ids := make([]int64, 0, len(res.Hits.Hits))
			for _, hit := range res.Hits.Hits {
				if id, err := strconv.ParseInt(hit.ID, 10, 64); err == nil {
					ids = append(ids, id)
				}
			}
			return uc.repo.FindVariantsByIDs(ctx, ids)
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	return uc.repo.FindVariants(ctx, &dto.VariantFilters{Search: query})
}

func (uc *catalogUseCase) GetVariant(ctx context.Context, id int64) (*model.ProductVariant, error) {
	variant, err := uc.repo.FindVariantByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreUnavailable, "get variant", err)
	}
	if variant == nil {
		return nil, apperrors.New(apperrors.KindNotFound, fmt.Sprintf("variant %d not found", id))
	}
	return variant, nil
}

func (uc *catalogUseCase) generateCacheKey(query string) string {
	return fmt.Sprintf("variants:list:%x", md5.Sum([]byte(query)))
}
