package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/catalog"
	"github.com/altarajoyas/catalog-service/internal/httpapi"
	"github.com/altarajoyas/catalog-service/pkg/logger"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

// ListBrands handles GET /api/brands.
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.uc.ListBrands(c.Request.Context())
	if err != nil {
		h.logger.Error("list brands failed", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}
	httpapi.Data(c, brands)
}

// ListProductTypes handles GET /api/product-types.
func (h *CatalogHandler) ListProductTypes(c *gin.Context) {
	types, err := h.uc.ListProductTypes(c.Request.Context())
	if err != nil {
		h.logger.Error("list product types failed", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}
	httpapi.Data(c, types)
}

// ListVariants handles GET /api/inventory. An optional q parameter
// narrows the list by free text.
func (h *CatalogHandler) ListVariants(c *gin.Context) {
	variants, err := h.uc.ListVariants(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("list variants failed", zap.Error(err))
		httpapi.Fail(c, err)
		return
	}
	httpapi.Data(c, variants)
}

// GetVariant handles GET /api/inventory/:id.
func (h *CatalogHandler) GetVariant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpapi.Fail(c, apperrors.Wrap(apperrors.KindValidation, "parse variant id", err))
		return
	}

	variant, err := h.uc.GetVariant(c.Request.Context(), id)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			h.logger.Error("get variant failed", zap.Int64("id", id), zap.Error(err))
		}
		httpapi.Fail(c, err)
		return
	}
	httpapi.Data(c, variant)
}
