package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/httpapi"
	"github.com/altarajoyas/catalog-service/internal/inventory"
	"github.com/altarajoyas/catalog-service/internal/inventory/dto"
	"github.com/altarajoyas/catalog-service/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

type updateVariantRequest struct {
	ProductID     int64            `json:"product_id" binding:"required"`
	Size          *string          `json:"size"`
	Color         *string          `json:"color"`
	Code          int64            `json:"code" binding:"required"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Composition   *string          `json:"composition"`
	Quantity      *int64           `json:"quantity" binding:"required"`
}

// UpdateVariant handles POST /api/inventory/update. The body resends the
// full editable field set; absent optional fields clear their columns.
func (h *InventoryHandler) UpdateVariant(c *gin.Context) {
	var req updateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid inventory update payload", zap.Error(err))
		httpapi.Fail(c, apperrors.Wrap(apperrors.KindValidation, "bind update payload", err))
		return
	}

	input := &dto.UpdateVariantInput{
		ProductID:   req.ProductID,
		Size:        emptyToNil(req.Size),
		Color:       emptyToNil(req.Color),
		Code:        req.Code,
		Price:       req.Price,
		Composition: emptyToNil(req.Composition),
		Quantity:    *req.Quantity,
	}
	if req.OriginalPrice != nil {
		input.OriginalPrice = decimal.NewNullDecimal(*req.OriginalPrice)
	}
	if req.SalePrice != nil {
		input.SalePrice = decimal.NewNullDecimal(*req.SalePrice)
	}

	if err := h.uc.UpdateVariant(c.Request.Context(), input); err != nil {
		h.logger.Error("inventory update failed", zap.Int64("product_id", req.ProductID), zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.Data(c, gin.H{"success": true})
}

// emptyToNil maps omitted or blank optional strings to NULL, matching
// the overwrite semantics of the update contract.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
