package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/httpapi"
	"github.com/altarajoyas/catalog-service/internal/media"
	"github.com/altarajoyas/catalog-service/internal/media/dto"
	"github.com/altarajoyas/catalog-service/pkg/logger"
)

type MediaHandler struct {
	uc     media.UseCase
	logger logger.ZapLogger
}

func NewMediaHandler(uc media.UseCase, log logger.ZapLogger) *MediaHandler {
	return &MediaHandler{
		uc:     uc,
		logger: log,
	}
}

// UploadImage handles POST /api/product-images (multipart form with
// file, productId and optional altText).
func (h *MediaHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpapi.Fail(c, apperrors.NewID(apperrors.KindValidation, "error.file_missing"))
		return
	}

	productIDRaw := c.PostForm("productId")
	if productIDRaw == "" {
		httpapi.Fail(c, apperrors.NewID(apperrors.KindValidation, "error.product_id_missing"))
		return
	}
	productID, err := strconv.ParseInt(productIDRaw, 10, 64)
	if err != nil {
		httpapi.Fail(c, apperrors.Wrap(apperrors.KindValidation, "parse productId", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpapi.Fail(c, apperrors.Wrap(apperrors.KindValidation, "open uploaded file", err))
		return
	}
	defer file.Close()

	result, err := h.uc.UploadImage(c.Request.Context(), &dto.UploadImageInput{
		ProductID: productID,
		AltText:   c.PostForm("altText"),
		FileName:  fileHeader.Filename,
		Size:      fileHeader.Size,
		File:      file,
	})
	if err != nil {
		h.logger.Error("image upload failed",
			zap.Int64("product_id", productID),
			zap.String("file", fileHeader.Filename),
			zap.Error(err))
		httpapi.Fail(c, err)
		return
	}

	httpapi.Data(c, result)
}
