package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/media/dto"
	"github.com/altarajoyas/catalog-service/internal/model"
	"github.com/altarajoyas/catalog-service/pkg/logger"
)

type fakeUseCase struct {
	err error

	lastInput *dto.UploadImageInput
}

func (f *fakeUseCase) UploadImage(_ context.Context, input *dto.UploadImageInput) (*dto.UploadImageResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastInput = input
	alt := "Product 7 image"
	return &dto.UploadImageResult{
		ProductImage: model.ProductImage{
			ID:            31,
			ProductID:     input.ProductID,
			URL:           "https://res.cloudinary.com/demo/image/upload/abc123.jpg",
			URLCloudinary: "https://res.cloudinary.com/demo/image/upload/abc123.jpg",
			AltText:       &alt,
			SortOrder:     1,
		},
		Cloudinary: dto.CloudinaryInfo{
			PublicID:  "altara_products/abc123",
			SecureURL: "https://res.cloudinary.com/demo/image/upload/abc123.jpg",
		},
	}, nil
}

func newRouter(uc *fakeUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMediaHandler(uc, logger.NewNop())
	r := gin.New()
	r.POST("/api/product-images", h.UploadImage)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if withFile {
		fw, err := mw.CreateFormFile("file", "ring.jpg")
		require.NoError(t, err)
		_, err = fw.Write([]byte("jpeg bytes"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func upload(t *testing.T, r *gin.Engine, fields map[string]string, withFile bool, lang string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, withFile)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/product-images", body)
	req.Header.Set("Content-Type", contentType)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	uc := &fakeUseCase{}
	w := upload(t, newRouter(uc), map[string]string{"productId": "7", "altText": "Anillo Luna"}, true, "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data dto.UploadImageResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(31), body.Data.ID)
	assert.Equal(t, 1, body.Data.SortOrder)
	assert.Equal(t, "altara_products/abc123", body.Data.Cloudinary.PublicID)

	require.NotNil(t, uc.lastInput)
	assert.Equal(t, int64(7), uc.lastInput.ProductID)
	assert.Equal(t, "Anillo Luna", uc.lastInput.AltText)
	assert.Equal(t, "ring.jpg", uc.lastInput.FileName)
	assert.Equal(t, int64(len("jpeg bytes")), uc.lastInput.Size)
}

func TestUploadImageMissingFile(t *testing.T) {
	uc := &fakeUseCase{}
	w := upload(t, newRouter(uc), map[string]string{"productId": "7"}, false, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "no file provided", body.Error)
	assert.Nil(t, uc.lastInput)
}

func TestUploadImageMissingProductID(t *testing.T) {
	uc := &fakeUseCase{}
	w := upload(t, newRouter(uc), nil, true, "es")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "se requiere el ID del producto", body.Error)
}

func TestUploadImageBadProductID(t *testing.T) {
	w := upload(t, newRouter(&fakeUseCase{}), map[string]string{"productId": "abc"}, true, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImageMediaHostFailure(t *testing.T) {
	uc := &fakeUseCase{err: apperrors.New(apperrors.KindMediaUnavailable, "cloudinary 502")}
	w := upload(t, newRouter(uc), map[string]string{"productId": "7"}, true, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body.Error, "cloudinary")
}

func TestUploadImageUnknownVariant(t *testing.T) {
	uc := &fakeUseCase{err: apperrors.New(apperrors.KindNotFound, "variant 7 not found")}
	w := upload(t, newRouter(uc), map[string]string{"productId": "7"}, true, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
