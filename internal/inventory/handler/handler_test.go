package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/inventory/dto"
	"github.com/altarajoyas/catalog-service/pkg/logger"
)

type fakeUseCase struct {
	err error

	lastInput *dto.UpdateVariantInput
}

func (f *fakeUseCase) UpdateVariant(_ context.Context, input *dto.UpdateVariantInput) error {
	if f.err != nil {
		return f.err
	}
	f.lastInput = input
	return nil
}

func (f *fakeUseCase) ApplyMovement(context.Context, int64, int64, string) error {
	return f.err
}

func newRouter(uc *fakeUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewInventoryHandler(uc, logger.NewNop())
	r := gin.New()
	r.POST("/api/inventory/update", h.UpdateVariant)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateVariant(t *testing.T) {
	uc := &fakeUseCase{}
	w := post(newRouter(uc), `{
		"product_id": 9,
		"size": "18",
		"color": "plateado",
		"code": 10245,
		"price": "150.00",
		"original_price": "199.99",
		"composition": "plata 925",
		"quantity": 5
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Success bool `json:"success"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Success)

	require.NotNil(t, uc.lastInput)
	assert.Equal(t, int64(9), uc.lastInput.ProductID)
	assert.Equal(t, int64(5), uc.lastInput.Quantity)
	assert.Equal(t, "150", uc.lastInput.Price.String())
	require.True(t, uc.lastInput.OriginalPrice.Valid)
	assert.False(t, uc.lastInput.SalePrice.Valid)
}

func TestUpdateVariantZeroQuantity(t *testing.T) {
	uc := &fakeUseCase{}
	w := post(newRouter(uc), `{"product_id": 9, "code": 10245, "price": "150.00", "quantity": 0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.lastInput)
	assert.Equal(t, int64(0), uc.lastInput.Quantity)
}

func TestUpdateVariantBlankOptionalsBecomeNull(t *testing.T) {
	uc := &fakeUseCase{}
	w := post(newRouter(uc), `{"product_id": 9, "code": 10245, "price": "150.00", "quantity": 5, "size": "", "color": ""}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.lastInput)
	assert.Nil(t, uc.lastInput.Size)
	assert.Nil(t, uc.lastInput.Color)
}

func TestUpdateVariantMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing quantity", `{"product_id": 9, "code": 10245, "price": "150.00"}`},
		{"missing code", `{"product_id": 9, "price": "150.00", "quantity": 5}`},
		{"malformed json", `{"product_id": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			w := post(newRouter(uc), tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, uc.lastInput)
		})
	}
}

func TestUpdateVariantNotFound(t *testing.T) {
	uc := &fakeUseCase{err: apperrors.New(apperrors.KindNotFound, "variant not found")}
	w := post(newRouter(uc), `{"product_id": 404, "code": 1, "price": "10", "quantity": 1}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateVariantStoreFailure(t *testing.T) {
	uc := &fakeUseCase{err: apperrors.New(apperrors.KindStoreUnavailable, "db down")}
	w := post(newRouter(uc), `{"product_id": 9, "code": 1, "price": "10", "quantity": 1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body.Error, "db down")
}
