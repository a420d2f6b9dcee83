// Package httpapi implements the JSON envelope the storefront consumes:
// { "data": ... } on success, { "error": "..." } on failure.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/pkg/i18n"
)

type DataEnvelope struct {
	Data interface{} `json:"data"`
}

type ErrorEnvelope struct {
	Error string `json:"error"`
}

func Data(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, DataEnvelope{Data: payload})
}

// Fail classifies err and writes the status code the API contract
// assigns to that class. Store failures keep the contract's 400.
func Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindStoreUnavailable:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindMediaUnavailable:
		status = http.StatusInternalServerError
	}
	FailWithStatus(c, status, err)
}

func FailWithStatus(c *gin.Context, status int, err error) {
	lang := c.GetHeader("Accept-Language")
	c.JSON(status, ErrorEnvelope{Error: i18n.T(lang, apperrors.MessageID(err))})
}
