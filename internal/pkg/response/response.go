package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chagual/internal/gateway"
	"chagual/internal/logging"
	"chagual/internal/media"
	"chagual/internal/pkg/utils"
	"chagual/internal/pkg/validator"
	"chagual/internal/storage"
)

// Message writes {"message": message} merged with extra.
func Message(c *gin.Context, statusCode int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// List writes rows as a bare JSON array.
func List(c *gin.Context, rows []map[string]any) {
	if rows == nil {
		rows = []map[string]any{}
	}
	c.JSON(http.StatusOK, rows)
}

// ErrorBody is the envelope of every failed request.
type ErrorBody struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, ErrorBody{Error: ErrorDetail{Code: code, Message: message, Details: details}})
}

// Fail writes err with the status and code of its class. Store messages are
// passed through unchanged.
func Fail(c *gin.Context, err error) {
	var verr *validator.Error
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, utils.ErrInvalidID):
		Error(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	case errors.As(err, &verr):
		if len(verr.Fields) > 0 {
			ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, verr.Fields)
			return
		}
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message)
	case errors.Is(err, media.ErrEmptyPayload):
		Error(c, http.StatusBadRequest, "EMPTY_PAYLOAD", err.Error())
	case errors.Is(err, media.ErrTooLarge), errors.As(err, &maxErr):
		Error(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", media.ErrTooLarge.Error())
	case errors.Is(err, media.ErrInvalidBase64), errors.Is(err, media.ErrInvalidType):
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, storage.ErrUpstream):
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("object storage failure")
		Error(c, http.StatusBadGateway, "STORAGE_UPSTREAM_ERROR", err.Error())
	default:
		storeError(c, err)
	}
}

func storeError(c *gin.Context, err error) {
	switch gateway.KindOf(err) {
	case gateway.KindValidation:
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case gateway.KindNotFound:
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case gateway.KindConflict:
		Error(c, http.StatusConflict, "CONFLICT", err.Error())
	case gateway.KindUnavailable:
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("store unavailable")
		Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", err.Error())
	default:
		Error(c, http.StatusBadRequest, "STORE_ERROR", err.Error())
	}
}
