package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/internal/service"
)

// ==================== Envelope ====================

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

func fail(c *gin.Context, status int, msg string, data interface{}) {
	body := gin.H{
		"code":    status,
		"message": msg,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, msg, nil)
}

// ==================== Error mapping ====================

// errorStatus maps a service error to its HTTP status.
func errorStatus(err error) int {
	if werr, ok := service.AsWizardError(err); ok {
		switch werr.Kind {
		case service.KindValidation, service.KindMedia:
			return http.StatusUnprocessableEntity
		case service.KindIdentity:
			return http.StatusUnauthorized
		case service.KindSubmission:
			return http.StatusBadGateway
		}
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSubmissionInFlight),
		errors.Is(err, service.ErrStaleVideoProbe),
		errors.Is(err, service.ErrReportBusy),
		errors.Is(err, service.ErrReportConflict),
		errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrFieldNotInCategory),
		errors.Is(err, model.ErrUnknownCategory),
		errors.Is(err, model.ErrInvalidOption),
		errors.Is(err, service.ErrInvalidReportReason):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes err in the envelope. Wizard errors carry their kind and
// rule so the storefront can place the message next to the right input.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		fail(c, status, "internal server error", nil)
		return
	}

	if werr, ok := service.AsWizardError(err); ok {
		fail(c, status, werr.Message, gin.H{"kind": werr.Kind, "rule": werr.Rule})
		return
	}
	fail(c, status, err.Error(), nil)
}

// ==================== Params ====================

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}
