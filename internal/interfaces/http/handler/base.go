package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/viamoe/haady-business-sub003/internal/domain/integration"
	"github.com/viamoe/haady-business-sub003/internal/domain/shared"
	"github.com/viamoe/haady-business-sub003/internal/interfaces/http/dto"
	"github.com/viamoe/haady-business-sub003/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getIdentity extracts the authenticated merchant and store from the context
func getIdentity(c *gin.Context) (merchantID, storeID uuid.UUID, err error) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.New("merchant identity not found in context")
	}
	storeID, ok = middleware.GetStoreID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.New("store identity not found in context")
	}
	return merchantID, storeID, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, "CONFLICT", message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// HandleError converts engine setup errors and domain errors to HTTP
// responses. Per-item sync failures never reach here; they ride inside a
// successful response's result body.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, integration.ErrSyncAlreadyRunning):
		h.Conflict(c, "A sync for this store is already running")
		return
	case errors.Is(err, integration.ErrInvalidCredentials):
		h.Unauthorized(c, "Platform credentials are missing or invalid")
		return
	case errors.Is(err, integration.ErrPlatformNotSupported),
		errors.Is(err, integration.ErrPlatformNotConfigured):
		h.BadRequest(c, "The requested platform is not available")
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, http.StatusBadRequest, domainErr.Code, domainErr.Message)
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
