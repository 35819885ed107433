package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope:
// {message, status, error}.
type ErrorResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// GinErrorHandler maps errors onto the envelope for Gin.
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError writes err as the uniform envelope. Non-AppError values
// are wrapped as opaque internal errors so nothing leaks to the client.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "code", appErr.Code, "err", appErr.Unwrap())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Message: appErr.Message,
		Status:  appErr.HTTPCode,
		Error:   string(appErr.Code),
		Details: appErr.Details,
	})
}

// HandleError is the helper handlers call directly.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// AsAppError attempts to unwrap err into *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HandleValidationError converts binding/validation failures into the
// envelope with field details attached.
func HandleValidationError(c *gin.Context, err error) {
	HandleError(c, ValidationError(gin.H{"details": err.Error()}))
}
