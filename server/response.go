package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/order-service/errors"
	"github.com/kbukum/order-service/logger"
)

// DataResponse is the success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError renders err as an error envelope. AppErrors keep their
// code and status; anything else becomes a 500 INTERNAL_ERROR. The request
// id, when present, is echoed in the body.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	body := appErr.ToResponse()
	body.Error.RequestID = logger.RequestIDFromContext(c.Request.Context())
	c.JSON(appErr.HTTPStatus, body)
}

// RespondCreated sends 201 with data in the success envelope.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, DataResponse{Data: data})
}
