package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danuarta/property-console/services"
	"github.com/danuarta/property-console/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var ErrNoPermission = &CustomError{"You do not have permission to perform this action"}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Forbidden responses carry only the permission message so an owner-mode
// caller learns nothing beyond "forbidden".
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, services.ErrNotFound)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
	case errors.Is(err, services.ErrValidation):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// ownerFromContext builds the owner-mode capability from the account the
// auth middleware resolved.
func ownerFromContext(c *gin.Context) (services.OwnerContext, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("not authenticated"))
		return services.OwnerContext{}, false
	}
	accountID, ok := v.(uint)
	if !ok || accountID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid account"))
		return services.OwnerContext{}, false
	}
	return services.OwnerContext{AccountID: accountID}, true
}
