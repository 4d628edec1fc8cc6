package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlukins/accountd/internal/common"
)

// Machine-stable messages surfaced to clients. No internal details (driver
// errors, query text) ever reach a response body.
const (
	detailInvalidToken       = "INVALID_TOKEN"
	detailInvalidCredentials = "INVALID_CREDENTIALS"
	detailDuplicateEmail     = "A user with this email already exists."
	detailAdminsOnly         = "This endpoint is reserved to admins"
	detailUnsupportedLocale  = "Unsupported locale."
	detailInternal           = "Internal server error."

	detailBasicAuthRequired = "Unauthorized. " +
		"In order to change the password, you must use " +
		"HTTP Basic authentication (username and current password)."
)

func writeDetail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// writeError maps a taxonomy error to its fixed HTTP status and message.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidToken):
		writeDetail(c, http.StatusUnauthorized, detailInvalidToken)
	case errors.Is(err, common.ErrInvalidCredentials):
		writeDetail(c, http.StatusUnauthorized, detailInvalidCredentials)
	case errors.Is(err, common.ErrAuthenticationRequired):
		writeDetail(c, http.StatusUnauthorized, detailBasicAuthRequired)
	case errors.Is(err, common.ErrDuplicateCredential):
		writeDetail(c, http.StatusConflict, detailDuplicateEmail)
	case errors.Is(err, common.ErrPermissionDenied):
		writeDetail(c, http.StatusForbidden, detailAdminsOnly)
	case errors.Is(err, common.ErrUnsupportedLocale):
		writeDetail(c, http.StatusBadRequest, detailUnsupportedLocale)
	default:
		_ = c.Error(err)
		writeDetail(c, http.StatusInternalServerError, detailInternal)
	}
}
