package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/airbooking-gateway/internal/clients"
	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/gin-gonic/gin"
)

// principal reads the asserted caller identity. It writes a 400 and
// returns false when the header is missing.
func principal(c *gin.Context) (domain.Principal, bool) {
	username := strings.TrimSpace(c.GetHeader(clients.UserHeader))
	if username == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: clients.UserHeader + " header is required"})
		return domain.Principal{}, false
	}
	return domain.Principal{Username: username}, true
}
