package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/frqgit/year-7-math/internal/requestdata"
)

// currentUserID pulls the authenticated user out of the request context.
// The auth middleware guarantees it is set on protected routes.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd, ok := requestdata.GetRequestData(c.Request.Context())
	if !ok || rd.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return rd.UserID, true
}

// queryInt reads an optional integer query parameter, falling back to def on
// absence or garbage.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// paramInt reads an integer path parameter, returning zero when unparseable
// so the service's own range check rejects it.
func paramInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0
	}
	return n
}
