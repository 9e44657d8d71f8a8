package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/catDforD/Trackit/internal/week"
)

// intQuery parses an integer query parameter, returning 0 when the
// parameter is absent or malformed so services apply their defaults.
func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// validWeek reports whether weekID is a well-formed ISO week identifier.
func validWeek(weekID string) bool {
	_, err := week.Parse(weekID)
	return err == nil
}
