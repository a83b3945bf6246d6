package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fishadm/internal/daemon"
)

func sanitizeBase(basePath string) string {
	bp := strings.TrimSpace(basePath)
	if bp == "" {
		return ""
	}
	if !strings.HasPrefix(bp, "/") {
		bp = "/" + bp
	}
	return strings.TrimSuffix(bp, "/")
}

// selectorFromQuery parses the optional kind and id query parameters.
// Absence of both yields a nil selector (match all).
func selectorFromQuery(c *gin.Context) (*daemon.Selector, error) {
	kindQ := c.Query("kind")
	idQ := c.Query("id")
	if kindQ == "" && idQ == "" {
		return nil, nil
	}
	sel := &daemon.Selector{}
	if kindQ != "" {
		k := daemon.Kind(kindQ)
		if !k.Valid() {
			return nil, fmt.Errorf("unknown daemon kind %q", kindQ)
		}
		sel.Kind = k
	}
	if idQ != "" {
		id, err := strconv.Atoi(idQ)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid daemon id %q", idQ)
		}
		sel.ID = id
		sel.HasID = true
	}
	return sel, nil
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}
