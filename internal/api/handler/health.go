package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/pkg/errors"
)

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": consts.ServiceName,
		"version": consts.Version,
		"build":   consts.BuildInfo(),
		"uptime":  consts.GetUptime().Round(time.Second).String(),
	})
}

// NotFound answers unknown routes and methods with an E1002 error body
func NotFound(c *gin.Context) {
	_ = c.Error(errors.ErrNotFound("route " + c.Request.Method + " " + c.Request.URL.Path))
}
