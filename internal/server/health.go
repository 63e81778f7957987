package server

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) Health(c *gin.Context) {
	dbStatus := "connected"
	healthy := true

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "disconnected"
		healthy = false
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":      status,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(s.startedAt).Seconds(),
		"version":     s.cfg.AppVersion,
		"environment": s.cfg.Environment,
		"database": gin.H{
			"status": dbStatus,
			"name":   s.cfg.DBName,
		},
		"memory": gin.H{
			"used":  fmt.Sprintf("%d MB", mem.HeapAlloc/1024/1024),
			"total": fmt.Sprintf("%d MB", mem.HeapSys/1024/1024),
		},
	})
}
