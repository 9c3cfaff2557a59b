package config

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConfigAPIServer exposes the effective configuration over HTTP. The API key
// itself is never returned.
type ConfigAPIServer struct {
	config Config
}

// NewConfigAPIServer creates a new config API server.
func NewConfigAPIServer(cfg Config) *ConfigAPIServer {
	return &ConfigAPIServer{
		config: cfg,
	}
}

// ConfigResponse is the body of GET /api/v1/config.
type ConfigResponse struct {
	Config
	APIKeyConfigured bool `json:"api_key_configured"`
}

// Register mounts the config routes on group.
func (c *ConfigAPIServer) Register(group *gin.RouterGroup) {
	group.GET("/config", c.HandleGetConfig)
}

// HandleGetConfig handles GET /api/v1/config.
func (c *ConfigAPIServer) HandleGetConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ConfigResponse{
		Config:           c.config,
		APIKeyConfigured: c.config.HasAPIKey(),
	})
}
