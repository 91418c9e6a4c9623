package http

import "github.com/gin-gonic/gin"

// RegisterCompute attaches the generate and estimate routes.
func (h *Handler) RegisterCompute(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.POST("/estimate", h.estimate)
}

// RegisterRead attaches read-only routes for stored layouts.
func (h *Handler) RegisterRead(rg *gin.RouterGroup) {
	rg.GET("/:public_id", h.get)
	rg.GET("/:public_id/parameters", h.parameters)
	rg.GET("/:public_id/svg", h.svg)
}

// RegisterOwned attaches routes that act on the caller's layouts. The group
// must run an auth middleware first.
func (h *Handler) RegisterOwned(rg *gin.RouterGroup) {
	rg.POST("", h.save)
	rg.GET("", h.list)
	rg.DELETE("/:public_id", h.delete)
}
