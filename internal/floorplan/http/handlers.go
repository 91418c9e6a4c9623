package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/floorplan-backend/internal/auth"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/domain"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/render"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/floorplan/service"
	"github.com/GoSim-25-26J-441/floorplan-backend/internal/logging"
)

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}

	warnings := res.Diagnostics
	if warnings == nil {
		warnings = []domain.Diagnostic{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "layout": res.Layout, "warnings": warnings})
}

func (h *Handler) estimate(c *gin.Context) {
	var layout domain.Layout
	if err := c.ShouldBindJSON(&layout); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	est, err := h.svc.Estimate(c.Request.Context(), layout)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "parameters": toParametersResp(est)})
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	stored, err := h.svc.Save(c.Request.Context(), auth.UserFirebaseUID(c), service.SaveInput{
		Name:        req.Name,
		Description: req.Description,
		Layout:      req.layout(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "layout": stored})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserFirebaseUID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if items == nil {
		items = []domain.StoredLayout{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "layouts": items})
}

func (h *Handler) get(c *gin.Context) {
	stored, err := h.svc.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "layout": stored})
}

func (h *Handler) parameters(c *gin.Context) {
	est, err := h.svc.EstimateStored(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "parameters": toParametersResp(est)})
}

func (h *Handler) svg(c *gin.Context) {
	stored, err := h.svc.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	opts := []render.SVGOption{render.WithTitle(stored.Name)}
	if scale, err := strconv.ParseFloat(c.Query("scale"), 64); err == nil && scale > 0 && scale <= 100 {
		opts = append(opts, render.WithScale(scale))
	}
	if c.Query("areas") == "true" {
		opts = append(opts, render.WithAreas())
	}
	c.Data(http.StatusOK, "image/svg+xml", render.RenderSVG(stored.Layout, opts...))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("public_id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// fail maps domain errors onto HTTP statuses.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEnvelope),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrMalformedLayout),
		errors.Is(err, domain.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrLayoutNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "layout not found"})
	default:
		logging.FromContext(c.Request.Context(), nil).Error("layout request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
