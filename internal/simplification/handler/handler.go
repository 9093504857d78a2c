package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification"
	"github.com/gogotex/gogotex/backend/go-simplifier/internal/simplification/service"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/logger"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/metrics"
	"github.com/gogotex/gogotex/backend/go-simplifier/pkg/middleware"
)

const errNoDocumentText = "No document text provided"

// RegisterSimplifyRoutes registers POST /simplify backed by svc.
func RegisterSimplifyRoutes(r gin.IRouter, svc *service.Service) {
	r.POST("/simplify", func(c *gin.Context) {
		var req simplification.Request
		if err := c.ShouldBindJSON(&req); err != nil || req.DocumentText == nil || *req.DocumentText == "" {
			metrics.SimplifyRequests.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, simplification.ErrorResponse{Error: errNoDocumentText})
			return
		}

		reqID := middleware.RequestIDFrom(c)
		ctx := service.WithRequestID(c.Request.Context(), reqID)
		out, err := svc.Simplify(ctx, *req.DocumentText)
		if err != nil {
			metrics.SimplifyRequests.WithLabelValues("error").Inc()
			logger.With("request_id", reqID).Errorf("simplify failed: %v", err)
			c.JSON(http.StatusInternalServerError, simplification.ErrorResponse{Error: "simplification failed"})
			return
		}
		metrics.SimplifyRequests.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, simplification.Response{SimplifiedDocument: out})
	})
}
