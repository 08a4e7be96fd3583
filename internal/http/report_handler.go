package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resume-analyzer/internal/domain"
	"resume-analyzer/internal/report"
)

// ReportHandler genera el PDF descargable de un análisis.
type ReportHandler struct {
	logger   *zap.Logger
	analyses *AnalysisHandler
}

func NewReportHandler(logger *zap.Logger, analyses *AnalysisHandler) *ReportHandler {
	return &ReportHandler{logger: logger, analyses: analyses}
}

// RenderReport maneja POST /api/report con un AnalysisResponse ya obtenido.
func (h *ReportHandler) RenderReport(c *gin.Context) {
	var resp domain.AnalysisResponse
	if err := c.ShouldBindJSON(&resp); err != nil {
		h.logger.Warn("invalid report request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidRequestMessage})
		return
	}
	h.writePDF(c, resp)
}

// StoredReport maneja GET /api/analyses/:id/report.
func (h *ReportHandler) StoredReport(c *gin.Context) {
	stored, ok := h.analyses.loadStored(c)
	if !ok {
		return
	}
	h.writePDF(c, stored.Response())
}

func (h *ReportHandler) writePDF(c *gin.Context, resp domain.AnalysisResponse) {
	data, err := report.RenderBytes(resp)
	if err != nil {
		h.logger.Error("render report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not render report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
