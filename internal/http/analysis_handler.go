package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resume-analyzer/internal/domain"
	"resume-analyzer/internal/repository"
	"resume-analyzer/internal/service"
)

const analysisIDHeader = "X-Analysis-ID"

// AnalysisHandler expone el análisis de currículums y los análisis guardados.
type AnalysisHandler struct {
	logger   *zap.Logger
	analysis *service.AnalysisService
}

func NewAnalysisHandler(logger *zap.Logger, analysis *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, analysis: analysis}
}

// AnalyzeResume maneja POST /api/analyze-resume.
func (h *AnalysisHandler) AnalyzeResume(c *gin.Context) {
	var req domain.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": validationMessage(err)})
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "resumeText is required"})
		return
	}

	result, err := h.analysis.Analyze(c.Request.Context(), c.ClientIP(), req)
	if err != nil {
		var rle *service.RateLimitError
		if errors.As(err, &rle) && rle.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rle.RetryAfter.Seconds()))))
		}
		status, msg := analysisErrorResponse(err)
		h.logger.Warn("analyze resume failed", zap.Error(err), zap.Int("status", status))
		c.JSON(status, gin.H{"message": msg})
		return
	}

	if result.AnalysisID > 0 {
		c.Header(analysisIDHeader, strconv.FormatInt(result.AnalysisID, 10))
	}
	c.JSON(http.StatusOK, result.Response)
}

// analysisErrorResponse aplica la taxonomía de errores del pipeline: todo es 400 salvo el rate limit.
func analysisErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many analysis requests. Please try again later."
	case errors.Is(err, service.ErrInvalidCredential):
		return http.StatusBadRequest, service.ErrInvalidCredential.Error()
	case service.IsOutputShapeError(err):
		return http.StatusBadRequest, "Failed to analyze resume"
	}
	upstream := err
	if inner := errors.Unwrap(err); inner != nil {
		upstream = inner
	}
	return http.StatusBadRequest, "Failed to analyze resume: " + upstream.Error()
}

// ListAnalyses maneja GET /api/analyses.
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	items, err := h.analysis.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list analyses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list analyses"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetAnalysis maneja GET /api/analyses/:id.
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	stored, ok := h.loadStored(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stored)
}

// ListRoles maneja GET /api/roles.
func (h *AnalysisHandler) ListRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"roles": service.KnownRoles()})
}

// loadStored resuelve :id y escribe la respuesta de error si corresponde.
func (h *AnalysisHandler) loadStored(c *gin.Context) (domain.StoredAnalysis, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid analysis id"})
		return domain.StoredAnalysis{}, false
	}
	stored, err := h.analysis.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Analysis not found"})
			return domain.StoredAnalysis{}, false
		}
		h.logger.Error("get analysis failed", zap.Error(err), zap.Int64("analysis_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not load analysis"})
		return domain.StoredAnalysis{}, false
	}
	return stored, true
}
