package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resume-analyzer/internal/extract"
)

// multipartOverhead cubre los límites y cabeceras del formulario alrededor del archivo.
const multipartOverhead = 1 << 20

// UploadHandler recibe currículums PDF/DOCX y devuelve su texto plano.
type UploadHandler struct {
	logger   *zap.Logger
	maxBytes int64
}

func NewUploadHandler(logger *zap.Logger, maxBytes int64) *UploadHandler {
	return &UploadHandler{logger: logger, maxBytes: maxBytes}
}

// UploadResume maneja POST /api/upload-resume (campo multipart "resume").
func (h *UploadHandler) UploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	fh, err := c.FormFile("resume")
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": h.tooLargeMessage()})
			return
		}
		h.logger.Warn("upload without file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	if fh.Size > h.maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": h.tooLargeMessage()})
		return
	}

	mediaType, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil || !extract.Supported(mediaType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only PDF and DOCX files are allowed"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error("open uploaded file failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse resume file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse resume file"})
		return
	}

	text, err := extract.ExtractText(mediaType, data)
	if err != nil {
		h.logger.Warn("extract resume text failed", zap.Error(err), zap.String("media_type", mediaType), zap.Int64("size", fh.Size))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	h.logger.Debug("resume extracted", zap.String("media_type", mediaType), zap.Int("text_len", len(text)))
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (h *UploadHandler) tooLargeMessage() string {
	if h.maxBytes >= 1<<20 {
		return fmt.Sprintf("File too large. Maximum size is %dMB", h.maxBytes/(1<<20))
	}
	return fmt.Sprintf("File too large. Maximum size is %d bytes", h.maxBytes)
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
