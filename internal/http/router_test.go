package http

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/repository"
	"resume-analyzer/internal/service"
)

const modelOutput = `{
  "overallScore": 81, "grammarScore": 77, "atsScore": 88, "keywordScore": 70, "formatScore": 90,
  "level": "Pro",
  "earnedBadges": [],
  "grammarFeedback": {"issues": [{"type": "positive", "text": "Concise bullets"}], "readabilityComment": "Good"},
  "atsFeedback": {"sections": [{"name": "Skills", "found": true}], "recommendations": []},
  "keywordFeedback": {"foundKeywords": ["Go"], "missingKeywords": ["Kubernetes"], "recommendation": "Add infra keywords"},
  "recommendations": [{"text": "Add metrics", "type": "improvement"}]
}`

func newTestRouter(t *testing.T, client llm.LLMClient) *gin.Engine {
	return newLimitedTestRouter(t, client, nil)
}

func newLimitedTestRouter(t *testing.T, client llm.LLMClient, limiter service.AnalysisRateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	svc := service.NewAnalysisService(client, repository.NewMemoryAnalysisRepository(), nil, limiter, logger)
	analysisH := NewAnalysisHandler(logger, svc)
	return NewRouter(logger, analysisH, NewUploadHandler(logger, 10<<20), NewReportHandler(logger, analysisH))
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, w.Body.String())
	}
	return body.Message
}

func analyzeBody() map[string]any {
	return map[string]any{
		"resumeText":      "Backend engineer, 6 years of Go.",
		"jobRole":         "backend-developer",
		"experienceLevel": "senior",
	}
}

func TestAnalyzeResumeSuccess(t *testing.T) {
	r := newTestRouter(t, &llm.MockClient{Response: "Analysis:\n" + modelOutput})

	w := doJSON(t, r, http.MethodPost, "/api/analyze-resume", analyzeBody())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get(analysisIDHeader) != "1" {
		t.Fatalf("expected analysis id header, got %q", w.Header().Get(analysisIDHeader))
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["jobRole"] != "backend-developer" || resp["experienceLevel"] != "senior" {
		t.Fatalf("expected echo fields, got %v / %v", resp["jobRole"], resp["experienceLevel"])
	}
	for _, key := range []string{"earnedBadges", "recommendations"} {
		if _, ok := resp[key].([]any); !ok {
			t.Fatalf("expected %s to be an array, got %T", key, resp[key])
		}
	}
}

func TestAnalyzeResumeValidation(t *testing.T) {
	r := newTestRouter(t, &llm.MockClient{Response: modelOutput})

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantMsg string
	}{
		{name: "missing level", mutate: func(b map[string]any) { delete(b, "experienceLevel") }, wantMsg: "experienceLevel is required"},
		{name: "bad level", mutate: func(b map[string]any) { b["experienceLevel"] = "guru" }, wantMsg: "experienceLevel must be one of: entry mid senior executive"},
		{name: "missing resume", mutate: func(b map[string]any) { delete(b, "resumeText") }, wantMsg: "resumeText is required"},
		{name: "blank resume", mutate: func(b map[string]any) { b["resumeText"] = "   " }, wantMsg: "resumeText is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := analyzeBody()
			tt.mutate(body)
			w := doJSON(t, r, http.MethodPost, "/api/analyze-resume", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if msg := decodeMessage(t, w); !strings.Contains(msg, tt.wantMsg) {
				t.Fatalf("expected message containing %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestAnalyzeResumePipelineErrors(t *testing.T) {
	tests := []struct {
		name    string
		client  *llm.MockClient
		wantMsg string
	}{
		{
			name:    "credential rejected",
			client:  &llm.MockClient{Err: fmt.Errorf("%w: API key not valid", llm.ErrUnauthorized)},
			wantMsg: service.ErrInvalidCredential.Error(),
		},
		{
			name:    "output without json",
			client:  &llm.MockClient{Response: "Sorry, I can't help with that."},
			wantMsg: "Failed to analyze resume",
		},
		{
			name:    "upstream error",
			client:  &llm.MockClient{Err: fmt.Errorf("model overloaded")},
			wantMsg: "Failed to analyze resume: model overloaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, tt.client)
			w := doJSON(t, r, http.MethodPost, "/api/analyze-resume", analyzeBody())
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if msg := decodeMessage(t, w); msg != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

type exhaustedLimiter struct{}

func (exhaustedLimiter) Allow(context.Context, string) service.RateDecision {
	return service.RateDecision{Allowed: false, Count: 20, RetryAfter: 1500 * time.Millisecond}
}

func TestAnalyzeResumeRateLimited(t *testing.T) {
	client := &llm.MockClient{Response: modelOutput}
	r := newLimitedTestRouter(t, client, exhaustedLimiter{})

	w := doJSON(t, r, http.MethodPost, "/api/analyze-resume", analyzeBody())
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("expected Retry-After 2, got %q", got)
	}
	if client.Calls != 0 {
		t.Fatalf("expected model not to be called")
	}
}

func TestStoredAnalysesAndReports(t *testing.T) {
	r := newTestRouter(t, &llm.MockClient{Response: modelOutput})
	if w := doJSON(t, r, http.MethodPost, "/api/analyze-resume", analyzeBody()); w.Code != http.StatusOK {
		t.Fatalf("analyze failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/analyses/1", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":1`) {
		t.Fatalf("expected stored analysis, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/analyses", nil)
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("expected one analysis, got %s", w.Body.String())
	}

	if w = doJSON(t, r, http.MethodGet, "/api/analyses/99", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodGet, "/api/analyses/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/analyses/1/report", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("expected pdf, got %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected pdf body")
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "resume-analysis-report.pdf") {
		t.Fatalf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
	}
}

func TestRenderReportFromBody(t *testing.T) {
	r := newTestRouter(t, &llm.MockClient{})
	var resp map[string]any
	if err := json.Unmarshal([]byte(modelOutput), &resp); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	w := doJSON(t, r, http.MethodPost, "/api/report", resp)
	if w.Code != http.StatusOK || !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected pdf, got %d", w.Code)
	}
}

func TestHealthzAndRoles(t *testing.T) {
	r := newTestRouter(t, &llm.MockClient{})
	if w := doJSON(t, r, http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w := doJSON(t, r, http.MethodGet, "/api/roles", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "frontend-developer") {
		t.Fatalf("unexpected roles response: %s", w.Body.String())
	}
}

func uploadRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func minimalDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func twoPagePDF(t *testing.T, first, second string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	doc.Text(20, 30, first)
	doc.AddPage()
	doc.Text(20, 30, second)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	return buf.Bytes()
}

func TestUploadResume(t *testing.T) {
	r := newTestRouter(t, &llm.MockClient{})

	t.Run("pdf returns text from every page", func(t *testing.T) {
		data := twoPagePDF(t, "Experienced frontend engineer skilled in React", "Second page TypeScript")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, uploadRequest(t, "resume", "cv.pdf", extract.MediaTypePDF, data))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.Contains(body.Text, "Experienced frontend engineer skilled in React") ||
			!strings.Contains(body.Text, "Second page TypeScript") {
			t.Fatalf("expected text from both pages, got %q", body.Text)
		}
	})

	t.Run("docx returns text", func(t *testing.T) {
		data := minimalDocx(t, "Jane Doe", "Platform engineer at Acme")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, uploadRequest(t, "resume", "cv.docx", extract.MediaTypeDOCX, data))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.Contains(body.Text, "Platform engineer at Acme") {
			t.Fatalf("expected paragraph text, got %q", body.Text)
		}
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, uploadRequest(t, "resume", "cv.txt", "text/plain", []byte("plain resume")))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if msg := decodeMessage(t, w); msg != "Only PDF and DOCX files are allowed" {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, uploadRequest(t, "other", "cv.docx", extract.MediaTypeDOCX, []byte("x")))
		if w.Code != http.StatusBadRequest || decodeMessage(t, w) != "No file uploaded" {
			t.Fatalf("expected no file error, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("corrupt docx", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, uploadRequest(t, "resume", "cv.docx", extract.MediaTypeDOCX, []byte("not a zip")))
		if w.Code != http.StatusBadRequest || decodeMessage(t, w) == "" {
			t.Fatalf("expected decoder error, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("too large", func(t *testing.T) {
		small := NewUploadHandler(zap.NewNop(), 16)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = uploadRequest(t, "resume", "cv.pdf", extract.MediaTypePDF, bytes.Repeat([]byte("a"), 64))
		small.UploadResume(c)
		if w.Code != http.StatusBadRequest || !strings.Contains(decodeMessage(t, w), "File too large") {
			t.Fatalf("expected size rejection, got %d %s", w.Code, w.Body.String())
		}
	})
}
