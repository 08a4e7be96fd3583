package domain

import (
	"errors"
	"time"
)

// ErrBlankResume indica un resumeText compuesto solo por espacios.
var ErrBlankResume = errors.New("resumeText is required")

// CustomJobRole es el identificador centinela para un puesto libre.
const CustomJobRole = "custom"

// Niveles de experiencia aceptados en una solicitud.
const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceExecutive = "executive"
)

// ExperienceLevels lista los niveles válidos en orden ascendente.
var ExperienceLevels = []string{ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive}

// Tipos de observación gramatical.
const (
	IssuePositive = "positive"
	IssueWarning  = "warning"
	IssueError    = "error"
)

// Tipos de recomendación.
const (
	RecommendationStrength    = "strength"
	RecommendationImprovement = "improvement"
	RecommendationNextStep    = "next-step"
)

// AnalysisRequest es el cuerpo de POST /api/analyze-resume.
type AnalysisRequest struct {
	ResumeText      string `json:"resumeText" binding:"required"`
	JobRole         string `json:"jobRole" binding:"required"`
	CustomJobRole   string `json:"customJobRole,omitempty"`
	ExperienceLevel string `json:"experienceLevel" binding:"required,oneof=entry mid senior executive"`
}

type Badge struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type GrammarIssue struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type GrammarFeedback struct {
	Issues             []GrammarIssue `json:"issues"`
	ReadabilityComment string         `json:"readabilityComment"`
}

type SectionStatus struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
}

type ATSFeedback struct {
	Sections        []SectionStatus `json:"sections"`
	Recommendations []string        `json:"recommendations"`
}

type KeywordFeedback struct {
	FoundKeywords   []string `json:"foundKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Recommendation  string   `json:"recommendation"`
}

type Recommendation struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// AnalysisResponse es el resultado validado del modelo más los campos de eco de la solicitud.
type AnalysisResponse struct {
	OverallScore    int              `json:"overallScore"`
	GrammarScore    int              `json:"grammarScore"`
	ATSScore        int              `json:"atsScore"`
	KeywordScore    int              `json:"keywordScore"`
	FormatScore     int              `json:"formatScore"`
	Level           string           `json:"level"`
	EarnedBadges    []Badge          `json:"earnedBadges"`
	GrammarFeedback GrammarFeedback  `json:"grammarFeedback"`
	ATSFeedback     ATSFeedback      `json:"atsFeedback"`
	KeywordFeedback KeywordFeedback  `json:"keywordFeedback"`
	Recommendations []Recommendation `json:"recommendations"`
	JobRole         string           `json:"jobRole"`
	CustomJobRole   string           `json:"customJobRole,omitempty"`
	ExperienceLevel string           `json:"experienceLevel"`
}

// Normalize garantiza que las secuencias que el cliente recorre nunca sean null.
func (r *AnalysisResponse) Normalize() {
	if r.EarnedBadges == nil {
		r.EarnedBadges = []Badge{}
	}
	if r.GrammarFeedback.Issues == nil {
		r.GrammarFeedback.Issues = []GrammarIssue{}
	}
	if r.ATSFeedback.Sections == nil {
		r.ATSFeedback.Sections = []SectionStatus{}
	}
	if r.ATSFeedback.Recommendations == nil {
		r.ATSFeedback.Recommendations = []string{}
	}
	if r.KeywordFeedback.FoundKeywords == nil {
		r.KeywordFeedback.FoundKeywords = []string{}
	}
	if r.KeywordFeedback.MissingKeywords == nil {
		r.KeywordFeedback.MissingKeywords = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []Recommendation{}
	}
}

// StoredAnalysis es el registro persistido de una solicitud y su resultado.
type StoredAnalysis struct {
	ID              int64            `json:"id"`
	ResumeText      string           `json:"resumeText"`
	JobRole         string           `json:"jobRole"`
	CustomJobRole   string           `json:"customJobRole,omitempty"`
	ExperienceLevel string           `json:"experienceLevel"`
	OverallScore    int              `json:"overallScore"`
	GrammarScore    int              `json:"grammarScore"`
	ATSScore        int              `json:"atsScore"`
	KeywordScore    int              `json:"keywordScore"`
	FormatScore     int              `json:"formatScore"`
	Level           string           `json:"level"`
	EarnedBadges    []Badge          `json:"earnedBadges"`
	GrammarFeedback GrammarFeedback  `json:"grammarFeedback"`
	ATSFeedback     ATSFeedback      `json:"atsFeedback"`
	KeywordFeedback KeywordFeedback  `json:"keywordFeedback"`
	Recommendations []Recommendation `json:"recommendations"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// NewStoredAnalysis combina solicitud y respuesta; ID y CreatedAt los asigna el repositorio.
func NewStoredAnalysis(req AnalysisRequest, resp AnalysisResponse) StoredAnalysis {
	return StoredAnalysis{
		ResumeText:      req.ResumeText,
		JobRole:         req.JobRole,
		CustomJobRole:   req.CustomJobRole,
		ExperienceLevel: req.ExperienceLevel,
		OverallScore:    resp.OverallScore,
		GrammarScore:    resp.GrammarScore,
		ATSScore:        resp.ATSScore,
		KeywordScore:    resp.KeywordScore,
		FormatScore:     resp.FormatScore,
		Level:           resp.Level,
		EarnedBadges:    resp.EarnedBadges,
		GrammarFeedback: resp.GrammarFeedback,
		ATSFeedback:     resp.ATSFeedback,
		KeywordFeedback: resp.KeywordFeedback,
		Recommendations: resp.Recommendations,
	}
}

// Response reconstruye la respuesta de análisis a partir del registro.
func (s StoredAnalysis) Response() AnalysisResponse {
	resp := AnalysisResponse{
		OverallScore:    s.OverallScore,
		GrammarScore:    s.GrammarScore,
		ATSScore:        s.ATSScore,
		KeywordScore:    s.KeywordScore,
		FormatScore:     s.FormatScore,
		Level:           s.Level,
		EarnedBadges:    s.EarnedBadges,
		GrammarFeedback: s.GrammarFeedback,
		ATSFeedback:     s.ATSFeedback,
		KeywordFeedback: s.KeywordFeedback,
		Recommendations: s.Recommendations,
		JobRole:         s.JobRole,
		CustomJobRole:   s.CustomJobRole,
		ExperienceLevel: s.ExperienceLevel,
	}
	resp.Normalize()
	return resp
}
