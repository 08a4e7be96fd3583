package service

import (
	"encoding/json"
	"fmt"
	"math"

	"resume-analyzer/internal/domain"
)

// AnalysisResponseParser convierte la salida cruda del modelo en un AnalysisResponse validado.
type AnalysisResponseParser struct{}

// rawAnalysis refleja la salida del modelo con puntajes numéricos libres.
type rawAnalysis struct {
	OverallScore    float64                 `json:"overallScore"`
	GrammarScore    float64                 `json:"grammarScore"`
	ATSScore        float64                 `json:"atsScore"`
	KeywordScore    float64                 `json:"keywordScore"`
	FormatScore     float64                 `json:"formatScore"`
	Level           string                  `json:"level"`
	EarnedBadges    []rawBadge              `json:"earnedBadges"`
	GrammarFeedback domain.GrammarFeedback  `json:"grammarFeedback"`
	ATSFeedback     domain.ATSFeedback      `json:"atsFeedback"`
	KeywordFeedback domain.KeywordFeedback  `json:"keywordFeedback"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// Parse extrae, valida y enriquece la respuesta. Los campos de eco de la solicitud
// siempre pisan lo que el modelo haya devuelto con el mismo nombre.
func (AnalysisResponseParser) Parse(raw string, req domain.AnalysisRequest) (domain.AnalysisResponse, error) {
	cleaned := cleanModelOutput(raw)

	obj, ok := extractJSONObject(cleaned)
	if !ok {
		if obj, ok = extractJSONObject(raw); !ok {
			return domain.AnalysisResponse{}, ErrNoJSONFound
		}
	}

	if !json.Valid([]byte(obj)) {
		return domain.AnalysisResponse{}, ErrInvalidJSON
	}
	if err := validateAnalysisJSON(obj); err != nil {
		return domain.AnalysisResponse{}, err
	}

	var parsed rawAnalysis
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return domain.AnalysisResponse{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	resp := domain.AnalysisResponse{
		OverallScore:    normalizeScore(parsed.OverallScore),
		GrammarScore:    normalizeScore(parsed.GrammarScore),
		ATSScore:        normalizeScore(parsed.ATSScore),
		KeywordScore:    normalizeScore(parsed.KeywordScore),
		FormatScore:     normalizeScore(parsed.FormatScore),
		Level:           parsed.Level,
		EarnedBadges:    toBadges(parsed.EarnedBadges),
		GrammarFeedback: parsed.GrammarFeedback,
		ATSFeedback:     parsed.ATSFeedback,
		KeywordFeedback: parsed.KeywordFeedback,
		Recommendations: parsed.Recommendations,
		JobRole:         req.JobRole,
		CustomJobRole:   req.CustomJobRole,
		ExperienceLevel: req.ExperienceLevel,
	}
	if resp.Level == "" {
		resp.Level = domain.LevelForScore(resp.OverallScore)
	}
	resp.Normalize()
	return resp, nil
}

// normalizeScore limita a [0,100] en float64 antes de redondear, así valores enormes no desbordan int.
func normalizeScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(0, math.Min(100, v))
	return int(math.Round(v))
}

// rawBadge acepta ids como 1.0: el esquema los da por enteros y json no los decodifica en int.
type rawBadge struct {
	ID   float64 `json:"id"`
	Name string  `json:"name"`
	Icon string  `json:"icon"`
}

func toBadges(raw []rawBadge) []domain.Badge {
	if raw == nil {
		return nil
	}
	out := make([]domain.Badge, 0, len(raw))
	for _, b := range raw {
		out = append(out, domain.Badge{ID: int(math.Round(b.ID)), Name: b.Name, Icon: b.Icon})
	}
	return out
}
