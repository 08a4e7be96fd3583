package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"resume-analyzer/internal/domain"
	"resume-analyzer/internal/events"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/repository"
)

// AnalysisService orquesta prompt, modelo, parser, persistencia y eventos para un currículum.
type AnalysisService struct {
	llmClient llm.LLMClient
	repo      repository.AnalysisRepository
	publisher events.Publisher
	limiter   AnalysisRateLimiter
	prompts   ResumePromptBuilder
	parser    AnalysisResponseParser
	logger    *zap.Logger
}

// AnalysisResult acompaña la respuesta con el ID almacenado (0 si el guardado falló).
type AnalysisResult struct {
	Response   domain.AnalysisResponse
	AnalysisID int64
}

func NewAnalysisService(
	llmClient llm.LLMClient,
	repo repository.AnalysisRepository,
	publisher events.Publisher,
	limiter AnalysisRateLimiter,
	logger *zap.Logger,
) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &AnalysisService{
		llmClient: llmClient,
		repo:      repo,
		publisher: publisher,
		limiter:   limiter,
		logger:    logger,
	}
}

// Analyze ejecuta la cadena completa en un único intento. clientKey identifica al
// cliente para el rate limit; vacío significa sin límite.
func (s *AnalysisService) Analyze(ctx context.Context, clientKey string, req domain.AnalysisRequest) (AnalysisResult, error) {
	if s.limiter != nil && clientKey != "" {
		if d := s.limiter.Allow(ctx, clientKey); !d.Allowed {
			s.logger.Info("analysis rate limited", zap.String("client", clientKey), zap.Int("count", d.Count))
			return AnalysisResult{}, &RateLimitError{RetryAfter: d.RetryAfter}
		}
	}

	prompt := s.prompts.BuildForRequest(req)
	s.logger.Debug("analysis prompt built",
		zap.String("job_role", req.JobRole),
		zap.String("experience_level", req.ExperienceLevel),
		zap.Int("prompt_len", len(prompt)),
	)

	raw, err := s.llmClient.Generate(ctx, SystemInstruction, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrUnauthorized) {
			s.logger.Warn("llm credential rejected", zap.Error(err))
			return AnalysisResult{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
		}
		s.logger.Warn("llm generate failed", zap.Error(err))
		return AnalysisResult{}, fmt.Errorf("llm generate: %w", err)
	}

	resp, err := s.parser.Parse(raw, req)
	if err != nil {
		s.logger.Warn("analysis parse failed", zap.Error(err), zap.Int("raw_len", len(raw)))
		return AnalysisResult{}, err
	}

	result := AnalysisResult{Response: resp}
	if s.repo != nil {
		stored, err := s.repo.Create(ctx, domain.NewStoredAnalysis(req, resp))
		if err != nil {
			s.logger.Error("store analysis failed", zap.Error(err))
		} else {
			result.AnalysisID = stored.ID
		}
	}

	event := events.NewAnalysisCompleted(result.AnalysisID, resp.JobRole, resp.CustomJobRole, resp.ExperienceLevel, resp.OverallScore, resp.Level)
	if err := s.publisher.PublishAnalysisCompleted(ctx, event); err != nil {
		s.logger.Warn("publish analysis event failed", zap.Error(err), zap.String("event_id", event.EventID))
	}

	s.logger.Info("analysis completed",
		zap.Int64("analysis_id", result.AnalysisID),
		zap.Int("overall_score", resp.OverallScore),
		zap.String("level", resp.Level),
	)
	return result, nil
}

// Get devuelve un análisis almacenado.
func (s *AnalysisService) Get(ctx context.Context, id int64) (domain.StoredAnalysis, error) {
	if s.repo == nil {
		return domain.StoredAnalysis{}, repository.ErrAnalysisNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve todos los análisis almacenados en orden de creación.
func (s *AnalysisService) List(ctx context.Context) ([]domain.StoredAnalysis, error) {
	if s.repo == nil {
		return []domain.StoredAnalysis{}, nil
	}
	return s.repo.List(ctx)
}
