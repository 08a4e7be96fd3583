package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"resume-analyzer/internal/domain"
)

type PgAnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewPgAnalysisRepository(pool *pgxpool.Pool) *PgAnalysisRepository {
	return &PgAnalysisRepository{pool: pool}
}

const analysisColumns = `
	id, resume_text, job_role, custom_job_role, experience_level,
	overall_score, grammar_score, ats_score, keyword_score, format_score, level,
	earned_badges, grammar_feedback, ats_feedback, keyword_feedback, recommendations,
	created_at`

func (r *PgAnalysisRepository) Create(ctx context.Context, analysis domain.StoredAnalysis) (domain.StoredAnalysis, error) {
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}
	const query = `
		INSERT INTO resume_analyses (
			resume_text, job_role, custom_job_role, experience_level,
			overall_score, grammar_score, ats_score, keyword_score, format_score, level,
			earned_badges, grammar_feedback, ats_feedback, keyword_feedback, recommendations,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		analysis.ResumeText,
		analysis.JobRole,
		analysis.CustomJobRole,
		analysis.ExperienceLevel,
		analysis.OverallScore,
		analysis.GrammarScore,
		analysis.ATSScore,
		analysis.KeywordScore,
		analysis.FormatScore,
		analysis.Level,
		analysis.EarnedBadges,
		analysis.GrammarFeedback,
		analysis.ATSFeedback,
		analysis.KeywordFeedback,
		analysis.Recommendations,
		analysis.CreatedAt,
	).Scan(&analysis.ID)
	if err != nil {
		return domain.StoredAnalysis{}, err
	}
	return analysis, nil
}

func (r *PgAnalysisRepository) GetByID(ctx context.Context, id int64) (domain.StoredAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM resume_analyses WHERE id = $1`
	analysis, err := scanAnalysis(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StoredAnalysis{}, ErrAnalysisNotFound
	}
	return analysis, err
}

func (r *PgAnalysisRepository) List(ctx context.Context) ([]domain.StoredAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM resume_analyses ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.StoredAnalysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

func scanAnalysis(row pgx.Row) (domain.StoredAnalysis, error) {
	var a domain.StoredAnalysis
	err := row.Scan(
		&a.ID,
		&a.ResumeText,
		&a.JobRole,
		&a.CustomJobRole,
		&a.ExperienceLevel,
		&a.OverallScore,
		&a.GrammarScore,
		&a.ATSScore,
		&a.KeywordScore,
		&a.FormatScore,
		&a.Level,
		&a.EarnedBadges,
		&a.GrammarFeedback,
		&a.ATSFeedback,
		&a.KeywordFeedback,
		&a.Recommendations,
		&a.CreatedAt,
	)
	return a, err
}
