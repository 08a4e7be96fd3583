package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"resume-analyzer/internal/domain"
)

// ErrAnalysisNotFound se devuelve cuando no existe un análisis con el ID pedido.
var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisRepository persiste pares solicitud/respuesta. Los registros nunca se actualizan ni borran.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis domain.StoredAnalysis) (domain.StoredAnalysis, error)
	GetByID(ctx context.Context, id int64) (domain.StoredAnalysis, error)
	List(ctx context.Context) ([]domain.StoredAnalysis, error)
}

// MemoryAnalysisRepository guarda los análisis en un mapa de proceso, sin límite ni durabilidad.
type MemoryAnalysisRepository struct {
	mu     sync.RWMutex
	items  map[int64]domain.StoredAnalysis
	nextID int64
	now    func() time.Time
}

func NewMemoryAnalysisRepository() *MemoryAnalysisRepository {
	return &MemoryAnalysisRepository{
		items:  make(map[int64]domain.StoredAnalysis),
		nextID: 1,
		now:    time.Now,
	}
}

// Create asigna el siguiente ID secuencial (desde 1, nunca reutilizado) y la marca de tiempo.
func (r *MemoryAnalysisRepository) Create(_ context.Context, analysis domain.StoredAnalysis) (domain.StoredAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	analysis.ID = r.nextID
	r.nextID++
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = r.now().UTC()
	}
	r.items[analysis.ID] = analysis
	return analysis, nil
}

func (r *MemoryAnalysisRepository) GetByID(_ context.Context, id int64) (domain.StoredAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analysis, ok := r.items[id]
	if !ok {
		return domain.StoredAnalysis{}, ErrAnalysisNotFound
	}
	return analysis, nil
}

// List devuelve los análisis ordenados por ID.
func (r *MemoryAnalysisRepository) List(_ context.Context) ([]domain.StoredAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.StoredAnalysis, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
