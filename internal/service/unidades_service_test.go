package service

import (
	"context"
	"testing"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/cache"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingUnidadStore struct {
	mockUnidadStore
	listCalls int
}

func (m *countingUnidadStore) ListUnidades(ctx context.Context, f domain.UnidadFilter) ([]domain.Unidad, error) {
	m.listCalls++
	return []domain.Unidad{{ID: 1, Codigo: "A-101", Estado: domain.UnidadOcupada}}, nil
}

func (m *countingUnidadStore) CreateUnidad(ctx context.Context, req *domain.CrearUnidadRequest) (*domain.Unidad, error) {
	return &domain.Unidad{ID: 2, Codigo: req.Codigo}, nil
}

func TestListUnidades_SirveDesdeCache(t *testing.T) {
	store := &countingUnidadStore{}
	svc := NewUnidadesService(store, cache.New[[]domain.Unidad](time.Minute), observability.NewMetrics(), zap.NewNop())
	filter := domain.UnidadFilter{Page: 1, PageSize: 20}

	_, err := svc.ListUnidades(context.Background(), filter)
	require.NoError(t, err)
	_, err = svc.ListUnidades(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, 1, store.listCalls, "la segunda lectura debe salir del cache")
}

func TestListUnidades_FiltroDistintoNoComparteCache(t *testing.T) {
	store := &countingUnidadStore{}
	svc := NewUnidadesService(store, cache.New[[]domain.Unidad](time.Minute), observability.NewMetrics(), zap.NewNop())

	_, _ = svc.ListUnidades(context.Background(), domain.UnidadFilter{Page: 1, PageSize: 20})
	_, _ = svc.ListUnidades(context.Background(), domain.UnidadFilter{Page: 2, PageSize: 20})

	assert.Equal(t, 2, store.listCalls)
}

func TestCrearUnidad_InvalidaCache(t *testing.T) {
	store := &countingUnidadStore{}
	svc := NewUnidadesService(store, cache.New[[]domain.Unidad](time.Minute), observability.NewMetrics(), zap.NewNop())
	filter := domain.UnidadFilter{Page: 1, PageSize: 20}

	_, _ = svc.ListUnidades(context.Background(), filter)

	_, err := svc.CrearUnidad(context.Background(), &domain.CrearUnidadRequest{
		Codigo:    "B-202",
		Direccion: "Torre B, Piso 2",
	})
	require.NoError(t, err)

	_, _ = svc.ListUnidades(context.Background(), filter)
	assert.Equal(t, 2, store.listCalls, "la mutacion debe invalidar el cache")
}
