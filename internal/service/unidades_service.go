package service

import (
	"context"
	"fmt"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"
	"github.com/grupocondor/condo-admin-bfa-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// UnidadesService serves the unit catalog. Lists are cached with a short
// TTL since units change rarely; every mutation flushes the cache so the
// next read is fresh.
type UnidadesService struct {
	store   port.UnidadStore
	cache   port.Cache[[]domain.Unidad]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewUnidadesService creates the unit service.
func NewUnidadesService(store port.UnidadStore, cache port.Cache[[]domain.Unidad], metrics *observability.Metrics, logger *zap.Logger) *UnidadesService {
	return &UnidadesService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// ListUnidades returns the filtered unit list, served from cache when the
// same filter was fetched within the TTL.
func (s *UnidadesService) ListUnidades(ctx context.Context, filter domain.UnidadFilter) ([]domain.Unidad, error) {
	ctx, span := tracer.Start(ctx, "UnidadesService.ListUnidades")
	defer span.End()

	cacheKey := fmt.Sprintf("unidades:%s:%s:%d:%d", filter.Search, filter.Estado, filter.Page, filter.PageSize)
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("unidades")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("unidades")

	unidades, err := s.store.ListUnidades(ctx, filter)
	if err != nil {
		s.metrics.IncrExternalError("unidades")
		return nil, err
	}
	s.cache.Set(cacheKey, unidades)
	return unidades, nil
}

// GetUnidad returns one unit, always fresh.
func (s *UnidadesService) GetUnidad(ctx context.Context, id int64) (*domain.Unidad, error) {
	ctx, span := tracer.Start(ctx, "UnidadesService.GetUnidad")
	defer span.End()
	span.SetAttributes(attribute.Int64("unidad.id", id))

	return s.store.GetUnidad(ctx, id)
}

// CrearUnidad registers a unit and invalidates the cached lists.
func (s *UnidadesService) CrearUnidad(ctx context.Context, req *domain.CrearUnidadRequest) (*domain.Unidad, error) {
	ctx, span := tracer.Start(ctx, "UnidadesService.CrearUnidad")
	defer span.End()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	unidad, err := s.store.CreateUnidad(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.Flush()

	s.logger.Info("unidad creada", zap.Int64("unidad_id", unidad.ID), zap.String("codigo", unidad.Codigo))
	return unidad, nil
}

// ActualizarUnidad patches a unit and invalidates the cached lists.
func (s *UnidadesService) ActualizarUnidad(ctx context.Context, id int64, req *domain.ActualizarUnidadRequest) (*domain.Unidad, error) {
	ctx, span := tracer.Start(ctx, "UnidadesService.ActualizarUnidad")
	defer span.End()
	span.SetAttributes(attribute.Int64("unidad.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	unidad, err := s.store.UpdateUnidad(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.cache.Flush()
	return unidad, nil
}

// EliminarUnidad removes a unit and invalidates the cached lists.
func (s *UnidadesService) EliminarUnidad(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "UnidadesService.EliminarUnidad")
	defer span.End()
	span.SetAttributes(attribute.Int64("unidad.id", id))

	if err := s.store.DeleteUnidad(ctx, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}
