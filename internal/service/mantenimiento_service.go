package service

import (
	"context"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"
	"github.com/grupocondor/condo-admin-bfa-go/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MantenimientoService serves maintenance tasks. State transitions
// (iniciar, completar, cancelar) are enforced by the backend; this layer
// pre-checks only what it can see, so an obviously invalid transition fails
// without a network call.
type MantenimientoService struct {
	store   port.TareaStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewMantenimientoService creates the maintenance service.
func NewMantenimientoService(store port.TareaStore, metrics *observability.Metrics, logger *zap.Logger) *MantenimientoService {
	return &MantenimientoService{store: store, metrics: metrics, logger: logger}
}

// ListTareas returns the filtered task list.
func (s *MantenimientoService) ListTareas(ctx context.Context, filter domain.TareaFilter) ([]domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "MantenimientoService.ListTareas")
	defer span.End()

	tareas, err := s.store.ListTareas(ctx, filter)
	if err != nil {
		s.metrics.IncrExternalError("mantenimiento")
		return nil, err
	}
	return tareas, nil
}

// GetTarea returns one task.
func (s *MantenimientoService) GetTarea(ctx context.Context, id int64) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "MantenimientoService.GetTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	return s.store.GetTarea(ctx, id)
}

// CrearTarea opens a maintenance task.
func (s *MantenimientoService) CrearTarea(ctx context.Context, req *domain.CrearTareaRequest) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "MantenimientoService.CrearTarea")
	defer span.End()

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.PresupuestoEstimado.LessThan(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "presupuesto_estimado", Message: "el presupuesto no puede ser negativo"}
	}

	tarea, err := s.store.CreateTarea(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tarea de mantenimiento creada",
		zap.Int64("tarea_id", tarea.ID),
		zap.String("tipo", tarea.Tipo),
		zap.String("prioridad", tarea.Prioridad),
	)
	return tarea, nil
}

// ActualizarTarea patches a task. Edits on closed tasks are the backend's
// rejection to make.
func (s *MantenimientoService) ActualizarTarea(ctx context.Context, id int64, req *domain.ActualizarTareaRequest) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "MantenimientoService.ActualizarTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.PresupuestoEstimado != nil && req.PresupuestoEstimado.LessThan(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "presupuesto_estimado", Message: "el presupuesto no puede ser negativo"}
	}
	return s.store.UpdateTarea(ctx, id, req)
}

// EliminarTarea removes a task.
func (s *MantenimientoService) EliminarTarea(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "MantenimientoService.EliminarTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	return s.store.DeleteTarea(ctx, id)
}

// IniciarTarea moves a task into en_progreso. Only pending or assigned
// tasks can start; the check runs before the transition endpoint is called.
func (s *MantenimientoService) IniciarTarea(ctx context.Context, id int64) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "MantenimientoService.IniciarTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	tarea, err := s.store.GetTarea(ctx, id)
	if err != nil {
		return nil, err
	}
	if tarea.Estado != domain.TareaPendiente && tarea.Estado != domain.TareaAsignada {
		return nil, &domain.ErrValidation{Field: "estado", Message: "solo se pueden iniciar tareas pendientes o asignadas"}
	}

	iniciada, err := s.store.IniciarTarea(ctx, id)
	if err != nil {
		s.metrics.IncrExternalError("mantenimiento")
		return nil, err
	}
	s.logger.Info("tarea iniciada", zap.Int64("tarea_id", id))
	return iniciada, nil
}

// CompletarTarea closes a task, recording the executed cost when provided.
func (s *MantenimientoService) CompletarTarea(ctx context.Context, id int64, req *domain.CompletarTareaRequest) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "MantenimientoService.CompletarTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.CostoReal != nil && req.CostoReal.LessThan(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "costo_real", Message: "el costo no puede ser negativo"}
	}

	tarea, err := s.store.GetTarea(ctx, id)
	if err != nil {
		return nil, err
	}
	if tarea.Estado == domain.TareaCompletada || tarea.Estado == domain.TareaCancelada {
		return nil, &domain.ErrValidation{Field: "estado", Message: "la tarea ya esta cerrada"}
	}

	completada, err := s.store.CompletarTarea(ctx, id, req)
	if err != nil {
		s.metrics.IncrExternalError("mantenimiento")
		return nil, err
	}

	s.logger.Info("tarea completada",
		zap.Int64("tarea_id", id),
		zap.String("costo_real", completada.CostoReal.StringFixed(2)),
	)
	return completada, nil
}

// CancelarTarea cancels a task with a reason.
func (s *MantenimientoService) CancelarTarea(ctx context.Context, id int64, req *domain.CancelarTareaRequest) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "MantenimientoService.CancelarTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	tarea, err := s.store.GetTarea(ctx, id)
	if err != nil {
		return nil, err
	}
	if tarea.Estado == domain.TareaCompletada || tarea.Estado == domain.TareaCancelada {
		return nil, &domain.ErrValidation{Field: "estado", Message: "la tarea ya esta cerrada"}
	}

	cancelada, err := s.store.CancelarTarea(ctx, id, req)
	if err != nil {
		s.metrics.IncrExternalError("mantenimiento")
		return nil, err
	}
	s.logger.Info("tarea cancelada", zap.Int64("tarea_id", id), zap.String("motivo", req.Motivo))
	return cancelada, nil
}
