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

// MultasService serves fines. The recargo por mora is computed by the
// backend at payment time; this layer never estimates it.
type MultasService struct {
	store   port.MultaStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewMultasService creates the fines service.
func NewMultasService(store port.MultaStore, metrics *observability.Metrics, logger *zap.Logger) *MultasService {
	return &MultasService{store: store, metrics: metrics, logger: logger}
}

// ListMultas returns the filtered fine list.
func (s *MultasService) ListMultas(ctx context.Context, filter domain.MultaFilter) ([]domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "MultasService.ListMultas")
	defer span.End()

	multas, err := s.store.ListMultas(ctx, filter)
	if err != nil {
		s.metrics.IncrExternalError("multas")
		return nil, err
	}
	return multas, nil
}

// GetMulta returns one fine.
func (s *MultasService) GetMulta(ctx context.Context, id int64) (*domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "MultasService.GetMulta")
	defer span.End()
	span.SetAttributes(attribute.Int64("multa.id", id))

	return s.store.GetMulta(ctx, id)
}

// CrearMulta issues a fine.
func (s *MultasService) CrearMulta(ctx context.Context, req *domain.CrearMultaRequest) (*domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "MultasService.CrearMulta")
	defer span.End()

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "monto", Message: "el monto debe ser mayor a cero"}
	}

	multa, err := s.store.CreateMulta(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("multa emitida",
		zap.Int64("multa_id", multa.ID),
		zap.Int64("residente_id", multa.ResidenteID),
		zap.String("tipo", multa.Tipo),
	)
	return multa, nil
}

// ActualizarMulta patches a fine. Edits on settled fines are the backend's
// rejection to make.
func (s *MultasService) ActualizarMulta(ctx context.Context, id int64, req *domain.ActualizarMultaRequest) (*domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "MultasService.ActualizarMulta")
	defer span.End()
	span.SetAttributes(attribute.Int64("multa.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Monto != nil && req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "monto", Message: "el monto debe ser mayor a cero"}
	}
	return s.store.UpdateMulta(ctx, id, req)
}

// EliminarMulta cancels a fine.
func (s *MultasService) EliminarMulta(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "MultasService.EliminarMulta")
	defer span.End()
	span.SetAttributes(attribute.Int64("multa.id", id))

	return s.store.DeleteMulta(ctx, id)
}

// PagarMulta settles a fine in full. The fine is checked first so paying a
// settled or cancelled fine fails without hitting the payment endpoint.
func (s *MultasService) PagarMulta(ctx context.Context, id int64, req *domain.PagarMultaRequest) (*domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "MultasService.PagarMulta")
	defer span.End()
	span.SetAttributes(attribute.Int64("multa.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	multa, err := s.store.GetMulta(ctx, id)
	if err != nil {
		return nil, err
	}
	if multa.Estado != domain.MultaPendiente {
		return nil, &domain.ErrValidation{Field: "estado", Message: "solo se pueden pagar multas pendientes"}
	}

	pagada, err := s.store.PagarMulta(ctx, id, req)
	if err != nil {
		s.metrics.IncrExternalError("multas")
		return nil, err
	}
	s.metrics.IncrPagoRegistrado()

	s.logger.Info("multa pagada",
		zap.Int64("multa_id", id),
		zap.String("monto_total", pagada.MontoTotal.StringFixed(2)),
		zap.String("metodo", req.MetodoPago),
	)
	return pagada, nil
}
