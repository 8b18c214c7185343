package service

import (
	"context"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"
	"github.com/grupocondor/condo-admin-bfa-go/internal/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExpensasService orchestrates the billing flows. The core API owns every
// monetary computation; this layer only validates requests before dispatch
// and refetches server state after mutations.
type ExpensasService struct {
	store    port.ExpensaStore
	unidades port.UnidadStore
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewExpensasService creates the billing service with its dependencies injected.
func NewExpensasService(store port.ExpensaStore, unidades port.UnidadStore, metrics *observability.Metrics, logger *zap.Logger) *ExpensasService {
	return &ExpensasService{
		store:    store,
		unidades: unidades,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListExpensas returns the filtered, paginated expensa list.
func (s *ExpensasService) ListExpensas(ctx context.Context, filter domain.ExpensaFilter) ([]domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.ListExpensas")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordBackendDuration("expensas.list", time.Since(start)) }()

	expensas, err := s.store.ListExpensas(ctx, filter)
	if err != nil {
		s.metrics.IncrExternalError("expensas")
		return nil, err
	}
	return expensas, nil
}

// GetExpensa returns one expensa with concepts and payment history.
func (s *ExpensasService) GetExpensa(ctx context.Context, id int64) (*domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.GetExpensa")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", id))

	return s.store.GetExpensa(ctx, id)
}

// CrearExpensa validates and creates a single expensa.
func (s *ExpensasService) CrearExpensa(ctx context.Context, req *domain.CrearExpensaRequest) (*domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.CrearExpensa")
	defer span.End()

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.MontoBase.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "monto_base", Message: "el monto base debe ser mayor a cero"}
	}
	if err := validateConceptos(req.Conceptos); err != nil {
		return nil, err
	}

	expensa, err := s.store.CreateExpensa(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("expensa creada",
		zap.Int64("expensa_id", expensa.ID),
		zap.Int64("unidad_id", expensa.UnidadID),
		zap.String("periodo", expensa.Periodo),
	)
	return expensa, nil
}

// ActualizarExpensa patches an expensa. Whether the edit is still allowed
// (no payments yet) is the backend's call; its rejection passes through.
func (s *ExpensasService) ActualizarExpensa(ctx context.Context, id int64, req *domain.ActualizarExpensaRequest) (*domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.ActualizarExpensa")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.MontoBase != nil && req.MontoBase.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "monto_base", Message: "el monto base debe ser mayor a cero"}
	}
	if err := validateConceptos(req.Conceptos); err != nil {
		return nil, err
	}

	return s.store.UpdateExpensa(ctx, id, req)
}

// EliminarExpensa removes an expensa.
func (s *ExpensasService) EliminarExpensa(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "ExpensasService.EliminarExpensa")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", id))

	return s.store.DeleteExpensa(ctx, id)
}

// GenerarMasivo emits one expensa per target unit for a period. An explicit
// selection with zero units is rejected here, before any request goes out.
func (s *ExpensasService) GenerarMasivo(ctx context.Context, req *domain.GenerarMasivoRequest) (*domain.GenerarMasivoResult, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.GenerarMasivo")
	defer span.End()
	span.SetAttributes(attribute.String("periodo", req.Periodo))

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.MontoBase.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ErrValidation{Field: "monto_base", Message: "el monto base debe ser mayor a cero"}
	}
	if !req.TodasLasUnidades && len(req.Unidades) == 0 {
		return nil, &domain.ErrValidation{Field: "unidades", Message: "seleccione al menos una unidad o marque todas las unidades"}
	}
	if err := validateConceptos(req.Conceptos); err != nil {
		return nil, err
	}

	result, err := s.store.GenerarMasivo(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generacion masiva completada",
		zap.String("periodo", result.Periodo),
		zap.Int("cantidad", result.Cantidad),
	)
	return result, nil
}

// RegistrarPago records a payment. The expensa is fetched first so an
// amount of zero, a negative amount, or one exceeding the outstanding
// balance is rejected without hitting the payment endpoint; after the
// payment lands the expensa is refetched and the server's numbers are
// returned untouched.
func (s *ExpensasService) RegistrarPago(ctx context.Context, expensaID int64, req *domain.RegistrarPagoRequest) (*domain.Pago, *domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.RegistrarPago")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", expensaID))

	if err := validateStruct(req); err != nil {
		return nil, nil, err
	}
	if req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, nil, &domain.ErrValidation{Field: "monto", Message: "el monto debe ser mayor a cero"}
	}

	expensa, err := s.store.GetExpensa(ctx, expensaID)
	if err != nil {
		return nil, nil, err
	}
	if expensa.Estado == domain.EstadoPagado {
		return nil, nil, &domain.ErrValidation{Field: "monto", Message: "la expensa ya esta pagada"}
	}
	if req.Monto.GreaterThan(expensa.SaldoPendiente) {
		return nil, nil, &domain.ErrValidation{
			Field:   "monto",
			Message: "el monto excede el saldo pendiente de " + expensa.SaldoPendiente.StringFixed(2),
		}
	}

	pago, err := s.store.RegistrarPago(ctx, expensaID, req)
	if err != nil {
		s.metrics.IncrExternalError("pagos")
		return nil, nil, err
	}
	s.metrics.IncrPagoRegistrado()

	actualizada, err := s.store.GetExpensa(ctx, expensaID)
	if err != nil {
		// The payment is committed; surface it even if the refresh failed.
		s.logger.Warn("pago registrado pero fallo el refetch de la expensa",
			zap.Int64("expensa_id", expensaID),
			zap.Error(err),
		)
		return pago, nil, nil
	}

	s.logger.Info("pago registrado",
		zap.Int64("expensa_id", expensaID),
		zap.String("monto", req.Monto.StringFixed(2)),
		zap.String("metodo", req.MetodoPago),
		zap.String("nuevo_estado", string(actualizada.Estado)),
	)
	return pago, actualizada, nil
}

// GetComprobante assembles the receipt payload, fetching the expensa and
// then its unit. The folio is minted per generation; receipts are not
// stored server-side.
func (s *ExpensasService) GetComprobante(ctx context.Context, expensaID int64) (*domain.ComprobanteExpensa, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.GetComprobante")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", expensaID))

	expensa, err := s.store.GetExpensa(ctx, expensaID)
	if err != nil {
		return nil, err
	}
	unidad, err := s.unidades.GetUnidad(ctx, expensa.UnidadID)
	if err != nil {
		return nil, err
	}

	return &domain.ComprobanteExpensa{
		Folio:           uuid.NewString(),
		Expensa:         expensa,
		Unidad:          unidad,
		FechaGeneracion: time.Now(),
	}, nil
}

// GetDashboard fetches the period stats and the delinquency report
// concurrently for the admin landing screen.
func (s *ExpensasService) GetDashboard(ctx context.Context, periodo string) (*domain.DashboardExpensas, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.GetDashboard")
	defer span.End()

	if periodo != "" {
		if _, err := time.Parse("2006-01", periodo); err != nil {
			return nil, &domain.ErrValidation{Field: "periodo", Message: "periodo invalido, use YYYY-MM"}
		}
	}

	var (
		stats     *domain.EstadisticasExpensas
		morosidad []domain.MorosidadUnidad
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.store.GetEstadisticas(gCtx, periodo)
		return err
	})
	g.Go(func() error {
		var err error
		morosidad, err = s.store.GetMorosidad(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.DashboardExpensas{
		Periodo:         periodo,
		Estadisticas:    stats,
		Morosidad:       morosidad,
		UnidadesMorosas: len(morosidad),
	}, nil
}

// GetEstadisticas returns the aggregate billing stats, optionally scoped
// to a period. Rates come from the backend as-is.
func (s *ExpensasService) GetEstadisticas(ctx context.Context, periodo string) (*domain.EstadisticasExpensas, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.GetEstadisticas")
	defer span.End()

	if periodo != "" {
		if _, err := time.Parse("2006-01", periodo); err != nil {
			return nil, &domain.ErrValidation{Field: "periodo", Message: "periodo invalido, use YYYY-MM"}
		}
	}
	return s.store.GetEstadisticas(ctx, periodo)
}

// GetMorosidad returns the delinquency report. Always a fresh read so the
// admin never acts on stale debt.
func (s *ExpensasService) GetMorosidad(ctx context.Context) ([]domain.MorosidadUnidad, error) {
	ctx, span := tracer.Start(ctx, "ExpensasService.GetMorosidad")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordBackendDuration("expensas.morosidad", time.Since(start)) }()

	return s.store.GetMorosidad(ctx)
}

func validateConceptos(conceptos []domain.ConceptoInput) error {
	for _, c := range conceptos {
		if c.Monto.LessThanOrEqual(decimal.Zero) {
			return &domain.ErrValidation{Field: "conceptos", Message: "cada concepto debe tener un monto mayor a cero"}
		}
	}
	return nil
}
