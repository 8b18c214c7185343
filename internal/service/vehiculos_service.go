package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"
	"github.com/grupocondor/condo-admin-bfa-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// placaRe matches the Bolivian plate format: three or four digits followed
// by three letters.
var placaRe = regexp.MustCompile(`^[0-9]{3,4}[A-Z]{3}$`)

// VehiculosService serves the vehicle registry and the gate-camera plate
// check. OCR output is cross-checked against the registry; an unknown
// plate is a valid "not authorized" answer, not an error.
type VehiculosService struct {
	store   port.VehiculoStore
	plates  port.PlateService
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewVehiculosService creates the vehicle service.
func NewVehiculosService(store port.VehiculoStore, plates port.PlateService, metrics *observability.Metrics, logger *zap.Logger) *VehiculosService {
	return &VehiculosService{
		store:   store,
		plates:  plates,
		metrics: metrics,
		logger:  logger,
	}
}

// ListVehiculos returns the filtered vehicle list.
func (s *VehiculosService) ListVehiculos(ctx context.Context, filter domain.VehiculoFilter) ([]domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "VehiculosService.ListVehiculos")
	defer span.End()

	return s.store.ListVehiculos(ctx, filter)
}

// GetVehiculo returns one vehicle.
func (s *VehiculosService) GetVehiculo(ctx context.Context, id int64) (*domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "VehiculosService.GetVehiculo")
	defer span.End()
	span.SetAttributes(attribute.Int64("vehiculo.id", id))

	return s.store.GetVehiculo(ctx, id)
}

// CrearVehiculo registers a vehicle. The plate is normalized and checked
// against the national format before dispatch.
func (s *VehiculosService) CrearVehiculo(ctx context.Context, req *domain.CrearVehiculoRequest) (*domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "VehiculosService.CrearVehiculo")
	defer span.End()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	req.Placa = NormalizarPlaca(req.Placa)
	if !placaRe.MatchString(req.Placa) {
		return nil, &domain.ErrValidation{Field: "placa", Message: "placa invalida, use el formato 1234ABC"}
	}

	vehiculo, err := s.store.CreateVehiculo(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("vehiculo registrado",
		zap.Int64("vehiculo_id", vehiculo.ID),
		zap.String("placa", vehiculo.Placa),
	)
	return vehiculo, nil
}

// ActualizarVehiculo patches a vehicle. The plate is immutable.
func (s *VehiculosService) ActualizarVehiculo(ctx context.Context, id int64, req *domain.ActualizarVehiculoRequest) (*domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "VehiculosService.ActualizarVehiculo")
	defer span.End()
	span.SetAttributes(attribute.Int64("vehiculo.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.store.UpdateVehiculo(ctx, id, req)
}

// EliminarVehiculo removes a vehicle registration.
func (s *VehiculosService) EliminarVehiculo(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "VehiculosService.EliminarVehiculo")
	defer span.End()
	span.SetAttributes(attribute.Int64("vehiculo.id", id))

	return s.store.DeleteVehiculo(ctx, id)
}

// ReconocerPlaca runs OCR on a gate-camera frame and cross-checks the
// plate against the registry. A plate that is not registered, or whose
// vehicle is not active, comes back with Autorizado false.
func (s *VehiculosService) ReconocerPlaca(ctx context.Context, req *domain.PlateReadRequest) (*domain.PlacaVerificada, error) {
	ctx, span := tracer.Start(ctx, "VehiculosService.ReconocerPlaca")
	defer span.End()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	lectura, err := s.plates.Read(ctx, req)
	if err != nil {
		s.metrics.IncrAIRequest("plates", "error")
		s.metrics.IncrExternalError("plates")
		return nil, err
	}
	s.metrics.IncrAIRequest("plates", "success")

	verificada := &domain.PlacaVerificada{
		Placa:     lectura.Placa,
		Confianza: lectura.Confianza,
	}

	vehiculo, err := s.store.GetVehiculoByPlaca(ctx, lectura.Placa)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			s.logger.Info("placa no registrada", zap.String("placa", lectura.Placa))
			return verificada, nil
		}
		return nil, err
	}

	verificada.Vehiculo = vehiculo
	verificada.Autorizado = vehiculo.Estado == "activo"
	return verificada, nil
}

// NormalizarPlaca upper-cases a plate and strips spaces and dashes.
func NormalizarPlaca(placa string) string {
	placa = strings.ToUpper(strings.TrimSpace(placa))
	placa = strings.ReplaceAll(placa, " ", "")
	return strings.ReplaceAll(placa, "-", "")
}
