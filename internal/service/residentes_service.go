package service

import (
	"context"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"
	"github.com/grupocondor/condo-admin-bfa-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResidentesService serves the resident directory and the thin facial
// enrollment flow. The recognition service owns templates and thresholds;
// this layer only relays images and flags the resident on success.
type ResidentesService struct {
	store   port.ResidenteStore
	faces   port.FaceService
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewResidentesService creates the resident service.
func NewResidentesService(store port.ResidenteStore, faces port.FaceService, metrics *observability.Metrics, logger *zap.Logger) *ResidentesService {
	return &ResidentesService{
		store:   store,
		faces:   faces,
		metrics: metrics,
		logger:  logger,
	}
}

// ListResidentes returns the filtered resident list.
func (s *ResidentesService) ListResidentes(ctx context.Context, filter domain.ResidenteFilter) ([]domain.Residente, error) {
	ctx, span := tracer.Start(ctx, "ResidentesService.ListResidentes")
	defer span.End()

	return s.store.ListResidentes(ctx, filter)
}

// GetResidente returns one resident.
func (s *ResidentesService) GetResidente(ctx context.Context, id int64) (*domain.Residente, error) {
	ctx, span := tracer.Start(ctx, "ResidentesService.GetResidente")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", id))

	return s.store.GetResidente(ctx, id)
}

// CrearResidente registers a resident.
func (s *ResidentesService) CrearResidente(ctx context.Context, req *domain.CrearResidenteRequest) (*domain.Residente, error) {
	ctx, span := tracer.Start(ctx, "ResidentesService.CrearResidente")
	defer span.End()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	residente, err := s.store.CreateResidente(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("residente creado",
		zap.Int64("residente_id", residente.ID),
		zap.Int64("unidad_id", residente.UnidadID),
		zap.String("tipo", residente.Tipo),
	)
	return residente, nil
}

// ActualizarResidente patches a resident.
func (s *ResidentesService) ActualizarResidente(ctx context.Context, id int64, req *domain.ActualizarResidenteRequest) (*domain.Residente, error) {
	ctx, span := tracer.Start(ctx, "ResidentesService.ActualizarResidente")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", id))

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.store.UpdateResidente(ctx, id, req)
}

// EliminarResidente removes a resident.
func (s *ResidentesService) EliminarResidente(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "ResidentesService.EliminarResidente")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", id))

	return s.store.DeleteResidente(ctx, id)
}

// EnrolarRostro sends the image to the recognition service and, on success,
// marks the resident as enrolled in the core backend. The resident must
// exist first; a recognition failure leaves the flag untouched.
func (s *ResidentesService) EnrolarRostro(ctx context.Context, residenteID int64, req *domain.EnrolarRostroRequest) (*domain.FaceEnrollResult, error) {
	ctx, span := tracer.Start(ctx, "ResidentesService.EnrolarRostro")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", residenteID))

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetResidente(ctx, residenteID); err != nil {
		return nil, err
	}

	result, err := s.faces.Enroll(ctx, &domain.FaceEnrollRequest{
		ResidenteID:  residenteID,
		ImagenBase64: req.ImagenBase64,
	})
	if err != nil {
		s.metrics.IncrAIRequest("faces", "error")
		s.metrics.IncrExternalError("faces")
		return nil, err
	}
	s.metrics.IncrAIRequest("faces", "success")

	if err := s.store.MarkRostroEnrolado(ctx, residenteID); err != nil {
		// The template exists in the recognition service; the flag will be
		// fixed on a later retry of the enrollment.
		s.logger.Warn("rostro enrolado pero no se pudo marcar el residente",
			zap.Int64("residente_id", residenteID),
			zap.Error(err),
		)
	}

	s.logger.Info("rostro enrolado",
		zap.Int64("residente_id", residenteID),
		zap.Float64("calidad", result.Calidad),
	)
	return result, nil
}

// VerificarRostro relays a face image to the recognition service and
// returns its verdict untouched.
func (s *ResidentesService) VerificarRostro(ctx context.Context, req *domain.FaceVerifyRequest) (*domain.FaceVerifyResult, error) {
	ctx, span := tracer.Start(ctx, "ResidentesService.VerificarRostro")
	defer span.End()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	result, err := s.faces.Verify(ctx, req)
	if err != nil {
		s.metrics.IncrAIRequest("faces", "error")
		s.metrics.IncrExternalError("faces")
		return nil, err
	}
	s.metrics.IncrAIRequest("faces", "success")
	return result, nil
}
