// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the concrete core-API and AI-service adapters.
package port

import (
	"context"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
)

// ExpensaStore covers every expensa operation the core backend exposes.
// Implemented by the condocore adapter.
type ExpensaStore interface {
	ListExpensas(ctx context.Context, filter domain.ExpensaFilter) ([]domain.Expensa, error)
	GetExpensa(ctx context.Context, id int64) (*domain.Expensa, error)
	CreateExpensa(ctx context.Context, req *domain.CrearExpensaRequest) (*domain.Expensa, error)
	UpdateExpensa(ctx context.Context, id int64, req *domain.ActualizarExpensaRequest) (*domain.Expensa, error)
	DeleteExpensa(ctx context.Context, id int64) error
	GenerarMasivo(ctx context.Context, req *domain.GenerarMasivoRequest) (*domain.GenerarMasivoResult, error)
	RegistrarPago(ctx context.Context, expensaID int64, req *domain.RegistrarPagoRequest) (*domain.Pago, error)
	GetEstadisticas(ctx context.Context, periodo string) (*domain.EstadisticasExpensas, error)
	GetMorosidad(ctx context.Context) ([]domain.MorosidadUnidad, error)
}

// UnidadStore covers housing-unit operations.
type UnidadStore interface {
	ListUnidades(ctx context.Context, filter domain.UnidadFilter) ([]domain.Unidad, error)
	GetUnidad(ctx context.Context, id int64) (*domain.Unidad, error)
	CreateUnidad(ctx context.Context, req *domain.CrearUnidadRequest) (*domain.Unidad, error)
	UpdateUnidad(ctx context.Context, id int64, req *domain.ActualizarUnidadRequest) (*domain.Unidad, error)
	DeleteUnidad(ctx context.Context, id int64) error
}

// ResidenteStore covers resident operations.
type ResidenteStore interface {
	ListResidentes(ctx context.Context, filter domain.ResidenteFilter) ([]domain.Residente, error)
	GetResidente(ctx context.Context, id int64) (*domain.Residente, error)
	CreateResidente(ctx context.Context, req *domain.CrearResidenteRequest) (*domain.Residente, error)
	UpdateResidente(ctx context.Context, id int64, req *domain.ActualizarResidenteRequest) (*domain.Residente, error)
	DeleteResidente(ctx context.Context, id int64) error
	MarkRostroEnrolado(ctx context.Context, id int64) error
}

// MultaStore covers fine operations.
type MultaStore interface {
	ListMultas(ctx context.Context, filter domain.MultaFilter) ([]domain.Multa, error)
	GetMulta(ctx context.Context, id int64) (*domain.Multa, error)
	CreateMulta(ctx context.Context, req *domain.CrearMultaRequest) (*domain.Multa, error)
	UpdateMulta(ctx context.Context, id int64, req *domain.ActualizarMultaRequest) (*domain.Multa, error)
	DeleteMulta(ctx context.Context, id int64) error
	PagarMulta(ctx context.Context, id int64, req *domain.PagarMultaRequest) (*domain.Multa, error)
}

// TareaStore covers maintenance task operations.
type TareaStore interface {
	ListTareas(ctx context.Context, filter domain.TareaFilter) ([]domain.TareaMantenimiento, error)
	GetTarea(ctx context.Context, id int64) (*domain.TareaMantenimiento, error)
	CreateTarea(ctx context.Context, req *domain.CrearTareaRequest) (*domain.TareaMantenimiento, error)
	UpdateTarea(ctx context.Context, id int64, req *domain.ActualizarTareaRequest) (*domain.TareaMantenimiento, error)
	DeleteTarea(ctx context.Context, id int64) error
	IniciarTarea(ctx context.Context, id int64) (*domain.TareaMantenimiento, error)
	CompletarTarea(ctx context.Context, id int64, req *domain.CompletarTareaRequest) (*domain.TareaMantenimiento, error)
	CancelarTarea(ctx context.Context, id int64, req *domain.CancelarTareaRequest) (*domain.TareaMantenimiento, error)
}

// VehiculoStore covers vehicle operations.
type VehiculoStore interface {
	ListVehiculos(ctx context.Context, filter domain.VehiculoFilter) ([]domain.Vehiculo, error)
	GetVehiculo(ctx context.Context, id int64) (*domain.Vehiculo, error)
	GetVehiculoByPlaca(ctx context.Context, placa string) (*domain.Vehiculo, error)
	CreateVehiculo(ctx context.Context, req *domain.CrearVehiculoRequest) (*domain.Vehiculo, error)
	UpdateVehiculo(ctx context.Context, id int64, req *domain.ActualizarVehiculoRequest) (*domain.Vehiculo, error)
	DeleteVehiculo(ctx context.Context, id int64) error
}

// FaceService is the external facial-recognition backend.
type FaceService interface {
	Enroll(ctx context.Context, req *domain.FaceEnrollRequest) (*domain.FaceEnrollResult, error)
	Verify(ctx context.Context, req *domain.FaceVerifyRequest) (*domain.FaceVerifyResult, error)
}

// PlateService is the external license-plate OCR backend.
type PlateService interface {
	Read(ctx context.Context, req *domain.PlateReadRequest) (*domain.PlateReadResult, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Flush()
}
