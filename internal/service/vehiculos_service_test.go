package service

import (
	"context"
	"testing"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockVehiculoStore struct {
	porPlaca map[string]*domain.Vehiculo
	created  *domain.CrearVehiculoRequest
}

func (m *mockVehiculoStore) ListVehiculos(ctx context.Context, f domain.VehiculoFilter) ([]domain.Vehiculo, error) {
	return nil, nil
}
func (m *mockVehiculoStore) GetVehiculo(ctx context.Context, id int64) (*domain.Vehiculo, error) {
	return nil, &domain.ErrNotFound{Resource: "vehiculo", ID: "0"}
}
func (m *mockVehiculoStore) GetVehiculoByPlaca(ctx context.Context, placa string) (*domain.Vehiculo, error) {
	v, ok := m.porPlaca[placa]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "vehiculo", ID: placa}
	}
	return v, nil
}
func (m *mockVehiculoStore) CreateVehiculo(ctx context.Context, req *domain.CrearVehiculoRequest) (*domain.Vehiculo, error) {
	m.created = req
	return &domain.Vehiculo{ID: 1, Placa: req.Placa, Tipo: req.Tipo, Estado: "activo"}, nil
}
func (m *mockVehiculoStore) UpdateVehiculo(ctx context.Context, id int64, req *domain.ActualizarVehiculoRequest) (*domain.Vehiculo, error) {
	return nil, nil
}
func (m *mockVehiculoStore) DeleteVehiculo(ctx context.Context, id int64) error { return nil }

type mockPlateService struct {
	result *domain.PlateReadResult
	err    error
}

func (m *mockPlateService) Read(ctx context.Context, req *domain.PlateReadRequest) (*domain.PlateReadResult, error) {
	return m.result, m.err
}

func newVehiculosService(store *mockVehiculoStore, plates *mockPlateService) *VehiculosService {
	return NewVehiculosService(store, plates, observability.NewMetrics(), zap.NewNop())
}

func TestReconocerPlaca_VehiculoActivoAutorizado(t *testing.T) {
	store := &mockVehiculoStore{porPlaca: map[string]*domain.Vehiculo{
		"1234ABC": {ID: 9, Placa: "1234ABC", Estado: "activo"},
	}}
	plates := &mockPlateService{result: &domain.PlateReadResult{Placa: "1234ABC", Confianza: 0.97}}
	svc := newVehiculosService(store, plates)

	res, err := svc.ReconocerPlaca(context.Background(), &domain.PlateReadRequest{ImagenBase64: "Zm9v"})

	require.NoError(t, err)
	assert.True(t, res.Autorizado)
	require.NotNil(t, res.Vehiculo)
	assert.Equal(t, int64(9), res.Vehiculo.ID)
}

func TestReconocerPlaca_NoRegistradaNoEsError(t *testing.T) {
	store := &mockVehiculoStore{porPlaca: map[string]*domain.Vehiculo{}}
	plates := &mockPlateService{result: &domain.PlateReadResult{Placa: "9999ZZZ", Confianza: 0.91}}
	svc := newVehiculosService(store, plates)

	res, err := svc.ReconocerPlaca(context.Background(), &domain.PlateReadRequest{ImagenBase64: "Zm9v"})

	require.NoError(t, err)
	assert.False(t, res.Autorizado)
	assert.Nil(t, res.Vehiculo)
	assert.Equal(t, "9999ZZZ", res.Placa)
}

func TestReconocerPlaca_VehiculoSuspendidoNoAutorizado(t *testing.T) {
	store := &mockVehiculoStore{porPlaca: map[string]*domain.Vehiculo{
		"1234ABC": {ID: 9, Placa: "1234ABC", Estado: "suspendido"},
	}}
	plates := &mockPlateService{result: &domain.PlateReadResult{Placa: "1234ABC", Confianza: 0.88}}
	svc := newVehiculosService(store, plates)

	res, err := svc.ReconocerPlaca(context.Background(), &domain.PlateReadRequest{ImagenBase64: "Zm9v"})

	require.NoError(t, err)
	assert.False(t, res.Autorizado)
	require.NotNil(t, res.Vehiculo)
}

func TestCrearVehiculo_NormalizaPlaca(t *testing.T) {
	store := &mockVehiculoStore{}
	svc := newVehiculosService(store, &mockPlateService{})

	v, err := svc.CrearVehiculo(context.Background(), &domain.CrearVehiculoRequest{
		Placa:       " 1234-abc ",
		Tipo:        domain.VehiculoAuto,
		ResidenteID: 3,
		UnidadID:    7,
	})

	require.NoError(t, err)
	assert.Equal(t, "1234ABC", v.Placa)
}

func TestCrearVehiculo_RechazaPlacaInvalida(t *testing.T) {
	store := &mockVehiculoStore{}
	svc := newVehiculosService(store, &mockPlateService{})

	_, err := svc.CrearVehiculo(context.Background(), &domain.CrearVehiculoRequest{
		Placa:       "ABC123",
		Tipo:        domain.VehiculoAuto,
		ResidenteID: 3,
		UnidadID:    7,
	})

	var vErr *domain.ErrValidation
	require.ErrorAs(t, err, &vErr)
	assert.Nil(t, store.created)
}

func TestNormalizarPlaca(t *testing.T) {
	tests := map[string]string{
		"1234abc":    "1234ABC",
		" 1234 ABC ": "1234ABC",
		"1234-ABC":   "1234ABC",
	}
	for in, want := range tests {
		if got := NormalizarPlaca(in); got != want {
			t.Errorf("NormalizarPlaca(%q) = %q, want %q", in, got, want)
		}
	}
}
