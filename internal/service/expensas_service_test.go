package service

import (
	"context"
	"testing"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockExpensaStore records calls so tests can assert which backend
// endpoints were (not) hit.
type mockExpensaStore struct {
	expensas      map[int64]*domain.Expensa
	pagoCalls     int
	getCalls      int
	masivoCalls   int
	lastPago      *domain.RegistrarPagoRequest
	pagoResult    *domain.Pago
	refetchResult *domain.Expensa
}

func (m *mockExpensaStore) ListExpensas(ctx context.Context, f domain.ExpensaFilter) ([]domain.Expensa, error) {
	return nil, nil
}

func (m *mockExpensaStore) GetExpensa(ctx context.Context, id int64) (*domain.Expensa, error) {
	m.getCalls++
	if m.refetchResult != nil && m.getCalls > 1 {
		return m.refetchResult, nil
	}
	e, ok := m.expensas[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "expensa", ID: "404"}
	}
	return e, nil
}

func (m *mockExpensaStore) CreateExpensa(ctx context.Context, req *domain.CrearExpensaRequest) (*domain.Expensa, error) {
	return &domain.Expensa{ID: 1, UnidadID: req.UnidadID, Periodo: req.Periodo, Estado: domain.EstadoPendiente}, nil
}

func (m *mockExpensaStore) UpdateExpensa(ctx context.Context, id int64, req *domain.ActualizarExpensaRequest) (*domain.Expensa, error) {
	return m.expensas[id], nil
}

func (m *mockExpensaStore) DeleteExpensa(ctx context.Context, id int64) error { return nil }

func (m *mockExpensaStore) GenerarMasivo(ctx context.Context, req *domain.GenerarMasivoRequest) (*domain.GenerarMasivoResult, error) {
	m.masivoCalls++
	return &domain.GenerarMasivoResult{Periodo: req.Periodo, Cantidad: 12}, nil
}

func (m *mockExpensaStore) RegistrarPago(ctx context.Context, expensaID int64, req *domain.RegistrarPagoRequest) (*domain.Pago, error) {
	m.pagoCalls++
	m.lastPago = req
	return m.pagoResult, nil
}

func (m *mockExpensaStore) GetEstadisticas(ctx context.Context, periodo string) (*domain.EstadisticasExpensas, error) {
	return &domain.EstadisticasExpensas{TotalExpensas: 10, TasaCobro: 0.8}, nil
}

func (m *mockExpensaStore) GetMorosidad(ctx context.Context) ([]domain.MorosidadUnidad, error) {
	return []domain.MorosidadUnidad{{UnidadID: 7, MesesAdeudados: 2}}, nil
}

type mockUnidadStore struct {
	unidad *domain.Unidad
}

func (m *mockUnidadStore) ListUnidades(ctx context.Context, f domain.UnidadFilter) ([]domain.Unidad, error) {
	return nil, nil
}
func (m *mockUnidadStore) GetUnidad(ctx context.Context, id int64) (*domain.Unidad, error) {
	return m.unidad, nil
}
func (m *mockUnidadStore) CreateUnidad(ctx context.Context, req *domain.CrearUnidadRequest) (*domain.Unidad, error) {
	return nil, nil
}
func (m *mockUnidadStore) UpdateUnidad(ctx context.Context, id int64, req *domain.ActualizarUnidadRequest) (*domain.Unidad, error) {
	return nil, nil
}
func (m *mockUnidadStore) DeleteUnidad(ctx context.Context, id int64) error { return nil }

func newExpensasService(store *mockExpensaStore, unidades *mockUnidadStore) *ExpensasService {
	if unidades == nil {
		unidades = &mockUnidadStore{}
	}
	return NewExpensasService(store, unidades, observability.NewMetrics(), zap.NewNop())
}

func pendiente(id int64, saldo string) *domain.Expensa {
	return &domain.Expensa{
		ID:             id,
		UnidadID:       7,
		Periodo:        "2025-03",
		SaldoPendiente: decimal.RequireFromString(saldo),
		Estado:         domain.EstadoPendiente,
	}
}

func TestRegistrarPago_RechazaMontoExcedente(t *testing.T) {
	store := &mockExpensaStore{expensas: map[int64]*domain.Expensa{5: pendiente(5, "70.00")}}
	svc := newExpensasService(store, nil)

	_, _, err := svc.RegistrarPago(context.Background(), 5, &domain.RegistrarPagoRequest{
		Monto:      decimal.RequireFromString("100.00"),
		MetodoPago: domain.MetodoEfectivo,
	})

	var vErr *domain.ErrValidation
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "monto", vErr.Field)
	assert.Zero(t, store.pagoCalls, "el endpoint de pago no debe ser invocado")
}

func TestRegistrarPago_RechazaMontoNoPositivo(t *testing.T) {
	store := &mockExpensaStore{expensas: map[int64]*domain.Expensa{5: pendiente(5, "70.00")}}
	svc := newExpensasService(store, nil)

	for _, monto := range []string{"0", "-10"} {
		_, _, err := svc.RegistrarPago(context.Background(), 5, &domain.RegistrarPagoRequest{
			Monto:      decimal.RequireFromString(monto),
			MetodoPago: domain.MetodoQR,
		})
		var vErr *domain.ErrValidation
		require.ErrorAs(t, err, &vErr, "monto %s", monto)
	}
	assert.Zero(t, store.getCalls, "montos no positivos se rechazan antes de cualquier llamada")
	assert.Zero(t, store.pagoCalls)
}

func TestRegistrarPago_RechazaExpensaPagada(t *testing.T) {
	pagada := pendiente(5, "0.00")
	pagada.Estado = domain.EstadoPagado
	store := &mockExpensaStore{expensas: map[int64]*domain.Expensa{5: pagada}}
	svc := newExpensasService(store, nil)

	_, _, err := svc.RegistrarPago(context.Background(), 5, &domain.RegistrarPagoRequest{
		Monto:      decimal.RequireFromString("10.00"),
		MetodoPago: domain.MetodoEfectivo,
	})

	var vErr *domain.ErrValidation
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, store.pagoCalls)
}

func TestRegistrarPago_DevuelveExpensaRefrescada(t *testing.T) {
	refrescada := pendiente(5, "20.00")
	refrescada.Estado = domain.EstadoPagadoParcial
	store := &mockExpensaStore{
		expensas:      map[int64]*domain.Expensa{5: pendiente(5, "70.00")},
		pagoResult:    &domain.Pago{ID: 1, ExpensaID: 5, Monto: decimal.RequireFromString("50.00")},
		refetchResult: refrescada,
	}
	svc := newExpensasService(store, nil)

	pago, expensa, err := svc.RegistrarPago(context.Background(), 5, &domain.RegistrarPagoRequest{
		Monto:      decimal.RequireFromString("50.00"),
		MetodoPago: domain.MetodoTransferencia,
	})

	require.NoError(t, err)
	require.NotNil(t, pago)
	require.NotNil(t, expensa)
	assert.Equal(t, domain.EstadoPagadoParcial, expensa.Estado)
	assert.True(t, expensa.SaldoPendiente.Equal(decimal.RequireFromString("20.00")),
		"el saldo viene del backend, no de aritmetica local")
	assert.Equal(t, 2, store.getCalls, "una lectura antes del pago y una despues")
}

func TestRegistrarPago_RechazaMetodoDesconocido(t *testing.T) {
	store := &mockExpensaStore{expensas: map[int64]*domain.Expensa{5: pendiente(5, "70.00")}}
	svc := newExpensasService(store, nil)

	_, _, err := svc.RegistrarPago(context.Background(), 5, &domain.RegistrarPagoRequest{
		Monto:      decimal.RequireFromString("10.00"),
		MetodoPago: "cheque",
	})

	var vErr *domain.ErrValidation
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, store.pagoCalls)
}

func TestGenerarMasivo_RechazaSeleccionVacia(t *testing.T) {
	store := &mockExpensaStore{}
	svc := newExpensasService(store, nil)

	_, err := svc.GenerarMasivo(context.Background(), &domain.GenerarMasivoRequest{
		Periodo:          "2025-04",
		MontoBase:        decimal.RequireFromString("350.00"),
		FechaVencimiento: "2025-04-15",
		TodasLasUnidades: false,
		Unidades:         nil,
	})

	var vErr *domain.ErrValidation
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "unidades", vErr.Field)
	assert.Zero(t, store.masivoCalls)
}

func TestGenerarMasivo_TodasLasUnidades(t *testing.T) {
	store := &mockExpensaStore{}
	svc := newExpensasService(store, nil)

	result, err := svc.GenerarMasivo(context.Background(), &domain.GenerarMasivoRequest{
		Periodo:          "2025-04",
		MontoBase:        decimal.RequireFromString("350.00"),
		FechaVencimiento: "2025-04-15",
		TodasLasUnidades: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 12, result.Cantidad)
	assert.Equal(t, 1, store.masivoCalls)
}

func TestCrearExpensa_RechazaMontoBaseCero(t *testing.T) {
	svc := newExpensasService(&mockExpensaStore{}, nil)

	_, err := svc.CrearExpensa(context.Background(), &domain.CrearExpensaRequest{
		UnidadID:         7,
		Periodo:          "2025-03",
		MontoBase:        decimal.Zero,
		FechaVencimiento: "2025-03-15",
	})

	var vErr *domain.ErrValidation
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "monto_base", vErr.Field)
}

func TestCrearExpensa_RechazaPeriodoInvalido(t *testing.T) {
	svc := newExpensasService(&mockExpensaStore{}, nil)

	_, err := svc.CrearExpensa(context.Background(), &domain.CrearExpensaRequest{
		UnidadID:         7,
		Periodo:          "marzo-2025",
		MontoBase:        decimal.RequireFromString("100.00"),
		FechaVencimiento: "2025-03-15",
	})

	var vErr *domain.ErrValidation
	require.ErrorAs(t, err, &vErr)
}

func TestGetComprobante_IncluyeUnidadYFolio(t *testing.T) {
	store := &mockExpensaStore{expensas: map[int64]*domain.Expensa{5: pendiente(5, "70.00")}}
	unidades := &mockUnidadStore{unidad: &domain.Unidad{ID: 7, Codigo: "A-101"}}
	svc := newExpensasService(store, unidades)

	comp, err := svc.GetComprobante(context.Background(), 5)

	require.NoError(t, err)
	assert.NotEmpty(t, comp.Folio)
	assert.Equal(t, "A-101", comp.Unidad.Codigo)
	assert.WithinDuration(t, time.Now(), comp.FechaGeneracion, 5*time.Second)
}

func TestGetDashboard_RechazaPeriodoInvalido(t *testing.T) {
	svc := newExpensasService(&mockExpensaStore{}, nil)

	_, err := svc.GetDashboard(context.Background(), "2025/03")

	var vErr *domain.ErrValidation
	require.ErrorAs(t, err, &vErr)
}

func TestGetDashboard_CombinaEstadisticasYMorosidad(t *testing.T) {
	svc := newExpensasService(&mockExpensaStore{}, nil)

	dash, err := svc.GetDashboard(context.Background(), "2025-03")

	require.NoError(t, err)
	assert.Equal(t, 10, dash.Estadisticas.TotalExpensas)
	assert.Equal(t, 1, dash.UnidadesMorosas)
}
