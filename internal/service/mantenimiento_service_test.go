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

// mockTareaStore records transition calls so tests can assert which backend
// endpoints were (not) hit.
type mockTareaStore struct {
	tareas         map[int64]*domain.TareaMantenimiento
	iniciarCalls   int
	completarCalls int
	cancelarCalls  int
}

func (m *mockTareaStore) ListTareas(ctx context.Context, f domain.TareaFilter) ([]domain.TareaMantenimiento, error) {
	return nil, nil
}

func (m *mockTareaStore) GetTarea(ctx context.Context, id int64) (*domain.TareaMantenimiento, error) {
	t, ok := m.tareas[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "tarea", ID: "404"}
	}
	return t, nil
}

func (m *mockTareaStore) CreateTarea(ctx context.Context, req *domain.CrearTareaRequest) (*domain.TareaMantenimiento, error) {
	return &domain.TareaMantenimiento{ID: 1, Titulo: req.Titulo, Tipo: req.Tipo, Estado: domain.TareaPendiente}, nil
}

func (m *mockTareaStore) UpdateTarea(ctx context.Context, id int64, req *domain.ActualizarTareaRequest) (*domain.TareaMantenimiento, error) {
	return m.tareas[id], nil
}

func (m *mockTareaStore) DeleteTarea(ctx context.Context, id int64) error { return nil }

func (m *mockTareaStore) IniciarTarea(ctx context.Context, id int64) (*domain.TareaMantenimiento, error) {
	m.iniciarCalls++
	t := *m.tareas[id]
	t.Estado = domain.TareaEnProgreso
	return &t, nil
}

func (m *mockTareaStore) CompletarTarea(ctx context.Context, id int64, req *domain.CompletarTareaRequest) (*domain.TareaMantenimiento, error) {
	m.completarCalls++
	t := *m.tareas[id]
	t.Estado = domain.TareaCompletada
	if req.CostoReal != nil {
		t.CostoReal = *req.CostoReal
	}
	return &t, nil
}

func (m *mockTareaStore) CancelarTarea(ctx context.Context, id int64, req *domain.CancelarTareaRequest) (*domain.TareaMantenimiento, error) {
	m.cancelarCalls++
	t := *m.tareas[id]
	t.Estado = domain.TareaCancelada
	return &t, nil
}

func newMantenimientoService(store *mockTareaStore) *MantenimientoService {
	return NewMantenimientoService(store, observability.NewMetrics(), zap.NewNop())
}

func TestCrearTarea_RechazaTipoDesconocido(t *testing.T) {
	svc := newMantenimientoService(&mockTareaStore{})

	_, err := svc.CrearTarea(context.Background(), &domain.CrearTareaRequest{
		Titulo:      "Cambio de luminarias",
		Descripcion: "Reemplazo de focos en pasillo B",
		Tipo:        "jardineria",
		FechaLimite: "2026-09-15",
	})

	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
}

func TestCrearTarea_RechazaPresupuestoNegativo(t *testing.T) {
	svc := newMantenimientoService(&mockTareaStore{})

	_, err := svc.CrearTarea(context.Background(), &domain.CrearTareaRequest{
		Titulo:              "Revision de bomba",
		Descripcion:         "Mantenimiento preventivo de la bomba de agua",
		Tipo:                "preventivo",
		FechaLimite:         "2026-09-15",
		PresupuestoEstimado: decimal.NewFromInt(-100),
	})

	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "presupuesto_estimado", verr.Field)
}

func TestIniciarTarea_RechazaTareaCerrada(t *testing.T) {
	store := &mockTareaStore{tareas: map[int64]*domain.TareaMantenimiento{
		5: {ID: 5, Estado: domain.TareaCompletada},
	}}
	svc := newMantenimientoService(store)

	_, err := svc.IniciarTarea(context.Background(), 5)

	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, store.iniciarCalls, "a closed task must not reach the transition endpoint")
}

func TestIniciarTarea_TransicionaPendiente(t *testing.T) {
	store := &mockTareaStore{tareas: map[int64]*domain.TareaMantenimiento{
		5: {ID: 5, Estado: domain.TareaPendiente},
	}}
	svc := newMantenimientoService(store)

	tarea, err := svc.IniciarTarea(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.TareaEnProgreso, tarea.Estado)
	assert.Equal(t, 1, store.iniciarCalls)
}

func TestCompletarTarea_RechazaCostoNegativo(t *testing.T) {
	store := &mockTareaStore{tareas: map[int64]*domain.TareaMantenimiento{
		5: {ID: 5, Estado: domain.TareaEnProgreso},
	}}
	svc := newMantenimientoService(store)

	costo := decimal.NewFromInt(-50)
	_, err := svc.CompletarTarea(context.Background(), 5, &domain.CompletarTareaRequest{CostoReal: &costo})

	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, store.completarCalls)
}

func TestCompletarTarea_RegistraCostoReal(t *testing.T) {
	store := &mockTareaStore{tareas: map[int64]*domain.TareaMantenimiento{
		5: {ID: 5, Estado: domain.TareaEnProgreso},
	}}
	svc := newMantenimientoService(store)

	costo := decimal.RequireFromString("350.75")
	tarea, err := svc.CompletarTarea(context.Background(), 5, &domain.CompletarTareaRequest{
		CostoReal:     &costo,
		Observaciones: "se reemplazo el sello mecanico",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TareaCompletada, tarea.Estado)
	assert.True(t, tarea.CostoReal.Equal(costo))
}

func TestCancelarTarea_RequiereMotivo(t *testing.T) {
	store := &mockTareaStore{tareas: map[int64]*domain.TareaMantenimiento{
		5: {ID: 5, Estado: domain.TareaPendiente},
	}}
	svc := newMantenimientoService(store)

	_, err := svc.CancelarTarea(context.Background(), 5, &domain.CancelarTareaRequest{})

	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, store.cancelarCalls)
}

func TestTareaEstaVencida(t *testing.T) {
	limite := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

	abierta := &domain.TareaMantenimiento{Estado: domain.TareaEnProgreso, FechaLimite: limite}
	assert.True(t, abierta.EstaVencida(now))
	assert.Equal(t, -10, abierta.DiasRestantes(now))

	cerrada := &domain.TareaMantenimiento{Estado: domain.TareaCompletada, FechaLimite: limite}
	assert.False(t, cerrada.EstaVencida(now))
	assert.Equal(t, 0, cerrada.DiasRestantes(now))
}
