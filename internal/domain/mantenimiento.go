package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Mantenimiento: maintenance tasks for common areas and equipment
// ============================================================

// Estados of a maintenance task. The lifecycle is owned by the backend:
// pendiente → asignada → en_progreso → completada, with cancelada reachable
// from any non-terminal state.
const (
	TareaPendiente  = "pendiente"
	TareaAsignada   = "asignada"
	TareaEnProgreso = "en_progreso"
	TareaCompletada = "completada"
	TareaCancelada  = "cancelada"
)

// TareaMantenimiento is one maintenance task. Costs are backend-computed
// aggregates of the task's materials plus labor; this tier never rederives
// them.
type TareaMantenimiento struct {
	ID                  int64           `json:"id"`
	Titulo              string          `json:"titulo"`
	Descripcion         string          `json:"descripcion"`
	Tipo                string          `json:"tipo"`
	Prioridad           string          `json:"prioridad"`
	Estado              string          `json:"estado"`
	PersonalAsignadoID  int64           `json:"personal_asignado"`
	PersonalNombre      string          `json:"personal_nombre,omitempty"`
	UbicacionEspecifica string          `json:"ubicacion_especifica,omitempty"`
	FechaCreacion       time.Time       `json:"-"`
	FechaLimite         time.Time       `json:"-"`
	FechaInicio         time.Time       `json:"-"`
	FechaCompletado     time.Time       `json:"-"`
	PresupuestoEstimado decimal.Decimal `json:"presupuesto_estimado"`
	CostoReal           decimal.Decimal `json:"costo_real"`
	Observaciones       string          `json:"observaciones,omitempty"`
}

// EstaVencida reports whether the task blew past its deadline. Terminal
// states are never overdue.
func (t *TareaMantenimiento) EstaVencida(now time.Time) bool {
	if t.Estado == TareaCompletada || t.Estado == TareaCancelada {
		return false
	}
	return now.Truncate(24*time.Hour).After(t.FechaLimite)
}

// DiasRestantes returns the days left until the deadline; negative when
// overdue, 0 for terminal states.
func (t *TareaMantenimiento) DiasRestantes(now time.Time) int {
	if t.Estado == TareaCompletada || t.Estado == TareaCancelada {
		return 0
	}
	return int(t.FechaLimite.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
}

// TareaFilter is the filter set for the task list. Filters are ANDed
// server-side.
type TareaFilter struct {
	Search    string
	Estado    string
	Tipo      string
	Prioridad string
	Vencidas  bool
	Page      int
	PageSize  int
}

// CrearTareaRequest opens a maintenance task.
type CrearTareaRequest struct {
	Titulo              string          `json:"titulo" validate:"required,max=200"`
	Descripcion         string          `json:"descripcion" validate:"required"`
	Tipo                string          `json:"tipo" validate:"required,oneof=preventivo correctivo emergencia instalacion reparacion limpieza"`
	Prioridad           string          `json:"prioridad" validate:"omitempty,oneof=baja media alta critica"`
	PersonalAsignadoID  int64           `json:"personal_asignado,omitempty"`
	UbicacionEspecifica string          `json:"ubicacion_especifica" validate:"omitempty,max=200"`
	FechaLimite         string          `json:"fecha_limite" validate:"required,datetime=2006-01-02"`
	PresupuestoEstimado decimal.Decimal `json:"presupuesto_estimado"`
}

// ActualizarTareaRequest patches a task prior to completion.
type ActualizarTareaRequest struct {
	Titulo              *string          `json:"titulo,omitempty" validate:"omitempty,max=200"`
	Descripcion         *string          `json:"descripcion,omitempty"`
	Prioridad           *string          `json:"prioridad,omitempty" validate:"omitempty,oneof=baja media alta critica"`
	PersonalAsignadoID  *int64           `json:"personal_asignado,omitempty"`
	UbicacionEspecifica *string          `json:"ubicacion_especifica,omitempty" validate:"omitempty,max=200"`
	FechaLimite         *string          `json:"fecha_limite,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PresupuestoEstimado *decimal.Decimal `json:"presupuesto_estimado,omitempty"`
}

// CompletarTareaRequest closes a task, optionally recording the executed
// cost and closing notes.
type CompletarTareaRequest struct {
	CostoReal     *decimal.Decimal `json:"costo_real,omitempty"`
	Observaciones string           `json:"observaciones"`
}

// CancelarTareaRequest cancels a task with a reason.
type CancelarTareaRequest struct {
	Motivo string `json:"motivo" validate:"required,max=500"`
}

// TareaAPIResponse is the task view for the SPA.
type TareaAPIResponse struct {
	ID                  int64  `json:"id"`
	Titulo              string `json:"titulo"`
	Descripcion         string `json:"descripcion"`
	Tipo                string `json:"tipo"`
	Prioridad           string `json:"prioridad"`
	Estado              string `json:"estado"`
	PersonalAsignadoID  int64  `json:"personal_asignado"`
	PersonalNombre      string `json:"personal_nombre,omitempty"`
	UbicacionEspecifica string `json:"ubicacion_especifica,omitempty"`
	FechaCreacion       string `json:"fecha_creacion"`
	FechaLimite         string `json:"fecha_limite"`
	FechaInicio         string `json:"fecha_inicio,omitempty"`
	FechaCompletado     string `json:"fecha_completado,omitempty"`
	PresupuestoEstimado string `json:"presupuesto_estimado"`
	CostoReal           string `json:"costo_real"`
	EstaVencida         bool   `json:"esta_vencida"`
	DiasRestantes       int    `json:"dias_restantes"`
	Observaciones       string `json:"observaciones,omitempty"`
}
