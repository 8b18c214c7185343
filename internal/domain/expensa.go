package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Expensas (periodic charges per housing unit)
// ============================================================

// Estado is the lifecycle state of an expensa. The backend owns the
// transition rules; the BFA only parses and displays the stored value.
type Estado string

const (
	EstadoPendiente     Estado = "pendiente"
	EstadoPagadoParcial Estado = "pagado_parcial"
	EstadoPagado        Estado = "pagado"
	EstadoVencido       Estado = "vencido"
)

// ParseEstado validates an estado value coming from a filter or the wire.
func ParseEstado(s string) (Estado, error) {
	switch Estado(s) {
	case EstadoPendiente, EstadoPagadoParcial, EstadoPagado, EstadoVencido:
		return Estado(s), nil
	}
	return "", &ErrValidation{Field: "estado", Message: fmt.Sprintf("estado desconocido: %q", s)}
}

// Expensa is one unit's billing obligation for one calendar period.
// All monetary totals are server-computed; the BFA never recalculates them.
type Expensa struct {
	ID              int64           `json:"id"`
	UnidadID        int64           `json:"unidad"`
	UnidadCodigo    string          `json:"unidad_codigo"`
	UnidadDireccion string          `json:"unidad_direccion"`
	Periodo         string          `json:"periodo"` // YYYY-MM
	MontoBase       decimal.Decimal `json:"monto_base"`
	MontoAdicional  decimal.Decimal `json:"monto_adicional"`
	MontoTotal      decimal.Decimal `json:"monto_total"`
	MontoPagado     decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente  decimal.Decimal `json:"saldo_pendiente"`
	Estado          Estado          `json:"estado"`
	FechaEmision    time.Time       `json:"-"`
	FechaVencimiento time.Time      `json:"-"`
	Conceptos       []ConceptoPago  `json:"conceptos,omitempty"`
	Pagos           []Pago          `json:"pagos,omitempty"`
}

// EstaVencida reports whether the expensa is past due and not fully paid.
// Always recomputed against the given clock, never cached or stored.
func (e *Expensa) EstaVencida(now time.Time) bool {
	return now.Truncate(24*time.Hour).After(e.FechaVencimiento) && e.Estado != EstadoPagado
}

// DiasVencidos returns how many days the expensa is overdue (0 if current).
func (e *Expensa) DiasVencidos(now time.Time) int {
	if !e.EstaVencida(now) {
		return 0
	}
	return int(now.Sub(e.FechaVencimiento).Hours() / 24)
}

// ConceptoPago is a named line item contributing to an expensa's total.
// Concepts are immutable once created and exist only nested under an expensa.
type ConceptoPago struct {
	ID          int64           `json:"id,omitempty"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Tipo        string          `json:"tipo"` // mantenimiento, agua, luz, multa, otro
}

// Metodos de pago accepted by the backend.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTransferencia = "transferencia"
	MetodoQR            = "qr"
	MetodoTarjeta       = "tarjeta"
)

// Pago is one recorded payment against an expensa. Append-only: no update
// or delete is exposed at this layer.
type Pago struct {
	ID                int64           `json:"id"`
	ExpensaID         int64           `json:"expensa"`
	Monto             decimal.Decimal `json:"monto"`
	MetodoPago        string          `json:"metodo_pago"`
	NumeroComprobante string          `json:"numero_comprobante,omitempty"`
	FechaPago         time.Time       `json:"-"`
	Observaciones     string          `json:"observaciones,omitempty"`
}

// ============================================================
// Filters & pagination
// ============================================================

// ExpensaFilter is the filter set accepted by the expensa list operation.
// Filters are ANDed server-side. Use the setters: any change other than a
// pure page change resets Page to 1.
type ExpensaFilter struct {
	Search   string
	Estado   Estado
	Periodo  string // YYYY-MM
	UnidadID int64
	Vencidas bool
	Page     int
	PageSize int
}

// NewExpensaFilter returns a filter positioned at the first page.
func NewExpensaFilter() ExpensaFilter {
	return ExpensaFilter{Page: 1, PageSize: 20}
}

func (f *ExpensaFilter) resetPage() { f.Page = 1 }

// SetSearch sets the free-text search and resets to page 1.
func (f *ExpensaFilter) SetSearch(s string) {
	f.Search = s
	f.resetPage()
}

// SetEstado sets the estado filter and resets to page 1.
func (f *ExpensaFilter) SetEstado(e Estado) {
	f.Estado = e
	f.resetPage()
}

// SetPeriodo sets the period filter and resets to page 1.
func (f *ExpensaFilter) SetPeriodo(p string) {
	f.Periodo = p
	f.resetPage()
}

// SetUnidad sets the unit filter and resets to page 1.
func (f *ExpensaFilter) SetUnidad(id int64) {
	f.UnidadID = id
	f.resetPage()
}

// SetVencidas toggles the overdue-only filter and resets to page 1.
func (f *ExpensaFilter) SetVencidas(v bool) {
	f.Vencidas = v
	f.resetPage()
}

// SetPage changes only the page; it is the one setter that keeps the rest
// of the filter intact.
func (f *ExpensaFilter) SetPage(page int) {
	if page > 0 {
		f.Page = page
	}
}

// SetPageSize adjusts the page size and resets to page 1.
func (f *ExpensaFilter) SetPageSize(size int) {
	if size > 0 && size <= 100 {
		f.PageSize = size
	}
	f.resetPage()
}

// ============================================================
// Requests (SPA → BFA)
// ============================================================

// ConceptoInput is a nested concept line in a create/generate request.
type ConceptoInput struct {
	Descripcion string          `json:"descripcion" validate:"required,max=200"`
	Monto       decimal.Decimal `json:"monto"`
	Tipo        string          `json:"tipo" validate:"omitempty,max=50"`
}

// CrearExpensaRequest creates a single expensa with nested concepts.
type CrearExpensaRequest struct {
	UnidadID         int64           `json:"unidad" validate:"required,gt=0"`
	Periodo          string          `json:"periodo" validate:"required,datetime=2006-01"`
	MontoBase        decimal.Decimal `json:"monto_base"`
	MontoAdicional   decimal.Decimal `json:"monto_adicional"`
	FechaEmision     string          `json:"fecha_emision" validate:"omitempty,datetime=2006-01-02"`
	FechaVencimiento string          `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
	Conceptos        []ConceptoInput `json:"conceptos" validate:"dive"`
}

// ActualizarExpensaRequest patches an expensa. Only fields present are sent;
// the backend rejects edits on expensas that already have payments.
type ActualizarExpensaRequest struct {
	MontoBase        *decimal.Decimal `json:"monto_base,omitempty"`
	MontoAdicional   *decimal.Decimal `json:"monto_adicional,omitempty"`
	FechaVencimiento *string          `json:"fecha_vencimiento,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Conceptos        []ConceptoInput  `json:"conceptos,omitempty" validate:"omitempty,dive"`
}

// GenerarMasivoRequest spawns one expensa per target unit for a period.
// TodasLasUnidades targets every occupied unit; otherwise Unidades must
// carry at least one id (checked before any request is sent).
type GenerarMasivoRequest struct {
	Periodo          string          `json:"periodo" validate:"required,datetime=2006-01"`
	MontoBase        decimal.Decimal `json:"monto_base"`
	FechaVencimiento string          `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
	Conceptos        []ConceptoInput `json:"conceptos" validate:"dive"`
	TodasLasUnidades bool            `json:"todas_las_unidades"`
	Unidades         []int64         `json:"unidades,omitempty"`
}

// GenerarMasivoResult is the backend's single success outcome for a bulk run.
type GenerarMasivoResult struct {
	Periodo  string `json:"periodo"`
	Cantidad int    `json:"cantidad"`
	Mensaje  string `json:"mensaje"`
}

// RegistrarPagoRequest records a payment against an expensa.
type RegistrarPagoRequest struct {
	Monto             decimal.Decimal `json:"monto"`
	MetodoPago        string          `json:"metodo_pago" validate:"required,oneof=efectivo transferencia qr tarjeta"`
	NumeroComprobante string          `json:"numero_comprobante" validate:"omitempty,max=100"`
	FechaPago         string          `json:"fecha_pago" validate:"omitempty,datetime=2006-01-02"`
	Observaciones     string          `json:"observaciones"`
}

// ============================================================
// Reports
// ============================================================

// EstadisticasExpensas is the server-computed aggregate for a period (or all).
// tasa_cobro included: the BFA passes it through without recomputing.
type EstadisticasExpensas struct {
	TotalExpensas int             `json:"total_expensas"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
	MontoPagado   decimal.Decimal `json:"monto_pagado"`
	Pendientes    int             `json:"pendientes"`
	Pagadas       int             `json:"pagadas"`
	Parciales     int             `json:"parciales"`
	Vencidas      int             `json:"vencidas"`
	TasaCobro     float64         `json:"tasa_cobro"`
}

// ExpensaVencidaResumen is one overdue expensa inside a morosidad record.
type ExpensaVencidaResumen struct {
	ID             int64           `json:"id"`
	Periodo        string          `json:"periodo"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
	DiasVencidos   int             `json:"dias_vencidos"`
}

// MorosidadUnidad aggregates everything one unit owes across overdue periods.
// Computed by the backend; always refetched, never cached.
type MorosidadUnidad struct {
	UnidadID         int64                   `json:"unidad_id"`
	UnidadCodigo     string                  `json:"unidad_codigo"`
	UnidadDireccion  string                  `json:"unidad_direccion"`
	TotalAdeudado    decimal.Decimal         `json:"total_adeudado"`
	MesesAdeudados   int                     `json:"meses_adeudados"`
	ExpensasVencidas []ExpensaVencidaResumen `json:"expensas_vencidas"`
}

// DashboardExpensas bundles the stats and the delinquency report for the
// admin landing screen.
type DashboardExpensas struct {
	Periodo         string                `json:"periodo,omitempty"`
	Estadisticas    *EstadisticasExpensas `json:"estadisticas"`
	Morosidad       []MorosidadUnidad     `json:"morosidad"`
	UnidadesMorosas int                   `json:"unidades_morosas"`
}

// ComprobanteExpensa carries the data the SPA renders into a receipt PDF.
type ComprobanteExpensa struct {
	Folio           string    `json:"folio"`
	Expensa         *Expensa  `json:"expensa"`
	Unidad          *Unidad   `json:"unidad"`
	FechaGeneracion time.Time `json:"fecha_generacion"`
}
