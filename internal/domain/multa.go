package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Multas (fines)
// ============================================================

// Tipos de multa.
const (
	MultaRuido          = "ruido"
	MultaAreasComunes   = "areas_comunes"
	MultaEstacionamiento = "estacionamiento"
	MultaMascotas       = "mascotas"
	MultaOtro           = "otro"
)

// Estados of a fine.
const (
	MultaPendiente = "pendiente"
	MultaPagada    = "pagado"
	MultaCancelada = "cancelado"
)

// Multa is a fine issued against a resident/unit. Like expensas, the
// monetary fields (recargo, monto_total) come back server-computed.
type Multa struct {
	ID              int64           `json:"id"`
	ResidenteID     int64           `json:"residente"`
	ResidenteNombre string          `json:"residente_nombre,omitempty"`
	UnidadID        int64           `json:"unidad"`
	UnidadCodigo    string          `json:"unidad_codigo,omitempty"`
	Tipo            string          `json:"tipo"`
	Descripcion     string          `json:"descripcion"`
	Monto           decimal.Decimal `json:"monto"`
	RecargoMora     decimal.Decimal `json:"recargo_mora"`
	MontoTotal      decimal.Decimal `json:"monto_total"`
	Estado          string          `json:"estado"`
	FechaEmision    time.Time       `json:"-"`
	FechaVencimiento time.Time      `json:"-"`
}

// EstaVencida reports whether the fine is past due and unpaid. Recomputed
// per call, same rule as expensas.
func (m *Multa) EstaVencida(now time.Time) bool {
	return now.Truncate(24*time.Hour).After(m.FechaVencimiento) && m.Estado == MultaPendiente
}

// MultaFilter narrows the fine list.
type MultaFilter struct {
	Search      string
	Estado      string
	Tipo        string
	ResidenteID int64
	UnidadID    int64
	Page        int
	PageSize    int
}

// CrearMultaRequest issues a fine.
type CrearMultaRequest struct {
	ResidenteID      int64           `json:"residente" validate:"required,gt=0"`
	UnidadID         int64           `json:"unidad" validate:"required,gt=0"`
	Tipo             string          `json:"tipo" validate:"required,oneof=ruido areas_comunes estacionamiento mascotas otro"`
	Descripcion      string          `json:"descripcion" validate:"required,max=500"`
	Monto            decimal.Decimal `json:"monto"`
	FechaVencimiento string          `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
}

// ActualizarMultaRequest patches a fine prior to payment.
type ActualizarMultaRequest struct {
	Tipo             *string          `json:"tipo,omitempty" validate:"omitempty,oneof=ruido areas_comunes estacionamiento mascotas otro"`
	Descripcion      *string          `json:"descripcion,omitempty" validate:"omitempty,max=500"`
	Monto            *decimal.Decimal `json:"monto,omitempty"`
	FechaVencimiento *string          `json:"fecha_vencimiento,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PagarMultaRequest settles a fine in full.
type PagarMultaRequest struct {
	MetodoPago        string `json:"metodo_pago" validate:"required,oneof=efectivo transferencia qr tarjeta"`
	NumeroComprobante string `json:"numero_comprobante" validate:"omitempty,max=100"`
}
