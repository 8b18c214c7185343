package domain

// API response shapes returned to the admin SPA. Dates travel as
// YYYY-MM-DD strings and monetary amounts as two-decimal strings, matching
// the core API's wire convention; esta_vencida and dias_vencidos are
// recomputed at render time, never read from a stored field.

// ExpensaAPIResponse is the full expensa view (detail screens, post-payment
// refresh).
type ExpensaAPIResponse struct {
	ID               int64                 `json:"id"`
	UnidadID         int64                 `json:"unidad"`
	UnidadCodigo     string                `json:"unidad_codigo"`
	UnidadDireccion  string                `json:"unidad_direccion,omitempty"`
	Periodo          string                `json:"periodo"`
	MontoBase        string                `json:"monto_base"`
	MontoAdicional   string                `json:"monto_adicional"`
	MontoTotal       string                `json:"monto_total"`
	MontoPagado      string                `json:"monto_pagado"`
	SaldoPendiente   string                `json:"saldo_pendiente"`
	Estado           Estado                `json:"estado"`
	FechaEmision     string                `json:"fecha_emision"`
	FechaVencimiento string                `json:"fecha_vencimiento"`
	EstaVencida      bool                  `json:"esta_vencida"`
	DiasVencidos     int                   `json:"dias_vencidos"`
	Conceptos        []ConceptoAPIResponse `json:"conceptos"`
	Pagos            []PagoAPIResponse     `json:"pagos"`
}

// ConceptoAPIResponse is one expensa line item.
type ConceptoAPIResponse struct {
	ID          int64  `json:"id,omitempty"`
	Descripcion string `json:"descripcion"`
	Monto       string `json:"monto"`
	Tipo        string `json:"tipo"`
}

// ExpensaListItem is the trimmed row for list screens.
type ExpensaListItem struct {
	ID               int64  `json:"id"`
	UnidadID         int64  `json:"unidad"`
	UnidadCodigo     string `json:"unidad_codigo"`
	Periodo          string `json:"periodo"`
	MontoTotal       string `json:"monto_total"`
	MontoPagado      string `json:"monto_pagado"`
	SaldoPendiente   string `json:"saldo_pendiente"`
	Estado           Estado `json:"estado"`
	FechaVencimiento string `json:"fecha_vencimiento"`
	EstaVencida      bool   `json:"esta_vencida"`
}

// PagoAPIResponse is one payment row.
type PagoAPIResponse struct {
	ID                int64  `json:"id"`
	Monto             string `json:"monto"`
	MetodoPago        string `json:"metodo_pago"`
	NumeroComprobante string `json:"numero_comprobante,omitempty"`
	FechaPago         string `json:"fecha_pago"`
	Observaciones     string `json:"observaciones,omitempty"`
}

// RegistrarPagoAPIResponse pairs the created payment with the refetched
// expensa so the SPA replaces its local copy with the server's numbers.
type RegistrarPagoAPIResponse struct {
	Mensaje string              `json:"mensaje"`
	Pago    PagoAPIResponse     `json:"pago"`
	Expensa *ExpensaAPIResponse `json:"expensa"`
}

// EstadisticasAPIResponse is the rendered period aggregate.
type EstadisticasAPIResponse struct {
	TotalExpensas int     `json:"total_expensas"`
	MontoTotal    string  `json:"monto_total"`
	MontoPagado   string  `json:"monto_pagado"`
	Pendientes    int     `json:"pendientes"`
	Pagadas       int     `json:"pagadas"`
	Parciales     int     `json:"parciales"`
	Vencidas      int     `json:"vencidas"`
	TasaCobro     float64 `json:"tasa_cobro"`
}

// ExpensaVencidaAPIResponse is one overdue expensa in a morosidad row.
type ExpensaVencidaAPIResponse struct {
	ID             int64  `json:"id"`
	Periodo        string `json:"periodo"`
	MontoTotal     string `json:"monto_total"`
	SaldoPendiente string `json:"saldo_pendiente"`
	DiasVencidos   int    `json:"dias_vencidos"`
}

// MorosidadAPIResponse is the rendered delinquency row for one unit.
type MorosidadAPIResponse struct {
	UnidadID         int64                       `json:"unidad_id"`
	UnidadCodigo     string                      `json:"unidad_codigo"`
	UnidadDireccion  string                      `json:"unidad_direccion"`
	TotalAdeudado    string                      `json:"total_adeudado"`
	MesesAdeudados   int                         `json:"meses_adeudados"`
	ExpensasVencidas []ExpensaVencidaAPIResponse `json:"expensas_vencidas"`
}

// DashboardAPIResponse bundles stats and delinquency for the landing screen.
type DashboardAPIResponse struct {
	Periodo         string                   `json:"periodo,omitempty"`
	Estadisticas    *EstadisticasAPIResponse `json:"estadisticas"`
	Morosidad       []MorosidadAPIResponse   `json:"morosidad"`
	UnidadesMorosas int                      `json:"unidades_morosas"`
}

// MultaAPIResponse is the fine view with formatted dates.
type MultaAPIResponse struct {
	ID               int64  `json:"id"`
	ResidenteID      int64  `json:"residente"`
	ResidenteNombre  string `json:"residente_nombre,omitempty"`
	UnidadID         int64  `json:"unidad"`
	UnidadCodigo     string `json:"unidad_codigo,omitempty"`
	Tipo             string `json:"tipo"`
	Descripcion      string `json:"descripcion"`
	Monto            string `json:"monto"`
	RecargoMora      string `json:"recargo_mora"`
	MontoTotal       string `json:"monto_total"`
	Estado           string `json:"estado"`
	FechaEmision     string `json:"fecha_emision"`
	FechaVencimiento string `json:"fecha_vencimiento"`
	EstaVencida      bool   `json:"esta_vencida"`
}
