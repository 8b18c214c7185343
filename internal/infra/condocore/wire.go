package condocore

import (
	"fmt"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
)

// Wire conventions of the core API: dates as YYYY-MM-DD strings,
// timestamps as RFC3339, monetary amounts as two-decimal strings.
// Mapping is total: every wire struct is a closed schema with optional
// fields as pointers, and every conversion either succeeds fully or
// returns an error, never a partially mapped struct.

const wireDate = "2006-01-02"

func parseMonto(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode %s %q: %w", field, s, err)
	}
	return d, nil
}

func parseFecha(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(wireDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode %s %q: %w", field, s, err)
	}
	return t, nil
}

// parseFechaHora accepts RFC3339 timestamps, falling back to date-only.
func parseFechaHora(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return parseFecha(field, s)
}

func montoOut(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ============================================================
// Expensas
// ============================================================

type conceptoWire struct {
	ID          int64  `json:"id,omitempty"`
	Descripcion string `json:"descripcion"`
	Monto       string `json:"monto"`
	Tipo        string `json:"tipo,omitempty"`
}

func (w conceptoWire) toDomain() (domain.ConceptoPago, error) {
	monto, err := parseMonto("concepto.monto", w.Monto)
	if err != nil {
		return domain.ConceptoPago{}, err
	}
	return domain.ConceptoPago{
		ID:          w.ID,
		Descripcion: w.Descripcion,
		Monto:       monto,
		Tipo:        w.Tipo,
	}, nil
}

func conceptosOut(in []domain.ConceptoInput) []conceptoWire {
	if len(in) == 0 {
		return nil
	}
	out := make([]conceptoWire, 0, len(in))
	for _, c := range in {
		out = append(out, conceptoWire{
			Descripcion: c.Descripcion,
			Monto:       montoOut(c.Monto),
			Tipo:        c.Tipo,
		})
	}
	return out
}

type pagoWire struct {
	ID                int64  `json:"id"`
	Expensa           int64  `json:"expensa"`
	Monto             string `json:"monto"`
	MetodoPago        string `json:"metodo_pago"`
	NumeroComprobante string `json:"numero_comprobante,omitempty"`
	FechaPago         string `json:"fecha_pago"`
	Observaciones     string `json:"observaciones,omitempty"`
}

func (w pagoWire) toDomain() (domain.Pago, error) {
	monto, err := parseMonto("pago.monto", w.Monto)
	if err != nil {
		return domain.Pago{}, err
	}
	fechaPago, err := parseFechaHora("pago.fecha_pago", w.FechaPago)
	if err != nil {
		return domain.Pago{}, err
	}
	return domain.Pago{
		ID:                w.ID,
		ExpensaID:         w.Expensa,
		Monto:             monto,
		MetodoPago:        w.MetodoPago,
		NumeroComprobante: w.NumeroComprobante,
		FechaPago:         fechaPago,
		Observaciones:     w.Observaciones,
	}, nil
}

type expensaWire struct {
	ID               int64          `json:"id"`
	Unidad           int64          `json:"unidad"`
	UnidadCodigo     string         `json:"unidad_codigo"`
	UnidadDireccion  string         `json:"unidad_direccion"`
	Periodo          string         `json:"periodo"`
	MontoBase        string         `json:"monto_base"`
	MontoAdicional   string         `json:"monto_adicional"`
	MontoTotal       string         `json:"monto_total"`
	MontoPagado      string         `json:"monto_pagado"`
	SaldoPendiente   string         `json:"saldo_pendiente"`
	Estado           string         `json:"estado"`
	FechaEmision     string         `json:"fecha_emision"`
	FechaVencimiento string         `json:"fecha_vencimiento"`
	Conceptos        []conceptoWire `json:"conceptos,omitempty"`
	Pagos            []pagoWire     `json:"pagos,omitempty"`
}

// toDomain maps a wire expensa into the domain. The server-computed totals
// (monto_total, monto_pagado, saldo_pendiente) are parsed as-is; the BFA
// never rederives them from the parts.
func (w expensaWire) toDomain() (*domain.Expensa, error) {
	e := &domain.Expensa{
		ID:              w.ID,
		UnidadID:        w.Unidad,
		UnidadCodigo:    w.UnidadCodigo,
		UnidadDireccion: w.UnidadDireccion,
		Periodo:         w.Periodo,
	}

	estado, err := domain.ParseEstado(w.Estado)
	if err != nil {
		return nil, err
	}
	e.Estado = estado

	if e.MontoBase, err = parseMonto("monto_base", w.MontoBase); err != nil {
		return nil, err
	}
	if e.MontoAdicional, err = parseMonto("monto_adicional", w.MontoAdicional); err != nil {
		return nil, err
	}
	if e.MontoTotal, err = parseMonto("monto_total", w.MontoTotal); err != nil {
		return nil, err
	}
	if e.MontoPagado, err = parseMonto("monto_pagado", w.MontoPagado); err != nil {
		return nil, err
	}
	if e.SaldoPendiente, err = parseMonto("saldo_pendiente", w.SaldoPendiente); err != nil {
		return nil, err
	}
	if e.FechaEmision, err = parseFecha("fecha_emision", w.FechaEmision); err != nil {
		return nil, err
	}
	if e.FechaVencimiento, err = parseFecha("fecha_vencimiento", w.FechaVencimiento); err != nil {
		return nil, err
	}

	for _, cw := range w.Conceptos {
		c, err := cw.toDomain()
		if err != nil {
			return nil, err
		}
		e.Conceptos = append(e.Conceptos, c)
	}
	for _, pw := range w.Pagos {
		p, err := pw.toDomain()
		if err != nil {
			return nil, err
		}
		e.Pagos = append(e.Pagos, p)
	}

	return e, nil
}

type crearExpensaWire struct {
	Unidad           int64          `json:"unidad"`
	Periodo          string         `json:"periodo"`
	MontoBase        string         `json:"monto_base"`
	MontoAdicional   string         `json:"monto_adicional"`
	FechaEmision     string         `json:"fecha_emision,omitempty"`
	FechaVencimiento string         `json:"fecha_vencimiento"`
	Conceptos        []conceptoWire `json:"conceptos,omitempty"`
}

func crearExpensaOut(req *domain.CrearExpensaRequest) crearExpensaWire {
	return crearExpensaWire{
		Unidad:           req.UnidadID,
		Periodo:          req.Periodo,
		MontoBase:        montoOut(req.MontoBase),
		MontoAdicional:   montoOut(req.MontoAdicional),
		FechaEmision:     req.FechaEmision,
		FechaVencimiento: req.FechaVencimiento,
		Conceptos:        conceptosOut(req.Conceptos),
	}
}

type actualizarExpensaWire struct {
	MontoBase        *string        `json:"monto_base,omitempty"`
	MontoAdicional   *string        `json:"monto_adicional,omitempty"`
	FechaVencimiento *string        `json:"fecha_vencimiento,omitempty"`
	Conceptos        []conceptoWire `json:"conceptos,omitempty"`
}

func actualizarExpensaOut(req *domain.ActualizarExpensaRequest) actualizarExpensaWire {
	var w actualizarExpensaWire
	if req.MontoBase != nil {
		s := montoOut(*req.MontoBase)
		w.MontoBase = &s
	}
	if req.MontoAdicional != nil {
		s := montoOut(*req.MontoAdicional)
		w.MontoAdicional = &s
	}
	w.FechaVencimiento = req.FechaVencimiento
	w.Conceptos = conceptosOut(req.Conceptos)
	return w
}

type generarMasivoWire struct {
	Periodo          string         `json:"periodo"`
	MontoBase        string         `json:"monto_base"`
	FechaVencimiento string         `json:"fecha_vencimiento"`
	Conceptos        []conceptoWire `json:"conceptos,omitempty"`
	Unidades         []int64        `json:"unidades,omitempty"`
}

// generarMasivoOut builds the bulk payload. Targeting all units means the
// unidades key is absent from the JSON entirely; an explicit selection is
// forwarded id-for-id.
func generarMasivoOut(req *domain.GenerarMasivoRequest) generarMasivoWire {
	w := generarMasivoWire{
		Periodo:          req.Periodo,
		MontoBase:        montoOut(req.MontoBase),
		FechaVencimiento: req.FechaVencimiento,
		Conceptos:        conceptosOut(req.Conceptos),
	}
	if !req.TodasLasUnidades {
		w.Unidades = req.Unidades
	}
	return w
}

type registrarPagoWire struct {
	Monto             string `json:"monto"`
	MetodoPago        string `json:"metodo_pago"`
	NumeroComprobante string `json:"numero_comprobante,omitempty"`
	FechaPago         string `json:"fecha_pago,omitempty"`
	Observaciones     string `json:"observaciones,omitempty"`
}

func registrarPagoOut(req *domain.RegistrarPagoRequest) registrarPagoWire {
	return registrarPagoWire{
		Monto:             montoOut(req.Monto),
		MetodoPago:        req.MetodoPago,
		NumeroComprobante: req.NumeroComprobante,
		FechaPago:         req.FechaPago,
		Observaciones:     req.Observaciones,
	}
}

type estadisticasWire struct {
	TotalExpensas int     `json:"total_expensas"`
	MontoTotal    string  `json:"monto_total"`
	MontoPagado   string  `json:"monto_pagado"`
	Pendientes    int     `json:"pendientes"`
	Pagadas       int     `json:"pagadas"`
	Parciales     int     `json:"parciales"`
	Vencidas      int     `json:"vencidas"`
	TasaCobro     float64 `json:"tasa_cobro"`
}

func (w estadisticasWire) toDomain() (*domain.EstadisticasExpensas, error) {
	total, err := parseMonto("monto_total", w.MontoTotal)
	if err != nil {
		return nil, err
	}
	pagado, err := parseMonto("monto_pagado", w.MontoPagado)
	if err != nil {
		return nil, err
	}
	return &domain.EstadisticasExpensas{
		TotalExpensas: w.TotalExpensas,
		MontoTotal:    total,
		MontoPagado:   pagado,
		Pendientes:    w.Pendientes,
		Pagadas:       w.Pagadas,
		Parciales:     w.Parciales,
		Vencidas:      w.Vencidas,
		TasaCobro:     w.TasaCobro,
	}, nil
}

type expensaVencidaWire struct {
	ID             int64  `json:"id"`
	Periodo        string `json:"periodo"`
	MontoTotal     string `json:"monto_total"`
	SaldoPendiente string `json:"saldo_pendiente"`
	DiasVencidos   int    `json:"dias_vencidos"`
}

type morosidadWire struct {
	UnidadID         int64                `json:"unidad_id"`
	UnidadCodigo     string               `json:"unidad_codigo"`
	UnidadDireccion  string               `json:"unidad_direccion"`
	TotalAdeudado    string               `json:"total_adeudado"`
	MesesAdeudados   int                  `json:"meses_adeudados"`
	ExpensasVencidas []expensaVencidaWire `json:"expensas_vencidas"`
}

func (w morosidadWire) toDomain() (domain.MorosidadUnidad, error) {
	total, err := parseMonto("total_adeudado", w.TotalAdeudado)
	if err != nil {
		return domain.MorosidadUnidad{}, err
	}
	m := domain.MorosidadUnidad{
		UnidadID:        w.UnidadID,
		UnidadCodigo:    w.UnidadCodigo,
		UnidadDireccion: w.UnidadDireccion,
		TotalAdeudado:   total,
		MesesAdeudados:  w.MesesAdeudados,
	}
	for _, ev := range w.ExpensasVencidas {
		montoTotal, err := parseMonto("expensa_vencida.monto_total", ev.MontoTotal)
		if err != nil {
			return domain.MorosidadUnidad{}, err
		}
		saldo, err := parseMonto("expensa_vencida.saldo_pendiente", ev.SaldoPendiente)
		if err != nil {
			return domain.MorosidadUnidad{}, err
		}
		m.ExpensasVencidas = append(m.ExpensasVencidas, domain.ExpensaVencidaResumen{
			ID:             ev.ID,
			Periodo:        ev.Periodo,
			MontoTotal:     montoTotal,
			SaldoPendiente: saldo,
			DiasVencidos:   ev.DiasVencidos,
		})
	}
	return m, nil
}

// ============================================================
// Multas
// ============================================================

type multaWire struct {
	ID               int64  `json:"id"`
	Residente        int64  `json:"residente"`
	ResidenteNombre  string `json:"residente_nombre"`
	Unidad           int64  `json:"unidad"`
	UnidadCodigo     string `json:"unidad_codigo"`
	Tipo             string `json:"tipo"`
	Descripcion      string `json:"descripcion"`
	Monto            string `json:"monto"`
	RecargoMora      string `json:"recargo_mora"`
	MontoTotal       string `json:"monto_total"`
	Estado           string `json:"estado"`
	FechaEmision     string `json:"fecha_emision"`
	FechaVencimiento string `json:"fecha_vencimiento"`
}

func (w multaWire) toDomain() (*domain.Multa, error) {
	m := &domain.Multa{
		ID:              w.ID,
		ResidenteID:     w.Residente,
		ResidenteNombre: w.ResidenteNombre,
		UnidadID:        w.Unidad,
		UnidadCodigo:    w.UnidadCodigo,
		Tipo:            w.Tipo,
		Descripcion:     w.Descripcion,
		Estado:          w.Estado,
	}
	var err error
	if m.Monto, err = parseMonto("monto", w.Monto); err != nil {
		return nil, err
	}
	if m.RecargoMora, err = parseMonto("recargo_mora", w.RecargoMora); err != nil {
		return nil, err
	}
	if m.MontoTotal, err = parseMonto("monto_total", w.MontoTotal); err != nil {
		return nil, err
	}
	if m.FechaEmision, err = parseFecha("fecha_emision", w.FechaEmision); err != nil {
		return nil, err
	}
	if m.FechaVencimiento, err = parseFecha("fecha_vencimiento", w.FechaVencimiento); err != nil {
		return nil, err
	}
	return m, nil
}

type crearMultaWire struct {
	Residente        int64  `json:"residente"`
	Unidad           int64  `json:"unidad"`
	Tipo             string `json:"tipo"`
	Descripcion      string `json:"descripcion"`
	Monto            string `json:"monto"`
	FechaVencimiento string `json:"fecha_vencimiento"`
}

func crearMultaOut(req *domain.CrearMultaRequest) crearMultaWire {
	return crearMultaWire{
		Residente:        req.ResidenteID,
		Unidad:           req.UnidadID,
		Tipo:             req.Tipo,
		Descripcion:      req.Descripcion,
		Monto:            montoOut(req.Monto),
		FechaVencimiento: req.FechaVencimiento,
	}
}

type actualizarMultaWire struct {
	Tipo             *string `json:"tipo,omitempty"`
	Descripcion      *string `json:"descripcion,omitempty"`
	Monto            *string `json:"monto,omitempty"`
	FechaVencimiento *string `json:"fecha_vencimiento,omitempty"`
}

func actualizarMultaOut(req *domain.ActualizarMultaRequest) actualizarMultaWire {
	w := actualizarMultaWire{
		Tipo:             req.Tipo,
		Descripcion:      req.Descripcion,
		FechaVencimiento: req.FechaVencimiento,
	}
	if req.Monto != nil {
		s := montoOut(*req.Monto)
		w.Monto = &s
	}
	return w
}

// ============================================================
// Mantenimiento
// ============================================================

type tareaWire struct {
	ID                  int64  `json:"id"`
	Titulo              string `json:"titulo"`
	Descripcion         string `json:"descripcion"`
	Tipo                string `json:"tipo"`
	Prioridad           string `json:"prioridad"`
	Estado              string `json:"estado"`
	PersonalAsignado    int64  `json:"personal_asignado"`
	PersonalNombre      string `json:"personal_nombre"`
	UbicacionEspecifica string `json:"ubicacion_especifica"`
	FechaCreacion       string `json:"fecha_creacion"`
	FechaLimite         string `json:"fecha_limite"`
	FechaInicio         string `json:"fecha_inicio"`
	FechaCompletado     string `json:"fecha_completado"`
	PresupuestoEstimado string `json:"presupuesto_estimado"`
	CostoReal           string `json:"costo_real"`
	Observaciones       string `json:"observaciones"`
}

func (w tareaWire) toDomain() (*domain.TareaMantenimiento, error) {
	t := &domain.TareaMantenimiento{
		ID:                  w.ID,
		Titulo:              w.Titulo,
		Descripcion:         w.Descripcion,
		Tipo:                w.Tipo,
		Prioridad:           w.Prioridad,
		Estado:              w.Estado,
		PersonalAsignadoID:  w.PersonalAsignado,
		PersonalNombre:      w.PersonalNombre,
		UbicacionEspecifica: w.UbicacionEspecifica,
		Observaciones:       w.Observaciones,
	}
	var err error
	if t.FechaCreacion, err = parseFechaHora("fecha_creacion", w.FechaCreacion); err != nil {
		return nil, err
	}
	if t.FechaLimite, err = parseFecha("fecha_limite", w.FechaLimite); err != nil {
		return nil, err
	}
	if t.FechaInicio, err = parseFechaHora("fecha_inicio", w.FechaInicio); err != nil {
		return nil, err
	}
	if t.FechaCompletado, err = parseFechaHora("fecha_completado", w.FechaCompletado); err != nil {
		return nil, err
	}
	if t.PresupuestoEstimado, err = parseMonto("presupuesto_estimado", w.PresupuestoEstimado); err != nil {
		return nil, err
	}
	if t.CostoReal, err = parseMonto("costo_real", w.CostoReal); err != nil {
		return nil, err
	}
	return t, nil
}

type crearTareaWire struct {
	Titulo              string `json:"titulo"`
	Descripcion         string `json:"descripcion"`
	Tipo                string `json:"tipo"`
	Prioridad           string `json:"prioridad,omitempty"`
	PersonalAsignado    int64  `json:"personal_asignado,omitempty"`
	UbicacionEspecifica string `json:"ubicacion_especifica,omitempty"`
	FechaLimite         string `json:"fecha_limite"`
	PresupuestoEstimado string `json:"presupuesto_estimado"`
}

func crearTareaOut(req *domain.CrearTareaRequest) crearTareaWire {
	return crearTareaWire{
		Titulo:              req.Titulo,
		Descripcion:         req.Descripcion,
		Tipo:                req.Tipo,
		Prioridad:           req.Prioridad,
		PersonalAsignado:    req.PersonalAsignadoID,
		UbicacionEspecifica: req.UbicacionEspecifica,
		FechaLimite:         req.FechaLimite,
		PresupuestoEstimado: montoOut(req.PresupuestoEstimado),
	}
}

type actualizarTareaWire struct {
	Titulo              *string `json:"titulo,omitempty"`
	Descripcion         *string `json:"descripcion,omitempty"`
	Prioridad           *string `json:"prioridad,omitempty"`
	PersonalAsignado    *int64  `json:"personal_asignado,omitempty"`
	UbicacionEspecifica *string `json:"ubicacion_especifica,omitempty"`
	FechaLimite         *string `json:"fecha_limite,omitempty"`
	PresupuestoEstimado *string `json:"presupuesto_estimado,omitempty"`
}

func actualizarTareaOut(req *domain.ActualizarTareaRequest) actualizarTareaWire {
	w := actualizarTareaWire{
		Titulo:              req.Titulo,
		Descripcion:         req.Descripcion,
		Prioridad:           req.Prioridad,
		PersonalAsignado:    req.PersonalAsignadoID,
		UbicacionEspecifica: req.UbicacionEspecifica,
		FechaLimite:         req.FechaLimite,
	}
	if req.PresupuestoEstimado != nil {
		s := montoOut(*req.PresupuestoEstimado)
		w.PresupuestoEstimado = &s
	}
	return w
}

type completarTareaWire struct {
	CostoReal     *string `json:"costo_real,omitempty"`
	Observaciones string  `json:"observaciones,omitempty"`
}

func completarTareaOut(req *domain.CompletarTareaRequest) completarTareaWire {
	w := completarTareaWire{Observaciones: req.Observaciones}
	if req.CostoReal != nil {
		s := montoOut(*req.CostoReal)
		w.CostoReal = &s
	}
	return w
}
