package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Expensas: billing
// ============================================================

func expensaFilterFromQuery(r *http.Request) domain.ExpensaFilter {
	filter := domain.NewExpensaFilter()
	filter.Page, filter.PageSize = parsePagination(r)

	q := r.URL.Query()
	filter.Search = q.Get("search")
	filter.Periodo = q.Get("periodo")
	if v := q.Get("estado"); v != "" {
		if estado, err := domain.ParseEstado(v); err == nil {
			filter.Estado = estado
		}
	}
	if v := q.Get("unidad"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			filter.UnidadID = id
		}
	}
	filter.Vencidas = q.Get("vencidas") == "true"
	return filter
}

func listExpensasHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/expensas")
		defer span.End()

		expensas, err := svc.ListExpensas(ctx, expensaFilterFromQuery(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		now := time.Now()
		items := make([]domain.ExpensaListItem, 0, len(expensas))
		for i := range expensas {
			items = append(items, formatExpensaListItem(&expensas[i], now))
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func getExpensaHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/expensas/{expensaId}")
		defer span.End()

		id, err := parseIDParam(r, "expensaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		expensa, err := svc.GetExpensa(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatExpensa(expensa, time.Now()))
	}
}

func crearExpensaHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/expensas")
		defer span.End()

		var req domain.CrearExpensaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		expensa, err := svc.CrearExpensa(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, formatExpensa(expensa, time.Now()))
	}
}

func actualizarExpensaHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/expensas/{expensaId}")
		defer span.End()

		id, err := parseIDParam(r, "expensaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.ActualizarExpensaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		expensa, err := svc.ActualizarExpensa(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatExpensa(expensa, time.Now()))
	}
}

func eliminarExpensaHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/expensas/{expensaId}")
		defer span.End()

		id, err := parseIDParam(r, "expensaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.EliminarExpensa(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func generarMasivoHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/expensas/generar-masivo")
		defer span.End()

		var req domain.GenerarMasivoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		result, err := svc.GenerarMasivo(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func registrarPagoHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/expensas/{expensaId}/pagos")
		defer span.End()

		id, err := parseIDParam(r, "expensaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.RegistrarPagoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		pago, expensa, err := svc.RegistrarPago(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp := domain.RegistrarPagoAPIResponse{
			Mensaje: "pago registrado",
			Pago:    formatPago(*pago),
		}
		if expensa != nil {
			resp.Expensa = formatExpensa(expensa, time.Now())
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func comprobanteHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/expensas/{expensaId}/comprobante")
		defer span.End()

		id, err := parseIDParam(r, "expensaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		comp, err := svc.GetComprobante(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"folio":            comp.Folio,
			"expensa":          formatExpensa(comp.Expensa, time.Now()),
			"unidad":           comp.Unidad,
			"fecha_generacion": comp.FechaGeneracion.Format(time.RFC3339),
		})
	}
}

func estadisticasHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/expensas/estadisticas")
		defer span.End()

		stats, err := svc.GetEstadisticas(ctx, r.URL.Query().Get("periodo"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatEstadisticas(stats))
	}
}

func morosidadHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/expensas/morosidad")
		defer span.End()

		report, err := svc.GetMorosidad(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatMorosidad(report))
	}
}

func dashboardHandler(svc *service.ExpensasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/expensas/dashboard")
		defer span.End()

		dash, err := svc.GetDashboard(ctx, r.URL.Query().Get("periodo"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.DashboardAPIResponse{
			Periodo:         dash.Periodo,
			Estadisticas:    formatEstadisticas(dash.Estadisticas),
			Morosidad:       formatMorosidad(dash.Morosidad),
			UnidadesMorosas: dash.UnidadesMorosas,
		})
	}
}

// ============================================================
// Render helpers
// ============================================================

// formatExpensa builds the SPA view of an expensa. esta_vencida and
// dias_vencidos are computed against the current clock on every render.
func formatExpensa(e *domain.Expensa, now time.Time) *domain.ExpensaAPIResponse {
	resp := &domain.ExpensaAPIResponse{
		ID:               e.ID,
		UnidadID:         e.UnidadID,
		UnidadCodigo:     e.UnidadCodigo,
		UnidadDireccion:  e.UnidadDireccion,
		Periodo:          e.Periodo,
		MontoBase:        montoOut(e.MontoBase),
		MontoAdicional:   montoOut(e.MontoAdicional),
		MontoTotal:       montoOut(e.MontoTotal),
		MontoPagado:      montoOut(e.MontoPagado),
		SaldoPendiente:   montoOut(e.SaldoPendiente),
		Estado:           e.Estado,
		FechaEmision:     fechaOut(e.FechaEmision),
		FechaVencimiento: fechaOut(e.FechaVencimiento),
		EstaVencida:      e.EstaVencida(now),
		DiasVencidos:     e.DiasVencidos(now),
		Conceptos:        make([]domain.ConceptoAPIResponse, 0, len(e.Conceptos)),
		Pagos:            make([]domain.PagoAPIResponse, 0, len(e.Pagos)),
	}
	for _, c := range e.Conceptos {
		resp.Conceptos = append(resp.Conceptos, domain.ConceptoAPIResponse{
			ID:          c.ID,
			Descripcion: c.Descripcion,
			Monto:       montoOut(c.Monto),
			Tipo:        c.Tipo,
		})
	}
	for _, p := range e.Pagos {
		resp.Pagos = append(resp.Pagos, formatPago(p))
	}
	return resp
}

func formatExpensaListItem(e *domain.Expensa, now time.Time) domain.ExpensaListItem {
	return domain.ExpensaListItem{
		ID:               e.ID,
		UnidadID:         e.UnidadID,
		UnidadCodigo:     e.UnidadCodigo,
		Periodo:          e.Periodo,
		MontoTotal:       montoOut(e.MontoTotal),
		MontoPagado:      montoOut(e.MontoPagado),
		SaldoPendiente:   montoOut(e.SaldoPendiente),
		Estado:           e.Estado,
		FechaVencimiento: fechaOut(e.FechaVencimiento),
		EstaVencida:      e.EstaVencida(now),
	}
}

func formatEstadisticas(s *domain.EstadisticasExpensas) *domain.EstadisticasAPIResponse {
	if s == nil {
		return nil
	}
	return &domain.EstadisticasAPIResponse{
		TotalExpensas: s.TotalExpensas,
		MontoTotal:    montoOut(s.MontoTotal),
		MontoPagado:   montoOut(s.MontoPagado),
		Pendientes:    s.Pendientes,
		Pagadas:       s.Pagadas,
		Parciales:     s.Parciales,
		Vencidas:      s.Vencidas,
		TasaCobro:     s.TasaCobro,
	}
}

func formatMorosidad(rows []domain.MorosidadUnidad) []domain.MorosidadAPIResponse {
	out := make([]domain.MorosidadAPIResponse, 0, len(rows))
	for _, m := range rows {
		row := domain.MorosidadAPIResponse{
			UnidadID:         m.UnidadID,
			UnidadCodigo:     m.UnidadCodigo,
			UnidadDireccion:  m.UnidadDireccion,
			TotalAdeudado:    montoOut(m.TotalAdeudado),
			MesesAdeudados:   m.MesesAdeudados,
			ExpensasVencidas: make([]domain.ExpensaVencidaAPIResponse, 0, len(m.ExpensasVencidas)),
		}
		for _, v := range m.ExpensasVencidas {
			row.ExpensasVencidas = append(row.ExpensasVencidas, domain.ExpensaVencidaAPIResponse{
				ID:             v.ID,
				Periodo:        v.Periodo,
				MontoTotal:     montoOut(v.MontoTotal),
				SaldoPendiente: montoOut(v.SaldoPendiente),
				DiasVencidos:   v.DiasVencidos,
			})
		}
		out = append(out, row)
	}
	return out
}

func formatPago(p domain.Pago) domain.PagoAPIResponse {
	return domain.PagoAPIResponse{
		ID:                p.ID,
		Monto:             montoOut(p.Monto),
		MetodoPago:        p.MetodoPago,
		NumeroComprobante: p.NumeroComprobante,
		FechaPago:         fechaOut(p.FechaPago),
		Observaciones:     p.Observaciones,
	}
}
