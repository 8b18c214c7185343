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
// Multas
// ============================================================

func listMultasHandler(svc *service.MultasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/multas")
		defer span.End()

		var filter domain.MultaFilter
		filter.Page, filter.PageSize = parsePagination(r)
		q := r.URL.Query()
		filter.Search = q.Get("search")
		filter.Estado = q.Get("estado")
		filter.Tipo = q.Get("tipo")
		if v := q.Get("residente"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
				filter.ResidenteID = id
			}
		}
		if v := q.Get("unidad"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
				filter.UnidadID = id
			}
		}

		multas, err := svc.ListMultas(ctx, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		now := time.Now()
		items := make([]domain.MultaAPIResponse, 0, len(multas))
		for i := range multas {
			items = append(items, formatMulta(&multas[i], now))
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func getMultaHandler(svc *service.MultasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/multas/{multaId}")
		defer span.End()

		id, err := parseIDParam(r, "multaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		multa, err := svc.GetMulta(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatMulta(multa, time.Now()))
	}
}

func crearMultaHandler(svc *service.MultasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/multas")
		defer span.End()

		var req domain.CrearMultaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		multa, err := svc.CrearMulta(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, formatMulta(multa, time.Now()))
	}
}

func actualizarMultaHandler(svc *service.MultasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/multas/{multaId}")
		defer span.End()

		id, err := parseIDParam(r, "multaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.ActualizarMultaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		multa, err := svc.ActualizarMulta(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatMulta(multa, time.Now()))
	}
}

func eliminarMultaHandler(svc *service.MultasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/multas/{multaId}")
		defer span.End()

		id, err := parseIDParam(r, "multaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.EliminarMulta(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func pagarMultaHandler(svc *service.MultasService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/multas/{multaId}/pagar")
		defer span.End()

		id, err := parseIDParam(r, "multaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.PagarMultaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		multa, err := svc.PagarMulta(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatMulta(multa, time.Now()))
	}
}

func formatMulta(m *domain.Multa, now time.Time) domain.MultaAPIResponse {
	return domain.MultaAPIResponse{
		ID:               m.ID,
		ResidenteID:      m.ResidenteID,
		ResidenteNombre:  m.ResidenteNombre,
		UnidadID:         m.UnidadID,
		UnidadCodigo:     m.UnidadCodigo,
		Tipo:             m.Tipo,
		Descripcion:      m.Descripcion,
		Monto:            montoOut(m.Monto),
		RecargoMora:      montoOut(m.RecargoMora),
		MontoTotal:       montoOut(m.MontoTotal),
		Estado:           m.Estado,
		FechaEmision:     fechaOut(m.FechaEmision),
		FechaVencimiento: fechaOut(m.FechaVencimiento),
		EstaVencida:      m.EstaVencida(now),
	}
}
