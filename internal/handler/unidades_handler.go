package handler

import (
	"encoding/json"
	"net/http"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Unidades habitacionales
// ============================================================

func listUnidadesHandler(svc *service.UnidadesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/unidades")
		defer span.End()

		var filter domain.UnidadFilter
		filter.Page, filter.PageSize = parsePagination(r)
		filter.Search = r.URL.Query().Get("search")
		filter.Estado = r.URL.Query().Get("estado")

		unidades, err := svc.ListUnidades(ctx, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, unidades)
	}
}

func getUnidadHandler(svc *service.UnidadesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/unidades/{unidadId}")
		defer span.End()

		id, err := parseIDParam(r, "unidadId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		unidad, err := svc.GetUnidad(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, unidad)
	}
}

func crearUnidadHandler(svc *service.UnidadesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/unidades")
		defer span.End()

		var req domain.CrearUnidadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		unidad, err := svc.CrearUnidad(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, unidad)
	}
}

func actualizarUnidadHandler(svc *service.UnidadesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/unidades/{unidadId}")
		defer span.End()

		id, err := parseIDParam(r, "unidadId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.ActualizarUnidadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		unidad, err := svc.ActualizarUnidad(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, unidad)
	}
}

func eliminarUnidadHandler(svc *service.UnidadesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/unidades/{unidadId}")
		defer span.End()

		id, err := parseIDParam(r, "unidadId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.EliminarUnidad(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
