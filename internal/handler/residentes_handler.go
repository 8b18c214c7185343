package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Residentes
// ============================================================

func listResidentesHandler(svc *service.ResidentesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/residentes")
		defer span.End()

		var filter domain.ResidenteFilter
		filter.Page, filter.PageSize = parsePagination(r)
		q := r.URL.Query()
		filter.Search = q.Get("search")
		filter.Estado = q.Get("estado")
		filter.Tipo = q.Get("tipo")
		if v := q.Get("unidad"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
				filter.UnidadID = id
			}
		}

		residentes, err := svc.ListResidentes(ctx, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, residentes)
	}
}

func getResidenteHandler(svc *service.ResidentesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/residentes/{residenteId}")
		defer span.End()

		id, err := parseIDParam(r, "residenteId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		residente, err := svc.GetResidente(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, residente)
	}
}

func crearResidenteHandler(svc *service.ResidentesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/residentes")
		defer span.End()

		var req domain.CrearResidenteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		residente, err := svc.CrearResidente(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, residente)
	}
}

func actualizarResidenteHandler(svc *service.ResidentesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/residentes/{residenteId}")
		defer span.End()

		id, err := parseIDParam(r, "residenteId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.ActualizarResidenteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		residente, err := svc.ActualizarResidente(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, residente)
	}
}

func eliminarResidenteHandler(svc *service.ResidentesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/residentes/{residenteId}")
		defer span.End()

		id, err := parseIDParam(r, "residenteId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.EliminarResidente(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func enrolarRostroHandler(svc *service.ResidentesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/residentes/{residenteId}/rostro")
		defer span.End()

		id, err := parseIDParam(r, "residenteId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.EnrolarRostroRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		result, err := svc.EnrolarRostro(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func verificarRostroHandler(svc *service.ResidentesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/seguridad/rostro/verificar")
		defer span.End()

		var req domain.FaceVerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		result, err := svc.VerificarRostro(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
