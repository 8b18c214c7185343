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
// Vehiculos
// ============================================================

func listVehiculosHandler(svc *service.VehiculosService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/vehiculos")
		defer span.End()

		var filter domain.VehiculoFilter
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

		vehiculos, err := svc.ListVehiculos(ctx, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vehiculos)
	}
}

func getVehiculoHandler(svc *service.VehiculosService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/vehiculos/{vehiculoId}")
		defer span.End()

		id, err := parseIDParam(r, "vehiculoId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		vehiculo, err := svc.GetVehiculo(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vehiculo)
	}
}

func crearVehiculoHandler(svc *service.VehiculosService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/vehiculos")
		defer span.End()

		var req domain.CrearVehiculoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		vehiculo, err := svc.CrearVehiculo(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, vehiculo)
	}
}

func actualizarVehiculoHandler(svc *service.VehiculosService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/vehiculos/{vehiculoId}")
		defer span.End()

		id, err := parseIDParam(r, "vehiculoId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.ActualizarVehiculoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		vehiculo, err := svc.ActualizarVehiculo(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vehiculo)
	}
}

func eliminarVehiculoHandler(svc *service.VehiculosService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/vehiculos/{vehiculoId}")
		defer span.End()

		id, err := parseIDParam(r, "vehiculoId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.EliminarVehiculo(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func reconocerPlacaHandler(svc *service.VehiculosService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/seguridad/placa/reconocer")
		defer span.End()

		var req domain.PlateReadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		result, err := svc.ReconocerPlaca(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
