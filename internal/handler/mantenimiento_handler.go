package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Mantenimiento: maintenance tasks
// ============================================================

func listTareasHandler(svc *service.MantenimientoService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/mantenimiento/tareas")
		defer span.End()

		var filter domain.TareaFilter
		filter.Page, filter.PageSize = parsePagination(r)
		q := r.URL.Query()
		filter.Search = q.Get("search")
		filter.Estado = q.Get("estado")
		filter.Tipo = q.Get("tipo")
		filter.Prioridad = q.Get("prioridad")
		filter.Vencidas = q.Get("vencidas") == "true"

		tareas, err := svc.ListTareas(ctx, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		now := time.Now()
		items := make([]domain.TareaAPIResponse, 0, len(tareas))
		for i := range tareas {
			items = append(items, formatTarea(&tareas[i], now))
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func getTareaHandler(svc *service.MantenimientoService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/mantenimiento/tareas/{tareaId}")
		defer span.End()

		id, err := parseIDParam(r, "tareaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		tarea, err := svc.GetTarea(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatTarea(tarea, time.Now()))
	}
}

func crearTareaHandler(svc *service.MantenimientoService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/mantenimiento/tareas")
		defer span.End()

		var req domain.CrearTareaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		tarea, err := svc.CrearTarea(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, formatTarea(tarea, time.Now()))
	}
}

func actualizarTareaHandler(svc *service.MantenimientoService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/mantenimiento/tareas/{tareaId}")
		defer span.End()

		id, err := parseIDParam(r, "tareaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.ActualizarTareaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		tarea, err := svc.ActualizarTarea(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatTarea(tarea, time.Now()))
	}
}

func eliminarTareaHandler(svc *service.MantenimientoService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/mantenimiento/tareas/{tareaId}")
		defer span.End()

		id, err := parseIDParam(r, "tareaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.EliminarTarea(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func iniciarTareaHandler(svc *service.MantenimientoService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/mantenimiento/tareas/{tareaId}/iniciar")
		defer span.End()

		id, err := parseIDParam(r, "tareaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		tarea, err := svc.IniciarTarea(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatTarea(tarea, time.Now()))
	}
}

func completarTareaHandler(svc *service.MantenimientoService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/mantenimiento/tareas/{tareaId}/completar")
		defer span.End()

		id, err := parseIDParam(r, "tareaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.CompletarTareaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		tarea, err := svc.CompletarTarea(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatTarea(tarea, time.Now()))
	}
}

func cancelarTareaHandler(svc *service.MantenimientoService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/mantenimiento/tareas/{tareaId}/cancelar")
		defer span.End()

		id, err := parseIDParam(r, "tareaId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.CancelarTareaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "cuerpo de solicitud invalido")
			return
		}

		tarea, err := svc.CancelarTarea(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, formatTarea(tarea, time.Now()))
	}
}

func formatTarea(t *domain.TareaMantenimiento, now time.Time) domain.TareaAPIResponse {
	resp := domain.TareaAPIResponse{
		ID:                  t.ID,
		Titulo:              t.Titulo,
		Descripcion:         t.Descripcion,
		Tipo:                t.Tipo,
		Prioridad:           t.Prioridad,
		Estado:              t.Estado,
		PersonalAsignadoID:  t.PersonalAsignadoID,
		PersonalNombre:      t.PersonalNombre,
		UbicacionEspecifica: t.UbicacionEspecifica,
		FechaLimite:         fechaOut(t.FechaLimite),
		PresupuestoEstimado: montoOut(t.PresupuestoEstimado),
		CostoReal:           montoOut(t.CostoReal),
		EstaVencida:         t.EstaVencida(now),
		DiasRestantes:       t.DiasRestantes(now),
		Observaciones:       t.Observaciones,
	}
	if !t.FechaCreacion.IsZero() {
		resp.FechaCreacion = t.FechaCreacion.Format(time.RFC3339)
	}
	if !t.FechaInicio.IsZero() {
		resp.FechaInicio = t.FechaInicio.Format(time.RFC3339)
	}
	if !t.FechaCompletado.IsZero() {
		resp.FechaCompletado = t.FechaCompletado.Format(time.RFC3339)
	}
	return resp
}
