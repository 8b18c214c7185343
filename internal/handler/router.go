package handler

import (
	"net/http"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"
	"github.com/grupocondor/condo-admin-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services groups the service-layer dependencies the router wires up.
type Services struct {
	Expensas   *service.ExpensasService
	Unidades   *service.UnidadesService
	Residentes *service.ResidentesService
	Multas     *service.MultasService
	Vehiculos  *service.VehiculosService
	Tareas     *service.MantenimientoService
	Verifier   *service.TokenVerifier
}

// NewRouter creates the HTTP router with all routes and middleware.
// Everything under /v1 requires a valid admin token.
func NewRouter(svcs Services, metrics *observability.Metrics, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger, metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(JWTAuthMiddleware(svcs.Verifier, logger))

		// =============================================
		// Expensas
		// =============================================
		r.Get("/expensas", listExpensasHandler(svcs.Expensas, logger))
		r.Post("/expensas", crearExpensaHandler(svcs.Expensas, logger))
		r.Post("/expensas/generar-masivo", generarMasivoHandler(svcs.Expensas, logger))
		r.Get("/expensas/estadisticas", estadisticasHandler(svcs.Expensas, logger))
		r.Get("/expensas/morosidad", morosidadHandler(svcs.Expensas, logger))
		r.Get("/expensas/dashboard", dashboardHandler(svcs.Expensas, logger))
		r.Get("/expensas/{expensaId}", getExpensaHandler(svcs.Expensas, logger))
		r.Patch("/expensas/{expensaId}", actualizarExpensaHandler(svcs.Expensas, logger))
		r.Delete("/expensas/{expensaId}", eliminarExpensaHandler(svcs.Expensas, logger))
		r.Post("/expensas/{expensaId}/pagos", registrarPagoHandler(svcs.Expensas, logger))
		r.Get("/expensas/{expensaId}/comprobante", comprobanteHandler(svcs.Expensas, logger))

		// =============================================
		// Unidades
		// =============================================
		r.Get("/unidades", listUnidadesHandler(svcs.Unidades, logger))
		r.Post("/unidades", crearUnidadHandler(svcs.Unidades, logger))
		r.Get("/unidades/{unidadId}", getUnidadHandler(svcs.Unidades, logger))
		r.Patch("/unidades/{unidadId}", actualizarUnidadHandler(svcs.Unidades, logger))
		r.Delete("/unidades/{unidadId}", eliminarUnidadHandler(svcs.Unidades, logger))

		// =============================================
		// Residentes
		// =============================================
		r.Get("/residentes", listResidentesHandler(svcs.Residentes, logger))
		r.Post("/residentes", crearResidenteHandler(svcs.Residentes, logger))
		r.Get("/residentes/{residenteId}", getResidenteHandler(svcs.Residentes, logger))
		r.Patch("/residentes/{residenteId}", actualizarResidenteHandler(svcs.Residentes, logger))
		r.Delete("/residentes/{residenteId}", eliminarResidenteHandler(svcs.Residentes, logger))
		r.Post("/residentes/{residenteId}/rostro", enrolarRostroHandler(svcs.Residentes, logger))

		// =============================================
		// Multas
		// =============================================
		r.Get("/multas", listMultasHandler(svcs.Multas, logger))
		r.Post("/multas", crearMultaHandler(svcs.Multas, logger))
		r.Get("/multas/{multaId}", getMultaHandler(svcs.Multas, logger))
		r.Patch("/multas/{multaId}", actualizarMultaHandler(svcs.Multas, logger))
		r.Delete("/multas/{multaId}", eliminarMultaHandler(svcs.Multas, logger))
		r.Post("/multas/{multaId}/pagar", pagarMultaHandler(svcs.Multas, logger))

		// =============================================
		// Vehiculos
		// =============================================
		r.Get("/vehiculos", listVehiculosHandler(svcs.Vehiculos, logger))
		r.Post("/vehiculos", crearVehiculoHandler(svcs.Vehiculos, logger))
		r.Get("/vehiculos/{vehiculoId}", getVehiculoHandler(svcs.Vehiculos, logger))
		r.Patch("/vehiculos/{vehiculoId}", actualizarVehiculoHandler(svcs.Vehiculos, logger))
		r.Delete("/vehiculos/{vehiculoId}", eliminarVehiculoHandler(svcs.Vehiculos, logger))

		// =============================================
		// Mantenimiento
		// =============================================
		r.Get("/mantenimiento/tareas", listTareasHandler(svcs.Tareas, logger))
		r.Post("/mantenimiento/tareas", crearTareaHandler(svcs.Tareas, logger))
		r.Get("/mantenimiento/tareas/{tareaId}", getTareaHandler(svcs.Tareas, logger))
		r.Patch("/mantenimiento/tareas/{tareaId}", actualizarTareaHandler(svcs.Tareas, logger))
		r.Delete("/mantenimiento/tareas/{tareaId}", eliminarTareaHandler(svcs.Tareas, logger))
		r.Post("/mantenimiento/tareas/{tareaId}/iniciar", iniciarTareaHandler(svcs.Tareas, logger))
		r.Post("/mantenimiento/tareas/{tareaId}/completar", completarTareaHandler(svcs.Tareas, logger))
		r.Post("/mantenimiento/tareas/{tareaId}/cancelar", cancelarTareaHandler(svcs.Tareas, logger))

		// =============================================
		// Seguridad (reconocimiento)
		// =============================================
		r.Post("/seguridad/rostro/verificar", verificarRostroHandler(svcs.Residentes, logger))
		r.Post("/seguridad/placa/reconocer", reconocerPlacaHandler(svcs.Vehiculos, logger))

		// =============================================
		// Operacion
		// =============================================
		r.Get("/operacion/resumen", resumenOperacionalHandler(metrics, logger))
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func resumenOperacionalHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/operacion/resumen")
		defer span.End()

		writeJSON(w, http.StatusOK, metrics.GetResumenOperacional())
	}
}
