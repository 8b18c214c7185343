package domain

// ResumenOperacional is the coarse health snapshot served to the admin
// dashboard. Values come from the process-local metric counters, so they
// reset on restart.
type ResumenOperacional struct {
	TotalSolicitudes int64   `json:"total_solicitudes"`
	TasaError        float64 `json:"tasa_error"`
	TasaAciertoCache float64 `json:"tasa_acierto_cache"`
	ErroresBackend   int64   `json:"errores_backend"`
	SolicitudesIA    int64   `json:"solicitudes_ia"`
	Periodo          string  `json:"periodo"`
}
