package domain

// ============================================================
// Residentes
// ============================================================

// Tipos de residente.
const (
	ResidentePropietario = "propietario"
	ResidenteInquilino   = "inquilino"
	ResidenteFamiliar    = "familiar"
)

// Residente is a person living in (or owning) a unit.
type Residente struct {
	ID            int64  `json:"id"`
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
	CI            string `json:"ci"`
	Email         string `json:"email,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
	UnidadID      int64  `json:"unidad"`
	UnidadCodigo  string `json:"unidad_codigo,omitempty"`
	Tipo          string `json:"tipo"`
	Estado        string `json:"estado"` // activo, inactivo
	FechaIngreso  string `json:"fecha_ingreso,omitempty"` // YYYY-MM-DD
	RostroEnrolado bool  `json:"rostro_enrolado"`
}

// ResidenteFilter narrows the resident list.
type ResidenteFilter struct {
	Search   string
	Estado   string
	Tipo     string
	UnidadID int64
	Page     int
	PageSize int
}

// CrearResidenteRequest creates a resident.
type CrearResidenteRequest struct {
	Nombre       string `json:"nombre" validate:"required,max=100"`
	Apellido     string `json:"apellido" validate:"required,max=100"`
	CI           string `json:"ci" validate:"required,max=20"`
	Email        string `json:"email" validate:"omitempty,email"`
	Telefono     string `json:"telefono" validate:"omitempty,max=20"`
	UnidadID     int64  `json:"unidad" validate:"required,gt=0"`
	Tipo         string `json:"tipo" validate:"required,oneof=propietario inquilino familiar"`
	FechaIngreso string `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
}

// ActualizarResidenteRequest patches a resident.
type ActualizarResidenteRequest struct {
	Nombre   *string `json:"nombre,omitempty" validate:"omitempty,max=100"`
	Apellido *string `json:"apellido,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono *string `json:"telefono,omitempty" validate:"omitempty,max=20"`
	UnidadID *int64  `json:"unidad,omitempty" validate:"omitempty,gt=0"`
	Tipo     *string `json:"tipo,omitempty" validate:"omitempty,oneof=propietario inquilino familiar"`
	Estado   *string `json:"estado,omitempty" validate:"omitempty,oneof=activo inactivo"`
}

// EnrolarRostroRequest registers a resident's face with the recognition service.
type EnrolarRostroRequest struct {
	ImagenBase64 string `json:"imagen_base64" validate:"required"`
}
