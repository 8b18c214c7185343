package domain

// ============================================================
// Unidades habitacionales
// ============================================================

// Estados of a housing unit.
const (
	UnidadOcupada       = "ocupado"
	UnidadDesocupada    = "desocupado"
	UnidadMantenimiento = "mantenimiento"
)

// Unidad is a housing unit of the condominium. Units are the billing
// targets for expensas and the anchors for residents and vehicles.
type Unidad struct {
	ID          int64  `json:"id"`
	Codigo      string `json:"codigo"`
	Direccion   string `json:"direccion"`
	Torre       string `json:"torre,omitempty"`
	Piso        int    `json:"piso,omitempty"`
	Estado      string `json:"estado"`
	Propietario string `json:"propietario,omitempty"`
}

// UnidadFilter narrows the unit list.
type UnidadFilter struct {
	Search   string
	Estado   string
	Page     int
	PageSize int
}

// CrearUnidadRequest creates a unit.
type CrearUnidadRequest struct {
	Codigo    string `json:"codigo" validate:"required,max=20"`
	Direccion string `json:"direccion" validate:"required,max=200"`
	Torre     string `json:"torre" validate:"omitempty,max=50"`
	Piso      int    `json:"piso" validate:"omitempty,gte=0"`
	Estado    string `json:"estado" validate:"omitempty,oneof=ocupado desocupado mantenimiento"`
}

// ActualizarUnidadRequest patches a unit; nil fields are left untouched.
type ActualizarUnidadRequest struct {
	Codigo    *string `json:"codigo,omitempty" validate:"omitempty,max=20"`
	Direccion *string `json:"direccion,omitempty" validate:"omitempty,max=200"`
	Torre     *string `json:"torre,omitempty" validate:"omitempty,max=50"`
	Piso      *int    `json:"piso,omitempty" validate:"omitempty,gte=0"`
	Estado    *string `json:"estado,omitempty" validate:"omitempty,oneof=ocupado desocupado mantenimiento"`
}
