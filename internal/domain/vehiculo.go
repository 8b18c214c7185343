package domain

// ============================================================
// Vehículos
// ============================================================

// Tipos de vehículo.
const (
	VehiculoAuto      = "auto"
	VehiculoMoto      = "moto"
	VehiculoCamioneta = "camioneta"
	VehiculoSUV       = "suv"
	VehiculoOtro      = "otro"
)

// Vehiculo is a registered vehicle authorized to enter the condominium.
type Vehiculo struct {
	ID              int64  `json:"id"`
	Placa           string `json:"placa"` // formato boliviano: 1234ABC
	Marca           string `json:"marca,omitempty"`
	Modelo          string `json:"modelo,omitempty"`
	Color           string `json:"color,omitempty"`
	Tipo            string `json:"tipo"`
	ResidenteID     int64  `json:"residente"`
	ResidenteNombre string `json:"residente_nombre,omitempty"`
	UnidadID        int64  `json:"unidad"`
	UnidadCodigo    string `json:"unidad_codigo,omitempty"`
	Estado          string `json:"estado"` // activo, inactivo, suspendido
}

// VehiculoFilter narrows the vehicle list.
type VehiculoFilter struct {
	Search      string
	Estado      string
	Tipo        string
	ResidenteID int64
	Page        int
	PageSize    int
}

// CrearVehiculoRequest registers a vehicle.
type CrearVehiculoRequest struct {
	Placa       string `json:"placa" validate:"required,max=10"`
	Marca       string `json:"marca" validate:"omitempty,max=50"`
	Modelo      string `json:"modelo" validate:"omitempty,max=50"`
	Color       string `json:"color" validate:"omitempty,max=30"`
	Tipo        string `json:"tipo" validate:"required,oneof=auto moto camioneta suv otro"`
	ResidenteID int64  `json:"residente" validate:"required,gt=0"`
	UnidadID    int64  `json:"unidad" validate:"required,gt=0"`
}

// ActualizarVehiculoRequest patches a vehicle.
type ActualizarVehiculoRequest struct {
	Marca  *string `json:"marca,omitempty" validate:"omitempty,max=50"`
	Modelo *string `json:"modelo,omitempty" validate:"omitempty,max=50"`
	Color  *string `json:"color,omitempty" validate:"omitempty,max=30"`
	Tipo   *string `json:"tipo,omitempty" validate:"omitempty,oneof=auto moto camioneta suv otro"`
	Estado *string `json:"estado,omitempty" validate:"omitempty,oneof=activo inactivo suspendido"`
}
