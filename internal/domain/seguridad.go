package domain

// ============================================================
// Seguridad: thin AI integrations (facial recognition, plate OCR)
// ============================================================

// FaceEnrollRequest registers a face template for a resident.
type FaceEnrollRequest struct {
	ResidenteID  int64  `json:"residente_id"`
	ImagenBase64 string `json:"imagen_base64"`
}

// FaceEnrollResult is the recognition service's enrollment outcome.
type FaceEnrollResult struct {
	ResidenteID int64   `json:"residente_id"`
	TemplateID  string  `json:"template_id"`
	Calidad     float64 `json:"calidad"` // image quality score 0..1
}

// FaceVerifyRequest asks the recognition service to match a face against
// the enrolled residents.
type FaceVerifyRequest struct {
	ImagenBase64 string `json:"imagen_base64" validate:"required"`
}

// FaceVerifyResult is the match outcome. The confidence threshold is owned
// by the recognition service; the BFA only relays the verdict.
type FaceVerifyResult struct {
	Reconocido      bool    `json:"reconocido"`
	ResidenteID     int64   `json:"residente_id,omitempty"`
	ResidenteNombre string  `json:"residente_nombre,omitempty"`
	Confianza       float64 `json:"confianza"`
}

// PlateReadRequest sends a gate-camera frame to the OCR service.
type PlateReadRequest struct {
	ImagenBase64 string `json:"imagen_base64" validate:"required"`
}

// PlateReadResult is the raw OCR outcome.
type PlateReadResult struct {
	Placa     string  `json:"placa"` // normalized, e.g. 1234ABC
	Confianza float64 `json:"confianza"`
}

// PlacaVerificada is the OCR result cross-checked against registered vehicles.
type PlacaVerificada struct {
	Placa      string    `json:"placa"`
	Confianza  float64   `json:"confianza"`
	Autorizado bool      `json:"autorizado"`
	Vehiculo   *Vehiculo `json:"vehiculo,omitempty"`
}
