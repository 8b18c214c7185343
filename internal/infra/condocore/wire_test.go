package condocore

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
)

func TestExpensaWireToDomain(t *testing.T) {
	raw := `{
		"id": 42,
		"unidad": 7,
		"unidad_codigo": "A-101",
		"periodo": "2025-03",
		"monto_base": "100.00",
		"monto_adicional": "20.00",
		"monto_total": "120.00",
		"monto_pagado": "50.00",
		"saldo_pendiente": "70.00",
		"estado": "pagado_parcial",
		"fecha_emision": "2025-03-01",
		"fecha_vencimiento": "2025-03-15",
		"conceptos": [{"id": 1, "descripcion": "Agua", "monto": "20.00", "tipo": "agua"}],
		"pagos": [{"id": 9, "expensa": 42, "monto": "50.00", "metodo_pago": "qr", "fecha_pago": "2025-03-10T14:30:00Z"}]
	}`

	var w expensaWire
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	e, err := w.toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}

	if !e.MontoTotal.Equal(decimal.RequireFromString("120.00")) {
		t.Errorf("monto_total = %s, want 120.00", e.MontoTotal)
	}
	if !e.SaldoPendiente.Equal(decimal.RequireFromString("70.00")) {
		t.Errorf("saldo_pendiente = %s, want 70.00", e.SaldoPendiente)
	}
	if e.Estado != domain.EstadoPagadoParcial {
		t.Errorf("estado = %s, want pagado_parcial", e.Estado)
	}
	if e.FechaVencimiento.Format("2006-01-02") != "2025-03-15" {
		t.Errorf("fecha_vencimiento = %v", e.FechaVencimiento)
	}
	if len(e.Conceptos) != 1 || e.Conceptos[0].Descripcion != "Agua" {
		t.Errorf("conceptos = %+v", e.Conceptos)
	}
	if len(e.Pagos) != 1 || e.Pagos[0].FechaPago.Hour() != 14 {
		t.Errorf("pagos = %+v", e.Pagos)
	}
}

func TestExpensaWireToDomain_RejectsUnknownEstado(t *testing.T) {
	w := expensaWire{Estado: "congelado"}
	if _, err := w.toDomain(); err == nil {
		t.Fatal("expected error on unknown estado")
	}
}

func TestExpensaWireToDomain_RejectsMalformedMonto(t *testing.T) {
	w := expensaWire{Estado: "pendiente", MontoBase: "cien"}
	if _, err := w.toDomain(); err == nil {
		t.Fatal("expected error on malformed monto")
	}
}

func TestCrearExpensaOut_FormatsAmounts(t *testing.T) {
	req := &domain.CrearExpensaRequest{
		UnidadID:         7,
		Periodo:          "2025-03",
		MontoBase:        decimal.RequireFromString("100"),
		MontoAdicional:   decimal.RequireFromString("20.5"),
		FechaVencimiento: "2025-03-15",
		Conceptos: []domain.ConceptoInput{
			{Descripcion: "Agua", Monto: decimal.RequireFromString("20.5"), Tipo: "agua"},
		},
	}

	w := crearExpensaOut(req)
	if w.MontoBase != "100.00" {
		t.Errorf("monto_base = %q, want 100.00", w.MontoBase)
	}
	if w.MontoAdicional != "20.50" {
		t.Errorf("monto_adicional = %q, want 20.50", w.MontoAdicional)
	}
	if w.Conceptos[0].Monto != "20.50" {
		t.Errorf("concepto monto = %q, want 20.50", w.Conceptos[0].Monto)
	}
}

func TestGenerarMasivoOut_OmitsUnidadesForAllUnits(t *testing.T) {
	req := &domain.GenerarMasivoRequest{
		Periodo:          "2025-04",
		MontoBase:        decimal.RequireFromString("350"),
		FechaVencimiento: "2025-04-15",
		TodasLasUnidades: true,
		Unidades:         []int64{1, 2, 3}, // stale selection must not leak
	}

	payload, err := json.Marshal(generarMasivoOut(req))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(payload), "unidades") {
		t.Errorf("payload for all units must omit unidades key: %s", payload)
	}
}

func TestGenerarMasivoOut_ForwardsExplicitSelection(t *testing.T) {
	req := &domain.GenerarMasivoRequest{
		Periodo:          "2025-04",
		MontoBase:        decimal.RequireFromString("350"),
		FechaVencimiento: "2025-04-15",
		Unidades:         []int64{4, 9},
	}

	w := generarMasivoOut(req)
	if len(w.Unidades) != 2 || w.Unidades[0] != 4 || w.Unidades[1] != 9 {
		t.Errorf("unidades = %v, want [4 9]", w.Unidades)
	}
}

func TestParseFechaHora_FallsBackToDateOnly(t *testing.T) {
	got, err := parseFechaHora("fecha_pago", "2025-03-10")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestActualizarExpensaOut_OnlyPresentFields(t *testing.T) {
	base := decimal.RequireFromString("200")
	req := &domain.ActualizarExpensaRequest{MontoBase: &base}

	payload, err := json.Marshal(actualizarExpensaOut(req))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(payload)
	if !strings.Contains(s, `"monto_base":"200.00"`) {
		t.Errorf("payload missing monto_base: %s", s)
	}
	if strings.Contains(s, "fecha_vencimiento") || strings.Contains(s, "monto_adicional") {
		t.Errorf("payload leaked absent fields: %s", s)
	}
}
