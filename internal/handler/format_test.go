package handler

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
)

func TestFormatExpensa_RendersFixedDecimals(t *testing.T) {
	e := &domain.Expensa{
		ID:               7,
		UnidadID:         3,
		UnidadCodigo:     "A-101",
		Periodo:          "2026-08",
		MontoBase:        decimal.NewFromFloat(100),
		MontoAdicional:   decimal.NewFromFloat(20),
		MontoTotal:       decimal.NewFromFloat(120),
		MontoPagado:      decimal.NewFromFloat(20.5),
		SaldoPendiente:   decimal.NewFromFloat(99.5),
		Estado:           domain.EstadoPagadoParcial,
		FechaEmision:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		FechaVencimiento: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Conceptos: []domain.ConceptoPago{
			{ID: 1, Descripcion: "agua", Monto: decimal.NewFromFloat(20), Tipo: "agua"},
		},
		Pagos: []domain.Pago{
			{ID: 9, Monto: decimal.NewFromFloat(20.5), MetodoPago: domain.MetodoEfectivo},
		},
	}

	body, err := json.Marshal(formatExpensa(e, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(body)

	// Amounts must keep their trailing zeros on the wire.
	for _, want := range []string{
		`"monto_base":"100.00"`,
		`"monto_adicional":"20.00"`,
		`"monto_total":"120.00"`,
		`"monto_pagado":"20.50"`,
		`"saldo_pendiente":"99.50"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("encoded expensa missing %s\nbody: %s", want, got)
		}
	}
	if !strings.Contains(got, `"monto":"20.00"`) {
		t.Errorf("encoded concepto amount not fixed to two decimals: %s", got)
	}
	if !strings.Contains(got, `"monto":"20.50"`) {
		t.Errorf("encoded pago amount not fixed to two decimals: %s", got)
	}
}

func TestFormatExpensaListItem_RendersFixedDecimals(t *testing.T) {
	e := &domain.Expensa{
		ID:         4,
		MontoTotal: decimal.NewFromInt(150),
		Estado:     domain.EstadoPendiente,
	}

	body, err := json.Marshal(formatExpensaListItem(e, time.Now()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"monto_total":"150.00"`) {
		t.Errorf("list item amount not fixed to two decimals: %s", body)
	}
}

func TestFormatEstadisticas_RendersFixedDecimals(t *testing.T) {
	stats := &domain.EstadisticasExpensas{
		TotalExpensas: 8,
		MontoTotal:    decimal.NewFromInt(960),
		MontoPagado:   decimal.NewFromFloat(480.5),
		TasaCobro:     50.05,
	}

	body, err := json.Marshal(formatEstadisticas(stats))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(body)
	if !strings.Contains(got, `"monto_total":"960.00"`) || !strings.Contains(got, `"monto_pagado":"480.50"`) {
		t.Errorf("estadisticas amounts not fixed to two decimals: %s", got)
	}
}

func TestFormatMorosidad_RendersFixedDecimals(t *testing.T) {
	rows := []domain.MorosidadUnidad{
		{
			UnidadID:       3,
			UnidadCodigo:   "A-101",
			TotalAdeudado:  decimal.NewFromInt(240),
			MesesAdeudados: 2,
			ExpensasVencidas: []domain.ExpensaVencidaResumen{
				{ID: 1, Periodo: "2026-06", MontoTotal: decimal.NewFromInt(120), SaldoPendiente: decimal.NewFromInt(120), DiasVencidos: 50},
			},
		},
	}

	body, err := json.Marshal(formatMorosidad(rows))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(body)
	if !strings.Contains(got, `"total_adeudado":"240.00"`) {
		t.Errorf("morosidad total not fixed to two decimals: %s", got)
	}
	if !strings.Contains(got, `"saldo_pendiente":"120.00"`) {
		t.Errorf("overdue saldo not fixed to two decimals: %s", got)
	}
}

func TestFormatMulta_RendersFixedDecimals(t *testing.T) {
	m := &domain.Multa{
		ID:          2,
		Monto:       decimal.NewFromInt(50),
		RecargoMora: decimal.NewFromFloat(5.5),
		MontoTotal:  decimal.NewFromFloat(55.5),
		Estado:      domain.MultaPendiente,
	}

	body, err := json.Marshal(formatMulta(m, time.Now()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(body)
	if !strings.Contains(got, `"monto":"50.00"`) || !strings.Contains(got, `"monto_total":"55.50"`) {
		t.Errorf("multa amounts not fixed to two decimals: %s", got)
	}
}
