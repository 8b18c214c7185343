package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEstaVencida(t *testing.T) {
	venc := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		estado Estado
		now    time.Time
		want   bool
	}{
		{"antes del vencimiento", EstadoPendiente, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), false},
		{"el mismo dia", EstadoPendiente, time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC), false},
		{"despues, pendiente", EstadoPendiente, time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC), true},
		{"despues, parcial", EstadoPagadoParcial, time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC), true},
		{"despues, pagada", EstadoPagado, time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Expensa{Estado: tt.estado, FechaVencimiento: venc}
			if got := e.EstaVencida(tt.now); got != tt.want {
				t.Errorf("EstaVencida(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestDiasVencidos(t *testing.T) {
	e := &Expensa{
		Estado:           EstadoVencido,
		FechaVencimiento: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, 3, 25, 10, 0, 0, 0, time.UTC)
	if got := e.DiasVencidos(now); got != 10 {
		t.Errorf("DiasVencidos = %d, want 10", got)
	}

	e.Estado = EstadoPagado
	if got := e.DiasVencidos(now); got != 0 {
		t.Errorf("DiasVencidos on paid = %d, want 0", got)
	}
}

func TestExpensaFilter_SettersResetPage(t *testing.T) {
	f := NewExpensaFilter()
	f.SetPage(4)
	if f.Page != 4 {
		t.Fatalf("page = %d, want 4", f.Page)
	}

	f.SetEstado(EstadoVencido)
	if f.Page != 1 {
		t.Errorf("SetEstado must reset page, got %d", f.Page)
	}

	f.SetPage(3)
	f.SetPeriodo("2025-03")
	if f.Page != 1 {
		t.Errorf("SetPeriodo must reset page, got %d", f.Page)
	}
	if f.Estado != EstadoVencido {
		t.Errorf("SetPeriodo must keep estado, got %s", f.Estado)
	}

	f.SetPage(2)
	if f.Page != 2 || f.Periodo != "2025-03" || f.Estado != EstadoVencido {
		t.Errorf("SetPage must change only the page: %+v", f)
	}
}

func TestExpensaFilter_SetPageIgnoresNonPositive(t *testing.T) {
	f := NewExpensaFilter()
	f.SetPage(3)
	f.SetPage(0)
	if f.Page != 3 {
		t.Errorf("page = %d, want 3", f.Page)
	}
	f.SetPage(-1)
	if f.Page != 3 {
		t.Errorf("page = %d, want 3", f.Page)
	}
}

func TestParseEstado(t *testing.T) {
	for _, valid := range []string{"pendiente", "pagado_parcial", "pagado", "vencido"} {
		if _, err := ParseEstado(valid); err != nil {
			t.Errorf("ParseEstado(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseEstado("congelado"); err == nil {
		t.Error("ParseEstado must reject unknown values")
	}
}

func TestMultaEstaVencida(t *testing.T) {
	m := &Multa{
		Estado:           MultaPendiente,
		Monto:            decimal.RequireFromString("100.00"),
		FechaVencimiento: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	if !m.EstaVencida(now) {
		t.Error("pending past-due fine must be vencida")
	}

	m.Estado = MultaPagada
	if m.EstaVencida(now) {
		t.Error("paid fine is never vencida")
	}
}
