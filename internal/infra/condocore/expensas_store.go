package condocore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// Expensa endpoints of the core API. Reads go through get (retry + breaker);
// mutations go through post/patch/delete (breaker only).

// ListExpensas fetches the filtered, paginated expensa list.
func (c *Client) ListExpensas(ctx context.Context, filter domain.ExpensaFilter) ([]domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "condocore.ListExpensas")
	defer span.End()
	span.SetAttributes(attribute.Int("page", filter.Page))

	q := url.Values{}
	pageQuery(q, filter.Page, filter.PageSize)
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Estado != "" {
		q.Set("estado", string(filter.Estado))
	}
	if filter.Periodo != "" {
		q.Set("periodo", filter.Periodo)
	}
	if filter.UnidadID > 0 {
		q.Set("unidad", strconv.FormatInt(filter.UnidadID, 10))
	}
	if filter.Vencidas {
		q.Set("vencidas", "true")
	}

	data, err := c.get(ctx, withQuery("expensas/", q))
	if err != nil {
		return nil, storeErr("expensas", err)
	}

	var wires []expensaWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, storeErr("expensas", fmt.Errorf("decode expensa list: %w", err))
	}

	expensas := make([]domain.Expensa, 0, len(wires))
	for _, w := range wires {
		e, err := w.toDomain()
		if err != nil {
			return nil, storeErr("expensas", err)
		}
		expensas = append(expensas, *e)
	}
	return expensas, nil
}

// GetExpensa fetches one expensa with its nested concepts and payments.
func (c *Client) GetExpensa(ctx context.Context, id int64) (*domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetExpensa")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", id))

	data, err := c.get(ctx, fmt.Sprintf("expensas/%d/", id))
	if err != nil {
		return nil, storeErr("expensas", asNotFound("expensa", id, err))
	}
	return decodeExpensa(data)
}

// CreateExpensa creates a single expensa with nested concepts.
func (c *Client) CreateExpensa(ctx context.Context, req *domain.CrearExpensaRequest) (*domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "condocore.CreateExpensa")
	defer span.End()

	data, err := c.post(ctx, "expensas/", crearExpensaOut(req))
	if err != nil {
		return nil, storeErr("expensas", err)
	}
	return decodeExpensa(data)
}

// UpdateExpensa patches an expensa. The backend enforces the no-edit-after-
// payment rule and answers with a rejection when it applies.
func (c *Client) UpdateExpensa(ctx context.Context, id int64, req *domain.ActualizarExpensaRequest) (*domain.Expensa, error) {
	ctx, span := tracer.Start(ctx, "condocore.UpdateExpensa")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", id))

	data, err := c.patch(ctx, fmt.Sprintf("expensas/%d/", id), actualizarExpensaOut(req))
	if err != nil {
		return nil, storeErr("expensas", asNotFound("expensa", id, err))
	}
	return decodeExpensa(data)
}

// DeleteExpensa removes an expensa. The backend rejects deletion once
// payments exist.
func (c *Client) DeleteExpensa(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "condocore.DeleteExpensa")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", id))

	if err := c.delete(ctx, fmt.Sprintf("expensas/%d/", id)); err != nil {
		return storeErr("expensas", asNotFound("expensa", id, err))
	}
	return nil
}

// GenerarMasivo asks the backend to emit one expensa per target unit.
func (c *Client) GenerarMasivo(ctx context.Context, req *domain.GenerarMasivoRequest) (*domain.GenerarMasivoResult, error) {
	ctx, span := tracer.Start(ctx, "condocore.GenerarMasivo")
	defer span.End()
	span.SetAttributes(attribute.String("periodo", req.Periodo))

	data, err := c.post(ctx, "expensas/generar_masivo/", generarMasivoOut(req))
	if err != nil {
		return nil, storeErr("expensas", err)
	}

	var result domain.GenerarMasivoResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, storeErr("expensas", fmt.Errorf("decode generacion masiva: %w", err))
	}
	return &result, nil
}

// RegistrarPago posts a payment against an expensa and returns the created
// payment record. Callers refetch the expensa afterwards for the updated
// totals; this adapter never derives them.
func (c *Client) RegistrarPago(ctx context.Context, expensaID int64, req *domain.RegistrarPagoRequest) (*domain.Pago, error) {
	ctx, span := tracer.Start(ctx, "condocore.RegistrarPago")
	defer span.End()
	span.SetAttributes(attribute.Int64("expensa.id", expensaID))

	data, err := c.post(ctx, fmt.Sprintf("expensas/%d/registrar_pago/", expensaID), registrarPagoOut(req))
	if err != nil {
		return nil, storeErr("pagos", asNotFound("expensa", expensaID, err))
	}

	var w pagoWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, storeErr("pagos", fmt.Errorf("decode pago: %w", err))
	}
	pago, err := w.toDomain()
	if err != nil {
		return nil, storeErr("pagos", err)
	}
	return &pago, nil
}

// GetEstadisticas fetches the aggregate billing stats, optionally scoped
// to one period.
func (c *Client) GetEstadisticas(ctx context.Context, periodo string) (*domain.EstadisticasExpensas, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetEstadisticas")
	defer span.End()

	q := url.Values{}
	if periodo != "" {
		q.Set("periodo", periodo)
	}

	data, err := c.get(ctx, withQuery("expensas/estadisticas/", q))
	if err != nil {
		return nil, storeErr("expensas", err)
	}

	var w estadisticasWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, storeErr("expensas", fmt.Errorf("decode estadisticas: %w", err))
	}
	stats, err := w.toDomain()
	if err != nil {
		return nil, storeErr("expensas", err)
	}
	return stats, nil
}

// GetMorosidad fetches the delinquency report. Always a fresh read.
func (c *Client) GetMorosidad(ctx context.Context) ([]domain.MorosidadUnidad, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetMorosidad")
	defer span.End()

	data, err := c.get(ctx, "expensas/reporte_morosidad/")
	if err != nil {
		return nil, storeErr("expensas", err)
	}

	var wires []morosidadWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, storeErr("expensas", fmt.Errorf("decode morosidad: %w", err))
	}

	report := make([]domain.MorosidadUnidad, 0, len(wires))
	for _, w := range wires {
		m, err := w.toDomain()
		if err != nil {
			return nil, storeErr("expensas", err)
		}
		report = append(report, m)
	}
	return report, nil
}

func decodeExpensa(data json.RawMessage) (*domain.Expensa, error) {
	var w expensaWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, storeErr("expensas", fmt.Errorf("decode expensa: %w", err))
	}
	e, err := w.toDomain()
	if err != nil {
		return nil, storeErr("expensas", err)
	}
	return e, nil
}
