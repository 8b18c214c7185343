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

// ListMultas fetches the filtered fine list.
func (c *Client) ListMultas(ctx context.Context, filter domain.MultaFilter) ([]domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "condocore.ListMultas")
	defer span.End()

	q := url.Values{}
	pageQuery(q, filter.Page, filter.PageSize)
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Estado != "" {
		q.Set("estado", filter.Estado)
	}
	if filter.Tipo != "" {
		q.Set("tipo", filter.Tipo)
	}
	if filter.ResidenteID > 0 {
		q.Set("residente", strconv.FormatInt(filter.ResidenteID, 10))
	}
	if filter.UnidadID > 0 {
		q.Set("unidad", strconv.FormatInt(filter.UnidadID, 10))
	}

	data, err := c.get(ctx, withQuery("multas/", q))
	if err != nil {
		return nil, storeErr("multas", err)
	}

	var wires []multaWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, storeErr("multas", fmt.Errorf("decode multa list: %w", err))
	}

	multas := make([]domain.Multa, 0, len(wires))
	for _, w := range wires {
		m, err := w.toDomain()
		if err != nil {
			return nil, storeErr("multas", err)
		}
		multas = append(multas, *m)
	}
	return multas, nil
}

// GetMulta fetches one fine.
func (c *Client) GetMulta(ctx context.Context, id int64) (*domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetMulta")
	defer span.End()
	span.SetAttributes(attribute.Int64("multa.id", id))

	data, err := c.get(ctx, fmt.Sprintf("multas/%d/", id))
	if err != nil {
		return nil, storeErr("multas", asNotFound("multa", id, err))
	}
	return decodeMulta(data)
}

// CreateMulta issues a fine.
func (c *Client) CreateMulta(ctx context.Context, req *domain.CrearMultaRequest) (*domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "condocore.CreateMulta")
	defer span.End()

	data, err := c.post(ctx, "multas/", crearMultaOut(req))
	if err != nil {
		return nil, storeErr("multas", err)
	}
	return decodeMulta(data)
}

// UpdateMulta patches a fine. The backend rejects edits on settled fines.
func (c *Client) UpdateMulta(ctx context.Context, id int64, req *domain.ActualizarMultaRequest) (*domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "condocore.UpdateMulta")
	defer span.End()
	span.SetAttributes(attribute.Int64("multa.id", id))

	data, err := c.patch(ctx, fmt.Sprintf("multas/%d/", id), actualizarMultaOut(req))
	if err != nil {
		return nil, storeErr("multas", asNotFound("multa", id, err))
	}
	return decodeMulta(data)
}

// DeleteMulta cancels a fine.
func (c *Client) DeleteMulta(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "condocore.DeleteMulta")
	defer span.End()
	span.SetAttributes(attribute.Int64("multa.id", id))

	if err := c.delete(ctx, fmt.Sprintf("multas/%d/", id)); err != nil {
		return storeErr("multas", asNotFound("multa", id, err))
	}
	return nil
}

// PagarMulta settles a fine in full and returns the updated record with the
// server-computed recargo included.
func (c *Client) PagarMulta(ctx context.Context, id int64, req *domain.PagarMultaRequest) (*domain.Multa, error) {
	ctx, span := tracer.Start(ctx, "condocore.PagarMulta")
	defer span.End()
	span.SetAttributes(attribute.Int64("multa.id", id))

	data, err := c.post(ctx, fmt.Sprintf("multas/%d/pagar/", id), req)
	if err != nil {
		return nil, storeErr("multas", asNotFound("multa", id, err))
	}
	return decodeMulta(data)
}

func decodeMulta(data json.RawMessage) (*domain.Multa, error) {
	var w multaWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, storeErr("multas", fmt.Errorf("decode multa: %w", err))
	}
	m, err := w.toDomain()
	if err != nil {
		return nil, storeErr("multas", err)
	}
	return m, nil
}
