package condocore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// Unidad endpoints. Units carry no monetary or date fields, so their wire
// shape is the domain struct itself.

// ListUnidades fetches the filtered unit list.
func (c *Client) ListUnidades(ctx context.Context, filter domain.UnidadFilter) ([]domain.Unidad, error) {
	ctx, span := tracer.Start(ctx, "condocore.ListUnidades")
	defer span.End()

	q := url.Values{}
	pageQuery(q, filter.Page, filter.PageSize)
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Estado != "" {
		q.Set("estado", filter.Estado)
	}

	data, err := c.get(ctx, withQuery("unidades/", q))
	if err != nil {
		return nil, storeErr("unidades", err)
	}

	var unidades []domain.Unidad
	if err := json.Unmarshal(data, &unidades); err != nil {
		return nil, storeErr("unidades", fmt.Errorf("decode unidad list: %w", err))
	}
	return unidades, nil
}

// GetUnidad fetches one unit.
func (c *Client) GetUnidad(ctx context.Context, id int64) (*domain.Unidad, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetUnidad")
	defer span.End()
	span.SetAttributes(attribute.Int64("unidad.id", id))

	data, err := c.get(ctx, fmt.Sprintf("unidades/%d/", id))
	if err != nil {
		return nil, storeErr("unidades", asNotFound("unidad", id, err))
	}

	var u domain.Unidad
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, storeErr("unidades", fmt.Errorf("decode unidad: %w", err))
	}
	return &u, nil
}

// CreateUnidad registers a unit.
func (c *Client) CreateUnidad(ctx context.Context, req *domain.CrearUnidadRequest) (*domain.Unidad, error) {
	ctx, span := tracer.Start(ctx, "condocore.CreateUnidad")
	defer span.End()

	data, err := c.post(ctx, "unidades/", req)
	if err != nil {
		return nil, storeErr("unidades", err)
	}

	var u domain.Unidad
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, storeErr("unidades", fmt.Errorf("decode unidad: %w", err))
	}
	return &u, nil
}

// UpdateUnidad patches a unit.
func (c *Client) UpdateUnidad(ctx context.Context, id int64, req *domain.ActualizarUnidadRequest) (*domain.Unidad, error) {
	ctx, span := tracer.Start(ctx, "condocore.UpdateUnidad")
	defer span.End()
	span.SetAttributes(attribute.Int64("unidad.id", id))

	data, err := c.patch(ctx, fmt.Sprintf("unidades/%d/", id), req)
	if err != nil {
		return nil, storeErr("unidades", asNotFound("unidad", id, err))
	}

	var u domain.Unidad
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, storeErr("unidades", fmt.Errorf("decode unidad: %w", err))
	}
	return &u, nil
}

// DeleteUnidad removes a unit. The backend rejects deletion while expensas
// or residents still reference it.
func (c *Client) DeleteUnidad(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "condocore.DeleteUnidad")
	defer span.End()
	span.SetAttributes(attribute.Int64("unidad.id", id))

	if err := c.delete(ctx, fmt.Sprintf("unidades/%d/", id)); err != nil {
		return storeErr("unidades", asNotFound("unidad", id, err))
	}
	return nil
}
