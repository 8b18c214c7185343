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

// ListResidentes fetches the filtered resident list.
func (c *Client) ListResidentes(ctx context.Context, filter domain.ResidenteFilter) ([]domain.Residente, error) {
	ctx, span := tracer.Start(ctx, "condocore.ListResidentes")
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
	if filter.UnidadID > 0 {
		q.Set("unidad", strconv.FormatInt(filter.UnidadID, 10))
	}

	data, err := c.get(ctx, withQuery("residentes/", q))
	if err != nil {
		return nil, storeErr("residentes", err)
	}

	var residentes []domain.Residente
	if err := json.Unmarshal(data, &residentes); err != nil {
		return nil, storeErr("residentes", fmt.Errorf("decode residente list: %w", err))
	}
	return residentes, nil
}

// GetResidente fetches one resident.
func (c *Client) GetResidente(ctx context.Context, id int64) (*domain.Residente, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetResidente")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", id))

	data, err := c.get(ctx, fmt.Sprintf("residentes/%d/", id))
	if err != nil {
		return nil, storeErr("residentes", asNotFound("residente", id, err))
	}

	var r domain.Residente
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, storeErr("residentes", fmt.Errorf("decode residente: %w", err))
	}
	return &r, nil
}

// CreateResidente registers a resident.
func (c *Client) CreateResidente(ctx context.Context, req *domain.CrearResidenteRequest) (*domain.Residente, error) {
	ctx, span := tracer.Start(ctx, "condocore.CreateResidente")
	defer span.End()

	data, err := c.post(ctx, "residentes/", req)
	if err != nil {
		return nil, storeErr("residentes", err)
	}

	var r domain.Residente
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, storeErr("residentes", fmt.Errorf("decode residente: %w", err))
	}
	return &r, nil
}

// UpdateResidente patches a resident.
func (c *Client) UpdateResidente(ctx context.Context, id int64, req *domain.ActualizarResidenteRequest) (*domain.Residente, error) {
	ctx, span := tracer.Start(ctx, "condocore.UpdateResidente")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", id))

	data, err := c.patch(ctx, fmt.Sprintf("residentes/%d/", id), req)
	if err != nil {
		return nil, storeErr("residentes", asNotFound("residente", id, err))
	}

	var r domain.Residente
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, storeErr("residentes", fmt.Errorf("decode residente: %w", err))
	}
	return &r, nil
}

// DeleteResidente removes a resident.
func (c *Client) DeleteResidente(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "condocore.DeleteResidente")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", id))

	if err := c.delete(ctx, fmt.Sprintf("residentes/%d/", id)); err != nil {
		return storeErr("residentes", asNotFound("residente", id, err))
	}
	return nil
}

// MarkRostroEnrolado flags a resident as having a face template enrolled.
// Called after the recognition service confirms the enrollment.
func (c *Client) MarkRostroEnrolado(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "condocore.MarkRostroEnrolado")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", id))

	payload := map[string]bool{"rostro_enrolado": true}
	if _, err := c.patch(ctx, fmt.Sprintf("residentes/%d/", id), payload); err != nil {
		return storeErr("residentes", asNotFound("residente", id, err))
	}
	return nil
}
