package condocore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ListVehiculos fetches the filtered vehicle list.
func (c *Client) ListVehiculos(ctx context.Context, filter domain.VehiculoFilter) ([]domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "condocore.ListVehiculos")
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

	data, err := c.get(ctx, withQuery("vehiculos/", q))
	if err != nil {
		return nil, storeErr("vehiculos", err)
	}

	var vehiculos []domain.Vehiculo
	if err := json.Unmarshal(data, &vehiculos); err != nil {
		return nil, storeErr("vehiculos", fmt.Errorf("decode vehiculo list: %w", err))
	}
	return vehiculos, nil
}

// GetVehiculo fetches one vehicle.
func (c *Client) GetVehiculo(ctx context.Context, id int64) (*domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetVehiculo")
	defer span.End()
	span.SetAttributes(attribute.Int64("vehiculo.id", id))

	data, err := c.get(ctx, fmt.Sprintf("vehiculos/%d/", id))
	if err != nil {
		return nil, storeErr("vehiculos", asNotFound("vehiculo", id, err))
	}

	var v domain.Vehiculo
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, storeErr("vehiculos", fmt.Errorf("decode vehiculo: %w", err))
	}
	return &v, nil
}

// GetVehiculoByPlaca looks a vehicle up by its normalized plate. A miss
// comes back as ErrNotFound, which the gate-check flow treats as an
// unauthorized plate rather than a failure.
func (c *Client) GetVehiculoByPlaca(ctx context.Context, placa string) (*domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetVehiculoByPlaca")
	defer span.End()
	span.SetAttributes(attribute.String("vehiculo.placa", placa))

	q := url.Values{}
	q.Set("placa", placa)

	data, err := c.get(ctx, withQuery("vehiculos/buscar_placa/", q))
	if err != nil {
		var rejection *domain.ErrBackendRejection
		if errors.As(err, &rejection) && rejection.Status == http.StatusNotFound {
			return nil, &domain.ErrNotFound{Resource: "vehiculo", ID: placa}
		}
		return nil, storeErr("vehiculos", err)
	}

	var v domain.Vehiculo
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, storeErr("vehiculos", fmt.Errorf("decode vehiculo: %w", err))
	}
	return &v, nil
}

// CreateVehiculo registers a vehicle.
func (c *Client) CreateVehiculo(ctx context.Context, req *domain.CrearVehiculoRequest) (*domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "condocore.CreateVehiculo")
	defer span.End()

	data, err := c.post(ctx, "vehiculos/", req)
	if err != nil {
		return nil, storeErr("vehiculos", err)
	}

	var v domain.Vehiculo
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, storeErr("vehiculos", fmt.Errorf("decode vehiculo: %w", err))
	}
	return &v, nil
}

// UpdateVehiculo patches a vehicle. The plate itself is immutable; a plate
// change is a delete plus a new registration.
func (c *Client) UpdateVehiculo(ctx context.Context, id int64, req *domain.ActualizarVehiculoRequest) (*domain.Vehiculo, error) {
	ctx, span := tracer.Start(ctx, "condocore.UpdateVehiculo")
	defer span.End()
	span.SetAttributes(attribute.Int64("vehiculo.id", id))

	data, err := c.patch(ctx, fmt.Sprintf("vehiculos/%d/", id), req)
	if err != nil {
		return nil, storeErr("vehiculos", asNotFound("vehiculo", id, err))
	}

	var v domain.Vehiculo
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, storeErr("vehiculos", fmt.Errorf("decode vehiculo: %w", err))
	}
	return &v, nil
}

// DeleteVehiculo removes a vehicle registration.
func (c *Client) DeleteVehiculo(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "condocore.DeleteVehiculo")
	defer span.End()
	span.SetAttributes(attribute.Int64("vehiculo.id", id))

	if err := c.delete(ctx, fmt.Sprintf("vehiculos/%d/", id)); err != nil {
		return storeErr("vehiculos", asNotFound("vehiculo", id, err))
	}
	return nil
}
