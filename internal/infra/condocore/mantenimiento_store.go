package condocore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ListTareas fetches the filtered maintenance task list.
func (c *Client) ListTareas(ctx context.Context, filter domain.TareaFilter) ([]domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "condocore.ListTareas")
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
	if filter.Prioridad != "" {
		q.Set("prioridad", filter.Prioridad)
	}
	if filter.Vencidas {
		q.Set("vencidas", "true")
	}

	data, err := c.get(ctx, withQuery("mantenimiento/tareas/", q))
	if err != nil {
		return nil, storeErr("mantenimiento", err)
	}

	var wires []tareaWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, storeErr("mantenimiento", fmt.Errorf("decode tarea list: %w", err))
	}

	tareas := make([]domain.TareaMantenimiento, 0, len(wires))
	for _, w := range wires {
		t, err := w.toDomain()
		if err != nil {
			return nil, storeErr("mantenimiento", err)
		}
		tareas = append(tareas, *t)
	}
	return tareas, nil
}

// GetTarea fetches one maintenance task.
func (c *Client) GetTarea(ctx context.Context, id int64) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "condocore.GetTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	data, err := c.get(ctx, fmt.Sprintf("mantenimiento/tareas/%d/", id))
	if err != nil {
		return nil, storeErr("mantenimiento", asNotFound("tarea", id, err))
	}
	return decodeTarea(data)
}

// CreateTarea opens a maintenance task.
func (c *Client) CreateTarea(ctx context.Context, req *domain.CrearTareaRequest) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "condocore.CreateTarea")
	defer span.End()

	data, err := c.post(ctx, "mantenimiento/tareas/", crearTareaOut(req))
	if err != nil {
		return nil, storeErr("mantenimiento", err)
	}
	return decodeTarea(data)
}

// UpdateTarea patches a task. The backend rejects edits on closed tasks.
func (c *Client) UpdateTarea(ctx context.Context, id int64, req *domain.ActualizarTareaRequest) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "condocore.UpdateTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	data, err := c.patch(ctx, fmt.Sprintf("mantenimiento/tareas/%d/", id), actualizarTareaOut(req))
	if err != nil {
		return nil, storeErr("mantenimiento", asNotFound("tarea", id, err))
	}
	return decodeTarea(data)
}

// DeleteTarea removes a task.
func (c *Client) DeleteTarea(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "condocore.DeleteTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	if err := c.delete(ctx, fmt.Sprintf("mantenimiento/tareas/%d/", id)); err != nil {
		return storeErr("mantenimiento", asNotFound("tarea", id, err))
	}
	return nil
}

// IniciarTarea moves a task into en_progreso.
func (c *Client) IniciarTarea(ctx context.Context, id int64) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "condocore.IniciarTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	data, err := c.post(ctx, fmt.Sprintf("mantenimiento/tareas/%d/iniciar/", id), nil)
	if err != nil {
		return nil, storeErr("mantenimiento", asNotFound("tarea", id, err))
	}
	return decodeTarea(data)
}

// CompletarTarea closes a task, recording the executed cost when provided.
func (c *Client) CompletarTarea(ctx context.Context, id int64, req *domain.CompletarTareaRequest) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "condocore.CompletarTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	data, err := c.post(ctx, fmt.Sprintf("mantenimiento/tareas/%d/completar/", id), completarTareaOut(req))
	if err != nil {
		return nil, storeErr("mantenimiento", asNotFound("tarea", id, err))
	}
	return decodeTarea(data)
}

// CancelarTarea cancels a task with a reason.
func (c *Client) CancelarTarea(ctx context.Context, id int64, req *domain.CancelarTareaRequest) (*domain.TareaMantenimiento, error) {
	ctx, span := tracer.Start(ctx, "condocore.CancelarTarea")
	defer span.End()
	span.SetAttributes(attribute.Int64("tarea.id", id))

	data, err := c.post(ctx, fmt.Sprintf("mantenimiento/tareas/%d/cancelar/", id), req)
	if err != nil {
		return nil, storeErr("mantenimiento", asNotFound("tarea", id, err))
	}
	return decodeTarea(data)
}

func decodeTarea(data json.RawMessage) (*domain.TareaMantenimiento, error) {
	var w tareaWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, storeErr("mantenimiento", fmt.Errorf("decode tarea: %w", err))
	}
	t, err := w.toDomain()
	if err != nil {
		return nil, storeErr("mantenimiento", err)
	}
	return t, nil
}
