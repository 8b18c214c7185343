// Package client holds the adapters for the external AI services:
// facial recognition and license-plate OCR. Both are best-effort
// integrations; a failure here never blocks the billing flows.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("client")

// FaceClient calls the facial-recognition service.
type FaceClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewFaceClient creates a new FaceClient.
func NewFaceClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *FaceClient {
	return &FaceClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
	}
}

// Enroll registers a resident's face template.
func (c *FaceClient) Enroll(ctx context.Context, req *domain.FaceEnrollRequest) (*domain.FaceEnrollResult, error) {
	ctx, span := tracer.Start(ctx, "FaceClient.Enroll")
	defer span.End()
	span.SetAttributes(attribute.Int64("residente.id", req.ResidenteID))

	var result domain.FaceEnrollResult
	if err := c.call(ctx, "v1/faces/enroll", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Verify matches a face image against the enrolled residents.
func (c *FaceClient) Verify(ctx context.Context, req *domain.FaceVerifyRequest) (*domain.FaceVerifyResult, error) {
	ctx, span := tracer.Start(ctx, "FaceClient.Verify")
	defer span.End()

	var result domain.FaceVerifyResult
	if err := c.call(ctx, "v1/faces/verify", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *FaceClient) call(ctx context.Context, path string, payload, out any) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(payload)
			if err != nil {
				return err
			}

			url := fmt.Sprintf("%s/%s", c.baseURL, path)
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			httpReq.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("face API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(out)
		})
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "faces", Err: err}
	}
	return nil
}
