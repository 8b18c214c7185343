package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
)

// PlatesClient calls the license-plate OCR service.
type PlatesClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewPlatesClient creates a new PlatesClient.
func NewPlatesClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *PlatesClient {
	return &PlatesClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
	}
}

// Read runs OCR on a gate-camera frame and returns the normalized plate.
func (c *PlatesClient) Read(ctx context.Context, req *domain.PlateReadRequest) (*domain.PlateReadResult, error) {
	ctx, span := tracer.Start(ctx, "PlatesClient.Read")
	defer span.End()

	var result domain.PlateReadResult

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(req)
			if err != nil {
				return err
			}

			url := fmt.Sprintf("%s/v1/plates/read", c.baseURL)
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
				return fmt.Errorf("plates API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&result)
		})
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "plates", Err: err}
	}

	// OCR output varies in casing and spacing; normalize before any lookup.
	result.Placa = strings.ToUpper(strings.ReplaceAll(result.Placa, " ", ""))
	span.SetAttributes(attribute.String("placa", result.Placa))

	return &result, nil
}
