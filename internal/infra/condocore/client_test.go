package condocore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/resilience"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(
		srv.Client(),
		srv.URL,
		"test-token",
		resilience.NewCircuitBreaker("test"),
		resilience.Config{MaxRetries: 2, InitialBackoff: time.Millisecond},
		zap.NewNop(),
	)
	return client, srv
}

func TestClientGet_UnwrapsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}
		if r.URL.Path != "/api/unidades/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"success": true, "data": [{"id": 1, "codigo": "A-101"}]}`))
	}))

	data, err := client.get(context.Background(), "unidades/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `[{"id": 1, "codigo": "A-101"}]` {
		t.Errorf("data = %s", data)
	}
}

func TestClientGet_SuccessFalseIsRejection(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "periodo ya generado"}`))
	}))

	_, err := client.get(context.Background(), "expensas/")
	var rejection *domain.ErrBackendRejection
	if !errors.As(err, &rejection) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rejection.Message != "periodo ya generado" {
		t.Errorf("message = %q, want backend text verbatim", rejection.Message)
	}
}

func TestClientGet_DoesNotRetry4xx(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "error": "filtro invalido"}`))
	}))

	_, err := client.get(context.Background(), "expensas/")
	var rejection *domain.ErrBackendRejection
	if !errors.As(err, &rejection) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rejection.Status != http.StatusBadRequest {
		t.Errorf("status = %d", rejection.Status)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("backend called %d times, rejections must not be retried", got)
	}
}

func TestClientGet_NonJSON4xxIsRejection(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`<html><body>403 Forbidden</body></html>`))
	}))

	_, err := client.get(context.Background(), "expensas/")
	var rejection *domain.ErrBackendRejection
	if !errors.As(err, &rejection) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rejection.Status != http.StatusForbidden {
		t.Errorf("status = %d", rejection.Status)
	}
	if rejection.Message == "" {
		t.Error("expected a fallback message for the non-JSON body")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, a 4xx must not be retried even without an envelope", got)
	}
}

func TestClientGet_Retries5xx(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"success": true, "data": {}}`))
	}))

	if _, err := client.get(context.Background(), "expensas/estadisticas/"); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("backend called %d times, want 3", got)
	}
}

func TestClientMutate_DoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.post(context.Background(), "expensas/1/registrar_pago/", map[string]string{"monto": "50.00"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("backend called %d times, mutations must not be retried", got)
	}
}

func TestClientDelete_AcceptsNoContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.delete(context.Background(), "expensas/5/"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestGetVehiculoByPlaca_MissIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("placa"); got != "9999ZZZ" {
			t.Errorf("placa = %q", got)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success": false, "error": "vehiculo no registrado"}`))
	}))

	_, err := client.GetVehiculoByPlaca(context.Background(), "9999ZZZ")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
