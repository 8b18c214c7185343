package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grupocondor/condo-admin-bfa-go/internal/handler"
	"github.com/grupocondor/condo-admin-bfa-go/internal/infra/observability"
	"github.com/grupocondor/condo-admin-bfa-go/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const testSecret = "unit-test-secret"

func newTestRouter() http.Handler {
	svcs := handler.Services{
		Verifier: service.NewTokenVerifier(testSecret),
	}
	return handler.NewRouter(svcs, observability.NewMetrics(), []string{"http://localhost:5173"}, zap.NewNop())
}

func mintToken(t *testing.T, tokenType string, expiresIn time.Duration) string {
	t.Helper()

	claims := service.JWTClaims{
		Sub:  "admin-1",
		Rol:  "administrador",
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/operacion/resumen", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestProtectedRouteWithMalformedHeader(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/operacion/resumen", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestProtectedRouteWithExpiredToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/operacion/resumen", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "access", -time.Hour))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestProtectedRouteRejectsRefreshToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/operacion/resumen", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "refresh", time.Hour))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestResumenOperacionalWithValidToken(t *testing.T) {
	router := newTestRouter()

	// A prior request must show up in the served counters.
	warmup := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(httptest.NewRecorder(), warmup)

	req := httptest.NewRequest(http.MethodGet, "/v1/operacion/resumen", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "access", time.Hour))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resumen struct {
		TotalSolicitudes int64 `json:"total_solicitudes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resumen); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resumen.TotalSolicitudes < 1 {
		t.Errorf("total_solicitudes = %d, want at least the warmup request counted", resumen.TotalSolicitudes)
	}
}

func TestRequestCounterCountsErrors(t *testing.T) {
	metrics := observability.NewMetrics()
	svcs := handler.Services{Verifier: service.NewTokenVerifier(testSecret)}
	router := handler.NewRouter(svcs, metrics, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/expensas", nil)
	router.ServeHTTP(httptest.NewRecorder(), req) // 401, no token

	resumen := metrics.GetResumenOperacional()
	if resumen.TotalSolicitudes != 1 {
		t.Fatalf("total_solicitudes = %d, want 1", resumen.TotalSolicitudes)
	}
	if resumen.TasaError != 1 {
		t.Errorf("tasa_error = %v, want 1 after a rejected request", resumen.TasaError)
	}
}
