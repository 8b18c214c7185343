package condocore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/grupocondor/condo-admin-bfa-go/internal/domain"

	"github.com/sony/gobreaker"
)

// storeErr normalizes adapter failures. Backend rejections and not-found
// results pass through untouched so handlers can map them to their own
// statuses; everything else (transport, 5xx, breaker, deadline) is wrapped
// as an external-service failure.
func storeErr(service string, err error) error {
	if err == nil {
		return nil
	}
	var rejection *domain.ErrBackendRejection
	if errors.As(err, &rejection) {
		return rejection
	}
	var notFound *domain.ErrNotFound
	if errors.As(err, &notFound) {
		return notFound
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: service}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ErrTimeout{Operation: service}
	}
	return &domain.ErrExternalService{Service: service, Err: err}
}

// asNotFound converts a 404 rejection into a typed not-found error for the
// given resource; any other error is returned as-is.
func asNotFound(resource string, id int64, err error) error {
	var rejection *domain.ErrBackendRejection
	if errors.As(err, &rejection) && rejection.Status == http.StatusNotFound {
		return &domain.ErrNotFound{Resource: resource, ID: strconv.FormatInt(id, 10)}
	}
	return err
}

func pageQuery(q url.Values, page, pageSize int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return fmt.Sprintf("%s?%s", path, q.Encode())
}
