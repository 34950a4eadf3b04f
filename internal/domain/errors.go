package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidSignature is returned when a webhook signature does not match the
// digest computed over the raw request body.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// UnknownTenantError indicates that no tenant record exists for the given id.
type UnknownTenantError struct {
	TenantID string
}

func (e *UnknownTenantError) Error() string {
	return fmt.Sprintf("unknown tenant: %s", e.TenantID)
}

// UpstreamUnavailableError indicates a non-2xx response from the upstream
// platform API. StatusCode carries the upstream status.
type UpstreamUnavailableError struct {
	Resource   ResourceType
	StatusCode int
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("upstream %s endpoint returned status %d", e.Resource, e.StatusCode)
}

// UpstreamUnreachableError indicates a transport-level failure before any
// upstream response was received.
type UpstreamUnreachableError struct {
	Resource ResourceType
	Err      error
}

func (e *UpstreamUnreachableError) Error() string {
	return fmt.Sprintf("upstream %s endpoint unreachable: %v", e.Resource, e.Err)
}

func (e *UpstreamUnreachableError) Unwrap() error { return e.Err }

// ValidationError indicates a malformed or missing required upstream field
// encountered while mapping a record.
type ValidationError struct {
	Resource ResourceType
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s field %q: %s", e.Resource, e.Field, e.Reason)
}

// PersistenceError indicates a transactional write failure. The whole batch
// the write belonged to has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// HTTPStatus maps an error from the taxonomy to the status code exposed on
// synchronous (on-demand) ingestion calls.
func HTTPStatus(err error) int {
	var (
		unknownTenant *UnknownTenantError
		unavailable   *UpstreamUnavailableError
		unreachable   *UpstreamUnreachableError
		validation    *ValidationError
	)
	switch {
	case errors.Is(err, ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.As(err, &unknownTenant):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		if unavailable.StatusCode > 0 {
			return unavailable.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &unreachable):
		return http.StatusBadGateway
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
