package workorder

import "errors"

var (
	// ErrMissingBaseURL is returned when the client is created without a
	// service URL.
	ErrMissingBaseURL = errors.New("missing order-management service url")

	// ErrWorkOrderNotFound is returned when the service has no such work
	// order.
	ErrWorkOrderNotFound = errors.New("work order not found")

	// ErrServiceFailure is returned for transport or unexpected-status
	// failures talking to the order-management service.
	ErrServiceFailure = errors.New("order-management service failure")
)
