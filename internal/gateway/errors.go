package gateway

import "errors"

var (
	ErrConfiguration     = errors.New("CONFIGURATION_ERROR")
	ErrTransport         = errors.New("TRANSPORT_ERROR")
	ErrEmptyResponse     = errors.New("EMPTY_RESPONSE")
	ErrMalformedResponse = errors.New("MALFORMED_RESPONSE")
	ErrInvalidShape      = errors.New("INVALID_SHAPE")
)
