package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"ezypc-storefront/internal/gateway"
	"ezypc-storefront/internal/usedparts"
	"ezypc-storefront/pkg/registry"
)

type ErrorCode string

const (
	ErrCodeConfiguration     ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeTransport         ErrorCode = "TRANSPORT_ERROR"
	ErrCodeEmptyResponse     ErrorCode = "EMPTY_RESPONSE"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrCodeInvalidShape      ErrorCode = "INVALID_SHAPE"
	ErrCodeNoResult          ErrorCode = "NO_RESULT"
	ErrCodeTimeout           ErrorCode = "TIMEOUT_ERROR"

	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeUnknownUseCase  ErrorCode = "UNKNOWN_USE_CASE"
	ErrCodePartNotFound    ErrorCode = "PART_NOT_FOUND"
	ErrCodeDatabaseFailed  ErrorCode = "DATABASE_OPERATION_FAILED"
	ErrCodeNotificationErr ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

func NewConfigurationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "AI service is not configured. Please check your API key.",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransport,
		Message:   "AI service request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewEmptyResponseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyResponse,
		Message:   "AI service returned an empty response",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewMalformedResponseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   "AI service returned a response that is not valid JSON",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidShapeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidShape,
		Message:   "AI service response did not match the expected schema",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewNoResultError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoResult,
		Message:   "Could not load products. Please try again later.",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeout,
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid request input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnknownUseCaseError(useCase string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownUseCase,
		Message:   "Unknown use case",
		Details:   fmt.Sprintf("useCase: %s", useCase),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewPartNotFoundError(partID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePartNotFound,
		Message:   "Used part not found",
		Details:   fmt.Sprintf("partId: %s", partID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseFailed,
		Message:   "Database operation failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationErr,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// FromError normalizes gateway, registry, used-parts and context errors into
// a StandardError.
// Errors that already are StandardErrors pass through unchanged.
func FromError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	switch {
	case stderrors.Is(err, gateway.ErrConfiguration):
		return NewConfigurationError(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError("genai", err)
	case stderrors.Is(err, gateway.ErrTransport):
		return NewTransportError(err)
	case stderrors.Is(err, gateway.ErrEmptyResponse):
		return NewEmptyResponseError(err)
	case stderrors.Is(err, gateway.ErrMalformedResponse):
		return NewMalformedResponseError(err)
	case stderrors.Is(err, gateway.ErrInvalidShape):
		return NewInvalidShapeError(err)
	case stderrors.Is(err, registry.ErrUnknownUseCase):
		return &StandardError{
			Code:      ErrCodeUnknownUseCase,
			Message:   "Unknown use case",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		}
	case stderrors.Is(err, registry.ErrUnknownQuestion),
		stderrors.Is(err, usedparts.ErrInvalidInquiry):
		return NewInvalidInputError(err.Error())
	case stderrors.Is(err, usedparts.ErrPartNotFound):
		return &StandardError{
			Code:      ErrCodePartNotFound,
			Message:   "Used part not found",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		}
	case stderrors.Is(err, usedparts.ErrDatabaseFailure):
		return NewDatabaseFailedError("usedparts", err)
	case stderrors.Is(err, usedparts.ErrNotificationSendFailed):
		return NewNotificationSendFailedError("store", err)
	}

	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeConfiguration:     "CONFIGURATION_ERROR",
	ErrCodeTransport:         "TRANSPORT_ERROR",
	ErrCodeEmptyResponse:     "EMPTY_RESPONSE",
	ErrCodeMalformedResponse: "MALFORMED_RESPONSE",
	ErrCodeInvalidShape:      "INVALID_SHAPE",
	ErrCodeNoResult:          "NO_RESULT",
	ErrCodeTimeout:           "TIMEOUT_ERROR",
	ErrCodeInvalidInput:      "INVALID_INPUT",
	ErrCodeUnknownUseCase:    "UNKNOWN_USE_CASE",
	ErrCodePartNotFound:      "PART_NOT_FOUND",
	ErrCodeDatabaseFailed:    "DATABASE_OPERATION_FAILED",
	ErrCodeNotificationErr:   "NOTIFICATION_SEND_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeTransport,
		ErrCodeDatabaseFailed,
		ErrCodeNotificationErr:
		return 3

	case ErrCodeEmptyResponse,
		ErrCodeMalformedResponse,
		ErrCodeTimeout:
		return 2

	case ErrCodeInvalidShape:
		return 1

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "TRANSPORT") || strings.Contains(codeStr, "TIMEOUT"):
		return "NETWORK"
	case strings.Contains(codeStr, "RESPONSE") || strings.Contains(codeStr, "SHAPE") || strings.Contains(codeStr, "RESULT"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "UNKNOWN") || strings.Contains(codeStr, "NOT_FOUND"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
