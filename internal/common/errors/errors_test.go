package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"ezypc-storefront/internal/gateway"
	"ezypc-storefront/internal/usedparts"
	"ezypc-storefront/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		retryable bool
	}{
		{"configuration", fmt.Errorf("%w: API_KEY environment variable not set", gateway.ErrConfiguration), ErrCodeConfiguration, false},
		{"transport", fmt.Errorf("%w: connection reset", gateway.ErrTransport), ErrCodeTransport, true},
		{"empty", fmt.Errorf("%w: no text", gateway.ErrEmptyResponse), ErrCodeEmptyResponse, true},
		{"malformed", fmt.Errorf("%w: invalid character", gateway.ErrMalformedResponse), ErrCodeMalformedResponse, true},
		{"invalid shape", fmt.Errorf("%w: recommendations is required", gateway.ErrInvalidShape), ErrCodeInvalidShape, true},
		{"deadline", fmt.Errorf("%w: %w", gateway.ErrTransport, context.DeadlineExceeded), ErrCodeTimeout, true},
		{"unknown use case", fmt.Errorf("%w: \"Mining\"", registry.ErrUnknownUseCase), ErrCodeUnknownUseCase, false},
		{"unknown question", fmt.Errorf("%w: unknown question", registry.ErrUnknownQuestion), ErrCodeInvalidInput, false},
		{"invalid inquiry", fmt.Errorf("%w: phone", usedparts.ErrInvalidInquiry), ErrCodeInvalidInput, false},
		{"part not found", fmt.Errorf("%w: gpu-9999", usedparts.ErrPartNotFound), ErrCodePartNotFound, false},
		{"database", fmt.Errorf("%w: list: timeout", usedparts.ErrDatabaseFailure), ErrCodeDatabaseFailed, true},
		{"notification", fmt.Errorf("%w: ses", usedparts.ErrNotificationSendFailed), ErrCodeNotificationErr, true},
		{"unexpected", stderrors.New("boom"), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.retryable, got.Retryable)
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}

func TestFromError_PassesStandardErrorThrough(t *testing.T) {
	original := NewNoResultError("popular-products")
	wrapped := fmt.Errorf("worker: %w", original)

	assert.Same(t, original, FromError(wrapped))
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := NewConfigurationError(stderrors.New("missing key"))
	assert.Contains(t, err.Message, "check your API key")
	assert.Equal(t, "missing key", err.Details)
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantRetries int
	}{
		{"transport retries three times", NewTransportError(stderrors.New("reset")), 3},
		{"malformed retries twice", NewMalformedResponseError(stderrors.New("eof")), 2},
		{"timeout retries twice", NewTimeoutError("genai", stderrors.New("deadline")), 2},
		{"invalid shape retries once", NewInvalidShapeError(stderrors.New("missing field")), 1},
		{"configuration never retries", NewConfigurationError(stderrors.New("no key")), 0},
		{"invalid input never retries", NewInvalidInputError("bad"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.Code)

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, bpmn.Code, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(ErrCodeConfiguration))
	assert.Equal(t, "NETWORK", GetErrorCategory(ErrCodeTransport))
	assert.Equal(t, "NETWORK", GetErrorCategory(ErrCodeTimeout))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeMalformedResponse))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeNoResult))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodePartNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestIsRetryableErrorCode(t *testing.T) {
	require.True(t, IsRetryableErrorCode(ErrCodeTransport))
	require.False(t, IsRetryableErrorCode(ErrCodeUnknownUseCase))
}
