package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"ezypc-storefront/internal/common/config"
	"ezypc-storefront/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}}
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"write: broken pipe", true},
		{"NOT_FOUND: job 42 not found", false},
		{"INVALID_ARGUMENT: bad variables", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(stderrors.New(tt.msg)))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	assert.Equal(t, errors.ErrCodeTimeout, mapZeebeError(stderrors.New("deadline exceeded"), "complete", 2).Code)
	assert.Equal(t, errors.ErrCodeInvalidInput, mapZeebeError(stderrors.New("job not found"), "complete", 0).Code)

	mapped := mapZeebeError(stderrors.New("connection refused"), "publish", 3)
	assert.Equal(t, errors.ErrCodeTransport, mapped.Code)
	assert.Contains(t, mapped.Details, "Zeebe operation 'publish' failed after 3 attempts")
}

func TestExecuteWithRetry_RetriesTransientErrors(t *testing.T) {
	c := testClient(3)
	calls := 0

	result, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, stderrors.New("unavailable")
		}
		return "ok", nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_StopsOnPermanentError(t *testing.T) {
	c := testClient(3)
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("job not found")
	}, "complete")

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
}

func TestExecuteWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	c := testClient(2)
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("connection reset by peer")
	}, "publish")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", RequestTimeout: 5000})

	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.True(t, cfg.UsePlaintextConnection)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Same(t, DefaultRetryConfig, cfg.RetryConfig)
}

func TestInstrument_CallsHandler(t *testing.T) {
	var got int64
	h := Instrument("popular-products", func(_ worker.JobClient, job entities.Job) {
		got = job.Key
	}, nil)

	h(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7}})
	assert.Equal(t, int64(7), got)
}
