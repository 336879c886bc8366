package similarproducts

import (
	"context"
	"fmt"
	"testing"
	"time"

	commonerrors "ezypc-storefront/internal/common/errors"
	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/gateway"
	"ezypc-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetSimilarProducts(ctx context.Context, product models.Product, excludeTitles []string) (*models.Batch, error) {
	args := m.Called(ctx, product, excludeTitles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Batch), args.Error(1)
}

func createTestHandler(t *testing.T, svc *MockService) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		Service:      svc,
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 5, Timeout: 5 * time.Second},
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

var reference = models.Product{
	Title:             "Ryzen 5 5600 + RTX 3060 Build",
	Type:              models.ProductTypeCustomBuild,
	EstimatedPriceINR: 72000,
}

func TestHandler_Execute_DefaultsExclusionToReference(t *testing.T) {
	svc := &MockService{}
	svc.On("GetSimilarProducts", mock.Anything, reference, []string{reference.Title}).Return(&models.Batch{
		Recommendations: []models.Product{{Title: "Ryzen 5 7600 + RX 7600 Build"}},
	}, nil)

	out, err := createTestHandler(t, svc).Execute(context.Background(), &Input{Product: reference})
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.True(t, out.HasMore)
	assert.Len(t, out.Recommendations, 1)
	svc.AssertExpectations(t)
}

func TestHandler_Execute_PassesExclusions(t *testing.T) {
	exclude := []string{reference.Title, "Intel i5-12400F + RTX 3060 Build"}
	svc := &MockService{}
	svc.On("GetSimilarProducts", mock.Anything, reference, exclude).Return(&models.Batch{}, nil)

	out, err := createTestHandler(t, svc).Execute(context.Background(), &Input{Product: reference, ExcludeTitles: exclude})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.False(t, out.HasMore)
	svc.AssertExpectations(t)
}

func TestHandler_Execute_NilResult(t *testing.T) {
	svc := &MockService{}
	svc.On("GetSimilarProducts", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	out, err := createTestHandler(t, svc).Execute(context.Background(), &Input{Product: reference})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.NotNil(t, out.Recommendations)
}

func TestHandler_Execute_Error(t *testing.T) {
	svc := &MockService{}
	svc.On("GetSimilarProducts", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: model returned no text", gateway.ErrEmptyResponse))

	_, err := createTestHandler(t, svc).Execute(context.Background(), &Input{Product: reference})
	require.Error(t, err)

	bpmn := commonerrors.ConvertToBPMNError(commonerrors.FromError(err))
	assert.Equal(t, "EMPTY_RESPONSE", bpmn.Code)
	assert.Equal(t, 2, bpmn.Retries)
}

func TestParseInput(t *testing.T) {
	in, err := parseInput(`{"product":{"title":"HP Omen 25L","type":"Prebuilt PC","estimatedPriceINR":98000},"excludeTitles":["HP Omen 25L"]}`)
	require.NoError(t, err)
	assert.Equal(t, "HP Omen 25L", in.Product.Title)
	assert.Equal(t, models.ProductTypePrebuiltPC, in.Product.Type)
	assert.Equal(t, []string{"HP Omen 25L"}, in.ExcludeTitles)

	_, err = parseInput(`{"product":{}}`)
	assert.Error(t, err)
}
