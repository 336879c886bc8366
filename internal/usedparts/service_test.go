package usedparts

import (
	"context"
	"errors"
	"testing"

	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	return m.PublishFunc(ctx, params, optFns...)
}

func okSES() *MockSESService {
	return &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
		},
	}
}

func okSNS() *MockSNSService {
	return &MockSNSService{
		PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return &sns.PublishOutput{MessageId: aws.String("sms-1")}, nil
		},
	}
}

func createTestNotifierConfig() NotifierConfig {
	return NotifierConfig{
		EmailEnabled: true,
		FromEmail:    "noreply@ezypc.in",
		StoreEmail:   "store@ezypc.in",
		SMSEnabled:   true,
		StorePhone:   "+919847000000",
	}
}

func createTestRequest() InquiryRequest {
	return InquiryRequest{
		CustomerName: "Rahul Nair",
		Phone:        "+91 98470 12345",
		Email:        "rahul@example.com",
		Message:      "Can I test it before buying?",
	}
}

func TestInquiryRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *InquiryRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*InquiryRequest) {}},
		{name: "email optional", mutate: func(r *InquiryRequest) { r.Email = "" }},
		{name: "missing name", mutate: func(r *InquiryRequest) { r.CustomerName = "  " }, wantErr: true},
		{name: "short phone", mutate: func(r *InquiryRequest) { r.Phone = "12345" }, wantErr: true},
		{name: "bad email", mutate: func(r *InquiryRequest) { r.Email = "rahul@" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createTestRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInquiry)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_CreateInquiry_NotifiesStore(t *testing.T) {
	sesMock, snsMock := okSES(), okSNS()
	repo := NewMemoryRepository(SeedParts)
	svc := NewService(repo, NewNotifier(createTestNotifierConfig(), sesMock, snsMock), logger.NewTestLogger(t))

	inq, err := svc.CreateInquiry(context.Background(), "gpu-1660s", createTestRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, inq.ID)
	assert.Equal(t, "gpu-1660s", inq.PartID)
	assert.Equal(t, models.InquiryStatusNotified, inq.Status)
	assert.False(t, inq.CreatedAt.IsZero())

	stored, ok := repo.Inquiry(inq.ID)
	require.True(t, ok)
	assert.Equal(t, models.InquiryStatusNotified, stored.Status)

	require.Len(t, sesMock.calls, 1)
	email := sesMock.calls[0]
	assert.Equal(t, []string{"store@ezypc.in"}, email.Destination.ToAddresses)
	assert.Equal(t, "noreply@ezypc.in", aws.ToString(email.Source))
	assert.Contains(t, aws.ToString(email.Message.Subject.Data), "NVIDIA GTX 1660 Super")
	assert.Contains(t, aws.ToString(email.Message.Body.Text.Data), "Like new condition")
	assert.Contains(t, aws.ToString(email.Message.Body.Text.Data), inq.ID)

	require.Len(t, snsMock.calls, 1)
	assert.Equal(t, "+919847000000", aws.ToString(snsMock.calls[0].PhoneNumber))
	assert.Contains(t, aws.ToString(snsMock.calls[0].Message), "Rahul Nair")
}

func TestService_CreateInquiry_SMSDisabled(t *testing.T) {
	cfg := createTestNotifierConfig()
	cfg.SMSEnabled = false
	sesMock, snsMock := okSES(), okSNS()
	svc := NewService(NewMemoryRepository(SeedParts), NewNotifier(cfg, sesMock, snsMock), logger.NewTestLogger(t))

	inq, err := svc.CreateInquiry(context.Background(), "cpu-3600", createTestRequest())
	require.NoError(t, err)

	assert.Equal(t, models.InquiryStatusNotified, inq.Status)
	assert.Len(t, sesMock.calls, 1)
	assert.Empty(t, snsMock.calls)
}

func TestService_CreateInquiry_DeliveryFailureKeepsInquiry(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("MessageRejected: Email address is not verified")
		},
	}
	repo := NewMemoryRepository(SeedParts)
	svc := NewService(repo, NewNotifier(createTestNotifierConfig(), sesMock, okSNS()), logger.NewTestLogger(t))

	inq, err := svc.CreateInquiry(context.Background(), "mobo-b450", createTestRequest())
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusReceived, inq.Status)

	stored, ok := repo.Inquiry(inq.ID)
	require.True(t, ok)
	assert.Equal(t, models.InquiryStatusReceived, stored.Status)
}

func TestService_CreateInquiry_Errors(t *testing.T) {
	svc := NewService(NewMemoryRepository(SeedParts), nil, logger.NewTestLogger(t))

	_, err := svc.CreateInquiry(context.Background(), "no-such-part", createTestRequest())
	assert.ErrorIs(t, err, ErrPartNotFound)

	bad := createTestRequest()
	bad.Phone = ""
	_, err = svc.CreateInquiry(context.Background(), "gpu-1660s", bad)
	assert.ErrorIs(t, err, ErrInvalidInquiry)
}

func TestService_CreateInquiry_WithoutNotifier(t *testing.T) {
	svc := NewService(NewMemoryRepository(SeedParts), nil, logger.NewTestLogger(t))

	inq, err := svc.CreateInquiry(context.Background(), "ssd-970-500gb", createTestRequest())
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusReceived, inq.Status)
}

func TestService_Match(t *testing.T) {
	svc := NewService(NewMemoryRepository(SeedParts), nil, logger.NewNoOpLogger())

	part, err := svc.Match(context.Background(), []models.ComponentSpec{
		{Name: "Processor", Spec: "AMD Ryzen 5 3600"},
	})
	require.NoError(t, err)
	require.NotNil(t, part)
	assert.Equal(t, "cpu-3600", part.ID)

	part, err = svc.Match(context.Background(), []models.ComponentSpec{{Name: "RAM", Spec: "32GB DDR5 6000MHz"}})
	require.NoError(t, err)
	assert.Nil(t, part)
}
