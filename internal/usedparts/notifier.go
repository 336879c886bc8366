package usedparts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ezypc-storefront/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

var ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type NotifierConfig struct {
	EmailEnabled bool
	FromEmail    string
	StoreEmail   string
	SMSEnabled   bool
	StorePhone   string
}

// Notifier tells store staff about a new inquiry. A nil client disables its
// channel.
type Notifier struct {
	config    NotifierConfig
	sesClient SESService
	snsClient SNSService
}

func NewNotifier(cfg NotifierConfig, sesClient SESService, snsClient SNSService) *Notifier {
	return &Notifier{config: cfg, sesClient: sesClient, snsClient: snsClient}
}

// Notify returns true when at least one channel delivered.
func (n *Notifier) Notify(ctx context.Context, part *models.UsedPart, inq *models.Inquiry) (bool, error) {
	subject := fmt.Sprintf("Store inquiry: %s (%s)", part.Component, part.ID)
	body := inquiryBody(part, inq)
	sent := false

	if n.config.EmailEnabled && n.sesClient != nil && n.config.StoreEmail != "" {
		_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
			Destination: &types.Destination{
				ToAddresses: []string{n.config.StoreEmail},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
			Source: aws.String(n.config.FromEmail),
		})
		if err != nil {
			return false, fmt.Errorf("%w: email: %v", ErrNotificationSendFailed, err)
		}
		sent = true
	}

	if n.config.SMSEnabled && n.snsClient != nil && n.config.StorePhone != "" {
		_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
			PhoneNumber: aws.String(n.config.StorePhone),
			Message:     aws.String(fmt.Sprintf("EZYPC inquiry from %s (%s) for %s", inq.CustomerName, inq.Phone, part.Component)),
		})
		if err != nil {
			return sent, fmt.Errorf("%w: sms: %v", ErrNotificationSendFailed, err)
		}
		sent = true
	}

	return sent, nil
}

func inquiryBody(part *models.UsedPart, inq *models.Inquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A customer wants to see a pre-owned part in store.\n\n")
	fmt.Fprintf(&b, "Part: %s (%s)\n", part.Component, part.ID)
	fmt.Fprintf(&b, "Grade: %s - %s\n", part.Grade, GradeDescription(part.Grade))
	fmt.Fprintf(&b, "Price: ₹%d\n\n", part.Price)
	fmt.Fprintf(&b, "Customer: %s\n", inq.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", inq.Phone)
	if inq.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", inq.Email)
	}
	if inq.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", inq.Message)
	}
	fmt.Fprintf(&b, "\nInquiry ID: %s\n", inq.ID)
	return b.String()
}
