// internal/common/aws/clients.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Clients holds the messaging clients used for store notifications. A
// channel that is switched off is left nil.
type Clients struct {
	SES *ses.Client
	SNS *sns.Client
}

func NewClients(ctx context.Context, region string, withEmail, withSMS bool) (*Clients, error) {
	out := &Clients{}
	if !withEmail && !withSMS {
		return out, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if withEmail {
		out.SES = ses.NewFromConfig(cfg)
	}
	if withSMS {
		out.SNS = sns.NewFromConfig(cfg)
	}
	return out, nil
}
