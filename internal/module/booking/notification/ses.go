package notification

import (
	"bytes"
	"context"
	"fmt"
	"hotel-booking-service/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESClient is the part of the SES API the notifier uses.
type SESClient interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

type sesNotifier struct {
	cfg    *config.MailConfig
	client SESClient
}

// NewSES loads credentials from the default AWS chain.
func NewSES(ctx context.Context, cfg *config.MailConfig) (Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SESRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSESWithClient(cfg, ses.NewFromConfig(awsCfg)), nil
}

func NewSESWithClient(cfg *config.MailConfig, client SESClient) Notifier {
	return &sesNotifier{cfg: cfg, client: client}
}

// Send uses the raw API since the simple one cannot carry attachments.
func (n *sesNotifier) Send(ctx context.Context, msg Message) error {
	m, err := buildMessage(n.cfg, msg)
	if err != nil {
		return err
	}

	var raw bytes.Buffer
	if _, err := m.WriteTo(&raw); err != nil {
		return fmt.Errorf("encode mail: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	_, err = n.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(n.cfg.From),
		Destinations: []string{msg.To},
		RawMessage:   &types.RawMessage{Data: raw.Bytes()},
	})
	if err != nil {
		return fmt.Errorf("send mail via ses: %w", err)
	}
	return nil
}
